package models

// OfferingModel stores one entry of the services page. Features is kept as the
// raw comma-separated string the dashboard edits; responses expose the parsed
// list alongside it.
type OfferingModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon"`
	Features    string `json:"features"    gorm:"type:text"`
}

func (OfferingModel) TableName() string { return "services" }
