package models

// TimelineType distinguishes the two logical lists stored in one table.
const (
	TimelineExperience = "experience"
	TimelineEducation  = "education"
)

// TimelineModel stores one experience or education entry.
type TimelineModel struct {
	Base
	Type        string `json:"type"        gorm:"index;not null"`
	Title       string `json:"title"       gorm:"not null"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"index"`
}

func (TimelineModel) TableName() string { return "timeline" }
