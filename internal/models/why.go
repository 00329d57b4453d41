package models

// WhyChooseMeModel stores the "why choose me" selling points, client-ordered
// by OrderIndex.
type WhyChooseMeModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon"`
	OrderIndex  int    `json:"order_index" gorm:"index"`
}

func (WhyChooseMeModel) TableName() string { return "why_choose_me" }
