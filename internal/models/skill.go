package models

// SkillModel stores one skill bar/badge, grouped by category for display.
type SkillModel struct {
	Base
	Name       string `json:"name"       gorm:"not null"`
	Category   string `json:"category"   gorm:"index"`
	Percentage int    `json:"percentage"`
	Icon       string `json:"icon"`
	IconURL    string `json:"icon_url"`
}

func (SkillModel) TableName() string { return "skills" }
