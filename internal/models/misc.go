package models

// OptionModel is a small key-value store for site-wide counters and flags,
// e.g. the hero "like" counter.
type OptionModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:text"`
}

func (OptionModel) TableName() string { return "options" }
