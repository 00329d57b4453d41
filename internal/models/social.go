package models

// SocialLinkModel stores footer/navbar social links.
type SocialLinkModel struct {
	Base
	Platform string `json:"platform" gorm:"not null"`
	URL      string `json:"url"      gorm:"not null"`
	Icon     string `json:"icon"`
}

func (SocialLinkModel) TableName() string { return "social_links" }
