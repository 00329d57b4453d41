package models

// TestimonialModel stores client testimonials for the carousel.
type TestimonialModel struct {
	Base
	Name     string `json:"name"      gorm:"not null"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url"`
	Text     string `json:"text"      gorm:"type:text"`
}

func (TestimonialModel) TableName() string { return "testimonials" }
