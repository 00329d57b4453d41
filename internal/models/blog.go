package models

// BlogPostModel stores blog posts. Content is markdown; the detail endpoint
// renders it to HTML on the way out.
type BlogPostModel struct {
	Base
	Title    string `json:"title"     gorm:"not null"`
	Content  string `json:"content"   gorm:"type:longtext"`
	Category string `json:"category"  gorm:"index"`
	ReadTime string `json:"read_time"`
	ImageURL string `json:"image_url"`
}

func (BlogPostModel) TableName() string { return "blogs" }
