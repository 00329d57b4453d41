package models

// GalleryType selects whether a project detail shows an image gallery or a video.
const (
	GalleryTypeImage = "image"
	GalleryTypeVideo = "video"
)

// ProjectModel stores portfolio projects. Category references
// ProjectCategoryModel by name, not by id; deleting a category leaves the
// string in place.
type ProjectModel struct {
	Base
	Title       string              `json:"title"        gorm:"not null"`
	Description string              `json:"description"  gorm:"type:text"`
	Category    string              `json:"category"     gorm:"index"`
	ImageURL    string              `json:"image_url"`
	VideoURL    string              `json:"video_url"`
	GalleryType string              `json:"gallery_type" gorm:"default:image"`
	TechStack   StringArray         `json:"tech_stack"   gorm:"type:longtext"`
	LiveURL     string              `json:"live_url"`
	GithubURL   string              `json:"github_url"`
	Featured    bool                `json:"featured"     gorm:"index"`
	Gallery     []ProjectImageModel `json:"gallery"      gorm:"foreignKey:ProjectID"`
}

func (ProjectModel) TableName() string { return "projects" }

// ProjectImageModel is a gallery child row keyed by project id.
type ProjectImageModel struct {
	Base
	ProjectID string `json:"project_id" gorm:"type:char(36);index;not null"`
	ImageURL  string `json:"image_url"  gorm:"not null"`
}

func (ProjectImageModel) TableName() string { return "project_images" }

// ProjectCategoryModel holds the category names the project filter offers.
type ProjectCategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (ProjectCategoryModel) TableName() string { return "project_categories" }
