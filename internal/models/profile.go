package models

// ProfileModel is the site owner's profile. The table holds a single row that
// is created on first save and updated in place afterwards.
type ProfileModel struct {
	Base
	Name          string `json:"name"`
	Title         string `json:"title"`
	Bio           string `json:"bio"            gorm:"type:text"`
	AboutHeadline string `json:"about_headline"`
	AvatarURL     string `json:"avatar_url"`
	AboutImageURL string `json:"about_image_url"`
	ResumeURL     string `json:"resume_url"`
	VideoURL      string `json:"video_url"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
}

func (ProfileModel) TableName() string { return "profile" }
