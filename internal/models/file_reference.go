package models

// FileReferenceStatus values for uploaded objects.
const (
	FileRefPending = "pending"
	FileRefLinked  = "linked"
)

// FileReferenceModel tracks stored uploads so a background sweep can remove
// objects that were uploaded but never bound to an entity field.
type FileReferenceModel struct {
	Base
	FileName string `json:"file_name" gorm:"index;not null"`
	FileURL  string `json:"file_url"  gorm:"index;not null"`
	Status   string `json:"status"    gorm:"index;default:pending"`
}

func (FileReferenceModel) TableName() string { return "file_references" }
