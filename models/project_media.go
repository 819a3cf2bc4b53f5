package models

import "time"

// ProjectMedia records an uploaded file attached to a project. Only the
// stored filename returned by the file storage collaborator is kept here;
// file bytes never touch this layer.
type ProjectMedia struct {
	ID               uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Filename         string    `json:"filename" db:"filename" gorm:"size:200;not null"`
	OriginalFilename string    `json:"originalFilename" db:"original_filename" gorm:"size:200;not null"`
	FileType         string    `json:"fileType" db:"file_type" gorm:"size:20;not null"` // image, video, document
	FileSize         int64     `json:"fileSize,omitempty" db:"file_size"`
	MimeType         string    `json:"mimeType,omitempty" db:"mime_type" gorm:"size:100"`
	IsFeatured       bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	Caption          string    `json:"caption,omitempty" db:"caption" gorm:"type:text"`
	OrderIndex       int       `json:"orderIndex" db:"order_index" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	ProjectID uint `json:"projectId" db:"project_id" gorm:"not null;index"`
}
