package models

import "time"

// Content item statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID            uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" db:"title" gorm:"size:100;not null"`
	Slug          string    `json:"slug" db:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description   string    `json:"description" db:"description" gorm:"type:text;not null"`
	Content       string    `json:"content,omitempty" db:"content" gorm:"type:text"`
	FeaturedImage string    `json:"featuredImage,omitempty" db:"featured_image" gorm:"size:200"`
	DemoURL       string    `json:"demoUrl,omitempty" db:"demo_url" gorm:"size:200"`
	GithubURL     string    `json:"githubUrl,omitempty" db:"github_url" gorm:"size:200"`
	Technologies  string    `json:"technologies,omitempty" db:"technologies" gorm:"type:text"` // JSON-encoded list
	Status        string    `json:"status" db:"status" gorm:"size:20;not null;default:'draft'"`
	IsFeatured    bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	LikesCount    int       `json:"likesCount" db:"likes_count" gorm:"not null;default:0"`
	ViewsCount    int       `json:"viewsCount" db:"views_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	UserID     uint  `json:"userId" db:"user_id" gorm:"not null;index"`
	CategoryID *uint `json:"categoryId,omitempty" db:"category_id" gorm:"index"`

	Author   *User          `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags     []Tag          `json:"tags,omitempty" gorm:"many2many:project_tags"`
	Comments []Comment      `json:"comments,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Likes    []Like         `json:"likes,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Media    []ProjectMedia `json:"media,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
