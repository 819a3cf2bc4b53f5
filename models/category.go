package models

import "time"

// Category groups content items. Content references it weakly: deleting a
// category nulls the reference on projects and achievements, never cascades.
type Category struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" db:"name" gorm:"size:50;not null;uniqueIndex"`
	Slug        string    `json:"slug" db:"slug" gorm:"size:50;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Color       string    `json:"color" db:"color" gorm:"size:7;not null;default:'#6366f1'"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
