package models

import "time"

// Tag is created lazily on first use by any content item and shared across
// items. Content edits never delete tags; orphaned tags persist.
type Tag struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" db:"name" gorm:"size:30;not null;uniqueIndex"`
	Slug      string    `json:"slug" db:"slug" gorm:"size:30;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
