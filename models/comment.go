package models

import "time"

// Comment belongs to exactly one of project or achievement. Every new
// comment starts unapproved and stays invisible to the public until an
// admin approves it.
type Comment struct {
	ID         uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	IsApproved bool      `json:"isApproved" db:"is_approved" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	UserID        uint  `json:"userId" db:"user_id" gorm:"not null;index"`
	ProjectID     *uint `json:"projectId,omitempty" db:"project_id" gorm:"index"`
	AchievementID *uint `json:"achievementId,omitempty" db:"achievement_id" gorm:"index"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:UserID"`
}
