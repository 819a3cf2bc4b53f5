package models

import "time"

// Like is attributed to either a user or an anonymous network address,
// never both, and belongs to exactly one of project or achievement.
// At most one row may exist per (identity, content item) pair; the four
// composite unique indexes enforcing this are created in database.Migrate
// as partial indexes so NULL identity columns do not collide.
type Like struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	IPAddress *string `json:"ipAddress,omitempty" db:"ip_address" gorm:"size:45"`

	UserID        *uint `json:"userId,omitempty" db:"user_id" gorm:"index"`
	ProjectID     *uint `json:"projectId,omitempty" db:"project_id" gorm:"index"`
	AchievementID *uint `json:"achievementId,omitempty" db:"achievement_id" gorm:"index"`
}
