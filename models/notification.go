package models

import "time"

// Notification types
const (
	NotificationComment = "comment"
	NotificationLike    = "like"
)

// Notification is a side-effect record of an interaction event, addressed
// to a recipient user. Delivery is best effort; losing one never fails the
// interaction that produced it.
type Notification struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Type      string    `json:"type" db:"type" gorm:"size:50;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"isRead" db:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	UserID        uint  `json:"userId" db:"user_id" gorm:"not null;index"`
	RelatedUserID *uint `json:"relatedUserId,omitempty" db:"related_user_id"`
	ProjectID     *uint `json:"projectId,omitempty" db:"project_id"`
	AchievementID *uint `json:"achievementId,omitempty" db:"achievement_id"`
	CommentID     *uint `json:"commentId,omitempty" db:"comment_id"`

	RelatedUser *User `json:"relatedUser,omitempty" gorm:"foreignKey:RelatedUserID"`
}
