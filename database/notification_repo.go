package database

import (
	"github.com/GuilhermeFusuma/portifolio/models"
	"gorm.io/gorm"
)

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db}
}

// Add inserts a new notification into the database
func (r *NotificationRepo) Add(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ForUser returns the recipient's notifications, newest first.
func (r *NotificationRepo) ForUser(userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.Where("user_id = ?", userID).
		Preload("RelatedUser").
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification as read. Marking one that is already read
// or missing is a no-op.
func (r *NotificationRepo) MarkRead(id, userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}
