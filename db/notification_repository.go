package db

import (
	"github.com/pkg/errors"
	"github.com/worklinehq/workline/models"
	"gorm.io/gorm"
)

// NotificationRepository persists the per-user notification feed.
type NotificationRepository interface {
	SaveNotification(n *models.Notification) error
	GetUserNotifications(userID uint) ([]models.Notification, error)
	FindByIDAndUser(id uint, userID uint) (*models.Notification, error)
	MarkNotificationRead(id uint, userID uint) error
	UnreadCount(userID uint) (int64, error)
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) SaveNotification(notification *models.Notification) error {
	if err := n.DB.Create(notification).Error; err != nil {
		return errors.Wrap(err, "failed to save notification")
	}
	return nil
}

func (n *notificationRepo) GetUserNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch notifications")
	}
	return notifications, nil
}

func (n *notificationRepo) FindByIDAndUser(id uint, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := n.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (n *notificationRepo) MarkNotificationRead(id uint, userID uint) error {
	err := n.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Update("is_read", true).Error
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}
	return nil
}

func (n *notificationRepo) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := n.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}
