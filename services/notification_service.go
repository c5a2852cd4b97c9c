package services

import (
	"errors"
	"net/http"

	"github.com/worklinehq/workline/config"
	"github.com/worklinehq/workline/db"
	apiError "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/models"
	"gorm.io/gorm"
)

// NotificationService is the per-user notice feed. Create is the integration
// point other subsystems call when something happens to a user, e.g. an
// application status change.
type NotificationService interface {
	Create(userID uint, title string, message string) (*models.Notification, error)
	List(userID uint) ([]models.Notification, error)
	MarkRead(id uint, userID uint) error
	UnreadCount(userID uint) (int64, error)
}

type notificationService struct {
	Config           *config.Config
	notificationRepo db.NotificationRepository
}

func NewNotificationService(notificationRepo db.NotificationRepository, conf *config.Config) NotificationService {
	return &notificationService{
		Config:           conf,
		notificationRepo: notificationRepo,
	}
}

// Create stores a notification. Callers are responsible for not creating
// duplicates; there is no dedup here.
func (n *notificationService) Create(userID uint, title string, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := n.notificationRepo.SaveNotification(notification); err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return notification, nil
}

func (n *notificationService) List(userID uint) ([]models.Notification, error) {
	notifications, err := n.notificationRepo.GetUserNotifications(userID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return notifications, nil
}

// MarkRead flips a notification to read. The ownership check makes marking
// someone else's notification indistinguishable from a missing one.
func (n *notificationService) MarkRead(id uint, userID uint) error {
	_, err := n.notificationRepo.FindByIDAndUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("notification not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	if err := n.notificationRepo.MarkNotificationRead(id, userID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (n *notificationService) UnreadCount(userID uint) (int64, error) {
	count, err := n.notificationRepo.UnreadCount(userID)
	if err != nil {
		return 0, apiError.ErrInternalServerError
	}
	return count, nil
}
