package db

import (
	"github.com/pkg/errors"
	"github.com/worklinehq/workline/models"
	"gorm.io/gorm"
)

// MessageRepository is the system of record for direct messages.
type MessageRepository interface {
	SaveMessage(msg *models.Message) error
	GetConversation(userID uint, companionID uint) ([]models.Message, error)
	GetUserMessages(userID uint) ([]models.Message, error)
	MarkMessagesRead(recipientID uint, companionID uint) error
	UnreadCount(recipientID uint, companionID uint) (int64, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) SaveMessage(msg *models.Message) error {
	if err := m.DB.Create(msg).Error; err != nil {
		return errors.Wrap(err, "failed to save message")
	}
	return nil
}

// GetConversation returns every message exchanged between the two users,
// oldest first. Ties on sent_at fall back to insertion order.
func (m *messageRepo) GetConversation(userID uint, companionID uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, companionID, companionID, userID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch conversation")
	}
	return messages, nil
}

// GetUserMessages returns every message the user sent or received, newest
// first. The inbox aggregation walks this once to build its summaries.
func (m *messageRepo) GetUserMessages(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("sent_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user messages")
	}
	return messages, nil
}

func (m *messageRepo) MarkMessagesRead(recipientID uint, companionID uint) error {
	err := m.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", companionID, recipientID, false).
		Update("is_read", true).Error
	if err != nil {
		return errors.Wrap(err, "failed to mark messages read")
	}
	return nil
}

func (m *messageRepo) UnreadCount(recipientID uint, companionID uint) (int64, error) {
	var count int64
	err := m.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", companionID, recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread messages")
	}
	return count, nil
}
