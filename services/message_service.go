package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/worklinehq/workline/config"
	"github.com/worklinehq/workline/db"
	apiError "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/models"
	"gorm.io/gorm"
)

// Presence reports whether a user has at least one live realtime connection.
// The websocket hub implements it.
type Presence interface {
	IsOnline(userID uint) bool
}

// MessageService owns message validation, the derived conversation view and
// the inbox aggregation.
type MessageService interface {
	SendMessage(senderID uint, recipientID uint, content string) (*models.Message, error)
	GetConversation(userID uint, companionID uint) ([]models.Message, error)
	MarkConversationRead(userID uint, companionID uint) error
	UnreadCount(userID uint, companionID uint) (int64, error)
	GetInbox(userID uint) ([]models.ConversationSummary, error)
}

type messageService struct {
	Config              *config.Config
	messageRepo         db.MessageRepository
	authRepo            db.AuthRepository
	notificationService NotificationService
	presence            Presence
}

func NewMessageService(
	messageRepo db.MessageRepository,
	authRepo db.AuthRepository,
	notificationService NotificationService,
	presence Presence,
	conf *config.Config,
) MessageService {
	return &messageService{
		Config:              conf,
		messageRepo:         messageRepo,
		authRepo:            authRepo,
		notificationService: notificationService,
		presence:            presence,
	}
}

// SendMessage validates and persists a message. The recipient must exist and
// differ from the sender, and the content must be non-blank. When the
// recipient has no live connection the send also leaves a notification so the
// message is discoverable on their next fetch.
func (m *messageService) SendMessage(senderID uint, recipientID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apiError.New("message content cannot be empty", http.StatusBadRequest)
	}
	if senderID == recipientID {
		return nil, apiError.New("cannot send a message to yourself", http.StatusBadRequest)
	}

	recipient, err := m.authRepo.FindUserByID(recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("recipient not found", http.StatusNotFound)
		}
		return nil, apiError.ErrInternalServerError
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		SentAt:      time.Now().UTC(),
	}
	if err := m.messageRepo.SaveMessage(msg); err != nil {
		return nil, apiError.ErrInternalServerError
	}

	if !m.presence.IsOnline(recipient.ID) {
		m.notifyRecipient(senderID, recipient.ID)
	}

	return msg, nil
}

// notifyRecipient leaves a "new message" notification. A failure here must
// not fail the send, the message is already stored.
func (m *messageService) notifyRecipient(senderID uint, recipientID uint) {
	body := "You have a new message"
	if sender, err := m.authRepo.FindUserByID(senderID); err == nil {
		body = fmt.Sprintf("New message from %s", sender.Fullname)
	}
	m.notificationService.Create(recipientID, "New message", body)
}

func (m *messageService) GetConversation(userID uint, companionID uint) ([]models.Message, error) {
	messages, err := m.messageRepo.GetConversation(userID, companionID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return messages, nil
}

func (m *messageService) MarkConversationRead(userID uint, companionID uint) error {
	if err := m.messageRepo.MarkMessagesRead(userID, companionID); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (m *messageService) UnreadCount(userID uint, companionID uint) (int64, error) {
	count, err := m.messageRepo.UnreadCount(userID, companionID)
	if err != nil {
		return 0, apiError.ErrInternalServerError
	}
	return count, nil
}

// GetInbox builds one summary per companion from the user's messages, newest
// conversation first. The repo returns messages newest first, so the first
// message seen for a companion is the conversation's latest and the resulting
// slice is already ordered by last activity.
func (m *messageService) GetInbox(userID uint) ([]models.ConversationSummary, error) {
	messages, err := m.messageRepo.GetUserMessages(userID)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}

	summaries := make([]models.ConversationSummary, 0)
	index := make(map[uint]int)
	for _, msg := range messages {
		companionID := msg.SenderID
		if companionID == userID {
			companionID = msg.RecipientID
		}

		i, seen := index[companionID]
		if !seen {
			companion, err := m.authRepo.FindUserByID(companionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, apiError.ErrInternalServerError
			}
			summaries = append(summaries, models.ConversationSummary{
				Companion:   companion.CompanionResponse(),
				LastMessage: msg,
			})
			i = len(summaries) - 1
			index[companionID] = i
		}

		if msg.SenderID == companionID && !msg.IsRead {
			summaries[i].UnreadCount++
		}
	}

	return summaries, nil
}
