package models

import "time"

// Message is a single direct message between two users. A conversation is
// derived from messages on read, it is never stored on its own.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      User      `gorm:"foreignKey:SenderID" json:"-"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID" json:"-"`
	Content     string    `gorm:"not null" json:"content"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	SentAt      time.Time `gorm:"not null;index" json:"sent_at"`
}

// SendMessageRequest is the body of the synchronous send endpoint.
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" form:"recipient_id" binding:"required"`
	Content     string `json:"content" form:"content"`
}

// InboundFrame is a message submitted over the realtime channel.
type InboundFrame struct {
	RecipientID uint   `json:"recipient_id"`
	Text        string `json:"text"`
}

// ConversationSummary is one inbox row: the companion, the latest message
// exchanged with them and how many of their messages are still unread.
type ConversationSummary struct {
	Companion   CompanionResponse `json:"companion"`
	LastMessage Message           `json:"last_message"`
	UnreadCount int64             `json:"unread_count"`
}
