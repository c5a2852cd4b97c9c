package models

// Notification represents notifications sent to users. Any subsystem may
// create one (message sends, application status changes); the feed itself
// is independent of the message pipeline.
type Notification struct {
	Model
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Title   string `json:"title"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
