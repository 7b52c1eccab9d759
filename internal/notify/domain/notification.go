package domain

import "time"

// OfflineNotifyJob queued payload produced by the chat service for every
// stored message. Field names are the wire contract with the producer.
type OfflineNotifyJob struct {
	ReceiverID string `json:"receiver_id"`
	SenderID   string `json:"sender_id"`
	MessageID  string `json:"message_id"`
	Text       string `json:"text"`
}

// Notification definition notifications table
type Notification struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiverID string    `gorm:"index" json:"receiver_id"`
	SenderID   string    `json:"sender_id"`
	MessageID  string    `gorm:"uniqueIndex" json:"message_id"`
	Text       string    `json:"text"`
	Seen       bool      `gorm:"default:false" json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}
