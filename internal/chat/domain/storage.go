package domain

import "time"

// StoredMessage persisted chat message document.
// Flat collection keyed by server-assigned id; history queries filter on
// either party, read acks update is_read in place.
type StoredMessage struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"sender_id" json:"sender_id"`
	ReceiverID string    `bson:"receiver_id" json:"receiver_id"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	IsRead     bool      `bson:"is_read" json:"is_read"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
}
