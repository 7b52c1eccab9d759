package domain

import "time"

// Message one chat message inside a conversation.
// Server-assigned id, unique within its conversation. Timestamp is epoch milliseconds.
// Only IsRead ever changes after creation (false -> true); messages are never deleted.
type Message struct {
	ID        string `bson:"id" json:"id"`
	SenderID  string `bson:"sender_id" json:"sender_id"`
	Text      string `bson:"text" json:"text"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
	IsRead    bool   `bson:"is_read" json:"is_read"`
	MediaURL  string `bson:"media_url,omitempty" json:"media_url,omitempty"`
	MediaType string `bson:"media_type,omitempty" json:"media_type,omitempty"`
}

// Conversation a two-party thread, keyed by the counterpart participant.
// Messages are kept sorted by Timestamp ascending after every mutation.
type Conversation struct {
	ID                string    `json:"id"`
	ParticipantID     string    `json:"participant_id"`
	ParticipantName   string    `json:"participant_name"`
	ParticipantAvatar string    `json:"participant_avatar"`
	Messages          []Message `json:"messages"`
}

// ConversationID derive the stable conversation id for a counterpart.
// One conversation per participant pair follows from this being deterministic.
func ConversationID(participantID string) string {
	return "conv_" + participantID
}

// ParticipantInfo denormalized counterpart display data
type ParticipantInfo struct {
	Name   string
	Avatar string
}

// Placeholder display data used when no counterpart record is available
const (
	PlaceholderName   = "Пользователь"
	PlaceholderAvatar = "https://ui-avatars.com/api/?name=User"
)

// MediaTypeImage the only media type carried today
const MediaTypeImage = "image"

// HistoryRecord one row of the REST message history, relative to the current user
type HistoryRecord struct {
	ID             string    `json:"id"`
	Sender         string    `json:"sender"`
	Receiver       string    `json:"receiver"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	IsRead         bool      `json:"is_read"`
	Image          string    `json:"image,omitempty"`
	SenderName     string    `json:"sender_name,omitempty"`
	SenderAvatar   string    `json:"sender_avatar,omitempty"`
	ReceiverName   string    `json:"receiver_name,omitempty"`
	ReceiverAvatar string    `json:"receiver_avatar,omitempty"`
	IsMe           bool      `json:"is_me"`
}

// PushEvent inbound live-channel event envelope
type PushEvent struct {
	Message *PushMessage `json:"message"`
}

// PushMessage message payload of a live-channel event
type PushMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	Image      string    `json:"image,omitempty"`
}
