package domain

// Action websocket request/response action
type Action string

const (
	// SendMessage client action chat_message (text-only sends; attachments go through REST)
	SendMessage Action = "chat_message"
	// ReadMessage client action read_message (mark a conversation read)
	ReadMessage Action = "read_message"
	// StartConversation client action start_conversation
	StartConversation Action = "start_conversation"

	// HistorySync server action history (initial conversation view)
	HistorySync Action = "history"
	// NotifyMessage server action notify_message
	NotifyMessage Action = "notify_message"
	// LinkStateChange server action link_state
	LinkStateChange Action = "link_state"
)

// WSRequest websocket Request
type WSRequest struct {
	Type           string `json:"type"`
	ReceiverID     string `json:"receiver_id"`
	Text           string `json:"text"`
	ConversationID string `json:"conversation_id"`
	ParticipantID  string `json:"participant_id"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
