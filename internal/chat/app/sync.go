package app

import (
	"sort"

	"maestro_marketplace/internal/chat/domain"
)

// The conversation view is reconciled from three inputs: the history fetch,
// locally confirmed sends, and live push events. Every operation here is a
// pure function over the conversation list — it returns a new list and never
// mutates its input, so handlers can apply them from any callback without
// aliasing the previous state. Two invariants hold after every call:
// messages inside a conversation are sorted by timestamp ascending, and the
// conversation list is sorted by most-recent-message timestamp descending
// (conversations with no messages last). Arrival order is never trusted.

// DisplayInfoLookup resolve counterpart display data when opening a new thread
type DisplayInfoLookup func(participantID string) (domain.ParticipantInfo, bool)

// LoadHistory group flat history records into conversations, one per counterpart.
// Replaces any prior history-derived state; used once at session start.
func LoadHistory(records []domain.HistoryRecord) []domain.Conversation {
	byParticipant := map[string]int{}
	out := []domain.Conversation{}

	for _, rec := range records {
		participantID := rec.Sender
		name, avatar := rec.SenderName, rec.SenderAvatar
		if rec.IsMe {
			participantID = rec.Receiver
			name, avatar = rec.ReceiverName, rec.ReceiverAvatar
		}
		if participantID == "" {
			// malformed record, drop
			continue
		}

		idx, ok := byParticipant[participantID]
		if !ok {
			if name == "" {
				name = domain.PlaceholderName
			}
			if avatar == "" {
				avatar = domain.PlaceholderAvatar
			}
			out = append(out, domain.Conversation{
				ID:                domain.ConversationID(participantID),
				ParticipantID:     participantID,
				ParticipantName:   name,
				ParticipantAvatar: avatar,
			})
			idx = len(out) - 1
			byParticipant[participantID] = idx
		}

		mediaType := ""
		if rec.Image != "" {
			mediaType = domain.MediaTypeImage
		}
		out[idx].Messages = append(out[idx].Messages, domain.Message{
			ID:        rec.ID,
			SenderID:  rec.Sender,
			Text:      rec.Text,
			Timestamp: rec.CreatedAt.UnixMilli(),
			IsRead:    rec.IsRead,
			MediaURL:  rec.Image,
			MediaType: mediaType,
		})
	}

	for i := range out {
		sortMessages(out[i].Messages)
	}
	sortConversations(out)
	return out
}

// UpsertMessage add a message to the counterpart's conversation, creating the
// conversation from fallback display info if it does not exist yet. Re-delivery
// of an id already present returns the input unchanged — the same message can
// be observed via a confirmed send and via the live-channel echo.
func UpsertMessage(convs []domain.Conversation, participantID string, msg domain.Message, fallback domain.ParticipantInfo) []domain.Conversation {
	out := make([]domain.Conversation, 0, len(convs)+1)
	found := false

	for _, c := range convs {
		if c.ParticipantID != participantID {
			out = append(out, c)
			continue
		}
		found = true
		for _, existing := range c.Messages {
			if existing.ID == msg.ID {
				return convs
			}
		}
		c = cloneConversation(c)
		c.Messages = append(c.Messages, msg)
		sortMessages(c.Messages)
		out = append(out, c)
	}

	if !found {
		name, avatar := fallback.Name, fallback.Avatar
		if name == "" {
			name = domain.PlaceholderName
		}
		if avatar == "" {
			avatar = domain.PlaceholderAvatar
		}
		out = append(out, domain.Conversation{
			ID:                domain.ConversationID(participantID),
			ParticipantID:     participantID,
			ParticipantName:   name,
			ParticipantAvatar: avatar,
			Messages:          []domain.Message{msg},
		})
	}

	sortConversations(out)
	return out
}

// MarkRead flip IsRead on all incoming unread messages of the target
// conversation and return the affected message ids for the server-side ack.
// A user's own sent messages are never toggled. No-op when nothing is unread,
// so callers don't issue redundant acks.
func MarkRead(convs []domain.Conversation, conversationID, currentUserID string) ([]domain.Conversation, []string) {
	target := -1
	var ackIDs []string
	for i, c := range convs {
		if c.ID != conversationID {
			continue
		}
		target = i
		for _, m := range c.Messages {
			if !m.IsRead && m.SenderID != currentUserID {
				ackIDs = append(ackIDs, m.ID)
			}
		}
		break
	}
	if target < 0 || len(ackIDs) == 0 {
		return convs, nil
	}

	out := make([]domain.Conversation, len(convs))
	copy(out, convs)
	c := cloneConversation(out[target])
	for i := range c.Messages {
		if !c.Messages[i].IsRead && c.Messages[i].SenderID != currentUserID {
			c.Messages[i].IsRead = true
		}
	}
	out[target] = c
	return out, ackIDs
}

// NewConversation open an empty thread with a counterpart, prepended to the
// list. Returns the input unchanged if the thread already exists.
func NewConversation(convs []domain.Conversation, participantID string, lookup DisplayInfoLookup) []domain.Conversation {
	for _, c := range convs {
		if c.ParticipantID == participantID {
			return convs
		}
	}

	info := domain.ParticipantInfo{}
	if lookup != nil {
		if got, ok := lookup(participantID); ok {
			info = got
		}
	}
	if info.Name == "" {
		info.Name = domain.PlaceholderName
	}
	if info.Avatar == "" {
		info.Avatar = domain.PlaceholderAvatar
	}

	out := make([]domain.Conversation, 0, len(convs)+1)
	out = append(out, domain.Conversation{
		ID:                domain.ConversationID(participantID),
		ParticipantID:     participantID,
		ParticipantName:   info.Name,
		ParticipantAvatar: info.Avatar,
		Messages:          []domain.Message{},
	})
	out = append(out, convs...)
	return out
}

func cloneConversation(c domain.Conversation) domain.Conversation {
	msgs := make([]domain.Message, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	return c
}

func sortMessages(msgs []domain.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}

func lastTimestamp(c domain.Conversation) int64 {
	if len(c.Messages) == 0 {
		return 0
	}
	return c.Messages[len(c.Messages)-1].Timestamp
}

func sortConversations(convs []domain.Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		return lastTimestamp(convs[i]) > lastTimestamp(convs[j])
	})
}
