package bdd

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatapp "maestro_marketplace/internal/chat/app"
	chatdomain "maestro_marketplace/internal/chat/domain"

	"github.com/cucumber/godog"
)

type conversationState struct {
	userID  string
	records []chatdomain.HistoryRecord
	convs   []chatdomain.Conversation
	ackIDs  []string
	names   map[string]string
}

func (st *conversationState) reset() {
	st.userID = ""
	st.records = nil
	st.convs = nil
	st.ackIDs = nil
	st.names = map[string]string{}
}

func (st *conversationState) conversationWith(participantID string) (chatdomain.Conversation, error) {
	for _, c := range st.convs {
		if c.ParticipantID == participantID {
			return c, nil
		}
	}
	return chatdomain.Conversation{}, fmt.Errorf("no conversation with %q", participantID)
}

func (st *conversationState) messageIn(participantID, messageID string) (chatdomain.Message, error) {
	c, err := st.conversationWith(participantID)
	if err != nil {
		return chatdomain.Message{}, err
	}
	for _, m := range c.Messages {
		if m.ID == messageID {
			return m, nil
		}
	}
	return chatdomain.Message{}, fmt.Errorf("no message %q in conversation with %q", messageID, participantID)
}

func registerConversationSteps(s *godog.ScenarioContext) {
	st := &conversationState{}
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		st.reset()
		return ctx, nil
	})

	s.Step(`^I am logged in as "([^"]*)"$`, func(userID string) error {
		st.userID = userID
		return nil
	})

	s.Step(`^the server history contains a message "([^"]*)" from "([^"]*)" with text "([^"]*)" at (\d+)$`,
		func(id, sender, text string, ts int64) error {
			st.records = append(st.records, chatdomain.HistoryRecord{
				ID: id, Sender: sender, Receiver: st.userID,
				Text: text, CreatedAt: time.UnixMilli(ts),
			})
			return nil
		})

	s.Step(`^the server history contains a message "([^"]*)" to "([^"]*)" with text "([^"]*)" at (\d+)$`,
		func(id, receiver, text string, ts int64) error {
			st.records = append(st.records, chatdomain.HistoryRecord{
				ID: id, Sender: st.userID, Receiver: receiver,
				Text: text, CreatedAt: time.UnixMilli(ts), IsMe: true, IsRead: false,
			})
			return nil
		})

	s.Step(`^I load my history$`, func() error {
		st.convs = chatapp.LoadHistory(st.records)
		return nil
	})

	s.Step(`^I have an empty conversation with "([^"]*)"$`, func(participantID string) error {
		st.convs = chatapp.NewConversation(st.convs, participantID, nil)
		return nil
	})

	s.Step(`^I send message "([^"]*)" with text "([^"]*)" at (\d+) to "([^"]*)"$`,
		func(id, text string, ts int64, receiver string) error {
			msg := chatdomain.Message{ID: id, SenderID: st.userID, Text: text, Timestamp: ts, IsRead: true}
			st.convs = chatapp.UpsertMessage(st.convs, receiver, msg, chatdomain.ParticipantInfo{})
			return nil
		})

	s.Step(`^the live channel delivers message "([^"]*)" from me with text "([^"]*)" at (\d+) for "([^"]*)"$`,
		func(id, text string, ts int64, participantID string) error {
			msg := chatdomain.Message{ID: id, SenderID: st.userID, Text: text, Timestamp: ts, IsRead: true}
			st.convs = chatapp.UpsertMessage(st.convs, participantID, msg, chatdomain.ParticipantInfo{})
			return nil
		})

	s.Step(`^the live channel delivers message "([^"]*)" from "([^"]*)" with text "([^"]*)" at (\d+)$`,
		func(id, sender, text string, ts int64) error {
			msg := chatdomain.Message{ID: id, SenderID: sender, Text: text, Timestamp: ts}
			st.convs = chatapp.UpsertMessage(st.convs, sender, msg, chatdomain.ParticipantInfo{})
			return nil
		})

	s.Step(`^I mark the conversation with "([^"]*)" as read$`, func(participantID string) error {
		st.convs, st.ackIDs = chatapp.MarkRead(st.convs, chatdomain.ConversationID(participantID), st.userID)
		return nil
	})

	s.Step(`^I start a conversation with "([^"]*)" named "([^"]*)"$`, func(participantID, name string) error {
		st.names[participantID] = name
		st.convs = chatapp.NewConversation(st.convs, participantID, func(id string) (chatdomain.ParticipantInfo, bool) {
			if n, ok := st.names[id]; ok {
				return chatdomain.ParticipantInfo{Name: n}, true
			}
			return chatdomain.ParticipantInfo{}, false
		})
		return nil
	})

	s.Step(`^I should see (\d+) conversations?$`, func(n int) error {
		if len(st.convs) != n {
			return fmt.Errorf("expected %d conversations, got %d", n, len(st.convs))
		}
		return nil
	})

	s.Step(`^conversation (\d+) should be with "([^"]*)"$`, func(pos int, participantID string) error {
		if pos < 1 || pos > len(st.convs) {
			return fmt.Errorf("no conversation at position %d, have %d", pos, len(st.convs))
		}
		if got := st.convs[pos-1].ParticipantID; got != participantID {
			return fmt.Errorf("conversation %d is with %q, expected %q", pos, got, participantID)
		}
		return nil
	})

	s.Step(`^the conversation with "([^"]*)" should contain (\d+) messages?$`,
		func(participantID string, n int) error {
			c, err := st.conversationWith(participantID)
			if err != nil {
				return err
			}
			if len(c.Messages) != n {
				return fmt.Errorf("expected %d messages, got %d", n, len(c.Messages))
			}
			return nil
		})

	s.Step(`^the conversation with "([^"]*)" should be titled "([^"]*)"$`,
		func(participantID, name string) error {
			c, err := st.conversationWith(participantID)
			if err != nil {
				return err
			}
			if c.ParticipantName != name {
				return fmt.Errorf("conversation titled %q, expected %q", c.ParticipantName, name)
			}
			return nil
		})

	s.Step(`^message "([^"]*)" in the conversation with "([^"]*)" should be read$`,
		func(messageID, participantID string) error {
			m, err := st.messageIn(participantID, messageID)
			if err != nil {
				return err
			}
			if !m.IsRead {
				return fmt.Errorf("message %q is still unread", messageID)
			}
			return nil
		})

	s.Step(`^message "([^"]*)" in the conversation with "([^"]*)" should be unread$`,
		func(messageID, participantID string) error {
			m, err := st.messageIn(participantID, messageID)
			if err != nil {
				return err
			}
			if m.IsRead {
				return fmt.Errorf("message %q is marked read", messageID)
			}
			return nil
		})

	s.Step(`^the read ack should cover exactly "([^"]*)"$`, func(expected string) error {
		if got := strings.Join(st.ackIDs, ","); got != expected {
			return fmt.Errorf("ack ids %q, expected %q", got, expected)
		}
		return nil
	})
}
