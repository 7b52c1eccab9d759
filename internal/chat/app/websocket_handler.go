package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"maestro_marketplace/internal/chat/domain"
	"maestro_marketplace/internal/chat/repository"
	"maestro_marketplace/pkg/logger"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler owns one member's live connection: it replays history
// into the conversation view on connect, folds push events into it, and
// executes client actions. The view itself is only ever touched through the
// pure operations in sync.go, under the connection's mutex — the read loop
// and the pub/sub goroutine both feed it.
type ChatWebsocketHandler struct {
	messageUC *MessageUseCase
	pubSub    repository.PubSubRepository
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(messageUC *MessageUseCase, pubSub repository.PubSubRepository) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		pubSub:    pubSub,
	}
}

type connState struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	convs   []domain.Conversation
	tracker LinkTracker
}

// HandleConnection websocket entry point
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenMember := conn.Locals(middlewares.TokenMemberID)
	memberID, _ := tokenMember.(string)
	logger.Log.Info("websocket open", zap.String("member_id", memberID))

	state := &connState{}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("member_id", memberID))
		conn.Close()
		cancel()
	}()

	// fiber handles close/ping/pong internally; hook them out for logging
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	state.mu.Lock()
	linkState := state.tracker.Observe(memberID, domain.TransportOpen)
	state.mu.Unlock()
	h.sendResponse(conn, state, domain.WSResponse{
		Action:  string(domain.LinkStateChange),
		Success: true,
		Payload: map[string]interface{}{"state": string(linkState)},
	})

	h.replayHistory(ctx, conn, state, memberID)

	// every delivery arrives through the member's channel, own echoes included
	h.pubSub.Subscribe(ctxClose, memberID, func(event domain.PushEvent) {
		h.applyPushEvent(ctx, conn, state, memberID, event)
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, conn, state, memberID, mt, message)
	}
}

// replayHistory rebuild the conversation view from the store and push it down
func (h *ChatWebsocketHandler) replayHistory(ctx context.Context, conn *websocket.Conn, state *connState, memberID string) {
	records, err := h.messageUC.GetHistory(ctx, memberID)
	if err != nil {
		logger.Log.Error("history load failed", zap.String("member_id", memberID), zap.Error(err))
		h.sendResponse(conn, state, domain.WSResponse{
			Action: string(domain.HistorySync),
			Error:  "history unavailable",
		})
		return
	}

	state.mu.Lock()
	state.convs = LoadHistory(records)
	convs := state.convs
	state.mu.Unlock()

	h.sendResponse(conn, state, domain.WSResponse{
		Action:  string(domain.HistorySync),
		Success: true,
		Payload: map[string]interface{}{"conversations": convs},
	})
}

// applyPushEvent fold one live event into the view. Redeliveries fall out of
// upsert dedupe, so the sender's echo of a confirmed send changes nothing.
func (h *ChatWebsocketHandler) applyPushEvent(ctx context.Context, conn *websocket.Conn, state *connState, memberID string, event domain.PushEvent) {
	pm := event.Message
	if pm == nil || pm.ID == "" || pm.SenderID == "" {
		logger.Log.Warn("drop malformed push event", zap.String("member_id", memberID))
		return
	}

	participantID := pm.SenderID
	if pm.SenderID == memberID {
		participantID = pm.ReceiverID
	}
	mediaType := ""
	if pm.Image != "" {
		mediaType = domain.MediaTypeImage
	}
	msg := domain.Message{
		ID:        pm.ID,
		SenderID:  pm.SenderID,
		Text:      pm.Text,
		Timestamp: pm.CreatedAt.UnixMilli(),
		IsRead:    pm.SenderID == memberID,
		MediaURL:  pm.Image,
		MediaType: mediaType,
	}

	fallback := domain.ParticipantInfo{}
	if info, ok, err := h.messageUC.ParticipantInfo(ctx, participantID); err == nil && ok {
		fallback = info
	}

	state.mu.Lock()
	state.convs = UpsertMessage(state.convs, participantID, msg, fallback)
	state.mu.Unlock()

	h.sendResponse(conn, state, domain.WSResponse{
		Action:  string(domain.NotifyMessage),
		Success: true,
		Payload: map[string]interface{}{
			"conversation_id": domain.ConversationID(participantID),
			"message":         msg,
		},
	})
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, conn *websocket.Conn, state *connState, memberID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, conn, state, memberID, msg)
	default:
		h.sendError(conn, state, "unknown message type")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, conn *websocket.Conn, state *connState, memberID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Warn("drop undecodable request", zap.String("member_id", memberID), zap.Error(err))
		return
	}

	resp := domain.WSResponse{Action: req.Type, Success: false, Payload: map[string]interface{}{}}
	switch req.Type {
	// text sends only; attachments go through the REST endpoint
	case string(domain.SendMessage):
		stored, err := h.messageUC.SendMessage(ctx, memberID, req.ReceiverID, req.Text)
		if err != nil {
			resp.Error = err.Error()
		} else {
			// the view is not touched here: the confirmed message comes
			// back through the member's own channel
			resp.Success = true
			resp.Payload["message_id"] = stored.ID
			resp.Payload["created_at"] = stored.CreatedAt
		}

	case string(domain.ReadMessage):
		state.mu.Lock()
		convs, ackIDs := MarkRead(state.convs, req.ConversationID, memberID)
		state.convs = convs
		state.mu.Unlock()

		resp.Success = true
		resp.Payload["read_count"] = len(ackIDs)
		if len(ackIDs) > 0 {
			// fire and forget; the view already flipped
			if err := h.messageUC.AckRead(ctx, memberID, ackIDs); err != nil {
				logger.Log.Warn("read ack failed", zap.String("member_id", memberID), zap.Error(err))
			}
		}

	case string(domain.StartConversation):
		if req.ParticipantID == "" {
			resp.Error = "empty participant"
			break
		}
		state.mu.Lock()
		state.convs = NewConversation(state.convs, req.ParticipantID, func(id string) (domain.ParticipantInfo, bool) {
			info, ok, err := h.messageUC.ParticipantInfo(ctx, id)
			if err != nil {
				return domain.ParticipantInfo{}, false
			}
			return info, ok
		})
		var conv domain.Conversation
		for _, c := range state.convs {
			if c.ParticipantID == req.ParticipantID {
				conv = c
				break
			}
		}
		state.mu.Unlock()

		resp.Success = true
		resp.Payload["conversation"] = conv

	default:
		h.sendError(conn, state, "unknown action")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("member_id", memberID), zap.String("action", req.Type), zap.String("err", resp.Error))
	}
	h.sendResponse(conn, state, resp)
}

func (h *ChatWebsocketHandler) sendResponse(conn *websocket.Conn, state *connState, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	state.writeMu.Lock()
	defer state.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(conn *websocket.Conn, state *connState, errorMsg string) {
	h.sendResponse(conn, state, domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{"error": errorMsg},
	})
}
