package app

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"maestro_marketplace/internal/chat/domain"
	"maestro_marketplace/internal/chat/repository"
	"maestro_marketplace/pkg/database"
	errprocess "maestro_marketplace/pkg/err"
	"maestro_marketplace/pkg/logger"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// OfflineNotify payload queued for the notification worker
type OfflineNotify struct {
	ReceiverID string `json:"receiver_id"`
	SenderID   string `json:"sender_id"`
	MessageID  string `json:"message_id"`
	Text       string `json:"text"`
}

// MessageUseCase chat message flows: send, history, read acks.
// Persistence is the commit point — a message that failed to store is never
// fanned out, so no client ever renders a message the server lost.
type MessageUseCase struct {
	msgRepo     repository.MessageRepository
	profileRepo repository.ProfileRepository
	attachRepo  repository.AttachmentRepository
	pubSub      repository.PubSubRepository
	rabbit      database.RabbitRepo
	notifyQueue string
}

// NewMessageUseCase init message use case
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	attachRepo repository.AttachmentRepository,
	pubSub repository.PubSubRepository,
	rabbit database.RabbitRepo,
	notifyQueue string,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:     msgRepo,
		profileRepo: profileRepo,
		attachRepo:  attachRepo,
		pubSub:      pubSub,
		rabbit:      rabbit,
		notifyQueue: notifyQueue,
	}
}

// SendMessage persist a text message, then fan it out to both parties'
// channels. The sender receives their own echo and relies on upsert dedupe,
// so confirmed sends and echoes cannot double-render.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID, receiverID, text string) (*domain.StoredMessage, error) {
	if receiverID == "" {
		return nil, errprocess.Set("send rejected: empty receiver")
	}
	if text == "" {
		return nil, errprocess.Set("send rejected: empty text")
	}

	msg := &domain.StoredMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.msgRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	uc.fanOut(msg, "")
	uc.queueOfflineNotify(msg)
	return msg, nil
}

// SendImageMessage persist an image message. The attachment is uploaded
// before the message document so a stored message always has its object.
func (uc *MessageUseCase) SendImageMessage(ctx context.Context, senderID, receiverID, text, fileName string, reader io.Reader, size int64, contentType string) (*domain.StoredMessage, string, error) {
	if receiverID == "" {
		return nil, "", errprocess.Set("send rejected: empty receiver")
	}

	objectName, err := uc.attachRepo.UploadImage(ctx, senderID, fileName, reader, size, contentType)
	if err != nil {
		return nil, "", err
	}

	msg := &domain.StoredMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
		Image:      objectName,
	}
	if err := uc.msgRepo.InsertMessage(ctx, msg); err != nil {
		return nil, "", err
	}

	imageURL, err := uc.attachRepo.ImageURL(ctx, objectName)
	if err != nil {
		logger.Log.Warn("presign attachment failed", zap.String("object", objectName), zap.Error(err))
		imageURL = ""
	}

	uc.fanOut(msg, imageURL)
	uc.queueOfflineNotify(msg)
	return msg, imageURL, nil
}

// GetHistory assemble the member's full message history with counterpart
// display data joined in. Missing profiles stay blank; the view layer fills
// placeholders.
func (uc *MessageUseCase) GetHistory(ctx context.Context, memberID string) ([]domain.HistoryRecord, error) {
	msgs, err := uc.msgRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	idSet := map[string]struct{}{}
	for _, m := range msgs {
		idSet[m.SenderID] = struct{}{}
		idSet[m.ReceiverID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	profiles, err := uc.profileRepo.GetParticipantInfos(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]domain.HistoryRecord, 0, len(msgs))
	for _, m := range msgs {
		rec := domain.HistoryRecord{
			ID:        m.ID,
			Sender:    m.SenderID,
			Receiver:  m.ReceiverID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
			IsRead:    m.IsRead,
			IsMe:      m.SenderID == memberID,
		}
		if info, ok := profiles[m.SenderID]; ok {
			rec.SenderName, rec.SenderAvatar = info.Name, info.Avatar
		}
		if info, ok := profiles[m.ReceiverID]; ok {
			rec.ReceiverName, rec.ReceiverAvatar = info.Name, info.Avatar
		}
		if m.Image != "" {
			url, err := uc.attachRepo.ImageURL(ctx, m.Image)
			if err != nil {
				logger.Log.Warn("presign attachment failed", zap.String("object", m.Image), zap.Error(err))
			} else {
				rec.Image = url
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// AckRead mark the given incoming messages read. Fire-and-forget from the
// client's point of view; the local view already flipped.
func (uc *MessageUseCase) AckRead(ctx context.Context, readerID string, messageIDs []string) error {
	return uc.msgRepo.MarkRead(ctx, readerID, messageIDs)
}

// UnreadCount unread messages addressed to the member, for the badge on
// clients without a live connection
func (uc *MessageUseCase) UnreadCount(ctx context.Context, memberID string) (int64, error) {
	return uc.msgRepo.CountUnread(ctx, memberID)
}

// ParticipantInfo counterpart display data for opening a new thread
func (uc *MessageUseCase) ParticipantInfo(ctx context.Context, participantID string) (domain.ParticipantInfo, bool, error) {
	return uc.profileRepo.GetParticipantInfo(ctx, participantID)
}

func (uc *MessageUseCase) fanOut(msg *domain.StoredMessage, imageURL string) {
	if uc.pubSub == nil {
		return
	}
	event := domain.PushEvent{Message: &domain.PushMessage{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
		Image:      imageURL,
	}}

	targets := []string{msg.ReceiverID}
	if msg.SenderID != msg.ReceiverID {
		targets = append(targets, msg.SenderID)
	}
	for _, memberID := range targets {
		if err := uc.pubSub.Publish(memberID, event); err != nil {
			logger.Log.Error("push publish failed", zap.String("member_id", memberID), zap.Error(err))
		}
	}
}

// best effort: a lost notification never fails the send
func (uc *MessageUseCase) queueOfflineNotify(msg *domain.StoredMessage) {
	if uc.rabbit == nil {
		return
	}
	body, err := json.Marshal(OfflineNotify{
		ReceiverID: msg.ReceiverID,
		SenderID:   msg.SenderID,
		MessageID:  msg.ID,
		Text:       msg.Text,
	})
	if err != nil {
		return
	}
	if err := uc.rabbit.Publish("", uc.notifyQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		logger.Log.Warn("offline notify publish failed", zap.String("message_id", msg.ID), zap.Error(err))
	}
}
