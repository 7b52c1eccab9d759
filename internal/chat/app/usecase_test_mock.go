package app

import (
	"context"
	"io"

	"maestro_marketplace/internal/chat/domain"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// InsertMessage mock insert message
func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.StoredMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByMember mock find all messages of a member
func (m *MockMessageRepository) FindByMember(ctx context.Context, memberID string) ([]domain.StoredMessage, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.StoredMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock read ack
func (m *MockMessageRepository) MarkRead(ctx context.Context, readerID string, messageIDs []string) error {
	args := m.Called(ctx, readerID, messageIDs)
	return args.Error(0)
}

// CountUnread mock unread count
func (m *MockMessageRepository) CountUnread(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileRepository Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// GetParticipantInfo mock single profile lookup
func (m *MockProfileRepository) GetParticipantInfo(ctx context.Context, memberID string) (domain.ParticipantInfo, bool, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(domain.ParticipantInfo), args.Bool(1), args.Error(2)
}

// GetParticipantInfos mock batch profile lookup
func (m *MockProfileRepository) GetParticipantInfos(ctx context.Context, memberIDs []string) (map[string]domain.ParticipantInfo, error) {
	args := m.Called(ctx, memberIDs)
	if args.Get(0) != nil {
		return args.Get(0).(map[string]domain.ParticipantInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAttachmentRepository Mock AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

// UploadImage mock attachment upload
func (m *MockAttachmentRepository) UploadImage(ctx context.Context, senderID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, senderID, fileName, reader, size, contentType)
	return args.String(0), args.Error(1)
}

// ImageURL mock presigned URL
func (m *MockAttachmentRepository) ImageURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

// MockPubSub Mock PubSubRepository
type MockPubSub struct {
	mock.Mock
}

// Publish mock publisher
func (m *MockPubSub) Publish(memberID string, event domain.PushEvent) error {
	args := m.Called(memberID, event)
	return args.Error(0)
}

// Subscribe mock subscriber
func (m *MockPubSub) Subscribe(ctx context.Context, memberID string, handler func(event domain.PushEvent)) error {
	args := m.Called(memberID, handler)
	return args.Error(0)
}

// MockRabbitRepo Mock RabbitRepo
type MockRabbitRepo struct {
	mock.Mock
}

// GetRabbit mock channel accessor
func (m *MockRabbitRepo) GetRabbit() *amqp.Channel {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).(*amqp.Channel)
	}
	return nil
}

// Publish mock queue publish
func (m *MockRabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}
