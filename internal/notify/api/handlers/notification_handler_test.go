package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"maestro_marketplace/internal/notify/domain"
	"maestro_marketplace/pkg/logger"
	"maestro_marketplace/pkg/middlewares"
	"maestro_marketplace/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

// MockNotificationRepo Mock NotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

// AutoMigrate mock migration
func (m *MockNotificationRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Save mock store notification
func (m *MockNotificationRepo) Save(notification *domain.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

// FindUnseenByReceiver mock unseen list
func (m *MockNotificationRepo) FindUnseenByReceiver(receiverID string) ([]domain.Notification, error) {
	args := m.Called(receiverID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkSeen mock seen flag update
func (m *MockNotificationRepo) MarkSeen(receiverID string) error {
	args := m.Called(receiverID)
	return args.Error(0)
}

func notifyTestApp(repo *MockNotificationRepo) *fiber.App {
	h := &NotificationHandler{NotifyRepo: repo}
	app := fiber.New()
	app.Use(middlewares.JWTMiddleware())
	app.Get("/notifications", h.ListUnseen)
	app.Post("/notifications/seen", h.MarkSeen)
	return app
}

func authQuery(t *testing.T, memberID string) string {
	t.Helper()
	jwt, err := token.GenerateJWT(memberID, string(token.RoleClient), "notify_test")
	assert.NoError(t, err)
	return "?" + middlewares.QueryToken + "=" + jwt
}

func TestNotificationHandler_ListUnseen(t *testing.T) {
	mockRepo := new(MockNotificationRepo)
	mockRepo.On("FindUnseenByReceiver", "user_b").Return([]domain.Notification{
		{ID: 1, ReceiverID: "user_b", SenderID: "user_a", MessageID: "m1", Text: "Привет", CreatedAt: time.Now().UTC()},
	}, nil)

	app := notifyTestApp(mockRepo)
	resp, err := app.Test(httptest.NewRequest("GET", "/notifications"+authQuery(t, "user_b"), nil))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var notifications []domain.Notification
	assert.NoError(t, json.Unmarshal(body, &notifications))
	assert.Len(t, notifications, 1)
	assert.Equal(t, "m1", notifications[0].MessageID)

	mockRepo.AssertExpectations(t)
}

func TestNotificationHandler_MarkSeen(t *testing.T) {
	mockRepo := new(MockNotificationRepo)
	mockRepo.On("MarkSeen", "user_b").Return(nil)

	app := notifyTestApp(mockRepo)
	resp, err := app.Test(httptest.NewRequest("POST", "/notifications/seen"+authQuery(t, "user_b"), nil))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestNotificationHandler_RejectsMissingToken(t *testing.T) {
	app := notifyTestApp(new(MockNotificationRepo))
	resp, err := app.Test(httptest.NewRequest("GET", "/notifications", nil))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
