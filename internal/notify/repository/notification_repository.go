package repository

import (
	"maestro_marketplace/internal/notify/domain"

	"gorm.io/gorm"
)

// NotificationRepo notification store
type NotificationRepo interface {
	AutoMigrate() error
	// Save store a notification; a job already stored under the same message
	// id surfaces gorm.ErrDuplicatedKey for the caller to resolve
	Save(notification *domain.Notification) error
	FindUnseenByReceiver(receiverID string) ([]domain.Notification, error)
	MarkSeen(receiverID string) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo create NotificationRepo
func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Notification{})
}

func (r *notificationRepo) Save(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepo) FindUnseenByReceiver(receiverID string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := r.db.Where("receiver_id = ? AND seen = false", receiverID).
		Order("created_at").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) MarkSeen(receiverID string) error {
	return r.db.Model(&domain.Notification{}).
		Where("receiver_id = ? AND seen = false", receiverID).
		Update("seen", true).Error
}
