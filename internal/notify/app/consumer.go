package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"maestro_marketplace/internal/notify/domain"
	"maestro_marketplace/internal/notify/repository"
	"maestro_marketplace/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Consumer drains the offline-notification queue into the notifications
// table. Delivery uses manual acks: a job is only removed from the queue
// after its notification is stored, so a crash never loses one.
type Consumer struct {
	rabbitChannel *amqp.Channel
	notifyRepo    repository.NotificationRepo
	queueName     string
}

// NewConsumer create Consumer
func NewConsumer(rabbitChannel *amqp.Channel, notifyRepo repository.NotificationRepo, queueName string) *Consumer {
	return &Consumer{
		rabbitChannel: rabbitChannel,
		notifyRepo:    notifyRepo,
		queueName:     queueName,
	}
}

// StartConsumer consume jobs until the context is cancelled
func (c *Consumer) StartConsumer(ctx context.Context) {
	msgs, err := c.rabbitChannel.Consume(
		c.queueName,
		"",    // consumer tag assigned by the broker
		false, // autoAck off, ack after store
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		logger.Log.Fatal("Unable to consume notify queue", zap.Error(err))
	}

	logger.Log.Info("notify consumer started", zap.String("queue", c.queueName))

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("notify consume channel closed")
				return
			}
			c.handle(d)
		case <-ctx.Done():
			logger.Log.Info("notify consumer stopped")
			return
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	var job domain.OfflineNotifyJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Log.Warn("undecodable notify job dropped", zap.Error(err))
		// requeueing a broken payload would just loop it
		if err := d.Nack(false, false); err != nil {
			logger.Log.Warn("nack failed", zap.Error(err))
		}
		return
	}
	if job.MessageID == "" || job.ReceiverID == "" {
		logger.Log.Warn("malformed notify job dropped",
			zap.String("message_id", job.MessageID),
			zap.String("receiver_id", job.ReceiverID),
		)
		if err := d.Nack(false, false); err != nil {
			logger.Log.Warn("nack failed", zap.Error(err))
		}
		return
	}

	if err := c.process(job); err != nil {
		// a crash between store and ack redelivers the job; the unique index
		// on message_id catches it, and requeueing would loop it forever
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Log.Info("notify job already stored", zap.String("message_id", job.MessageID))
			if err := d.Ack(false); err != nil {
				logger.Log.Warn("ack failed", zap.String("message_id", job.MessageID), zap.Error(err))
			}
			return
		}
		logger.Log.Error("notify job store failed", zap.String("message_id", job.MessageID), zap.Error(err))
		if err := d.Nack(false, true); err != nil {
			logger.Log.Warn("nack failed", zap.Error(err))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.Log.Warn("ack failed", zap.String("message_id", job.MessageID), zap.Error(err))
	}
}

func (c *Consumer) process(job domain.OfflineNotifyJob) error {
	return c.notifyRepo.Save(&domain.Notification{
		ReceiverID: job.ReceiverID,
		SenderID:   job.SenderID,
		MessageID:  job.MessageID,
		Text:       job.Text,
		CreatedAt:  time.Now().UTC(),
	})
}
