package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"maestro_marketplace/internal/chat/domain"
	"maestro_marketplace/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MemberChannel per-member pub/sub channel name
func MemberChannel(memberID string) string {
	return fmt.Sprintf("chat:user:%s", memberID)
}

// PubSubRepository push-event fan-out between chat service instances
type PubSubRepository interface {
	Publish(memberID string, event domain.PushEvent) error
	Subscribe(ctx context.Context, memberID string, handler func(event domain.PushEvent)) error
}

// RedisPubSub fan-out of push events across chat service instances.
// Every delivery, including the sender's own echo, goes through here so a
// member's connections behave the same no matter which instance holds them.
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish serialize the event and publish it to the member's channel
func (r *RedisPubSub) Publish(memberID string, event domain.PushEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, MemberChannel(memberID), data).Err()
}

// Subscribe listen on the member's channel until ctx is done. Events that fail
// to decode or lack a message payload are dropped with a warning; a bad event
// must never tear down the subscription.
func (r *RedisPubSub) Subscribe(ctx context.Context, memberID string, handler func(event domain.PushEvent)) error {
	channel := MemberChannel(memberID)
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.PushEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Warn("drop undecodable push event", zap.String("channel", channel), zap.Error(err))
					continue
				}
				if event.Message == nil || event.Message.ID == "" || event.Message.SenderID == "" {
					logger.Log.Warn("drop malformed push event", zap.String("channel", channel))
					continue
				}
				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
