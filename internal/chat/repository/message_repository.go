package repository

import (
	"context"

	"maestro_marketplace/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository persisted message store
type MessageRepository interface {
	// InsertMessage persist one message; the id must already be assigned
	InsertMessage(ctx context.Context, msg *domain.StoredMessage) error
	// FindByMember every message the member sent or received, oldest first
	FindByMember(ctx context.Context, memberID string) ([]domain.StoredMessage, error)
	// MarkRead flip is_read on the given message ids received by readerID
	MarkRead(ctx context.Context, readerID string, messageIDs []string) error
	// CountUnread unread messages addressed to the member
	CountUnread(ctx context.Context, memberID string) (int64, error)
}

type mongoMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository on the messages collection
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		coll: db.Collection("messages"),
	}
}

func (r *mongoMessageRepository) InsertMessage(ctx context.Context, msg *domain.StoredMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *mongoMessageRepository) FindByMember(ctx context.Context, memberID string) ([]domain.StoredMessage, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": memberID},
		bson.M{"receiver_id": memberID},
	}}
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var msgs []domain.StoredMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead only touches messages addressed to readerID, so a forged ack can
// never mark the caller's own outgoing messages.
func (r *mongoMessageRepository) MarkRead(ctx context.Context, readerID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	filter := bson.M{
		"id":          bson.M{"$in": messageIDs},
		"receiver_id": readerID,
	}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := r.coll.UpdateMany(ctx, filter, update)
	return err
}

func (r *mongoMessageRepository) CountUnread(ctx context.Context, memberID string) (int64, error) {
	filter := bson.M{"receiver_id": memberID, "is_read": false}
	return r.coll.CountDocuments(ctx, filter)
}
