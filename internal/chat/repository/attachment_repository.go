package repository

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"maestro_marketplace/pkg/database"

	"github.com/google/uuid"
)

// presigned links outlive the chat session but not the bucket policy
const attachmentURLExpiry = 7 * 24 * time.Hour

// AttachmentRepository image attachments backing store
type AttachmentRepository interface {
	// UploadImage store an attachment stream and return its object name
	UploadImage(ctx context.Context, senderID, fileName string, reader io.Reader, size int64, contentType string) (string, error)
	// ImageURL presigned download URL for a stored object
	ImageURL(ctx context.Context, objectName string) (string, error)
}

type minioAttachmentRepository struct {
	client *database.MinIOClient
}

// NewMinioAttachmentRepository create an AttachmentRepository
func NewMinioAttachmentRepository(client *database.MinIOClient) AttachmentRepository {
	return &minioAttachmentRepository{client: client}
}

func (r *minioAttachmentRepository) UploadImage(ctx context.Context, senderID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("chat/%s/%s%s", senderID, uuid.NewString(), path.Ext(fileName))
	if err := r.client.UploadStream(ctx, objectName, reader, size, contentType); err != nil {
		return "", err
	}
	return objectName, nil
}

func (r *minioAttachmentRepository) ImageURL(ctx context.Context, objectName string) (string, error) {
	return r.client.PresignGetURL(ctx, objectName, attachmentURLExpiry)
}
