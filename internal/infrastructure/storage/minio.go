package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// ObjectEvent is one object-created notification from the bucket
type ObjectEvent struct {
	Key string
}

// MinIOClient wraps the object store holding every meeting artifact
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewMinIOClient creates a new MinIO client and ensures the bucket exists
func NewMinIOClient(cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Bucket returns the bucket name artifacts live in
func (m *MinIOClient) Bucket() string {
	return m.bucket
}

// PutText writes text content to the given key, overwriting any previous
// object. Pipeline re-delivery relies on this overwrite behavior.
func (m *MinIOClient) PutText(ctx context.Context, key, content string) error {
	reader := bytes.NewReader([]byte(content))
	_, err := m.client.PutObject(ctx, m.bucket, key, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GetText reads an object fully as a string
func (m *MinIOClient) GetText(ctx context.Context, key string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// ObjectURL returns the stable (non-presigned) URL stored in meeting rows
func (m *MinIOClient) ObjectURL(key string) string {
	if m.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, key)
	}
	return fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, key)
}

// PresignedGetURL generates a time-limited download URL for a key
func (m *MinIOClient) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Listen streams object-created notifications for the bucket onto the
// returned channel until ctx is cancelled. Prefix/suffix filtering is done
// by the pipeline's stage registry, not here, so one listener serves every
// stage.
func (m *MinIOClient) Listen(ctx context.Context) <-chan ObjectEvent {
	out := make(chan ObjectEvent)

	go func() {
		defer close(out)
		events := m.client.ListenBucketNotification(ctx, m.bucket, "", "", []string{
			"s3:ObjectCreated:*",
		})
		for info := range events {
			if info.Err != nil {
				if ctx.Err() != nil {
					return
				}
				if m.logger != nil {
					m.logger.Error("bucket notification error", zap.Error(info.Err))
				}
				continue
			}
			for _, record := range info.Records {
				// Notification keys arrive URL-encoded.
				key := record.S3.Object.Key
				if decoded, err := url.QueryUnescape(key); err == nil {
					key = decoded
				}
				select {
				case out <- ObjectEvent{Key: key}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
