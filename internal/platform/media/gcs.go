package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"google.golang.org/api/option"
)

// GCSConfig selects the bucket and how its objects are addressed publicly.
type GCSConfig struct {
	Bucket          string
	CDNDomain       string
	CredentialsFile string
}

// GCSStore writes objects to a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	cfg    GCSConfig
	logger *slog.Logger
}

var _ Store = (*GCSStore)(nil)

// NewGCSStore creates a storage client for cfg.Bucket.
func NewGCSStore(ctx context.Context, cfg GCSConfig, log *slog.Logger) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("GCS bucket cannot be empty")
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GCSStore{
		client: client,
		cfg:    cfg,
		logger: log.With(slog.String("component", "gcs_media_store")),
	}, nil
}

// PublicURL returns the address an object is served from.
func (s *GCSStore) PublicURL(key string) string {
	return gcsPublicURL(s.cfg, key)
}

func gcsPublicURL(cfg GCSConfig, key string) string {
	if cfg.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", cfg.CDNDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", cfg.Bucket, key)
}

// Put uploads data to the bucket.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.cfg.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "uploaded media object",
		slog.String("bucket", s.cfg.Bucket),
		slog.String("key", key))
	return s.PublicURL(key), nil
}

// Delete removes an object. A missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err = s.client.Bucket(s.cfg.Bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete GCS object %q: %w", key, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
