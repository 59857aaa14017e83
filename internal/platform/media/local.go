package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

// LocalStore writes objects to a directory that the HTTP server exposes
// under PublicBaseURL.
type LocalStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates the root directory if needed.
func NewLocalStore(dir, publicBaseURL string, log *slog.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("media directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &LocalStore{
		dir:     dir,
		baseURL: publicBaseURL,
		logger:  log.With(slog.String("component", "local_media_store")),
	}, nil
}

// Dir returns the root directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to dir/key and returns PublicBaseURL/key.
func (s *LocalStore) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "stored media file",
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return joinURL(s.baseURL, key), nil
}

// Delete removes dir/key. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}
