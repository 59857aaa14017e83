// Package media stores generated binary assets, such as narration audio, and
// returns the public URL each asset is served from.
package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid media key")

// Store persists objects under a key and reports their public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// AudioKey returns the key for a new narration file of a lesson.
func AudioKey(lessonID uuid.UUID) string {
	return fmt.Sprintf("audio/%s/%s.mp3", lessonID, uuid.New())
}

// cleanKey normalizes key to a relative slash path inside the store root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(key))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
