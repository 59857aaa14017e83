package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioKey(t *testing.T) {
	lessonID := uuid.New()
	key := AudioKey(lessonID)

	assert.True(t, strings.HasPrefix(key, "audio/"+lessonID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, ".mp3"))
	assert.NotEqual(t, key, AudioKey(lessonID))
}

func TestCleanKey(t *testing.T) {
	got, err := cleanKey("/audio/x.mp3")
	require.NoError(t, err)
	assert.Equal(t, "audio/x.mp3", got)

	for _, bad := range []string{"", "  ", "../etc/passwd", "audio/../../x"} {
		_, err := cleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/media/", nil)
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "audio/lesson/a.mp3", "audio/mpeg", []byte("mp3"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/audio/lesson/a.mp3", url)
	data, err := os.ReadFile(filepath.Join(dir, "audio", "lesson", "a.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), data)

	require.NoError(t, store.Delete(context.Background(), "audio/lesson/a.mp3"))
	_, err = os.Stat(filepath.Join(dir, "audio", "lesson", "a.mp3"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(context.Background(), "audio/lesson/a.mp3"))
}

func TestGCSPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bucket/audio/a.mp3",
		gcsPublicURL(GCSConfig{Bucket: "bucket"}, "audio/a.mp3"))
	assert.Equal(t, "https://cdn.example.com/audio/a.mp3",
		gcsPublicURL(GCSConfig{Bucket: "bucket", CDNDomain: "cdn.example.com"}, "audio/a.mp3"))
}
