package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

const (
	audioColumns = `id, lesson_id, audio_url, text_content, created_at`
	imageColumns = `id, lesson_id, image_url, prompt, created_at`
)

// PostgresAudioFileStore implements store.AudioFileStore on PostgreSQL.
type PostgresAudioFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAudioFileStore creates a new PostgresAudioFileStore.
func NewPostgresAudioFileStore(db store.DBTX, logger *slog.Logger) *PostgresAudioFileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAudioFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "audio_file_store")),
	}
}

var _ store.AudioFileStore = (*PostgresAudioFileStore)(nil)

// Create implements store.AudioFileStore.Create
func (s *PostgresAudioFileStore) Create(ctx context.Context, audio *domain.AudioFile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := audio.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audio_files (`+audioColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		audio.ID, audio.LessonID, audio.AudioURL, audio.TextContent, audio.CreatedAt)
	if err != nil {
		log.Error("failed to create audio file",
			slog.String("error", err.Error()),
			slog.String("lesson_id", audio.LessonID.String()))
		return store.NewStoreError("audio file", "create", "insert failed", MapError(err, nil))
	}

	log.Info("audio file created successfully",
		slog.String("audio_file_id", audio.ID.String()),
		slog.String("lesson_id", audio.LessonID.String()))
	return nil
}

// GetByID implements store.AudioFileStore.GetByID
func (s *PostgresAudioFileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error) {
	audio, err := scanAudioFile(s.db.QueryRowContext(ctx,
		`SELECT `+audioColumns+` FROM audio_files WHERE id = $1`, id))
	if err != nil {
		mapped := MapError(err, store.ErrAudioFileNotFound)
		if store.IsNotFoundError(mapped) {
			return nil, mapped
		}
		return nil, store.NewStoreError("audio file", "get", "select failed", mapped)
	}
	return audio, nil
}

// ListByLesson implements store.AudioFileStore.ListByLesson
func (s *PostgresAudioFileStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.AudioFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+audioColumns+` FROM audio_files WHERE lesson_id = $1 ORDER BY created_at DESC`, lessonID)
	if err != nil {
		return nil, store.NewStoreError("audio file", "list_by_lesson", "select failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	files := make([]*domain.AudioFile, 0)
	for rows.Next() {
		audio, err := scanAudioFile(rows)
		if err != nil {
			return nil, store.NewStoreError("audio file", "list_by_lesson", "scan failed", err)
		}
		files = append(files, audio)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("audio file", "list_by_lesson", "iteration failed", err)
	}
	return files, nil
}

// Delete implements store.AudioFileStore.Delete
func (s *PostgresAudioFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM audio_files WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("audio file", "delete", "delete failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrAudioFileNotFound)
}

func scanAudioFile(row rowScanner) (*domain.AudioFile, error) {
	var a domain.AudioFile
	if err := row.Scan(&a.ID, &a.LessonID, &a.AudioURL, &a.TextContent, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// PostgresImageStore implements store.ImageStore on PostgreSQL.
type PostgresImageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresImageStore creates a new PostgresImageStore.
func NewPostgresImageStore(db store.DBTX, logger *slog.Logger) *PostgresImageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresImageStore{
		db:     db,
		logger: logger.With(slog.String("component", "image_store")),
	}
}

var _ store.ImageStore = (*PostgresImageStore)(nil)

// Create implements store.ImageStore.Create
func (s *PostgresImageStore) Create(ctx context.Context, img *domain.GeneratedImage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generated_images (`+imageColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		img.ID, img.LessonID, img.ImageURL, img.Prompt, img.CreatedAt)
	if err != nil {
		log.Error("failed to create generated image",
			slog.String("error", err.Error()),
			slog.String("lesson_id", img.LessonID.String()))
		return store.NewStoreError("generated image", "create", "insert failed", MapError(err, nil))
	}

	log.Info("generated image created successfully",
		slog.String("image_id", img.ID.String()),
		slog.String("lesson_id", img.LessonID.String()))
	return nil
}

// GetByID implements store.ImageStore.GetByID
func (s *PostgresImageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedImage, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM generated_images WHERE id = $1`, id))
	if err != nil {
		mapped := MapError(err, store.ErrImageNotFound)
		if store.IsNotFoundError(mapped) {
			return nil, mapped
		}
		return nil, store.NewStoreError("generated image", "get", "select failed", mapped)
	}
	return img, nil
}

// ListByLesson implements store.ImageStore.ListByLesson
func (s *PostgresImageStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.GeneratedImage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM generated_images WHERE lesson_id = $1 ORDER BY created_at DESC`, lessonID)
	if err != nil {
		return nil, store.NewStoreError("generated image", "list_by_lesson", "select failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	images := make([]*domain.GeneratedImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, store.NewStoreError("generated image", "list_by_lesson", "scan failed", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("generated image", "list_by_lesson", "iteration failed", err)
	}
	return images, nil
}

// Delete implements store.ImageStore.Delete
func (s *PostgresImageStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM generated_images WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("generated image", "delete", "delete failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrImageNotFound)
}

func scanImage(row rowScanner) (*domain.GeneratedImage, error) {
	var g domain.GeneratedImage
	if err := row.Scan(&g.ID, &g.LessonID, &g.ImageURL, &g.Prompt, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
