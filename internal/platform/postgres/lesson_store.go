package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

const lessonColumns = `id, title, subject, content, summary, created_at, updated_at`

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the LessonStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// Create implements store.LessonStore.Create
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	summary, err := json.Marshal(lesson.Summary)
	if err != nil {
		return fmt.Errorf("%w: summary: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Subject,
		lesson.Content,
		string(summary),
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return store.NewStoreError("lesson", "create", "insert failed", MapError(err, nil))
	}

	log.Info("lesson created successfully",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("subject", lesson.Subject))
	return nil
}

// GetByID implements store.LessonStore.GetByID
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	lesson, err := scanLesson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err, store.ErrLessonNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("lesson not found", slog.String("lesson_id", id.String()))
			return nil, mapped
		}
		log.Error("failed to get lesson by ID",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, store.NewStoreError("lesson", "get", "select failed", mapped)
	}

	return lesson, nil
}

// List implements store.LessonStore.List
func (s *PostgresLessonStore) List(ctx context.Context) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY created_at DESC`)
	if err != nil {
		log.Error("failed to list lessons", slog.String("error", err.Error()))
		return nil, store.NewStoreError("lesson", "list", "select failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, store.NewStoreError("lesson", "list", "scan failed", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("lesson", "list", "iteration failed", err)
	}

	return lessons, nil
}

// Update implements store.LessonStore.Update
func (s *PostgresLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	summary, err := json.Marshal(lesson.Summary)
	if err != nil {
		return fmt.Errorf("%w: summary: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE lessons
		SET title = $1, subject = $2, content = $3, summary = $4::jsonb, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		lesson.Title,
		lesson.Subject,
		lesson.Content,
		string(summary),
		lesson.UpdatedAt,
		lesson.ID,
	)
	if err != nil {
		log.Error("failed to update lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return store.NewStoreError("lesson", "update", "update failed", MapError(err, nil))
	}

	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		return err
	}

	log.Info("lesson updated successfully", slog.String("lesson_id", lesson.ID.String()))
	return nil
}

// Delete implements store.LessonStore.Delete
func (s *PostgresLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return store.NewStoreError("lesson", "delete", "delete failed", MapError(err, nil))
	}

	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		return err
	}

	log.Info("lesson deleted successfully", slog.String("lesson_id", id.String()))
	return nil
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var summary []byte
	if err := row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Subject,
		&lesson.Content,
		&summary,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONColumn(summary, &lesson.Summary); err != nil {
		return nil, fmt.Errorf("lesson %s summary: %w", lesson.ID, err)
	}
	if lesson.Summary == nil {
		lesson.Summary = []string{}
	}
	return &lesson, nil
}

func unmarshalJSONColumn(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
