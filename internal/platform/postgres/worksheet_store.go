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

const worksheetColumns = `id, lesson_id, title, questions, created_at`

// PostgresWorksheetStore implements store.WorksheetStore on PostgreSQL.
// Questions are stored as a JSONB array.
type PostgresWorksheetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWorksheetStore creates a new PostgresWorksheetStore.
func NewPostgresWorksheetStore(db store.DBTX, logger *slog.Logger) *PostgresWorksheetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorksheetStore{
		db:     db,
		logger: logger.With(slog.String("component", "worksheet_store")),
	}
}

var _ store.WorksheetStore = (*PostgresWorksheetStore)(nil)

// Create implements store.WorksheetStore.Create
func (s *PostgresWorksheetStore) Create(ctx context.Context, ws *domain.Worksheet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ws.Validate(); err != nil {
		log.Warn("worksheet validation failed during create",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", ws.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	questions, err := json.Marshal(ws.Questions)
	if err != nil {
		return fmt.Errorf("%w: questions: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO worksheets (` + worksheetColumns + `)
		VALUES ($1, $2, $3, $4::jsonb, $5)
	`
	if _, err := s.db.ExecContext(ctx, query, ws.ID, ws.LessonID, ws.Title, string(questions), ws.CreatedAt); err != nil {
		log.Error("failed to create worksheet",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", ws.ID.String()),
			slog.String("lesson_id", ws.LessonID.String()))
		return store.NewStoreError("worksheet", "create", "insert failed", MapError(err, nil))
	}

	log.Info("worksheet created successfully",
		slog.String("worksheet_id", ws.ID.String()),
		slog.String("lesson_id", ws.LessonID.String()),
		slog.Int("question_count", len(ws.Questions)))
	return nil
}

// GetByID implements store.WorksheetStore.GetByID
func (s *PostgresWorksheetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	query := `SELECT ` + worksheetColumns + ` FROM worksheets WHERE id = $1`
	ws, err := scanWorksheet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err, store.ErrWorksheetNotFound)
		if store.IsNotFoundError(mapped) {
			return nil, mapped
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get worksheet by ID",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", id.String()))
		return nil, store.NewStoreError("worksheet", "get", "select failed", mapped)
	}
	return ws, nil
}

// List implements store.WorksheetStore.List
func (s *PostgresWorksheetStore) List(ctx context.Context) ([]*domain.Worksheet, error) {
	return s.query(ctx, "list",
		`SELECT `+worksheetColumns+` FROM worksheets ORDER BY created_at DESC`)
}

// ListByLesson implements store.WorksheetStore.ListByLesson
func (s *PostgresWorksheetStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Worksheet, error) {
	return s.query(ctx, "list_by_lesson",
		`SELECT `+worksheetColumns+` FROM worksheets WHERE lesson_id = $1 ORDER BY created_at DESC`,
		lessonID)
}

func (s *PostgresWorksheetStore) query(ctx context.Context, op, query string, args ...any) ([]*domain.Worksheet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query worksheets",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("worksheet", op, "select failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	worksheets := make([]*domain.Worksheet, 0)
	for rows.Next() {
		ws, err := scanWorksheet(rows)
		if err != nil {
			return nil, store.NewStoreError("worksheet", op, "scan failed", err)
		}
		worksheets = append(worksheets, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("worksheet", op, "iteration failed", err)
	}
	return worksheets, nil
}

// Update implements store.WorksheetStore.Update
func (s *PostgresWorksheetStore) Update(ctx context.Context, ws *domain.Worksheet) error {
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	questions, err := json.Marshal(ws.Questions)
	if err != nil {
		return fmt.Errorf("%w: questions: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE worksheets SET title = $1, questions = $2::jsonb WHERE id = $3`,
		ws.Title, string(questions), ws.ID)
	if err != nil {
		return store.NewStoreError("worksheet", "update", "update failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrWorksheetNotFound)
}

// Delete implements store.WorksheetStore.Delete
func (s *PostgresWorksheetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("worksheet", "delete", "delete failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrWorksheetNotFound)
}

func scanWorksheet(row rowScanner) (*domain.Worksheet, error) {
	var ws domain.Worksheet
	var questions []byte
	if err := row.Scan(&ws.ID, &ws.LessonID, &ws.Title, &questions, &ws.CreatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSONColumn(questions, &ws.Questions); err != nil {
		return nil, fmt.Errorf("worksheet %s questions: %w", ws.ID, err)
	}
	if ws.Questions == nil {
		ws.Questions = []domain.Question{}
	}
	return &ws, nil
}
