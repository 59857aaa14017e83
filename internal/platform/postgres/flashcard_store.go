package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

const flashcardColumns = `id, lesson_id, front, back, created_at`

// PostgresFlashcardStore implements store.FlashcardStore on PostgreSQL.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgresFlashcardStore.
// When db is a *sql.DB, CreateBatch opens its own transaction; when it is a
// *sql.Tx the batch joins the caller's transaction.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// CreateBatch implements store.FlashcardStore.CreateBatch
func (s *PostgresFlashcardStore) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	insert := func(ctx context.Context, db store.DBTX) error {
		stmt, err := db.PrepareContext(ctx,
			`INSERT INTO flashcards (`+flashcardColumns+`) VALUES ($1, $2, $3, $4, $5)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, card := range cards {
			if _, err := stmt.ExecContext(ctx, card.ID, card.LessonID, card.Front, card.Back, card.CreatedAt); err != nil {
				return fmt.Errorf("flashcard %s: %w", card.ID, err)
			}
		}
		return nil
	}

	var err error
	if beginner, ok := s.db.(store.TxBeginner); ok {
		err = store.RunInTransaction(ctx, beginner, func(ctx context.Context, tx *sql.Tx) error {
			return insert(ctx, tx)
		})
	} else {
		err = insert(ctx, s.db)
	}
	if err != nil {
		log.Error("failed to create flashcard batch",
			slog.String("error", err.Error()),
			slog.String("lesson_id", cards[0].LessonID.String()),
			slog.Int("count", len(cards)))
		return store.NewStoreError("flashcard", "create_batch", "insert failed", MapError(err, nil))
	}

	log.Info("flashcards created successfully",
		slog.String("lesson_id", cards[0].LessonID.String()),
		slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.FlashcardStore.GetByID
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	card, err := scanFlashcard(s.db.QueryRowContext(ctx,
		`SELECT `+flashcardColumns+` FROM flashcards WHERE id = $1`, id))
	if err != nil {
		mapped := MapError(err, store.ErrFlashcardNotFound)
		if store.IsNotFoundError(mapped) {
			return nil, mapped
		}
		return nil, store.NewStoreError("flashcard", "get", "select failed", mapped)
	}
	return card, nil
}

// List implements store.FlashcardStore.List
func (s *PostgresFlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	return s.query(ctx, "list", `SELECT `+flashcardColumns+` FROM flashcards ORDER BY created_at DESC`)
}

// ListByLesson implements store.FlashcardStore.ListByLesson
func (s *PostgresFlashcardStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error) {
	return s.query(ctx, "list_by_lesson",
		`SELECT `+flashcardColumns+` FROM flashcards WHERE lesson_id = $1 ORDER BY created_at DESC`,
		lessonID)
}

func (s *PostgresFlashcardStore) query(ctx context.Context, op, query string, args ...any) ([]*domain.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query flashcards",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", op, "select failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, store.NewStoreError("flashcard", op, "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", op, "iteration failed", err)
	}
	return cards, nil
}

// Update implements store.FlashcardStore.Update
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE flashcards SET front = $1, back = $2 WHERE id = $3`,
		card.Front, card.Back, card.ID)
	if err != nil {
		return store.NewStoreError("flashcard", "update", "update failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

// Delete implements store.FlashcardStore.Delete
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("flashcard", "delete", "delete failed", MapError(err, nil))
	}
	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	if err := row.Scan(&card.ID, &card.LessonID, &card.Front, &card.Back, &card.CreatedAt); err != nil {
		return nil, err
	}
	return &card, nil
}
