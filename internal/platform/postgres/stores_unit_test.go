package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/postgres"
	"github.com/phrazzld/lumen-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestLessonStore_Create(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)

	lesson, err := domain.NewLesson("Gravity", "Physics", "Mass attracts mass.", []string{"a", "b"})
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO lessons").
		WithArgs(lesson.ID, "Gravity", "Physics", "Mass attracts mass.", `["a","b"]`, lesson.CreatedAt, lesson.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, lessons.Create(context.Background(), lesson))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonStore_CreateRejectsInvalidLesson(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)

	err := lessons.Create(context.Background(), &domain.Lesson{ID: uuid.New()})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonStore_CreateMapsDuplicate(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)
	lesson, err := domain.NewLesson("Gravity", "Physics", "", nil)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO lessons").WillReturnError(&pgconn.PgError{Code: "23505"})

	err = lessons.Create(context.Background(), lesson)

	assert.ErrorIs(t, err, store.ErrDuplicate)
	var storeErr *store.StoreError
	assert.True(t, errors.As(err, &storeErr))
}

func TestLessonStore_GetByID(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM lessons WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subject", "content", "summary", "created_at", "updated_at"}).
			AddRow(id.String(), "Gravity", "Physics", "text", []byte(`["one","two"]`), now, now))

	lesson, err := lessons.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, lesson.ID)
	assert.Equal(t, []string{"one", "two"}, lesson.Summary)
}

func TestLessonStore_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM lessons WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := lessons.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrLessonNotFound)
}

func TestLessonStore_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	lessons := postgres.NewPostgresLessonStore(db, nil)

	mock.ExpectExec("DELETE FROM lessons").WillReturnResult(sqlmock.NewResult(0, 0))

	err := lessons.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrLessonNotFound)
}

func TestWorksheetStore_ListByLesson(t *testing.T) {
	db, mock := newMock(t)
	worksheets := postgres.NewPostgresWorksheetStore(db, nil)
	lessonID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "lesson_id", "title", "questions", "created_at"}).
		AddRow(uuid.NewString(), lessonID.String(), "Gravity - Quiz",
			[]byte(`[{"id":1,"type":"mcq","question":"q","options":["A","B"],"correct":"A"}]`), now)
	mock.ExpectQuery("FROM worksheets WHERE lesson_id").WithArgs(lessonID).WillReturnRows(rows)

	got, err := worksheets.ListByLesson(context.Background(), lessonID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Questions, 1)
	assert.Equal(t, domain.QuestionTypeMCQ, got[0].Questions[0].Type)
	assert.Equal(t, "A", got[0].Questions[0].Correct)
}

func TestFlashcardStore_CreateBatchIsTransactional(t *testing.T) {
	db, mock := newMock(t)
	flashcards := postgres.NewPostgresFlashcardStore(db, nil)
	cards, err := domain.NewFlashcards(uuid.New(), []domain.CardFace{
		{Front: "f1", Back: "b1"},
		{Front: "f2", Back: "b2"},
	})
	require.NoError(t, err)

	t.Run("commits all cards", func(t *testing.T) {
		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO flashcards")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, flashcards.CreateBatch(context.Background(), cards))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO flashcards")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := flashcards.CreateBatch(context.Background(), cards)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		require.NoError(t, flashcards.CreateBatch(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMediaStores_Create(t *testing.T) {
	db, mock := newMock(t)
	audioStore := postgres.NewPostgresAudioFileStore(db, nil)
	imageStore := postgres.NewPostgresImageStore(db, nil)
	lessonID := uuid.New()

	audio, err := domain.NewAudioFile(lessonID, "http://localhost/media/a.mp3", "narration")
	require.NoError(t, err)
	img, err := domain.NewGeneratedImage(lessonID, "https://placehold.co/800x600", "prompt")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO audio_files").
		WithArgs(audio.ID, lessonID, audio.AudioURL, "narration", audio.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO generated_images").
		WillReturnError(errors.New("connection refused"))

	require.NoError(t, audioStore.Create(context.Background(), audio))
	err = imageStore.Create(context.Background(), img)

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "generated image", storeErr.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	assert.NoError(t, postgres.MapError(nil, nil))
	assert.ErrorIs(t, postgres.MapError(sql.ErrNoRows, nil), store.ErrNotFound)
	assert.ErrorIs(t, postgres.MapError(sql.ErrNoRows, store.ErrWorksheetNotFound), store.ErrWorksheetNotFound)
	assert.ErrorIs(t, postgres.MapError(&pgconn.PgError{Code: "23514"}, nil), store.ErrInvalidEntity)
	assert.ErrorIs(t, postgres.MapError(&pgconn.PgError{Code: "23502"}, nil), store.ErrInvalidEntity)

	plain := errors.New("plain")
	assert.Equal(t, plain, postgres.MapError(plain, nil))
	assert.True(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
}
