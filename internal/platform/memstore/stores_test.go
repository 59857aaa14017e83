package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/memstore"
	"github.com/phrazzld/lumen-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonStore_CRUD(t *testing.T) {
	ctx := context.Background()
	lessons := memstore.NewLessonStore()

	lesson, err := domain.NewLesson("Volcanoes", "Geography", "Magma rises.", []string{"one"})
	require.NoError(t, err)
	require.NoError(t, lessons.Create(ctx, lesson))
	assert.ErrorIs(t, lessons.Create(ctx, lesson), store.ErrDuplicate)

	// Mutating the caller's copy must not leak into the store.
	lesson.Summary[0] = "mutated"
	got, err := lessons.GetByID(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got.Summary)

	title := "Volcanoes and Earthquakes"
	require.NoError(t, got.Apply(domain.LessonUpdate{Title: &title}))
	require.NoError(t, lessons.Update(ctx, got))

	got, err = lessons.GetByID(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)

	require.NoError(t, lessons.Delete(ctx, lesson.ID))
	_, err = lessons.GetByID(ctx, lesson.ID)
	assert.ErrorIs(t, err, store.ErrLessonNotFound)
	assert.ErrorIs(t, lessons.Delete(ctx, lesson.ID), store.ErrLessonNotFound)
	assert.ErrorIs(t, lessons.Update(ctx, got), store.ErrLessonNotFound)
}

func TestLessonStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	lessons := memstore.NewLessonStore()
	base := time.Now().UTC()

	for i, title := range []string{"first", "second", "third"} {
		l, err := domain.NewLesson(title, "General", "", nil)
		require.NoError(t, err)
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, lessons.Create(ctx, l))
	}

	list, err := lessons.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestFlashcardStore_CreateBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	cards := memstore.NewFlashcardStore()
	lessonID := uuid.New()

	batch, err := domain.NewFlashcards(lessonID, []domain.CardFace{{Front: "a", Back: "1"}, {Front: "b", Back: "2"}})
	require.NoError(t, err)

	invalid := append([]*domain.Flashcard{}, batch...)
	invalid = append(invalid, &domain.Flashcard{ID: uuid.New(), LessonID: lessonID})
	assert.ErrorIs(t, cards.CreateBatch(ctx, invalid), store.ErrInvalidEntity)
	assert.Equal(t, 0, cards.Len())

	require.NoError(t, cards.CreateBatch(ctx, batch))
	listed, err := cards.ListByLesson(ctx, lessonID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Same timestamp: later insert lists first.
	assert.Equal(t, "b", listed[0].Front)

	assert.ErrorIs(t, cards.CreateBatch(ctx, batch[:1]), store.ErrDuplicate)
	assert.Equal(t, 2, cards.Len())
}

func TestMaterialsSurviveLessonDelete(t *testing.T) {
	ctx := context.Background()
	stores := memstore.New()

	lesson, err := domain.NewLesson("Orphans", "General", "", nil)
	require.NoError(t, err)
	require.NoError(t, stores.Lessons.Create(ctx, lesson))

	img, err := domain.NewGeneratedImage(lesson.ID, "https://placehold.co/1", "p")
	require.NoError(t, err)
	require.NoError(t, stores.Images.Create(ctx, img))
	audio, err := domain.NewAudioFile(lesson.ID, "http://localhost/a.mp3", "t")
	require.NoError(t, err)
	require.NoError(t, stores.AudioFiles.Create(ctx, audio))

	require.NoError(t, stores.Lessons.Delete(ctx, lesson.ID))

	images, err := stores.Images.ListByLesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)
	files, err := stores.AudioFiles.ListByLesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWorksheetStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	worksheets := memstore.NewWorksheetStore()
	lessonID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := domain.NewWorksheet(lessonID, "Quiz", nil)
			if err == nil {
				_ = worksheets.Create(ctx, ws)
			}
		}()
	}
	wg.Wait()

	list, err := worksheets.ListByLesson(ctx, lessonID)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
