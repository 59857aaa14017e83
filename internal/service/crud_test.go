package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceError(t *testing.T) {
	assert.NoError(t, NewServiceError("lesson", "get", "msg", nil))
	assert.Equal(t, ErrLessonNotFound, NewServiceError("lesson", "get", "msg", store.ErrLessonNotFound))
	assert.Equal(t, ErrFlashcardNotFound, NewServiceError("flashcard", "get", "msg", store.ErrFlashcardNotFound))
	assert.Equal(t, ErrImageNotFound, NewServiceError("image", "get", "msg", store.ErrImageNotFound))

	err := NewServiceError("lesson", "update_lesson", "failed to save lesson", errBoom)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "update_lesson", svcErr.Operation)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "lesson service update_lesson failed: failed to save lesson: boom", err.Error())
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("", FailSoft)
	require.NoError(t, err)
	assert.Equal(t, FailSoft, p)

	p, err = ParseFailurePolicy("loud", FailSoft)
	require.NoError(t, err)
	assert.Equal(t, FailLoud, p)
	assert.Equal(t, "loud", p.String())

	_, err = ParseFailurePolicy("quiet", FailSoft)
	assert.Error(t, err)
}

// TestLessonRoundTrip generates a lesson with audio and an image and reads it
// back with all its materials.
func TestLessonRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newMemStores()
	cache := &fakeCache{}

	o := newTestOrchestrator(t, &fakeContent{}, m)
	lessons, err := NewLessonService(m.stores(), cache, discardLogger())
	require.NoError(t, err)

	result, err := o.GenerateLessonContent(ctx, LessonRequest{Question: "Photosynthesis"})
	require.NoError(t, err)

	images, err := NewImageService(imageFunc(func(context.Context, string) (string, error) {
		return "https://placehold.co/800x600", nil
	}), m.images, discardLogger(), WithMediaCache(cache))
	require.NoError(t, err)
	_, err = images.GenerateAndSaveImage(ctx, result.Lesson.ID, "Photosynthesis")
	require.NoError(t, err)

	audio, err := NewAudioService(mp3Synth(), newFakeMediaStore(), m.audio, discardLogger(), WithMediaCache(cache))
	require.NoError(t, err)
	narration, err := audio.GenerateAndSaveAudio(ctx, result.Lesson.ID, result.Explanation)
	require.NoError(t, err)
	require.NotNil(t, narration)

	materials, err := lessons.GetLessonWithMaterials(ctx, result.Lesson.ID)

	require.NoError(t, err)
	assert.Equal(t, result.Lesson.ID, materials.ID)
	assert.Equal(t, "Photosynthesis", materials.Title)
	require.Len(t, materials.Worksheets, 1)
	assert.Len(t, materials.Worksheets[0].Questions, len(result.Quiz))
	assert.Len(t, materials.Flashcards, len(result.Flashcards))
	require.Len(t, materials.AudioFiles, 1)
	assert.Equal(t, narration.ID, materials.AudioFiles[0].ID)
	assert.Len(t, materials.GeneratedImages, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, []uuid.UUID{result.Lesson.ID, result.Lesson.ID}, cache.invalidated)
}

func TestGetLessonWithMaterials(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the stores", func(t *testing.T) {
		id := uuid.New()
		cached := &domain.LessonWithMaterials{Lesson: domain.Lesson{ID: id, Title: "Cached"}}
		svc, err := NewLessonService(newMemStores().stores(), &fakeCache{entry: cached}, discardLogger())
		require.NoError(t, err)

		got, err := svc.GetLessonWithMaterials(ctx, id)

		require.NoError(t, err)
		assert.Same(t, cached, got)
	})

	t.Run("cache errors fall through to the stores", func(t *testing.T) {
		m := newMemStores()
		lesson := seedLesson(t, m)
		svc, err := NewLessonService(m.stores(), &fakeCache{getErr: errors.New("redis down")}, discardLogger())
		require.NoError(t, err)

		got, err := svc.GetLessonWithMaterials(ctx, lesson.ID)

		require.NoError(t, err)
		assert.Equal(t, lesson.Title, got.Title)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		svc, err := NewLessonService(newMemStores().stores(), nil, discardLogger())
		require.NoError(t, err)

		_, err = svc.GetLessonWithMaterials(ctx, uuid.New())

		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestLessonServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	m := newMemStores()
	lesson := seedLesson(t, m)
	cache := &fakeCache{}
	svc, err := NewLessonService(m.stores(), cache, discardLogger())
	require.NoError(t, err)

	title := "Gravity and orbits"
	updated, err := svc.UpdateLesson(ctx, lesson.ID, domain.LessonUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, lesson.Content, updated.Content)
	assert.False(t, updated.UpdatedAt.Before(lesson.UpdatedAt))

	empty := ""
	_, err = svc.UpdateLesson(ctx, lesson.ID, domain.LessonUpdate{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrLessonTitleEmpty)

	require.NoError(t, svc.DeleteLesson(ctx, lesson.ID))
	assert.ErrorIs(t, svc.DeleteLesson(ctx, lesson.ID), ErrLessonNotFound)
	_, err = svc.GetLesson(ctx, lesson.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	assert.Equal(t, []uuid.UUID{lesson.ID, lesson.ID}, cache.invalidated)
}

func TestWorksheetService(t *testing.T) {
	ctx := context.Background()
	m := newMemStores()
	cache := &fakeCache{}
	svc, err := NewWorksheetService(m.worksheets, cache, discardLogger())
	require.NoError(t, err)
	lessonID := uuid.New()

	ws, err := svc.CreateWorksheet(ctx, lessonID, "Review", []domain.Question{
		{ID: 7, Type: domain.QuestionTypeMCQ, Question: "A?", Options: []string{"x", "y"}, Correct: "x"},
		{ID: 9, Type: domain.QuestionTypeShort, Question: "B?", Answer: "z"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ws.Questions[0].ID)
	assert.Equal(t, 2, ws.Questions[1].ID)

	_, err = svc.CreateWorksheet(ctx, lessonID, "", nil)
	assert.ErrorIs(t, err, domain.ErrWorksheetTitleEmpty)

	title := "Final review"
	updated, err := svc.UpdateWorksheet(ctx, ws.ID, domain.WorksheetUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Len(t, updated.Questions, 2)

	byLesson, err := svc.ListWorksheetsByLesson(ctx, lessonID)
	require.NoError(t, err)
	assert.Len(t, byLesson, 1)

	require.NoError(t, svc.DeleteWorksheet(ctx, ws.ID))
	_, err = svc.GetWorksheet(ctx, ws.ID)
	assert.ErrorIs(t, err, ErrWorksheetNotFound)

	assert.Equal(t, []uuid.UUID{lessonID, lessonID, lessonID}, cache.invalidated)
}

func TestFlashcardService(t *testing.T) {
	ctx := context.Background()
	m := newMemStores()
	svc, err := NewFlashcardService(m.flashcards, nil, discardLogger())
	require.NoError(t, err)
	lessonID := uuid.New()

	cards, err := svc.CreateFlashcards(ctx, lessonID, []domain.CardFace{
		{Front: "H2O", Back: "Water"},
		{Front: "NaCl", Back: "Salt"},
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	back := "Table salt"
	updated, err := svc.UpdateFlashcard(ctx, cards[1].ID, domain.FlashcardUpdate{Back: &back})
	require.NoError(t, err)
	assert.Equal(t, "NaCl", updated.Front)
	assert.Equal(t, back, updated.Back)

	require.NoError(t, svc.DeleteFlashcard(ctx, cards[0].ID))
	remaining, err := svc.ListFlashcardsByLesson(ctx, lessonID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, cards[1].ID, remaining[0].ID)

	_, err = svc.GetFlashcard(ctx, cards[0].ID)
	assert.ErrorIs(t, err, ErrFlashcardNotFound)
}

func TestMediaRecordCRUD(t *testing.T) {
	ctx := context.Background()
	m := newMemStores()
	lessonID := uuid.New()

	audioSvc, err := NewAudioService(mp3Synth(), newFakeMediaStore(), m.audio, discardLogger())
	require.NoError(t, err)
	audio, err := audioSvc.GenerateAndSaveAudio(ctx, lessonID, "Narration")
	require.NoError(t, err)
	require.NotNil(t, audio)

	files, err := audioSvc.ListAudioFiles(ctx, lessonID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	require.NoError(t, audioSvc.DeleteAudioFile(ctx, audio.ID))
	_, err = audioSvc.GetAudioFile(ctx, audio.ID)
	assert.ErrorIs(t, err, ErrAudioFileNotFound)

	imageSvc, err := NewImageService(imageFunc(func(context.Context, string) (string, error) {
		return "https://placehold.co/x", nil
	}), m.images, discardLogger())
	require.NoError(t, err)
	img, err := imageSvc.GenerateAndSaveImage(ctx, lessonID, "Cells")
	require.NoError(t, err)
	got, err := imageSvc.GetImage(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, img.ImageURL, got.ImageURL)
	require.NoError(t, imageSvc.DeleteImage(ctx, img.ID))
	assert.ErrorIs(t, imageSvc.DeleteImage(ctx, img.ID), ErrImageNotFound)
}
