package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/store"
)

// New returns a fresh set of empty in-memory stores.
func New() store.Stores {
	return store.Stores{
		Lessons:    NewLessonStore(),
		Worksheets: NewWorksheetStore(),
		Flashcards: NewFlashcardStore(),
		AudioFiles: NewAudioFileStore(),
		Images:     NewImageStore(),
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
}

// Values are copied on the way in and out so callers never share memory with the store.

func copyLesson(l *domain.Lesson) *domain.Lesson {
	c := *l
	c.Summary = append([]string{}, l.Summary...)
	return &c
}

func copyWorksheet(w *domain.Worksheet) *domain.Worksheet {
	c := *w
	c.Questions = make([]domain.Question, len(w.Questions))
	for i, q := range w.Questions {
		q.Options = append([]string{}, q.Options...)
		c.Questions[i] = q
	}
	return &c
}

// LessonStore is an in-memory store.LessonStore.
type LessonStore struct {
	t *table[*domain.Lesson]
}

// NewLessonStore creates an empty LessonStore.
func NewLessonStore() *LessonStore {
	return &LessonStore{t: newTable[*domain.Lesson]()}
}

var _ store.LessonStore = (*LessonStore)(nil)

func (s *LessonStore) Create(_ context.Context, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.insert(lesson.ID, lesson.CreatedAt, copyLesson(lesson)) {
		return fmt.Errorf("%w: lesson %s", store.ErrDuplicate, lesson.ID)
	}
	return nil
}

func (s *LessonStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	l, ok := s.t.get(id)
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	return copyLesson(l), nil
}

func (s *LessonStore) List(_ context.Context) ([]*domain.Lesson, error) {
	rows := s.t.list(nil)
	out := make([]*domain.Lesson, len(rows))
	for i, l := range rows {
		out[i] = copyLesson(l)
	}
	return out, nil
}

func (s *LessonStore) Update(_ context.Context, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.replace(lesson.ID, copyLesson(lesson)) {
		return store.ErrLessonNotFound
	}
	return nil
}

func (s *LessonStore) Delete(_ context.Context, id uuid.UUID) error {
	if !s.t.remove(id) {
		return store.ErrLessonNotFound
	}
	return nil
}

// Len returns the number of stored lessons.
func (s *LessonStore) Len() int { return s.t.len() }

// WorksheetStore is an in-memory store.WorksheetStore.
type WorksheetStore struct {
	t *table[*domain.Worksheet]
}

// NewWorksheetStore creates an empty WorksheetStore.
func NewWorksheetStore() *WorksheetStore {
	return &WorksheetStore{t: newTable[*domain.Worksheet]()}
}

var _ store.WorksheetStore = (*WorksheetStore)(nil)

func (s *WorksheetStore) Create(_ context.Context, ws *domain.Worksheet) error {
	if err := ws.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.insert(ws.ID, ws.CreatedAt, copyWorksheet(ws)) {
		return fmt.Errorf("%w: worksheet %s", store.ErrDuplicate, ws.ID)
	}
	return nil
}

func (s *WorksheetStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	w, ok := s.t.get(id)
	if !ok {
		return nil, store.ErrWorksheetNotFound
	}
	return copyWorksheet(w), nil
}

func (s *WorksheetStore) List(_ context.Context) ([]*domain.Worksheet, error) {
	return s.listWhere(nil), nil
}

func (s *WorksheetStore) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*domain.Worksheet, error) {
	return s.listWhere(func(w *domain.Worksheet) bool { return w.LessonID == lessonID }), nil
}

func (s *WorksheetStore) listWhere(keep func(*domain.Worksheet) bool) []*domain.Worksheet {
	rows := s.t.list(keep)
	out := make([]*domain.Worksheet, len(rows))
	for i, w := range rows {
		out[i] = copyWorksheet(w)
	}
	return out
}

func (s *WorksheetStore) Update(_ context.Context, ws *domain.Worksheet) error {
	if err := ws.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.replace(ws.ID, copyWorksheet(ws)) {
		return store.ErrWorksheetNotFound
	}
	return nil
}

func (s *WorksheetStore) Delete(_ context.Context, id uuid.UUID) error {
	if !s.t.remove(id) {
		return store.ErrWorksheetNotFound
	}
	return nil
}

// Len returns the number of stored worksheets.
func (s *WorksheetStore) Len() int { return s.t.len() }

// FlashcardStore is an in-memory store.FlashcardStore.
type FlashcardStore struct {
	t *table[domain.Flashcard]
}

// NewFlashcardStore creates an empty FlashcardStore.
func NewFlashcardStore() *FlashcardStore {
	return &FlashcardStore{t: newTable[domain.Flashcard]()}
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

// CreateBatch validates every card before inserting any, and inserts under one lock.
func (s *FlashcardStore) CreateBatch(_ context.Context, cards []*domain.Flashcard) error {
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return invalid(err)
		}
	}

	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	for _, c := range cards {
		if _, exists := s.t.rows[c.ID]; exists {
			return fmt.Errorf("%w: flashcard %s", store.ErrDuplicate, c.ID)
		}
	}
	for _, c := range cards {
		s.t.insertLocked(c.ID, c.CreatedAt, *c)
	}
	return nil
}

func (s *FlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	c, ok := s.t.get(id)
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}
	return &c, nil
}

func (s *FlashcardStore) List(_ context.Context) ([]*domain.Flashcard, error) {
	return pointers(s.t.list(nil)), nil
}

func (s *FlashcardStore) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*domain.Flashcard, error) {
	return pointers(s.t.list(func(c domain.Flashcard) bool { return c.LessonID == lessonID })), nil
}

func (s *FlashcardStore) Update(_ context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.replace(card.ID, *card) {
		return store.ErrFlashcardNotFound
	}
	return nil
}

func (s *FlashcardStore) Delete(_ context.Context, id uuid.UUID) error {
	if !s.t.remove(id) {
		return store.ErrFlashcardNotFound
	}
	return nil
}

// Len returns the number of stored flashcards.
func (s *FlashcardStore) Len() int { return s.t.len() }

// AudioFileStore is an in-memory store.AudioFileStore.
type AudioFileStore struct {
	t *table[domain.AudioFile]
}

// NewAudioFileStore creates an empty AudioFileStore.
func NewAudioFileStore() *AudioFileStore {
	return &AudioFileStore{t: newTable[domain.AudioFile]()}
}

var _ store.AudioFileStore = (*AudioFileStore)(nil)

func (s *AudioFileStore) Create(_ context.Context, audio *domain.AudioFile) error {
	if err := audio.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.insert(audio.ID, audio.CreatedAt, *audio) {
		return fmt.Errorf("%w: audio file %s", store.ErrDuplicate, audio.ID)
	}
	return nil
}

func (s *AudioFileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.AudioFile, error) {
	a, ok := s.t.get(id)
	if !ok {
		return nil, store.ErrAudioFileNotFound
	}
	return &a, nil
}

func (s *AudioFileStore) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*domain.AudioFile, error) {
	return pointers(s.t.list(func(a domain.AudioFile) bool { return a.LessonID == lessonID })), nil
}

func (s *AudioFileStore) Delete(_ context.Context, id uuid.UUID) error {
	if !s.t.remove(id) {
		return store.ErrAudioFileNotFound
	}
	return nil
}

// Len returns the number of stored audio files.
func (s *AudioFileStore) Len() int { return s.t.len() }

// ImageStore is an in-memory store.ImageStore.
type ImageStore struct {
	t *table[domain.GeneratedImage]
}

// NewImageStore creates an empty ImageStore.
func NewImageStore() *ImageStore {
	return &ImageStore{t: newTable[domain.GeneratedImage]()}
}

var _ store.ImageStore = (*ImageStore)(nil)

func (s *ImageStore) Create(_ context.Context, img *domain.GeneratedImage) error {
	if err := img.Validate(); err != nil {
		return invalid(err)
	}
	if !s.t.insert(img.ID, img.CreatedAt, *img) {
		return fmt.Errorf("%w: generated image %s", store.ErrDuplicate, img.ID)
	}
	return nil
}

func (s *ImageStore) GetByID(_ context.Context, id uuid.UUID) (*domain.GeneratedImage, error) {
	g, ok := s.t.get(id)
	if !ok {
		return nil, store.ErrImageNotFound
	}
	return &g, nil
}

func (s *ImageStore) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*domain.GeneratedImage, error) {
	return pointers(s.t.list(func(g domain.GeneratedImage) bool { return g.LessonID == lessonID })), nil
}

func (s *ImageStore) Delete(_ context.Context, id uuid.UUID) error {
	if !s.t.remove(id) {
		return store.ErrImageNotFound
	}
	return nil
}

// Len returns the number of stored images.
func (s *ImageStore) Len() int { return s.t.len() }

func pointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
