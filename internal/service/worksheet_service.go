package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/store"
)

// WorksheetService persists and edits worksheets.
type WorksheetService struct {
	worksheets store.WorksheetStore
	cache      MaterialsCache
	logger     *slog.Logger
}

// NewWorksheetService creates a WorksheetService. A nil cache disables caching.
func NewWorksheetService(worksheets store.WorksheetStore, cache MaterialsCache, logger *slog.Logger) (*WorksheetService, error) {
	if worksheets == nil {
		return nil, &ServiceError{Service: "worksheet", Operation: "create_service", Message: "worksheet store cannot be nil"}
	}
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorksheetService{
		worksheets: worksheets,
		cache:      cache,
		logger:     logger.With("component", "worksheet_service"),
	}, nil
}

// CreateWorksheet persists a worksheet for a lesson. Questions are renumbered from 1.
func (s *WorksheetService) CreateWorksheet(
	ctx context.Context,
	lessonID uuid.UUID,
	title string,
	questions []domain.Question,
) (*domain.Worksheet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := domain.NewWorksheet(lessonID, title, domain.NumberQuestions(questions))
	if err != nil {
		return nil, NewServiceError("worksheet", "create_worksheet", "invalid worksheet", err)
	}
	if err := s.worksheets.Create(ctx, ws); err != nil {
		log.ErrorContext(ctx, "failed to create worksheet",
			slog.String("lesson_id", lessonID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("worksheet", "create_worksheet", "failed to save worksheet", err)
	}

	invalidate(ctx, s.cache, log, lessonID)
	return ws, nil
}

// GetWorksheet returns one worksheet.
func (s *WorksheetService) GetWorksheet(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	ws, err := s.worksheets.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("worksheet", "get_worksheet", "failed to get worksheet", err)
	}
	return ws, nil
}

// ListWorksheets returns every worksheet, newest first.
func (s *WorksheetService) ListWorksheets(ctx context.Context) ([]*domain.Worksheet, error) {
	list, err := s.worksheets.List(ctx)
	if err != nil {
		return nil, NewServiceError("worksheet", "list_worksheets", "failed to list worksheets", err)
	}
	return list, nil
}

// ListWorksheetsByLesson returns the worksheets of a lesson, newest first.
func (s *WorksheetService) ListWorksheetsByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Worksheet, error) {
	list, err := s.worksheets.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, NewServiceError("worksheet", "list_worksheets", "failed to list worksheets", err)
	}
	return list, nil
}

// UpdateWorksheet changes the title and/or questions of a worksheet.
func (s *WorksheetService) UpdateWorksheet(ctx context.Context, id uuid.UUID, update domain.WorksheetUpdate) (*domain.Worksheet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.worksheets.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("worksheet", "update_worksheet", "failed to get worksheet", err)
	}
	if update.Questions != nil {
		update.Questions = domain.NumberQuestions(update.Questions)
	}
	if err := ws.Apply(update); err != nil {
		return nil, NewServiceError("worksheet", "update_worksheet", "invalid worksheet update", err)
	}
	if err := s.worksheets.Update(ctx, ws); err != nil {
		return nil, NewServiceError("worksheet", "update_worksheet", "failed to save worksheet", err)
	}

	invalidate(ctx, s.cache, log, ws.LessonID)
	return ws, nil
}

// DeleteWorksheet removes a worksheet.
func (s *WorksheetService) DeleteWorksheet(ctx context.Context, id uuid.UUID) error {
	ws, err := s.worksheets.GetByID(ctx, id)
	if err != nil {
		return NewServiceError("worksheet", "delete_worksheet", "failed to get worksheet", err)
	}
	if err := s.worksheets.Delete(ctx, id); err != nil {
		return NewServiceError("worksheet", "delete_worksheet", "failed to delete worksheet", err)
	}

	invalidate(ctx, s.cache, logger.FromContextOrDefault(ctx, s.logger), ws.LessonID)
	return nil
}
