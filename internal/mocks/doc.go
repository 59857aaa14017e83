// Package mocks provides hand-written test doubles for the interfaces the HTTP
// layer depends on.
//
// Each mock has one function field per method. An unset field falls back to
// the mock's default return values, so a test only wires the behavior it
// exercises:
//
//	lessons := &mocks.MockLessonService{
//	    GetLessonFn: func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
//	        return nil, service.ErrLessonNotFound
//	    },
//	}
//
// Calls that tests commonly assert on are recorded.
package mocks
