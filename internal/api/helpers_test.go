package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/lumen-api/internal/api/middleware"
	"github.com/phrazzld/lumen-api/internal/api/shared"
	"github.com/phrazzld/lumen-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

const teacherToken = "Bearer teacher-token"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testServices fills every unset service with an empty mock.
func testServices(svc Services) Services {
	if svc.Generator == nil {
		svc.Generator = &mocks.MockLessonGenerator{}
	}
	if svc.Lessons == nil {
		svc.Lessons = &mocks.MockLessonService{}
	}
	if svc.Worksheets == nil {
		svc.Worksheets = &mocks.MockWorksheetService{}
	}
	if svc.Flashcards == nil {
		svc.Flashcards = &mocks.MockFlashcardService{}
	}
	if svc.Media == nil {
		svc.Media = &mocks.MockMediaService{}
	}
	return svc
}

func newTestRouter(svc Services) http.Handler {
	auth := middleware.NewAuthMiddleware(mocks.TeacherJWTService())
	return Routes(testServices(svc), auth, discardLogger())
}

// do sends a request through the router. body may be empty.
func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func asTeacher() []string {
	return []string{"Authorization", teacherToken}
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rr).Error
}
