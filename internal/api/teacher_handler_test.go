package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/lumen-api/internal/api/middleware"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/phrazzld/lumen-api/internal/mocks"
	"github.com/phrazzld/lumen-api/internal/service"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTeacherMaterials(t *testing.T) {
	gen := &mocks.MockLessonGenerator{
		GenerateTeacherMaterialsFn: func(_ context.Context, fileName string) (*domain.Lesson, error) {
			return domain.NewLesson(service.LessonTitleFromFileName(fileName), service.TeacherUploadSubject, "Body", nil)
		},
	}

	t.Run("created for a teacher", func(t *testing.T) {
		rr := do(t, newTestRouter(Services{Generator: gen}), http.MethodPost, "/teacher/materials",
			`{"file_name":"cell-biology.pdf"}`, asTeacher()...)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		lesson := decodeBody[domain.Lesson](t, rr)
		assert.Equal(t, "cell-biology", lesson.Title)
		assert.Equal(t, service.TeacherUploadSubject, lesson.Subject)
		assert.Equal(t, []string{"cell-biology.pdf"}, gen.FileNames)
	})

	t.Run("forbidden for other roles", func(t *testing.T) {
		student := &mocks.MockJWTService{Claims: &auth.Claims{Subject: "pupil", Role: "student"}}
		router := Routes(testServices(Services{Generator: gen}), middleware.NewAuthMiddleware(student), discardLogger())

		rr := do(t, router, http.MethodPost, "/teacher/materials", `{"file_name":"x.pdf"}`, asTeacher()...)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Teacher access required", errorMessage(t, rr))
	})

	t.Run("file name required", func(t *testing.T) {
		rr := do(t, newTestRouter(Services{Generator: gen}), http.MethodPost, "/teacher/materials", `{}`, asTeacher()...)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid file_name: required field", errorMessage(t, rr))
	})
}
