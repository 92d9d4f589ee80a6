package create

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daniilsolovey/course-platform/internal/http/middlewarectx"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/services/lesson"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerUID string, req models.DummyLesson) (int64, error) {
	args := m.Called(ctx, ownerUID, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		actor          *models.Actor
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание урока",
			requestBody: models.DummyLesson{
				Name:        "Введение",
				Description: "Первый урок",
				VideoURL:    "https://www.youtube.com/watch?v=abc",
				CourseID:    1,
			},
			actor: &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummyLesson")).
					Return(int64(10), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":10`,
		},
		{
			name: "ссылка на сторонний видеохостинг",
			requestBody: models.DummyLesson{
				Name:        "Введение",
				Description: "Первый урок",
				VideoURL:    "https://rutube.ru/video/abc",
				CourseID:    1,
			},
			actor: &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummyLesson")).
					Return(int64(0), lesson.ErrInvalidVideoLink)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"video link must point to youtube.com"}`,
		},
		{
			name: "модератору создание запрещено",
			requestBody: models.DummyLesson{
				Name:        "Введение",
				Description: "Первый урок",
				CourseID:    1,
			},
			actor:          &models.Actor{UID: "mod-1", Role: models.RoleModerator},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"moderators cannot create lessons"}`,
		},
		{
			name: "курс не найден",
			requestBody: models.DummyLesson{
				Name:        "Введение",
				Description: "Первый урок",
				CourseID:    404,
			},
			actor: &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummyLesson")).
					Return(int64(0), lesson.ErrCourseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"course not found"}`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    models.DummyLesson{Name: "", Description: "", CourseID: 0},
			actor:          &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/lessons/create", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.actor != nil {
				ctx = context.WithValue(ctx, middlewarectx.ActorKey, tt.actor)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
