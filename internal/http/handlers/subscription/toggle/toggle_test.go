package toggle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	"github.com/daniilsolovey/course-platform/internal/services/subscription"
)

// MockService реализует интерфейс toggle.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Toggle(ctx context.Context, userUID string, courseID int64) (*models.ToggleResult, error) {
	args := m.Called(ctx, userUID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleResult), args.Error(1)
}

func TestToggleHandler(t *testing.T) {
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
			name:        "подписка добавлена",
			requestBody: models.DummyToggle{CourseID: 7},
			actor:       &models.Actor{UID: "user-1", Email: "u@example.com", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "user-1", int64(7)).
					Return(&models.ToggleResult{
						Message:            "Подписка добавлена",
						SubscriptionStatus: true,
						CourseID:           7,
						CourseName:         "Go",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Подписка добавлена"`,
		},
		{
			name:        "подписка удалена",
			requestBody: models.DummyToggle{CourseID: 7},
			actor:       &models.Actor{UID: "user-1", Email: "u@example.com", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "user-1", int64(7)).
					Return(&models.ToggleResult{
						Message:            "Подписка удалена",
						SubscriptionStatus: false,
						CourseID:           7,
						CourseName:         "Go",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Подписка удалена"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			actor:          &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummyToggle{CourseID: 7},
			actor:          nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "отсутствует course_id",
			requestBody:    models.DummyToggle{CourseID: 0},
			actor:          &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field CourseID is a required field`,
		},
		{
			name:        "курс не найден",
			requestBody: models.DummyToggle{CourseID: 404},
			actor:       &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "user-1", int64(404)).
					Return(nil, subscription.ErrCourseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"course not found"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummyToggle{CourseID: 7},
			actor:       &models.Actor{UID: "user-1", Role: models.RoleMember},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "user-1", int64(7)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not toggle subscription"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewReader(body))
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
