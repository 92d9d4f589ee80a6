package notificationsend

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daniilsolovey/course-platform/internal/http/middlewarectx"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/services/course"
	"github.com/daniilsolovey/course-platform/internal/services/notification"
)

// MockCourseService реализует интерфейс notificationsend.CourseService
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

// MockNotificationService реализует интерфейс notificationsend.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, courseID int64) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

func TestSendHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	owner := &models.Actor{UID: "owner-1", Role: models.RoleMember}
	ownedCourse := &models.Course{ID: 5, Name: "Go", OwnerUID: "owner-1"}

	tests := []struct {
		name           string
		courseID       string
		actor          *models.Actor
		setupCourses   func(*MockCourseService)
		setupNotifier  func(*MockNotificationService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "рассылка поставлена в очередь",
			courseID: "5",
			actor:    owner,
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(5)).Return(ownedCourse, nil)
			},
			setupNotifier: func(m *MockNotificationService) {
				m.On("Dispatch", mock.Anything, int64(5)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"notification enqueued"`,
		},
		{
			name:     "охлаждение не истекло",
			courseID: "5",
			actor:    owner,
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(5)).Return(ownedCourse, nil)
			},
			setupNotifier: func(m *MockNotificationService) {
				m.On("Dispatch", mock.Anything, int64(5)).Return(notification.ErrThrottled)
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"status":"Error","error":"notification cooldown is active"}`,
		},
		{
			name:     "курс не найден",
			courseID: "404",
			actor:    owner,
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(404)).Return(nil, course.ErrCourseNotFound)
			},
			setupNotifier:  func(_ *MockNotificationService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"course not found"}`,
		},
		{
			name:     "не владелец тоже может разослать",
			courseID: "5",
			actor:    &models.Actor{UID: "stranger", Role: models.RoleMember},
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(5)).Return(ownedCourse, nil)
			},
			setupNotifier: func(m *MockNotificationService) {
				m.On("Dispatch", mock.Anything, int64(5)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"notification enqueued"`,
		},
		{
			name:           "не авторизован",
			courseID:       "5",
			actor:          nil,
			setupCourses:   func(_ *MockCourseService) {},
			setupNotifier:  func(_ *MockNotificationService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректный id",
			courseID:       "abc",
			actor:          owner,
			setupCourses:   func(_ *MockCourseService) {},
			setupNotifier:  func(_ *MockNotificationService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCourses := new(MockCourseService)
			mockNotifier := new(MockNotificationService)
			tt.setupCourses(mockCourses)
			tt.setupNotifier(mockNotifier)

			handler := New(logger, mockCourses, mockNotifier)

			req := httptest.NewRequest(http.MethodPost, "/courses/"+tt.courseID+"/notifications", nil)

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.actor != nil {
				ctx = context.WithValue(ctx, middlewarectx.ActorKey, tt.actor)
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.courseID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockCourses.AssertExpectations(t)
			mockNotifier.AssertExpectations(t)
		})
	}
}
