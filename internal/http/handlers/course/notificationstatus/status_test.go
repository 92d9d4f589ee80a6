package notificationstatus

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
)

// MockCourseService реализует интерфейс notificationstatus.CourseService
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

// MockNotificationService реализует интерфейс notificationstatus.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Status(ctx context.Context, courseID int64) (*models.NotificationStatus, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationStatus), args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

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
			name:     "статус доступен любому аутентифицированному",
			courseID: "5",
			actor:    &models.Actor{UID: "stranger", Role: models.RoleMember},
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(5)).Return(ownedCourse, nil)
			},
			setupNotifier: func(m *MockNotificationService) {
				m.On("Status", mock.Anything, int64(5)).Return(&models.NotificationStatus{
					CourseID:   5,
					CourseName: "Go",
					CanSend:    true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"can_send_notification":true`,
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
			name:     "курс не найден",
			courseID: "404",
			actor:    &models.Actor{UID: "stranger", Role: models.RoleMember},
			setupCourses: func(m *MockCourseService) {
				m.On("GetCourse", mock.Anything, int64(404)).Return(nil, course.ErrCourseNotFound)
			},
			setupNotifier:  func(_ *MockNotificationService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"course not found"}`,
		},
		{
			name:           "некорректный id",
			courseID:       "abc",
			actor:          &models.Actor{UID: "stranger", Role: models.RoleMember},
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

			req := httptest.NewRequest(http.MethodGet, "/courses/"+tt.courseID+"/notifications", nil)

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
