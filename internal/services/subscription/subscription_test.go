package subscription

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

type fakeRepo struct {
	courses    map[int64]*models.Course
	subscribed map[string]bool
}

func newFakeRepo(courses ...*models.Course) *fakeRepo {
	r := &fakeRepo{
		courses:    make(map[int64]*models.Course),
		subscribed: make(map[string]bool),
	}
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeRepo) key(userUID string, courseID int64) string {
	return fmt.Sprintf("%s/%d", userUID, courseID)
}

func (r *fakeRepo) ReadCourse(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return course, nil
}

func (r *fakeRepo) ToggleSubscription(_ context.Context, userUID string, courseID int64) (bool, error) {
	k := r.key(userUID, courseID)
	if r.subscribed[k] {
		delete(r.subscribed, k)
		return false, nil
	}
	r.subscribed[k] = true
	return true, nil
}

func (r *fakeRepo) ListSubscriptions(_ context.Context, _ string) ([]*models.SubscriptionInfo, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestToggle_SubscribeThenUnsubscribe(t *testing.T) {
	repo := newFakeRepo(&models.Course{ID: 7, Name: "Go для начинающих"})
	service := New(repo, discardLogger())

	first, err := service.Toggle(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.True(t, first.SubscriptionStatus)
	assert.Equal(t, "Подписка добавлена", first.Message)
	assert.Equal(t, "Go для начинающих", first.CourseName)

	second, err := service.Toggle(context.Background(), "user-1", 7)
	require.NoError(t, err)
	assert.False(t, second.SubscriptionStatus)
	assert.Equal(t, "Подписка удалена", second.Message)
}

func TestToggle_CourseNotFound(t *testing.T) {
	service := New(newFakeRepo(), discardLogger())

	_, err := service.Toggle(context.Background(), "user-1", 404)
	require.ErrorIs(t, err, ErrCourseNotFound)
}
