package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/course-platform/internal/models"
)

type fakeCourseReader struct {
	course *models.Course
	err    error
}

func (r *fakeCourseReader) ReadCourse(_ context.Context, _ int64) (*models.Course, error) {
	return r.course, r.err
}

type fakeQueue struct {
	jobs []any
	err  error
}

func (q *fakeQueue) Enqueue(message any) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, message)
	return nil
}

func TestDispatchIfDue_Enqueues(t *testing.T) {
	reader := &fakeCourseReader{course: &models.Course{ID: 7, Name: "Go для начинающих"}}
	queue := &fakeQueue{}
	dispatcher := NewDispatcher(reader, queue, discardLogger())

	due, err := dispatcher.DispatchIfDue(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, due)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, CourseUpdateJob{CourseID: 7}, queue.jobs[0])
}

func TestDispatchIfDue_SkipsSilentlyWhenThrottled(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Hour)
	reader := &fakeCourseReader{course: &models.Course{ID: 7, LastNotificationSent: &recent}}
	queue := &fakeQueue{}
	dispatcher := NewDispatcher(reader, queue, discardLogger())

	due, err := dispatcher.DispatchIfDue(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, due)
	assert.Empty(t, queue.jobs)
}

func TestDispatch_ThrottledIsError(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Hour)
	reader := &fakeCourseReader{course: &models.Course{ID: 7, LastNotificationSent: &recent}}
	queue := &fakeQueue{}
	dispatcher := NewDispatcher(reader, queue, discardLogger())

	err := dispatcher.Dispatch(context.Background(), 7)
	require.ErrorIs(t, err, ErrThrottled)
	assert.Empty(t, queue.jobs)
}

func TestDispatch_QueueFailure(t *testing.T) {
	reader := &fakeCourseReader{course: &models.Course{ID: 7}}
	queue := &fakeQueue{err: errors.New("channel closed")}
	dispatcher := NewDispatcher(reader, queue, discardLogger())

	err := dispatcher.Dispatch(context.Background(), 7)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrThrottled)
}

func TestStatus_NeverSent(t *testing.T) {
	reader := &fakeCourseReader{course: &models.Course{ID: 7, Name: "Go для начинающих"}}
	dispatcher := NewDispatcher(reader, &fakeQueue{}, discardLogger())

	status, err := dispatcher.Status(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.CanSend)
	assert.Nil(t, status.LastNotificationSent)
	assert.Nil(t, status.HoursSinceLast)
	assert.Zero(t, status.NextInHours)
}

func TestStatus_DuringCooldown(t *testing.T) {
	sentAt := time.Now().UTC().Add(-time.Hour)
	reader := &fakeCourseReader{course: &models.Course{ID: 7, Name: "Go для начинающих", LastNotificationSent: &sentAt}}
	dispatcher := NewDispatcher(reader, &fakeQueue{}, discardLogger())

	status, err := dispatcher.Status(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, status.CanSend)
	require.NotNil(t, status.HoursSinceLast)
	assert.InDelta(t, 1.0, *status.HoursSinceLast, 0.1)
	assert.InDelta(t, 3.0, status.NextInHours, 0.1)
}
