package notification

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/course-platform/internal/lib/smtp"
	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

type fakeSenderRepo struct {
	course      *models.Course
	emails      []string
	stampedAt   *time.Time
	stampCourse int64
}

func (r *fakeSenderRepo) ReadCourse(_ context.Context, id int64) (*models.Course, error) {
	if r.course == nil || r.course.ID != id {
		return nil, repository.ErrNotFound
	}
	return r.course, nil
}

func (r *fakeSenderRepo) ListSubscriberEmails(_ context.Context, _ int64) ([]string, error) {
	return r.emails, nil
}

func (r *fakeSenderRepo) SetLastNotificationSent(_ context.Context, id int64, sentAt time.Time) error {
	r.stampedAt = &sentAt
	r.stampCourse = id
	return nil
}

// fakeClient пишет письмо в буфер; Rcpt для адресов из failRcpt возвращает ошибку.
type fakeClient struct {
	failRcpt map[string]bool
	written  *bytes.Buffer
}

func (c *fakeClient) Mail(_ string) error { return nil }

func (c *fakeClient) Rcpt(to string) error {
	if c.failRcpt[to] {
		return errors.New("mailbox unavailable")
	}
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (c *fakeClient) Data() (io.WriteCloser, error) { return nopWriteCloser{c.written}, nil }
func (c *fakeClient) Quit() error                   { return nil }
func (c *fakeClient) Close() error                  { return nil }

type fakeTransport struct {
	connects int
	failRcpt map[string]bool
	written  bytes.Buffer
}

func (t *fakeTransport) Connect() (smtp.Client, error) {
	t.connects++
	return &fakeClient{failRcpt: t.failRcpt, written: &t.written}, nil
}

func (t *fakeTransport) GetSMTPUser() string { return "noreply@example.com" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendCourseUpdate_SendsToAllSubscribers(t *testing.T) {
	repo := &fakeSenderRepo{
		course: &models.Course{ID: 7, Name: "Go для начинающих"},
		emails: []string{"first@example.com", "second@example.com"},
	}
	transport := &fakeTransport{}
	service := NewSenderService(repo, transport, discardLogger())

	err := service.SendCourseUpdate([]byte(`{"course_id":7}`))
	require.NoError(t, err)

	assert.Equal(t, 2, transport.connects)
	assert.Contains(t, transport.written.String(), "Курс «Go для начинающих» обновлен.")
	require.NotNil(t, repo.stampedAt)
	assert.Equal(t, int64(7), repo.stampCourse)
}

func TestSendCourseUpdate_CourseGone(t *testing.T) {
	repo := &fakeSenderRepo{}
	transport := &fakeTransport{}
	service := NewSenderService(repo, transport, discardLogger())

	// Курс удалён после постановки задачи: задача снимается без повтора
	err := service.SendCourseUpdate([]byte(`{"course_id":7}`))
	require.NoError(t, err)
	assert.Zero(t, transport.connects)
	assert.Nil(t, repo.stampedAt)
}

func TestSendCourseUpdate_ThrottledOnRecheck(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Hour)
	repo := &fakeSenderRepo{
		course: &models.Course{ID: 7, Name: "Go для начинающих", LastNotificationSent: &recent},
		emails: []string{"first@example.com"},
	}
	transport := &fakeTransport{}
	service := NewSenderService(repo, transport, discardLogger())

	err := service.SendCourseUpdate([]byte(`{"course_id":7}`))
	require.NoError(t, err)
	assert.Zero(t, transport.connects)
	assert.Nil(t, repo.stampedAt)
}

func TestSendCourseUpdate_NoSubscribers_KeepsTimestamp(t *testing.T) {
	repo := &fakeSenderRepo{
		course: &models.Course{ID: 7, Name: "Go для начинающих"},
	}
	transport := &fakeTransport{}
	service := NewSenderService(repo, transport, discardLogger())

	err := service.SendCourseUpdate([]byte(`{"course_id":7}`))
	require.NoError(t, err)

	// «Некому отправлять» не считается рассылкой, охлаждение не запускается
	assert.Zero(t, transport.connects)
	assert.Nil(t, repo.stampedAt)
}

func TestSendCourseUpdate_PartialFailureStillStamps(t *testing.T) {
	repo := &fakeSenderRepo{
		course: &models.Course{ID: 7, Name: "Go для начинающих"},
		emails: []string{"dead@example.com", "alive@example.com"},
	}
	transport := &fakeTransport{failRcpt: map[string]bool{"dead@example.com": true}}
	service := NewSenderService(repo, transport, discardLogger())

	err := service.SendCourseUpdate([]byte(`{"course_id":7}`))
	require.NoError(t, err)

	assert.Equal(t, 2, transport.connects)
	assert.Contains(t, transport.written.String(), "Курс «Go для начинающих» обновлен.")
	require.NotNil(t, repo.stampedAt)
}

func TestSendCourseUpdate_BadPayload(t *testing.T) {
	service := NewSenderService(&fakeSenderRepo{}, &fakeTransport{}, discardLogger())

	err := service.SendCourseUpdate([]byte(`not json`))
	require.Error(t, err)
}
