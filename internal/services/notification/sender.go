package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/lib/smtp"
	"github.com/daniilsolovey/course-platform/internal/storage/repository"
)

var (
	emailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_platform_notification_emails_sent_total",
		Help: "Количество успешно отправленных писем об обновлении курсов.",
	})
	emailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_platform_notification_emails_failed_total",
		Help: "Количество писем об обновлении курсов, которые не удалось отправить.",
	})
)

// SenderRepository — доступ воркера рассылки к хранилищу.
type SenderRepository interface {
	CourseReader
	ListSubscriberEmails(ctx context.Context, courseID int64) ([]string, error)
	SetLastNotificationSent(ctx context.Context, id int64, sentAt time.Time) error
}

// SenderService отправляет письма подписчикам по задачам из очереди.
type SenderService struct {
	repo      SenderRepository
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(repo SenderRepository, transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		repo:      repo,
		transport: transport,
		log:       log,
	}
}

// SendCourseUpdate обрабатывает одну задачу рассылки.
//
// Курс перечитывается и охлаждение перепроверяется: между постановкой задачи
// и её исполнением курс могли удалить или уже разослать уведомления. Письма
// отправляются по одному на подписчика; отдельные сбои отправки считаются
// и логируются, но не прерывают пакет и не отменяют обновление метки времени.
// Если подписчиков нет, метка времени не трогается: «некому отправлять» —
// не то же самое, что «отправлено».
func (s *SenderService) SendCourseUpdate(body []byte) error {
	const op = "notification.SendCourseUpdate"
	ctx := context.Background()

	var job CourseUpdateJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	course, err := s.repo.ReadCourse(ctx, job.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Курс удалили после постановки задачи, повторять бессмысленно.
			s.log.Error("course not found, dropping notification job",
				slog.Int64("course_id", job.CourseID))
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	if !course.ShouldSendNotification(now) {
		s.log.Info("notification throttled on recheck", slog.Int64("course_id", course.ID))
		return nil
	}

	emails, err := s.repo.ListSubscriberEmails(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(emails) == 0 {
		s.log.Info("no subscribers for course", slog.String("course", course.Name))
		return nil
	}

	sent := 0
	for _, email := range emails {
		if err := s.sendEmail([]string{email},
			"Курс обновлен",
			fmt.Sprintf("Курс «%s» обновлен.", course.Name),
		); err != nil {
			emailsFailed.Inc()
			s.log.Error("failed to send email", slog.String("recipient", email), sl.Err(err))
			continue
		}
		emailsSent.Inc()
		sent++
	}

	if err := s.repo.SetLastNotificationSent(ctx, course.ID, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("course update notifications sent",
		slog.String("course", course.Name),
		slog.Int("sent", sent),
		slog.Int("failed", len(emails)-sent))
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
