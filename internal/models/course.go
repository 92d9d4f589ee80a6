package models

import "time"

// NotificationCooldown — минимальный интервал между рассылками уведомлений
// подписчикам одного курса.
const NotificationCooldown = 4 * time.Hour

// Course представляет курс платформы. Владелец фиксируется при создании
// и далее не меняется.
type Course struct {
	ID                   int64      // Идентификатор курса
	Name                 string     // Название курса
	Description          string     // Описание курса
	Photo                string     // Путь к фото курса
	OwnerUID             string     // Владелец курса
	LastNotificationSent *time.Time // Время последней рассылки уведомлений, nil — рассылок не было
	CreatedAt            time.Time  // Дата создания
}

// ShouldSendNotification сообщает, можно ли отправить подписчикам курса
// новое уведомление. Разрешено, если рассылок ещё не было или с последней
// прошло больше NotificationCooldown.
//
// Единственная точка расчёта охлаждения: статусная ручка и фоновая задача
// обязаны пользоваться этим методом, а не считать интервал самостоятельно.
func (c *Course) ShouldSendNotification(now time.Time) bool {
	if c.LastNotificationSent == nil {
		return true
	}
	return now.Sub(*c.LastNotificationSent) > NotificationCooldown
}

// DummyCourse используется для приёма данных курса из JSON-запроса.
type DummyCourse struct {
	Name        string `json:"name" validate:"required,max=100"`         // Название курса
	Description string `json:"description" validate:"required,max=1000"` // Описание курса
	Photo       string `json:"photo,omitempty"`                          // Фото курса (опционально)
}

// DummyCourseUpdate используется для частичного обновления курса.
// Нулевые указатели означают «поле не менять».
type DummyCourseUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Photo       *string `json:"photo,omitempty"`
}

// CourseInfo — представление курса в ответах API, дополненное уроками.
type CourseInfo struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Photo       string       `json:"photo,omitempty"`
	OwnerUID    string       `json:"owner_uid"`
	LessonCount int          `json:"count_lessons_in_course"`
	Lessons     []LessonInfo `json:"lessons"`
}

// NotificationStatus — ответ статусной ручки охлаждения уведомлений.
type NotificationStatus struct {
	CourseID             int64      `json:"course_id"`
	CourseName           string     `json:"course_name"`
	CanSend              bool       `json:"can_send_notification"`
	LastNotificationSent *time.Time `json:"last_notification_sent"`
	HoursSinceLast       *float64   `json:"hours_since_last_notification"`
	NextInHours          float64    `json:"next_notification_in_hours"`
}
