package models

import "time"

// CourseSubscription — запись о подписке пользователя на обновления курса.
// Сам факт существования строки означает «подписан», дубликатов для пары
// (пользователь, курс) не бывает.
type CourseSubscription struct {
	ID        int64     // Идентификатор записи
	UserUID   string    // Подписчик
	CourseID  int64     // Курс
	CreatedAt time.Time // Дата оформления подписки
}

// DummyToggle используется для приёма запроса на переключение подписки.
type DummyToggle struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0"` // Идентификатор курса
}

// ToggleResult — результат переключения подписки.
type ToggleResult struct {
	Message            string `json:"message"`
	SubscriptionStatus bool   `json:"subscription_status"`
	CourseID           int64  `json:"course_id"`
	CourseName         string `json:"course_name"`
}

// SubscriptionInfo — представление подписки в списке подписок пользователя.
type SubscriptionInfo struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course"`
	CourseName string `json:"course_title"`
	UserEmail  string `json:"user_email"`
}
