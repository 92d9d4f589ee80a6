package models

import "time"

// Lesson представляет урок курса. Урок принадлежит ровно одному курсу,
// владелец фиксируется при создании.
type Lesson struct {
	ID          int64     // Идентификатор урока
	Name        string    // Название урока
	Description string    // Описание урока
	Photo       string    // Путь к фото урока
	VideoURL    string    // Ссылка на видео (только разрешённый видеохостинг)
	CourseID    int64     // Курс, которому принадлежит урок
	OwnerUID    string    // Владелец урока
	CreatedAt   time.Time // Дата создания
}

// DummyLesson используется для приёма данных урока из JSON-запроса.
type DummyLesson struct {
	Name        string `json:"name" validate:"required,max=100"`         // Название урока
	Description string `json:"description" validate:"required,max=1000"` // Описание урока
	Photo       string `json:"photo,omitempty"`                          // Фото урока (опционально)
	VideoURL    string `json:"url,omitempty"`                            // Ссылка на видео (опционально)
	CourseID    int64  `json:"course_id" validate:"required,gt=0"`       // Курс урока
}

// DummyLessonUpdate используется для частичного обновления урока.
// Нулевые указатели означают «поле не менять».
type DummyLessonUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Photo       *string `json:"photo,omitempty"`
	VideoURL    *string `json:"url,omitempty"`
}

// LessonInfo — представление урока в ответах API.
type LessonInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
	VideoURL    string `json:"url,omitempty"`
	CourseID    int64  `json:"course_id"`
	OwnerUID    string `json:"owner_uid"`
}
