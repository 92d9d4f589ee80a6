package models

import "time"

// User представляет зарегистрированного пользователя платформы.
// Идентификация ведётся по email, поле Username отсутствует намеренно.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта (уникальная)
	PasswordHash string     // Хэш пароля пользователя
	Name         string     // Имя
	Phone        string     // Телефон
	City         string     // Город
	Avatar       string     // Путь к файлу аватара
	IsActive     bool       // Признак активности учётной записи
	IsStaff      bool       // Признак сотрудника
	IsModerator  bool       // Членство в группе модераторов
	LastLogin    *time.Time // Дата последнего входа
	CreatedAt    time.Time  // Дата регистрации
}

// Role возвращает роль пользователя для claims токена.
func (u *User) Role() string {
	if u.IsModerator {
		return RoleModerator
	}
	return RoleMember
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"`    // Электронная почта
	Password string `json:"password" validate:"required,min=6"` // Пароль
	Name     string `json:"name,omitempty"`                     // Имя (опционально)
	Phone    string `json:"phone,omitempty"`                    // Телефон (опционально)
	City     string `json:"city,omitempty"`                     // Город (опционально)
}

// DummyUserUpdate используется для частичного обновления профиля.
// Нулевые указатели означают «поле не менять».
type DummyUserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// UserInfo — публичное представление пользователя в ответах API.
type UserInfo struct {
	UID       string     `json:"uid"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	City      string     `json:"city,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
