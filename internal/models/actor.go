// Package models содержит доменные структуры платформы курсов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Роли пользователей платформы.
const (
	// RoleMember — обычный участник платформы.
	RoleMember = "member"
	// RoleModerator — модератор: курирует чужие курсы, но не создаёт и не удаляет их.
	RoleModerator = "moderator"
)

// Actor представляет аутентифицированного пользователя, выполняющего запрос.
// Заполняется middleware из claims токена.
type Actor struct {
	UID   string // Уникальный идентификатор пользователя
	Email string // Электронная почта
	Role  string // Роль: member или moderator
}

// IsModerator сообщает, входит ли пользователь в группу модераторов.
func (a Actor) IsModerator() bool {
	return a.Role == RoleModerator
}
