// Package permissions содержит предикаты доступа к курсам и урокам.
//
// Правила:
//   - создавать материалы может любой аутентифицированный пользователь,
//     кроме модераторов — модераторы курируют чужие материалы, а не пишут свои;
//   - читать и обновлять материал может владелец или модератор;
//   - удалять материал может владелец; модератор без владения в удалении
//     отказывается всегда, владение перекрывает запрет.
//
// Предикаты чистые: без состояния и побочных эффектов, вычисляются на каждый
// запрос. Неаутентифицированные запросы отсекаются middleware до этих проверок.
package permissions

import "github.com/daniilsolovey/course-platform/internal/models"

// IsOwner сообщает, является ли actor владельцем ресурса.
func IsOwner(actor models.Actor, ownerUID string) bool {
	return actor.UID == ownerUID
}

// CanCreate разрешает создание курса или урока.
func CanCreate(actor models.Actor) bool {
	return !actor.IsModerator()
}

// CanRetrieve разрешает чтение курса или урока.
func CanRetrieve(actor models.Actor, ownerUID string) bool {
	return IsOwner(actor, ownerUID) || actor.IsModerator()
}

// CanUpdate разрешает обновление курса или урока.
func CanUpdate(actor models.Actor, ownerUID string) bool {
	return IsOwner(actor, ownerUID) || actor.IsModerator()
}

// CanDelete разрешает удаление курса или урока.
func CanDelete(actor models.Actor, ownerUID string) bool {
	return IsOwner(actor, ownerUID) || !actor.IsModerator()
}
