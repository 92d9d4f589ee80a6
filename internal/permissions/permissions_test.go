package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daniilsolovey/course-platform/internal/models"
)

const ownerUID = "owner-uid"

func member(uid string) models.Actor {
	return models.Actor{UID: uid, Role: models.RoleMember}
}

func moderator(uid string) models.Actor {
	return models.Actor{UID: uid, Role: models.RoleModerator}
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		name         string
		actor        models.Actor
		wantCreate   bool
		wantRetrieve bool
		wantUpdate   bool
		wantDelete   bool
	}{
		{
			name:         "владелец без роли модератора",
			actor:        member(ownerUID),
			wantCreate:   true,
			wantRetrieve: true,
			wantUpdate:   true,
			wantDelete:   true,
		},
		{
			name:         "посторонний участник",
			actor:        member("stranger-uid"),
			wantCreate:   true,
			wantRetrieve: false,
			wantUpdate:   false,
			wantDelete:   false,
		},
		{
			name:         "модератор, не владелец",
			actor:        moderator("moderator-uid"),
			wantCreate:   false,
			wantRetrieve: true,
			wantUpdate:   true,
			wantDelete:   false,
		},
		{
			name:         "владелец с ролью модератора",
			actor:        moderator(ownerUID),
			wantCreate:   false,
			wantRetrieve: true,
			wantUpdate:   true,
			wantDelete:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCreate, CanCreate(tt.actor), "create")
			assert.Equal(t, tt.wantRetrieve, CanRetrieve(tt.actor, ownerUID), "retrieve")
			assert.Equal(t, tt.wantUpdate, CanUpdate(tt.actor, ownerUID), "update")
			// Обработчики удаления сочетают CanRetrieve с CanDelete,
			// таблица описывает итоговое правило.
			assert.Equal(t, tt.wantDelete,
				CanRetrieve(tt.actor, ownerUID) && CanDelete(tt.actor, ownerUID), "delete")
		})
	}
}

// Посторонний участник всё же может удалить чужой ресурс? Нет: правило
// "владелец или не-модератор" применяется после проверки чтения/обновления,
// поэтому удаление постороннего отсекается на CanRetrieve/CanUpdate раньше.
// Предикат CanDelete сам по себе описывает только запрет модераторам.
func TestCanDelete_StrangerMemberAllowedByPredicate(t *testing.T) {
	assert.True(t, CanDelete(member("stranger-uid"), ownerUID))
	assert.False(t, CanDelete(moderator("stranger-uid"), ownerUID))
}
