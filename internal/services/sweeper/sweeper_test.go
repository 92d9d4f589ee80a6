package sweeper

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUser struct {
	lastLogin time.Time
	active    bool
}

type fakeRepo struct {
	users map[string]*fakeUser
}

func (r *fakeRepo) DeactivateInactiveUsers(_ context.Context, cutoff time.Time) (int, error) {
	blocked := 0
	for _, u := range r.users {
		if u.active && u.lastLogin.Before(cutoff) {
			u.active = false
			blocked++
		}
	}
	return blocked, nil
}

func TestSweep_BlocksOnlyUsersPastThreshold(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{users: map[string]*fakeUser{
		"forty-days":  {lastLogin: now.Add(-40 * 24 * time.Hour), active: true},
		"thirty-one":  {lastLogin: now.Add(-31 * 24 * time.Hour), active: true},
		"twenty-days": {lastLogin: now.Add(-20 * 24 * time.Hour), active: true},
	}}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(repo, 24*time.Hour, 30*24*time.Hour, log)

	result, err := s.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, 2, result.UsersBlocked)
	assert.False(t, repo.users["forty-days"].active)
	assert.False(t, repo.users["thirty-one"].active)
	assert.True(t, repo.users["twenty-days"].active)

	// Повторный проход никого не трогает: неактивные уже заблокированы.
	again, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.UsersBlocked)
}
