package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokedTokenRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewRevokedTokenRepository(setup.DB)
	ctx := context.Background()

	staff := setup.CreateUser(t, "staff@example.com", user.RoleStaff)
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Revoke(ctx, staff.ID, "expired-token", now.Add(-time.Minute)))
	require.NoError(t, repo.Revoke(ctx, staff.ID, "live-token", now.Add(time.Hour)))
	// Logging out twice with the same token is harmless
	require.NoError(t, repo.Revoke(ctx, staff.ID, "live-token", now.Add(time.Hour)))

	for token, want := range map[string]bool{"expired-token": true, "live-token": true, "other-token": false} {
		revoked, err := repo.IsRevoked(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, want, revoked, token)
	}

	pruned, err := repo.PruneExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	revoked, err := repo.IsRevoked(ctx, "expired-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "live-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}
