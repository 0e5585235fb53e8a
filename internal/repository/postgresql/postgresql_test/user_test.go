package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	created := setup.CreateUser(t, "ana@example.com", user.RoleStaff)
	assert.Equal(t, user.StatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("get by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, user.RoleStaff, got.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := created
		dup.ID = newID()
		_, err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, newID())
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		exists, err := repo.ExistsByID(ctx, newID())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lock inside transaction", func(t *testing.T) {
		tx := postgresql.NewTransactor(setup.DB)
		err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			locked, err := repo.LockByID(txCtx, created.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, created.Email, locked.Email)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("update keeps the row and checks email uniqueness", func(t *testing.T) {
		other := setup.CreateUser(t, "other@example.com", user.RoleStaff)

		other.FirstName = "Renamed"
		other.Status = user.StatusInactive
		updated, err := repo.Update(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.FirstName)
		assert.Equal(t, user.StatusInactive, updated.Status)

		stored, err := repo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusInactive, stored.Status)

		other.Email = created.Email
		_, err = repo.Update(ctx, other)
		assert.ErrorIs(t, err, user.ErrUserEmailExists)

		ghost := other
		ghost.ID = newID()
		ghost.Email = "ghost@example.com"
		_, err = repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}
