package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-attendance-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds the connection used by the repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureSchema(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

// TruncateAllTables removes every row, children first.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"revoked_tokens",
		"tasks",
		"position_movements",
		"positions",
		"org_units",
		"work_schedule_days",
		"leave_requests",
		"attendance_events",
		"users",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateUser inserts a user with the given role and returns it.
func (s *TestDatabaseSetup) CreateUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()

	hash := "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold"
	created, err := postgresql.NewUserRepository(s.DB).Create(context.Background(), user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		FirstName:    "Test",
		LastName:     string(role),
		Email:        email,
		PasswordHash: &hash,
		Status:       user.StatusActive,
		Role:         role,
	})
	require.NoError(t, err)
	return created
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
