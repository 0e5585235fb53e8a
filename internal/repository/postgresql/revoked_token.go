package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
)

type revokedTokenRepositoryImpl struct {
	db *database.DB
}

func NewRevokedTokenRepository(db *database.DB) auth.RevokedTokenRepository {
	return &revokedTokenRepositoryImpl{db: db}
}

// hashToken keeps raw bearer tokens out of the table.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Revoke implements auth.RevokedTokenRepository.
func (r *revokedTokenRepositoryImpl) Revoke(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO revoked_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, hashToken(token), userID, expiresAt.UTC()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements auth.RevokedTokenRepository.
func (r *revokedTokenRepositoryImpl) IsRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var revoked bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token_hash = $1)`, hashToken(token)).Scan(&revoked)
	if err != nil {
		return false, err
	}
	return revoked, nil
}

// PruneExpired implements auth.RevokedTokenRepository.
func (r *revokedTokenRepositoryImpl) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
