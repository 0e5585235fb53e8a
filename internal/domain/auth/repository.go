package auth

import (
	"context"
	"time"
)

// RevokedTokenRepository stores access tokens presented at logout until they expire.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, userID string, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	// PruneExpired forgets revocations of tokens that expired before now.
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}
