package cron

import (
	"context"
	"log/slog"
	"time"
)

// RevocationPruner is implemented by the revoked token repository.
type RevocationPruner interface {
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

type TokenJobs struct {
	pruner RevocationPruner
	now    func() time.Time
}

func NewTokenJobs(pruner RevocationPruner, now func() time.Time) *TokenJobs {
	if now == nil {
		now = time.Now
	}
	return &TokenJobs{pruner: pruner, now: now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("prune_revoked_tokens", interval, j.PruneRevokedTokens)
}

// PruneRevokedTokens forgets revoked tokens that have expired on their own.
func (j *TokenJobs) PruneRevokedTokens(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := j.pruner.PruneExpired(ctx, j.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Pruned revoked tokens", "count", n)
	}
	return nil
}
