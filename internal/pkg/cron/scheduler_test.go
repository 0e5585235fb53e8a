package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	calls atomic.Int32
	at    time.Time
	err   error
}

func (f *fakePruner) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	f.calls.Add(1)
	f.at = now
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func TestRunOnce(t *testing.T) {
	s := NewScheduler()
	pruner := &fakePruner{}
	fixed := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	NewTokenJobs(pruner, func() time.Time { return fixed }).RegisterJobs(s, time.Hour)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), pruner.calls.Load())
	assert.Equal(t, fixed, pruner.at)
}

func TestRunOnce_JoinsFailures(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	s.AddJob("failing", time.Hour, func(ctx context.Context) error { return boom })
	s.AddJob("ok", time.Hour, func(ctx context.Context) error { return nil })

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestPruneRevokedTokens_CancelledContext(t *testing.T) {
	pruner := &fakePruner{}
	jobs := NewTokenJobs(pruner, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, jobs.PruneRevokedTokens(ctx), context.Canceled)
	assert.Equal(t, int32(0), pruner.calls.Load())
}

func TestPruneRevokedTokens_PropagatesStoreError(t *testing.T) {
	down := errors.New("connection refused")
	s := NewScheduler()
	NewTokenJobs(&fakePruner{err: down}, nil).RegisterJobs(s, time.Hour)

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "prune_revoked_tokens")
}
