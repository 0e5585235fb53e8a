package attendance

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mark(f *fixture, actor user.Actor, kind attendance.Kind) (attendance.EventResponse, error) {
	return f.svc.Mark(context.Background(), actor, attendance.MarkRequest{Kind: string(kind)}, strPtr("10.0.0.7"))
}

func dayState(t *testing.T, f *fixture, userID string) attendance.DayState {
	t.Helper()
	events, err := f.repo.ListValidBetween(context.Background(), userID, f.clock.StartOfLocalDay(f.now), f.clock.EndOfLocalDayExclusive(f.now))
	require.NoError(t, err)
	return attendance.DayStateOf(events)
}

func TestMark_DayLifecycle(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))
	assert.Equal(t, attendance.DayEmpty, dayState(t, f, staffID))

	entry, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)
	assert.Equal(t, "ENTRY", entry.Kind)
	assert.Equal(t, "VALID", entry.Status)
	assert.Equal(t, "web", entry.Origin)
	assert.Equal(t, staffID, entry.Owner.ID)
	assert.Nil(t, entry.Reviewer)
	require.NotNil(t, entry.SourceIP)
	assert.Equal(t, "10.0.0.7", *entry.SourceIP)
	assert.Equal(t, attendance.DayOpen, dayState(t, f, staffID))

	f.now = f.now.Add(time.Hour)
	_, err = mark(f, staffActor, attendance.KindEntry)
	assert.ErrorIs(t, err, attendance.ErrSameKindRepeated)
	assert.ErrorIs(t, err, apperror.ErrInvalidRequest)

	f.now = f.now.Add(7 * time.Hour)
	_, err = mark(f, staffActor, attendance.KindExit)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayClosed, dayState(t, f, staffID))

	f.now = f.now.Add(time.Minute)
	_, err = mark(f, staffActor, attendance.KindEntry)
	assert.ErrorIs(t, err, attendance.ErrDayClosed)
	_, err = mark(f, staffActor, attendance.KindExit)
	assert.ErrorIs(t, err, attendance.ErrDayClosed)
}

func TestMark_ExitRequiresEntry(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))

	_, err := mark(f, staffActor, attendance.KindExit)
	assert.ErrorIs(t, err, attendance.ErrExitWithoutEntry)
}

func TestMark_RoundTripLocalTime(t *testing.T) {
	f := newFixture(utc("2025-12-01T14:00:00Z"))

	created, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)

	list, err := f.svc.ListMine(context.Background(), staffActor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "10:00", list[0].LocalTime)
	assert.Equal(t, "2025-12-01", list[0].LocalDate)
	assert.Equal(t, utc("2025-12-01T14:00:00Z"), list[0].OccurredAt)
}

func TestMark_LocalDayBoundary(t *testing.T) {
	// 23:30 local on Dec 1
	f := newFixture(utc("2025-12-02T03:30:00Z"))
	_, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)
	f.now = utc("2025-12-02T03:50:00Z")
	_, err = mark(f, staffActor, attendance.KindExit)
	require.NoError(t, err)

	// 00:00 local on Dec 2 opens a new day
	f.now = utc("2025-12-02T04:00:00Z")
	created, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-02", created.LocalDate)
	assert.Equal(t, "00:00", created.LocalTime)
}

func TestMark_LeaveBlocks(t *testing.T) {
	f := newFixture(utc("2025-12-03T02:00:00Z")) // Dec 2, 22:00 local
	f.leave.spans[staffID] = leave.Spans{{Start: "2025-12-02", End: "2025-12-02"}}

	_, err := mark(f, staffActor, attendance.KindEntry)
	assert.ErrorIs(t, err, attendance.ErrLeaveBlocks)

	// Dec 3 local is not covered
	f.now = utc("2025-12-03T12:00:00Z")
	_, err = mark(f, staffActor, attendance.KindEntry)
	assert.NoError(t, err)
}

func TestMark_Preconditions(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))

	_, err := mark(f, user.Actor{}, attendance.KindEntry)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = mark(f, user.Actor{UserID: ghostID, Role: user.RoleStaff}, attendance.KindEntry)
	assert.ErrorIs(t, err, attendance.ErrUserDoesNotExist)

	_, err = f.svc.Mark(context.Background(), staffActor, attendance.MarkRequest{Kind: "LUNCH"}, nil)
	assert.ErrorIs(t, err, attendance.ErrInvalidKind)

	resp, err := f.svc.Mark(context.Background(), staffActor, attendance.MarkRequest{Kind: "ENTRY", Origin: strPtr("app")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "app", resp.Origin)
	assert.Nil(t, resp.SourceIP)
}

func TestMark_AlternationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []attendance.Kind{attendance.KindEntry, attendance.KindExit}

	for round := 0; round < 50; round++ {
		f := newFixture(utc("2025-12-01T11:00:00Z"))
		exitSeen := false
		for i := 0; i < 12; i++ {
			f.now = f.now.Add(time.Duration(1+rng.Intn(30)) * time.Minute)
			_, err := mark(f, staffActor, kinds[rng.Intn(2)])
			if exitSeen {
				require.ErrorIs(t, err, attendance.ErrDayClosed)
			}
			if err == nil {
				exitSeen = exitSeen || dayState(t, f, staffID) == attendance.DayClosed
			}
		}

		events, err := f.repo.ListValidBetween(context.Background(), staffID, f.clock.StartOfLocalDay(f.now), f.clock.EndOfLocalDayExclusive(f.now))
		require.NoError(t, err)
		assertAlternating(t, events)
	}
}

func TestMark_ConcurrentCallsStayAlternating(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		kind := attendance.KindEntry
		if i%2 == 1 {
			kind = attendance.KindExit
		}
		go func() {
			defer wg.Done()
			_, _ = mark(f, staffActor, kind)
		}()
	}
	wg.Wait()

	events, err := f.repo.ListValidBetween(context.Background(), staffID, f.clock.StartOfLocalDay(f.now), f.clock.EndOfLocalDayExclusive(f.now))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assertAlternating(t, events)
}

func assertAlternating(t *testing.T, events []attendance.Event) {
	t.Helper()
	if len(events) == 0 {
		return
	}
	assert.Equal(t, attendance.KindEntry, events[0].Kind)
	exits := 0
	for i := range events {
		if events[i].Kind == attendance.KindExit {
			exits++
		}
		if i > 0 {
			assert.NotEqual(t, events[i-1].Kind, events[i].Kind)
		}
	}
	assert.LessOrEqual(t, exits, 1)
}

func TestListMine_Idempotent(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))
	_, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	_, err = mark(f, staffActor, attendance.KindExit)
	require.NoError(t, err)

	first, err := f.svc.ListMine(context.Background(), staffActor)
	require.NoError(t, err)
	second, err := f.svc.ListMine(context.Background(), staffActor)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "EXIT", first[0].Kind)
	assert.Equal(t, "ENTRY", first[1].Kind)
}

func TestListForUser(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))
	_, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)

	list, err := f.svc.ListForUser(context.Background(), hrActor, staffID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListForUser(context.Background(), user.Actor{UserID: otherID, Role: user.RoleStaff}, staffID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.ListMine(context.Background(), user.Actor{})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestCreateManual(t *testing.T) {
	f := newFixture(utc("2025-12-01T20:00:00Z"))
	ctx := context.Background()

	_, err := f.svc.CreateManual(ctx, staffActor, attendance.ManualRequest{UserID: otherID, Kind: "ENTRY"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.CreateManual(ctx, hrActor, attendance.ManualRequest{UserID: ghostID, Kind: "ENTRY"})
	assert.ErrorIs(t, err, attendance.ErrUserDoesNotExist)

	_, err = f.svc.CreateManual(ctx, hrActor, attendance.ManualRequest{UserID: staffID, Kind: "ENTRY", OccurredAt: strPtr("yesterday")})
	assert.ErrorIs(t, err, attendance.ErrInvalidOccurredAt)
	assert.ErrorIs(t, err, apperror.ErrInvalidRequest)

	// Out of sequence on purpose: EXIT with no ENTRY
	resp, err := f.svc.CreateManual(ctx, hrActor, attendance.ManualRequest{UserID: staffID, Kind: "EXIT"})
	require.NoError(t, err)
	assert.Equal(t, "manual", resp.Origin)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "manual record", *resp.Note)
	require.NotNil(t, resp.Reviewer)
	assert.Equal(t, hrID, resp.Reviewer.ID)
	assert.Equal(t, utc("2025-12-01T20:00:00Z"), resp.OccurredAt)

	// A second VALID EXIT on the same local day hits the uniqueness guard
	_, err = f.svc.CreateManual(ctx, adminActor, attendance.ManualRequest{UserID: staffID, Kind: "EXIT", OccurredAt: strPtr("2025-12-01T21:00:00Z")})
	assert.ErrorIs(t, err, attendance.ErrDayClosed)

	backdated, err := f.svc.CreateManual(ctx, adminActor, attendance.ManualRequest{
		UserID:     staffID,
		Kind:       "ENTRY",
		Origin:     strPtr("app"),
		Note:       strPtr("forgot to clock in"),
		OccurredAt: strPtr("2025-11-28T12:30:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-28", backdated.LocalDate)
	assert.Equal(t, "08:30", backdated.LocalTime)
	assert.Equal(t, "app", backdated.Origin)
	assert.Equal(t, "forgot to clock in", *backdated.Note)
}

func TestVoid(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))
	ctx := context.Background()

	_, err := mark(f, staffActor, attendance.KindEntry)
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	exit, err := mark(f, staffActor, attendance.KindExit)
	require.NoError(t, err)

	_, err = f.svc.Void(ctx, staffActor, exit.ID, attendance.VoidRequest{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.Void(ctx, hrActor, ghostID, attendance.VoidRequest{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	voided, err := f.svc.Void(ctx, hrActor, exit.ID, attendance.VoidRequest{})
	require.NoError(t, err)
	assert.Equal(t, "VOID", voided.Status)
	assert.Equal(t, "voided by reviewer", *voided.Note)
	assert.Equal(t, hrID, voided.Reviewer.ID)

	// Re-voiding re-stamps reviewer and note without a distinct error
	again, err := f.svc.Void(ctx, adminActor, exit.ID, attendance.VoidRequest{Note: strPtr("duplicate exit")})
	require.NoError(t, err)
	assert.Equal(t, "VOID", again.Status)
	assert.Equal(t, "duplicate exit", *again.Note)
	assert.Equal(t, adminID, again.Reviewer.ID)

	// The voided EXIT no longer closes the day
	assert.Equal(t, attendance.DayOpen, dayState(t, f, staffID))
	f.now = f.now.Add(time.Hour)
	_, err = mark(f, staffActor, attendance.KindExit)
	assert.NoError(t, err)
}

func TestVoid_RejectsInvalidRecords(t *testing.T) {
	f := newFixture(utc("2025-12-01T12:00:00Z"))
	ctx := context.Background()

	flagged, err := f.repo.Create(ctx, attendance.Event{
		ID:         "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8c01",
		OccurredAt: f.now,
		Kind:       attendance.KindEntry,
		Status:     attendance.StatusInvalid,
		Origin:     attendance.OriginWeb,
		OwnerID:    staffID,
		LocalDate:  "2025-12-01",
	})
	require.NoError(t, err)

	_, err = f.svc.Void(ctx, hrActor, flagged.ID, attendance.VoidRequest{})
	assert.ErrorIs(t, err, attendance.ErrStatusTransition)
	assert.ErrorIs(t, err, apperror.ErrInvalidRequest)

	stored, err := f.repo.GetByID(ctx, flagged.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusInvalid, stored.Status)
	assert.Nil(t, stored.ReviewerID)
}
