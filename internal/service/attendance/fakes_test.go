package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
)

const (
	adminID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b01"
	hrID    = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b02"
	staffID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b03"
	otherID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b04"
	ghostID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8bff"
)

var (
	adminActor = user.Actor{UserID: adminID, Role: user.RoleAdmin}
	hrActor    = user.Actor{UserID: hrID, Role: user.RoleHR}
	staffActor = user.Actor{UserID: staffID, Role: user.RoleStaff}
)

// serialTransactor runs one transaction at a time, like the per-user row lock does for one user.
type serialTransactor struct {
	mu sync.Mutex
}

func (s *serialTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type memUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func newMemUserRepo() *memUserRepo {
	users := map[string]user.User{}
	for id, role := range map[string]user.Role{adminID: user.RoleAdmin, hrID: user.RoleHR, staffID: user.RoleStaff, otherID: user.RoleStaff} {
		users[id] = user.User{ID: id, FirstName: string(role), LastName: "Test", Email: id[len(id)-2:] + "@example.com", Role: role, Status: user.StatusActive}
	}
	return &memUserRepo{users: users}
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) LockByID(ctx context.Context, id string) (user.User, error) {
	return m.GetByID(ctx, id)
}

// memAttendanceRepo mirrors the database: it joins identities and rejects a second VALID EXIT
// for the same owner and local date.
type memAttendanceRepo struct {
	mu     sync.Mutex
	users  *memUserRepo
	events []attendance.Event
	now    func() time.Time
}

func (m *memAttendanceRepo) Create(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.Kind == attendance.KindExit && e.Status == attendance.StatusValid {
		for _, existing := range m.events {
			if existing.OwnerID == e.OwnerID && existing.LocalDate == e.LocalDate &&
				existing.Kind == attendance.KindExit && existing.Status == attendance.StatusValid {
				return attendance.Event{}, attendance.ErrDayClosed
			}
		}
	}
	e.RecordedAt = m.now()
	m.events = append(m.events, e)
	return e, nil
}

func (m *memAttendanceRepo) join(e attendance.Event) attendance.Event {
	if owner, ok := m.users.users[e.OwnerID]; ok {
		e.Owner = owner.Ref()
	}
	if e.ReviewerID != nil {
		if reviewer, ok := m.users.users[*e.ReviewerID]; ok {
			ref := reviewer.Ref()
			e.Reviewer = &ref
		}
	}
	return e
}

func (m *memAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			return m.join(e), nil
		}
	}
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (m *memAttendanceRepo) ListValidBetween(ctx context.Context, ownerID string, start, endExclusive time.Time) ([]attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Event
	for _, e := range m.events {
		if e.OwnerID == ownerID && e.Status == attendance.StatusValid &&
			!e.OccurredAt.Before(start) && e.OccurredAt.Before(endExclusive) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (m *memAttendanceRepo) ListByOwner(ctx context.Context, ownerID string) ([]attendance.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Event
	for _, e := range m.events {
		if e.OwnerID == ownerID {
			out = append(out, m.join(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (m *memAttendanceRepo) UpdateReview(ctx context.Context, id string, status attendance.Status, reviewerID string, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			if cur := m.events[i].Status; cur != attendance.StatusValid && cur != status {
				return attendance.ErrStatusTransition
			}
			m.events[i].Status = status
			m.events[i].ReviewerID = &reviewerID
			m.events[i].Note = &note
			return nil
		}
	}
	return attendance.ErrEventNotFound
}

type fakeLeave struct {
	spans map[string]leave.Spans
}

func (f *fakeLeave) CheckBlocking(ctx context.Context, userID string, dateKey string) (leave.Blocking, error) {
	return leave.Blocking{Blocks: f.spans[userID].Blocks(dateKey)}, nil
}

func (f *fakeLeave) ApprovedBetween(ctx context.Context, userID string, fromKey, toKey string) (leave.Spans, error) {
	var out leave.Spans
	for _, s := range f.spans[userID] {
		if s.Start <= toKey && s.End >= fromKey {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSchedule struct {
	weeks map[string]schedule.Week
}

func (f *fakeSchedule) WeekForUser(ctx context.Context, userID string) (schedule.Week, error) {
	return f.weeks[userID], nil
}

// fixture wires the service against in-memory collaborators and a settable clock at UTC-4.
type fixture struct {
	now      time.Time
	clock    *clock.Clock
	repo     *memAttendanceRepo
	leave    *fakeLeave
	schedule *fakeSchedule
	svc      attendance.AttendanceService
}

func newFixture(now time.Time) *fixture {
	f := &fixture{now: now}
	f.clock = clock.FromMinutes(-240, func() time.Time { return f.now })
	users := newMemUserRepo()
	f.repo = &memAttendanceRepo{users: users, now: func() time.Time { return f.now }}
	f.leave = &fakeLeave{spans: map[string]leave.Spans{}}
	f.schedule = &fakeSchedule{weeks: map[string]schedule.Week{}}
	f.svc = NewAttendanceService(&serialTransactor{}, f.clock, f.repo, users, f.leave, f.schedule)
	return f
}

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }
