package leave

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hrID    = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b02"
	staffID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8b03"
	ghostID = "0193a0b2-7b8c-7b4a-8a2b-6b8b8b8b8bff"
)

var (
	hrActor    = user.Actor{UserID: hrID, Role: user.RoleHR}
	staffActor = user.Actor{UserID: staffID, Role: user.RoleStaff}
)

type memUserRepo struct {
	user.UserRepository
}

func (memUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	return id == hrID || id == staffID, nil
}

type memLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (m *memLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.requests = append(m.requests, req)
	return req, nil
}

func (m *memLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			r.Requester = user.Ref{ID: r.RequesterID}
			if r.ResolverID != nil {
				r.Resolver = &user.Ref{ID: *r.ResolverID}
			}
			return r, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (m *memLeaveRepo) filter(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memLeaveRepo) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return m.filter(func(r leave.LeaveRequest) bool { return r.Status == status }), nil
}

func (m *memLeaveRepo) ListByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	return m.filter(func(r leave.LeaveRequest) bool { return r.RequesterID == requesterID }), nil
}

func (m *memLeaveRepo) Resolve(ctx context.Context, req leave.LeaveRequest) error {
	for i := range m.requests {
		if m.requests[i].ID == req.ID && m.requests[i].Status == leave.StatusPending {
			m.requests[i] = req
			return nil
		}
	}
	return leave.ErrLeaveRequestAlreadyProcessed
}

func (m *memLeaveRepo) FindApprovedCovering(ctx context.Context, userID string, dateKey string) (*leave.LeaveRequest, error) {
	for _, r := range m.requests {
		if r.RequesterID == userID && r.Status == leave.StatusApproved && (leave.Span{Start: r.StartDate, End: r.EndDate}).Contains(dateKey) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memLeaveRepo) ListApprovedOverlapping(ctx context.Context, userID string, fromKey, toKey string) (leave.Spans, error) {
	var out leave.Spans
	for _, r := range m.requests {
		if r.RequesterID == userID && r.Status == leave.StatusApproved && r.StartDate <= toKey && r.EndDate >= fromKey {
			out = append(out, leave.Span{Start: r.StartDate, End: r.EndDate})
		}
	}
	return out, nil
}

func newTestService() (*memLeaveRepo, *time.Time, leave.LeaveService) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	repo := &memLeaveRepo{}
	clk := clock.FromMinutes(-240, func() time.Time { return now })
	return repo, &now, NewLeaveService(clk, repo, memUserRepo{})
}

func createLeave(t *testing.T, svc leave.LeaveService, start, end string) leave.LeaveResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), staffActor, leave.CreateLeaveRequest{
		Type:      "VACATION",
		Reason:    "family trip",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return resp
}

func TestCreate(t *testing.T) {
	_, _, svc := newTestService()

	resp := createLeave(t, svc, "2025-12-03", "2025-12-05")
	assert.Equal(t, "PENDING", resp.Status)
	assert.False(t, resp.Paid)
	assert.Equal(t, staffID, resp.Requester.ID)
	assert.Nil(t, resp.Resolver)

	_, err := svc.Create(context.Background(), staffActor, leave.CreateLeaveRequest{Type: "HEALTH", Reason: "x", StartDate: "2025-12-05", EndDate: "2025-12-03"})
	assert.ErrorIs(t, err, leave.ErrEndBeforeStart)

	_, err = svc.Create(context.Background(), staffActor, leave.CreateLeaveRequest{Type: "HEALTH", Reason: "x", StartDate: "2025-12-05", EndDate: "soon"})
	assert.ErrorIs(t, err, leave.ErrInvalidDates)

	_, err = svc.Create(context.Background(), user.Actor{UserID: ghostID, Role: user.RoleStaff}, leave.CreateLeaveRequest{Type: "HEALTH", Reason: "x", StartDate: "2025-12-05", EndDate: "2025-12-05"})
	assert.ErrorIs(t, err, leave.ErrRequesterDoesNotExist)
}

func TestResolve(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()
	req := createLeave(t, svc, "2025-12-03", "2025-12-05")

	_, err := svc.Resolve(ctx, staffActor, req.ID, leave.ResolveLeaveRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.Resolve(ctx, hrActor, ghostID, leave.ResolveLeaveRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	paid := true
	note := "approved with pay"
	resp, err := svc.Resolve(ctx, hrActor, req.ID, leave.ResolveLeaveRequest{Status: "APPROVED", Paid: &paid, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.True(t, resp.Paid)
	assert.Equal(t, hrID, resp.Resolver.ID)
	assert.NotNil(t, resp.ResolvedAt)

	_, err = svc.Resolve(ctx, hrActor, req.ID, leave.ResolveLeaveRequest{Status: "REJECTED"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestResolve_RejectedIsNeverPaid(t *testing.T) {
	_, _, svc := newTestService()
	req := createLeave(t, svc, "2025-12-03", "2025-12-03")

	paid := true
	resp, err := svc.Resolve(context.Background(), hrActor, req.ID, leave.ResolveLeaveRequest{Status: "REJECTED", Paid: &paid})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.False(t, resp.Paid)
}

func TestResolve_OwnRequest(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()

	own, err := svc.Create(ctx, hrActor, leave.CreateLeaveRequest{Type: "PERSONAL", Reason: "errand", StartDate: "2025-12-03", EndDate: "2025-12-03"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, hrActor, own.ID, leave.ResolveLeaveRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, leave.ErrSelfResolution)
}

func TestCheckBlocking_InclusiveBounds(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()
	req := createLeave(t, svc, "2025-12-03", "2025-12-05")

	blocking, err := svc.CheckBlocking(ctx, staffID, "2025-12-04")
	require.NoError(t, err)
	assert.False(t, blocking.Blocks, "pending leave does not block")

	_, err = svc.Resolve(ctx, hrActor, req.ID, leave.ResolveLeaveRequest{Status: "APPROVED"})
	require.NoError(t, err)

	for date, want := range map[string]bool{
		"2025-12-02": false,
		"2025-12-03": true,
		"2025-12-04": true,
		"2025-12-05": true,
		"2025-12-06": false,
	} {
		blocking, err := svc.CheckBlocking(ctx, staffID, date)
		require.NoError(t, err)
		assert.Equal(t, want, blocking.Blocks, date)
	}

	spans, err := svc.ApprovedBetween(ctx, staffID, "2025-12-05", "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, leave.Spans{{Start: "2025-12-03", End: "2025-12-05"}}, spans)
	assert.True(t, spans.Blocks("2025-12-05"))
	assert.False(t, spans.Blocks("2025-12-06"))
}

func TestListPendingAndMine(t *testing.T) {
	_, now, svc := newTestService()
	ctx := context.Background()

	first := createLeave(t, svc, "2025-12-03", "2025-12-03")
	*now = now.Add(time.Minute)
	second := createLeave(t, svc, "2025-12-10", "2025-12-11")

	pending, err := svc.ListPending(ctx, hrActor)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)

	_, err = svc.ListPending(ctx, staffActor)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	mine, err := svc.ListMine(ctx, staffActor)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	mine, err = svc.ListMine(ctx, hrActor)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
