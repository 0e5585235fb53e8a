package leave

import (
	"context"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

// Oracle answers whether approved leave blocks attendance on a local calendar date.
type Oracle interface {
	CheckBlocking(ctx context.Context, userID string, dateKey string) (Blocking, error)
	ApprovedBetween(ctx context.Context, userID string, fromKey, toKey string) (Spans, error)
}

type LeaveService interface {
	Oracle

	Create(ctx context.Context, actor user.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	ListPending(ctx context.Context, actor user.Actor) ([]LeaveResponse, error)
	ListMine(ctx context.Context, actor user.Actor) ([]LeaveResponse, error)
	Resolve(ctx context.Context, actor user.Actor, id string, req ResolveLeaveRequest) (LeaveResponse, error)
}
