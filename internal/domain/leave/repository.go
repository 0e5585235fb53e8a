package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	// GetByID returns the request joined with requester and resolver identity.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// ListByStatus and ListByRequester order by creation time, newest first.
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	Resolve(ctx context.Context, req LeaveRequest) error

	// FindApprovedCovering returns an approved leave whose range contains dateKey, or nil.
	FindApprovedCovering(ctx context.Context, userID string, dateKey string) (*LeaveRequest, error)
	// ListApprovedOverlapping returns approved spans overlapping [fromKey, toKey].
	ListApprovedOverlapping(ctx context.Context, userID string, fromKey, toKey string) (Spans, error)
}
