package attendance

import (
	"context"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Mark records a self-service ENTRY or EXIT for the actor at the current instant.
	Mark(ctx context.Context, actor user.Actor, req MarkRequest, clientIP *string) (EventResponse, error)

	// CreateManual inserts a reviewer-issued event for any user, bypassing sequence rules.
	CreateManual(ctx context.Context, actor user.Actor, req ManualRequest) (EventResponse, error)

	// Void marks an event VOID.
	Void(ctx context.Context, actor user.Actor, id string, req VoidRequest) (EventResponse, error)

	ListMine(ctx context.Context, actor user.Actor) ([]EventResponse, error)
	ListForUser(ctx context.Context, actor user.Actor, userID string) ([]EventResponse, error)

	// Summarize builds one row per local calendar day in the requested range.
	Summarize(ctx context.Context, actor user.Actor, userID string, filter SummaryFilter) ([]DailySummaryRow, error)
}
