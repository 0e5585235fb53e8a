package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance events.
type AttendanceRepository interface {
	// Create inserts a new event. A second VALID EXIT for the same owner and local date
	// fails with ErrDayClosed.
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves an event joined with owner and reviewer identity.
	GetByID(ctx context.Context, id string) (Event, error)

	// ListValidBetween returns the owner's VALID events in [start, endExclusive), oldest first.
	ListValidBetween(ctx context.Context, ownerID string, start, endExclusive time.Time) ([]Event, error)

	// ListByOwner returns all of the owner's events, newest first, joined.
	ListByOwner(ctx context.Context, ownerID string) ([]Event, error)

	// UpdateReview sets status, reviewer and note of a VALID event, or re-stamps an event already
	// in that status. Any other transition fails with ErrStatusTransition.
	UpdateReview(ctx context.Context, id string, status Status, reviewerID string, note string) error
}
