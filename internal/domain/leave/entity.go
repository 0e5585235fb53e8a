package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

type Type string

const (
	TypeVacation Type = "VACATION"
	TypeHealth   Type = "HEALTH"
	TypePersonal Type = "PERSONAL"
	TypeOther    Type = "OTHER"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// LeaveRequest entity. StartDate and EndDate are calendar dates (YYYY-MM-DD), both inclusive.
type LeaveRequest struct {
	ID             string
	Type           Type
	Reason         string
	StartDate      string
	EndDate        string
	Status         Status
	Paid           bool
	ResolutionNote *string
	RequesterID    string
	ResolverID     *string
	CreatedAt      time.Time
	ResolvedAt     *time.Time

	// Joined
	Requester user.Ref
	Resolver  *user.Ref
}

// Span is an approved leave range of calendar dates, both ends inclusive.
type Span struct {
	Start string
	End   string
}

// Contains compares YYYY-MM-DD keys, which order lexicographically like dates.
func (s Span) Contains(dateKey string) bool {
	return s.Start <= dateKey && dateKey <= s.End
}

type Spans []Span

// Blocks reports whether any approved span covers dateKey.
func (s Spans) Blocks(dateKey string) bool {
	for _, span := range s {
		if span.Contains(dateKey) {
			return true
		}
	}
	return false
}

// Blocking is the answer of the leave oracle for one user and one date.
type Blocking struct {
	Blocks bool
	Paid   bool
	Leave  *LeaveRequest
}
