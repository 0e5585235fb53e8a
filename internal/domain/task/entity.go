package task

import (
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Task entity. DueDate is a local calendar date (YYYY-MM-DD).
type Task struct {
	ID           string
	Title        string
	Description  *string
	Status       Status
	DueDate      *string
	AssignedByID *string
	AssigneeID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined
	Assignee   user.Ref
	AssignedBy *user.Ref
}
