package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	// GetByID returns the task joined with assignee and assigner identity.
	GetByID(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, t Task) error
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error

	// Lists order by creation time, newest first.
	ListAll(ctx context.Context) ([]Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]Task, error)
	ListByAssigner(ctx context.Context, assignerID string) ([]Task, error)
}
