package task

import (
	"context"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

type TaskService interface {
	Create(ctx context.Context, actor user.Actor, req CreateTaskRequest) (TaskResponse, error)
	Update(ctx context.Context, actor user.Actor, id string, req UpdateTaskRequest) (TaskResponse, error)
	ChangeStatus(ctx context.Context, actor user.Actor, id string, req ChangeStatusRequest) (TaskResponse, error)

	ListAll(ctx context.Context, actor user.Actor) ([]TaskResponse, error)
	ListForUser(ctx context.Context, actor user.Actor, userID string) ([]TaskResponse, error)
	ListMine(ctx context.Context, actor user.Actor) ([]TaskResponse, error)
	ListAssignedByMe(ctx context.Context, actor user.Actor) ([]TaskResponse, error)
}
