package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/task"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type TaskServiceImpl struct {
	clock *clock.Clock
	task.TaskRepository
	user.UserRepository
}

func NewTaskService(clk *clock.Clock, taskRepository task.TaskRepository, userRepository user.UserRepository) task.TaskService {
	return &TaskServiceImpl{
		clock:          clk,
		TaskRepository: taskRepository,
		UserRepository: userRepository,
	}
}

func authorizeManage(actor user.Actor) error {
	if !actor.IsAuthenticated() {
		return task.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionTaskManage) {
		return task.ErrForbidden
	}
	return nil
}

func (s *TaskServiceImpl) ensureAssignee(ctx context.Context, id string) error {
	exists, err := s.UserRepository.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	if !exists {
		return task.ErrAssigneeNotFound
	}
	return nil
}

func (s *TaskServiceImpl) checkDueDate(dueDate *string) error {
	if dueDate == nil {
		return nil
	}
	if _, err := s.clock.ParseLocalDate(*dueDate); err != nil {
		return task.ErrInvalidDueDate
	}
	return nil
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, actor user.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := authorizeManage(actor); err != nil {
		return task.TaskResponse{}, err
	}
	if err := s.checkDueDate(req.DueDate); err != nil {
		return task.TaskResponse{}, err
	}
	if err := s.ensureAssignee(ctx, req.AssigneeID); err != nil {
		return task.TaskResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.clock.Now()
	assignedBy := actor.UserID
	created, err := s.TaskRepository.Create(ctx, task.Task{
		ID:           id.String(),
		Title:        req.Title,
		Description:  req.Description,
		Status:       task.StatusPending,
		DueDate:      req.DueDate,
		AssignedByID: &assignedBy,
		AssigneeID:   req.AssigneeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("task created", "task_id", created.ID, "assignee_id", created.AssigneeID, "assigned_by", actor.UserID)

	full, err := s.TaskRepository.GetByID(ctx, created.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(full), nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, actor user.Actor, id string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := authorizeManage(actor); err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description.Set {
		current.Description = req.Description.Value
	}
	if req.DueDate.Set {
		if err := s.checkDueDate(req.DueDate.Value); err != nil {
			return task.TaskResponse{}, err
		}
		current.DueDate = req.DueDate.Value
	}
	if req.Status != nil {
		status, err := task.ParseStatus(*req.Status)
		if err != nil {
			return task.TaskResponse{}, err
		}
		current.Status = status
	}
	if req.AssigneeID != nil && *req.AssigneeID != current.AssigneeID {
		if err := s.ensureAssignee(ctx, *req.AssigneeID); err != nil {
			return task.TaskResponse{}, err
		}
		current.AssigneeID = *req.AssigneeID
	}
	current.UpdatedAt = s.clock.Now()

	if err := s.TaskRepository.Update(ctx, current); err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("task updated", "task_id", id, "status", current.Status, "updated_by", actor.UserID)

	full, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(full), nil
}

// ChangeStatus implements task.TaskService. Elevated roles may move any task; anyone else only their own.
func (s *TaskServiceImpl) ChangeStatus(ctx context.Context, actor user.Actor, id string, req task.ChangeStatusRequest) (task.TaskResponse, error) {
	if !actor.IsAuthenticated() {
		return task.TaskResponse{}, task.ErrUnauthenticated
	}

	status, err := task.ParseStatus(req.Status)
	if err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !actor.Can(user.PermissionTaskManage) && !actor.IsSelf(current.AssigneeID) {
		return task.TaskResponse{}, task.ErrNotAssignee
	}

	if current.Status != status {
		if err := s.TaskRepository.UpdateStatus(ctx, id, status, s.clock.Now()); err != nil {
			return task.TaskResponse{}, err
		}
		slog.Info("task status changed", "task_id", id, "from", current.Status, "to", status, "changed_by", actor.UserID)
	}

	full, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(full), nil
}

// ListAll implements task.TaskService.
func (s *TaskServiceImpl) ListAll(ctx context.Context, actor user.Actor) ([]task.TaskResponse, error) {
	if err := authorizeManage(actor); err != nil {
		return nil, err
	}

	list, err := s.TaskRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(list), nil
}

// ListForUser implements task.TaskService.
func (s *TaskServiceImpl) ListForUser(ctx context.Context, actor user.Actor, userID string) ([]task.TaskResponse, error) {
	if err := authorizeManage(actor); err != nil {
		return nil, err
	}
	if err := s.ensureAssignee(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.TaskRepository.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(list), nil
}

// ListMine implements task.TaskService.
func (s *TaskServiceImpl) ListMine(ctx context.Context, actor user.Actor) ([]task.TaskResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, task.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionTaskViewOwn) {
		return nil, task.ErrForbidden
	}

	list, err := s.TaskRepository.ListByAssignee(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(list), nil
}

// ListAssignedByMe implements task.TaskService.
func (s *TaskServiceImpl) ListAssignedByMe(ctx context.Context, actor user.Actor) ([]task.TaskResponse, error) {
	if err := authorizeManage(actor); err != nil {
		return nil, err
	}

	list, err := s.TaskRepository.ListByAssigner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return task.ToResponses(list), nil
}
