package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	clock *clock.Clock
	leave.LeaveRequestRepository
	user.UserRepository
}

func NewLeaveService(clk *clock.Clock, leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		clock:                  clk,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
	}
}

// CheckBlocking implements leave.Oracle. dateKey is a local calendar date.
func (s *LeaveServiceImpl) CheckBlocking(ctx context.Context, userID string, dateKey string) (leave.Blocking, error) {
	covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, userID, dateKey)
	if err != nil {
		return leave.Blocking{}, fmt.Errorf("failed to find approved leave: %w", err)
	}
	if covering == nil {
		return leave.Blocking{}, nil
	}
	return leave.Blocking{Blocks: true, Paid: covering.Paid, Leave: covering}, nil
}

// ApprovedBetween implements leave.Oracle.
func (s *LeaveServiceImpl) ApprovedBetween(ctx context.Context, userID string, fromKey, toKey string) (leave.Spans, error) {
	spans, err := s.LeaveRequestRepository.ListApprovedOverlapping(ctx, userID, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return spans, nil
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if !actor.IsAuthenticated() {
		return leave.LeaveResponse{}, leave.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionLeaveRequest) {
		return leave.LeaveResponse{}, leave.ErrForbidden
	}

	start, err := s.clock.ParseLocalDate(req.StartDate)
	if err != nil {
		return leave.LeaveResponse{}, leave.ErrInvalidDates
	}
	end, err := s.clock.ParseLocalDate(req.EndDate)
	if err != nil {
		return leave.LeaveResponse{}, leave.ErrInvalidDates
	}
	if end.Before(start) {
		return leave.LeaveResponse{}, leave.ErrEndBeforeStart
	}

	exists, err := s.UserRepository.ExistsByID(ctx, actor.UserID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check requester: %w", err)
	}
	if !exists {
		return leave.LeaveResponse{}, leave.ErrRequesterDoesNotExist
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ID:          id.String(),
		Type:        leave.Type(req.Type),
		Reason:      req.Reason,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      leave.StatusPending,
		RequesterID: actor.UserID,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	full, err := s.LeaveRequestRepository.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(full), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, actor user.Actor) ([]leave.LeaveResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, leave.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionLeaveResolve) {
		return nil, leave.ErrForbidden
	}

	list, err := s.LeaveRequestRepository.ListByStatus(ctx, leave.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return leave.ToResponses(list), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor user.Actor) ([]leave.LeaveResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, leave.ErrUnauthenticated
	}

	list, err := s.LeaveRequestRepository.ListByRequester(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.ToResponses(list), nil
}

// Resolve implements leave.LeaveService.
func (s *LeaveServiceImpl) Resolve(ctx context.Context, actor user.Actor, id string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
	if !actor.IsAuthenticated() {
		return leave.LeaveResponse{}, leave.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionLeaveResolve) {
		return leave.LeaveResponse{}, leave.ErrForbidden
	}

	status := leave.Status(req.Status)
	if status != leave.StatusApproved && status != leave.StatusRejected {
		return leave.LeaveResponse{}, leave.ErrInvalidResolution
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.RequesterID == actor.UserID {
		return leave.LeaveResponse{}, leave.ErrSelfResolution
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := s.clock.Now()
	resolverID := actor.UserID
	request.Status = status
	request.ResolverID = &resolverID
	request.ResolvedAt = &now
	request.ResolutionNote = req.Note
	// Rejected leave is never paid
	request.Paid = request.Status == leave.StatusApproved && req.Paid != nil && *req.Paid

	if err := s.LeaveRequestRepository.Resolve(ctx, request); err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request resolved", "leave_id", id, "status", request.Status, "resolver_id", actor.UserID)

	full, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(full), nil
}
