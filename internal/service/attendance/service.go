package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

const (
	defaultManualNote = "manual record"
	defaultVoidNote   = "voided by reviewer"

	// maxSummaryDays bounds a single summary request.
	maxSummaryDays = 366
)

type AttendanceServiceImpl struct {
	tx    database.Transactor
	clock *clock.Clock
	attendance.AttendanceRepository
	user.UserRepository
	leave    leave.Oracle
	schedule schedule.TargetSource
}

func NewAttendanceService(
	tx database.Transactor,
	clk *clock.Clock,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	leaveOracle leave.Oracle,
	targetSource schedule.TargetSource,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		clock:                clk,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		leave:                leaveOracle,
		schedule:             targetSource,
	}
}

// Mark implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Mark(ctx context.Context, actor user.Actor, req attendance.MarkRequest, clientIP *string) (attendance.EventResponse, error) {
	if !actor.IsAuthenticated() {
		return attendance.EventResponse{}, attendance.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionAttendanceMark) {
		return attendance.EventResponse{}, attendance.ErrForbidden
	}

	kind, err := attendance.ParseKind(req.Kind)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	origin := attendance.OriginWeb
	if req.Origin != nil && *req.Origin != "" {
		origin = attendance.Origin(*req.Origin)
	}

	now := a.clock.Now()
	dateKey := a.clock.LocalDateKey(now)

	var created attendance.Event
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Locking the owner's row serializes concurrent marks of the same user.
		if _, err := a.UserRepository.LockByID(txCtx, actor.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return attendance.ErrUserDoesNotExist
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		blocking, err := a.leave.CheckBlocking(txCtx, actor.UserID, dateKey)
		if err != nil {
			return fmt.Errorf("failed to check leave: %w", err)
		}
		if blocking.Blocks {
			slog.Info("mark rejected", "user_id", actor.UserID, "kind", kind, "reason", "leave")
			return attendance.ErrLeaveBlocks
		}

		today, err := a.AttendanceRepository.ListValidBetween(txCtx, actor.UserID, a.clock.StartOfLocalDay(now), a.clock.EndOfLocalDayExclusive(now))
		if err != nil {
			return fmt.Errorf("failed to load today's events: %w", err)
		}
		if err := attendance.CheckMark(today, kind); err != nil {
			slog.Info("mark rejected", "user_id", actor.UserID, "kind", kind, "reason", err.Error())
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate id: %w", err)
		}

		inserted, err := a.AttendanceRepository.Create(txCtx, attendance.Event{
			ID:         id.String(),
			OccurredAt: now,
			Kind:       kind,
			Status:     attendance.StatusValid,
			Origin:     origin,
			SourceIP:   clientIP,
			OwnerID:    actor.UserID,
			LocalDate:  dateKey,
		})
		if err != nil {
			return err
		}

		created, err = a.AttendanceRepository.GetByID(txCtx, inserted.ID)
		return err
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return attendance.NewEventResponse(a.clock, created), nil
}

// CreateManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManual(ctx context.Context, actor user.Actor, req attendance.ManualRequest) (attendance.EventResponse, error) {
	if !actor.IsAuthenticated() {
		return attendance.EventResponse{}, attendance.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionAttendanceManage) {
		return attendance.EventResponse{}, attendance.ErrForbidden
	}

	kind, err := attendance.ParseKind(req.Kind)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	occurredAt := a.clock.Now()
	if req.OccurredAt != nil && *req.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, *req.OccurredAt)
		if err != nil {
			return attendance.EventResponse{}, attendance.ErrInvalidOccurredAt
		}
		occurredAt = parsed.UTC()
	}

	origin := attendance.OriginManual
	if req.Origin != nil && *req.Origin != "" {
		origin = attendance.Origin(*req.Origin)
	}
	note := defaultManualNote
	if req.Note != nil && *req.Note != "" {
		note = *req.Note
	}
	reviewerID := actor.UserID

	var created attendance.Event
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.UserRepository.LockByID(txCtx, req.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return attendance.ErrUserDoesNotExist
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate id: %w", err)
		}

		// Reviewer override: sequence rules are not applied here.
		inserted, err := a.AttendanceRepository.Create(txCtx, attendance.Event{
			ID:         id.String(),
			OccurredAt: occurredAt,
			Kind:       kind,
			Status:     attendance.StatusValid,
			Origin:     origin,
			Note:       &note,
			OwnerID:    req.UserID,
			ReviewerID: &reviewerID,
			LocalDate:  a.clock.LocalDateKey(occurredAt),
		})
		if err != nil {
			return err
		}

		created, err = a.AttendanceRepository.GetByID(txCtx, inserted.ID)
		return err
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	slog.Info("manual attendance recorded", "user_id", req.UserID, "kind", kind, "reviewer_id", actor.UserID)
	return attendance.NewEventResponse(a.clock, created), nil
}

// Void implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Void(ctx context.Context, actor user.Actor, id string, req attendance.VoidRequest) (attendance.EventResponse, error) {
	if !actor.IsAuthenticated() {
		return attendance.EventResponse{}, attendance.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionAttendanceManage) {
		return attendance.EventResponse{}, attendance.ErrForbidden
	}

	note := defaultVoidNote
	if req.Note != nil && *req.Note != "" {
		note = *req.Note
	}

	// Voiding an already VOID event re-stamps reviewer and note.
	if err := a.AttendanceRepository.UpdateReview(ctx, id, attendance.StatusVoid, actor.UserID, note); err != nil {
		return attendance.EventResponse{}, err
	}

	voided, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	slog.Info("attendance voided", "event_id", id, "user_id", voided.OwnerID, "reviewer_id", actor.UserID)
	return attendance.NewEventResponse(a.clock, voided), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, actor user.Actor) ([]attendance.EventResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, attendance.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionAttendanceViewOwn) {
		return nil, attendance.ErrForbidden
	}

	events, err := a.AttendanceRepository.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewEventResponses(a.clock, events), nil
}

// ListForUser implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListForUser(ctx context.Context, actor user.Actor, userID string) ([]attendance.EventResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, attendance.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionAttendanceManage) {
		return nil, attendance.ErrForbidden
	}

	events, err := a.AttendanceRepository.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewEventResponses(a.clock, events), nil
}
