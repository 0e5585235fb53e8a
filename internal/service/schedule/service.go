package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type ScheduleServiceImpl struct {
	tx database.Transactor
	schedule.ScheduleRepository
	user.UserRepository
}

func NewScheduleService(tx database.Transactor, scheduleRepository schedule.ScheduleRepository, userRepository user.UserRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		tx:                 tx,
		ScheduleRepository: scheduleRepository,
		UserRepository:     userRepository,
	}
}

// WeekForUser implements schedule.TargetSource.
func (s *ScheduleServiceImpl) WeekForUser(ctx context.Context, userID string) (schedule.Week, error) {
	days, err := s.ScheduleRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return schedule.NewWeek(days), nil
}

// GetForUser implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetForUser(ctx context.Context, actor user.Actor, userID string) (schedule.WeekResponse, error) {
	if !actor.IsAuthenticated() {
		return schedule.WeekResponse{}, schedule.ErrUnauthenticated
	}
	if !actor.IsSelf(userID) && !actor.Can(user.PermissionScheduleManage) {
		return schedule.WeekResponse{}, schedule.ErrForbidden
	}

	if err := s.ensureUser(ctx, userID); err != nil {
		return schedule.WeekResponse{}, err
	}

	days, err := s.ScheduleRepository.ListByUser(ctx, userID)
	if err != nil {
		return schedule.WeekResponse{}, fmt.Errorf("failed to list schedule: %w", err)
	}
	return schedule.ToWeekResponse(userID, days), nil
}

// ReplaceForUser implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ReplaceForUser(ctx context.Context, actor user.Actor, userID string, req schedule.ReplaceScheduleRequest) (schedule.WeekResponse, error) {
	if !actor.IsAuthenticated() {
		return schedule.WeekResponse{}, schedule.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionScheduleManage) {
		return schedule.WeekResponse{}, schedule.ErrForbidden
	}

	days, err := buildDays(userID, req.Days)
	if err != nil {
		return schedule.WeekResponse{}, err
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.UserRepository.LockByID(txCtx, userID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return schedule.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}
		return s.ScheduleRepository.ReplaceForUser(txCtx, userID, days)
	})
	if err != nil {
		return schedule.WeekResponse{}, err
	}

	slog.Info("work schedule replaced", "user_id", userID, "days", len(days), "updated_by", actor.UserID)
	return s.GetForUser(ctx, actor, userID)
}

func (s *ScheduleServiceImpl) ensureUser(ctx context.Context, userID string) error {
	exists, err := s.UserRepository.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return schedule.ErrUserNotFound
	}
	return nil
}

func buildDays(userID string, reqs []schedule.DayRequest) ([]schedule.WorkScheduleDay, error) {
	if len(reqs) == 0 {
		return nil, schedule.ErrEmptySchedule
	}

	seen := make(map[int]bool, len(reqs))
	days := make([]schedule.WorkScheduleDay, 0, len(reqs))
	for _, r := range reqs {
		if r.Weekday < 1 || r.Weekday > 7 {
			return nil, schedule.ErrInvalidWeekday
		}
		if seen[r.Weekday] {
			return nil, schedule.ErrDuplicateWeekday
		}
		seen[r.Weekday] = true

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate id: %w", err)
		}

		day := schedule.WorkScheduleDay{
			ID:            id.String(),
			UserID:        userID,
			Weekday:       r.Weekday,
			StartTime:     normalizeClock(r.StartTime),
			EndTime:       normalizeClock(r.EndTime),
			TargetMinutes: r.TargetMinutes,
			Active:        true,
		}
		if r.ToleranceMinutes != nil {
			day.ToleranceMinutes = *r.ToleranceMinutes
		}
		if r.Active != nil {
			day.Active = *r.Active
		}
		if day.TargetMinutes < 0 {
			day.TargetMinutes = 0
		}
		days = append(days, day)
	}
	return days, nil
}

// normalizeClock trims HH:MM:SS to HH:MM.
func normalizeClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
