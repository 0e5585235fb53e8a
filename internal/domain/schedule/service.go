package schedule

import (
	"context"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

// TargetSource provides a user's schedule week; Week.TargetMinutes answers per weekday.
type TargetSource interface {
	WeekForUser(ctx context.Context, userID string) (Week, error)
}

type ScheduleService interface {
	TargetSource

	GetForUser(ctx context.Context, actor user.Actor, userID string) (WeekResponse, error)
	ReplaceForUser(ctx context.Context, actor user.Actor, userID string, req ReplaceScheduleRequest) (WeekResponse, error)
}
