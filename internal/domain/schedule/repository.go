package schedule

import "context"

type ScheduleRepository interface {
	// ListByUser returns every row of the user, active or not, ordered by weekday.
	ListByUser(ctx context.Context, userID string) ([]WorkScheduleDay, error)
	// ReplaceForUser deletes the user's rows and inserts days. Callers run it in a transaction.
	ReplaceForUser(ctx context.Context, userID string, days []WorkScheduleDay) error
}
