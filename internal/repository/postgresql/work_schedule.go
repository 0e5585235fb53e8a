package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const scheduleColumns = `
	id, user_id, weekday, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	target_minutes, tolerance_minutes, active, created_at, updated_at
`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanScheduleDay(row pgx.Row) (schedule.WorkScheduleDay, error) {
	var d schedule.WorkScheduleDay
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Weekday,
		&d.StartTime,
		&d.EndTime,
		&d.TargetMinutes,
		&d.ToleranceMinutes,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// ListByUser implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]schedule.WorkScheduleDay, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+scheduleColumns+` FROM work_schedule_days WHERE user_id = $1 ORDER BY weekday`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []schedule.WorkScheduleDay
	for rows.Next() {
		d, err := scanScheduleDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// ReplaceForUser implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ReplaceForUser(ctx context.Context, userID string, days []schedule.WorkScheduleDay) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM work_schedule_days WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear work schedule: %w", err)
	}

	insert := `
		INSERT INTO work_schedule_days (
			id, user_id, weekday, start_time, end_time, target_minutes, tolerance_minutes, active
		)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8)
	`
	for _, d := range days {
		_, err := q.Exec(ctx, insert,
			d.ID,
			userID,
			d.Weekday,
			d.StartTime,
			d.EndTime,
			d.TargetMinutes,
			d.ToleranceMinutes,
			d.Active,
		)
		if err != nil {
			if database.IsUniqueViolation(err, "") {
				return schedule.ErrDuplicateWeekday
			}
			return fmt.Errorf("failed to insert work schedule day %d: %w", d.Weekday, err)
		}
	}
	return nil
}
