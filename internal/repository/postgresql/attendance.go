package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// dayExitIndex enforces at most one VALID EXIT per owner and local date.
const dayExitIndex = "uq_attendance_events_day_exit"

const eventSelect = `
	SELECT e.id, e.occurred_at, e.kind, e.status, e.origin, e.source_ip, e.note,
		   e.owner_id, e.reviewer_id, e.local_date::text, e.recorded_at,
		   o.id, o.first_name, o.last_name, o.email,
		   rv.id, rv.first_name, rv.last_name, rv.email
	FROM attendance_events e
	INNER JOIN users o ON o.id = e.owner_id
	LEFT JOIN users rv ON rv.id = e.reviewer_id
`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var (
		e        attendance.Event
		revID    *string
		revFirst *string
		revLast  *string
		revEmail *string
	)
	err := row.Scan(
		&e.ID,
		&e.OccurredAt,
		&e.Kind,
		&e.Status,
		&e.Origin,
		&e.SourceIP,
		&e.Note,
		&e.OwnerID,
		&e.ReviewerID,
		&e.LocalDate,
		&e.RecordedAt,
		&e.Owner.ID,
		&e.Owner.FirstName,
		&e.Owner.LastName,
		&e.Owner.Email,
		&revID,
		&revFirst,
		&revLast,
		&revEmail,
	)
	if err != nil {
		return attendance.Event{}, err
	}
	if revID != nil {
		e.Reviewer = &user.Ref{ID: *revID, FirstName: deref(revFirst), LastName: deref(revLast), Email: deref(revEmail)}
	}
	return e, nil
}

func (r *attendanceRepositoryImpl) queryEvents(ctx context.Context, query string, args ...interface{}) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, occurred_at, kind, status, origin, source_ip, note, owner_id, reviewer_id, local_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING recorded_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.OccurredAt,
		event.Kind,
		event.Status,
		event.Origin,
		event.SourceIP,
		event.Note,
		event.OwnerID,
		event.ReviewerID,
		event.LocalDate,
	).Scan(&event.RecordedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, dayExitIndex):
			return attendance.Event{}, attendance.ErrDayClosed
		case database.IsForeignKeyViolation(err):
			return attendance.Event{}, attendance.ErrUserDoesNotExist
		}
		return attendance.Event{}, fmt.Errorf("failed to insert attendance event: %w", err)
	}
	return event, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEvent(q.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, err
	}
	return e, nil
}

// ListValidBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListValidBetween(ctx context.Context, ownerID string, start, endExclusive time.Time) ([]attendance.Event, error) {
	query := eventSelect + `
		WHERE e.owner_id = $1 AND e.status = $2 AND e.occurred_at >= $3 AND e.occurred_at < $4
		ORDER BY e.occurred_at ASC, e.recorded_at ASC
	`
	return r.queryEvents(ctx, query, ownerID, attendance.StatusValid, start, endExclusive)
}

// ListByOwner implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]attendance.Event, error) {
	query := eventSelect + `
		WHERE e.owner_id = $1
		ORDER BY e.occurred_at DESC, e.recorded_at DESC
	`
	return r.queryEvents(ctx, query, ownerID)
}

// UpdateReview implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateReview(ctx context.Context, id string, status attendance.Status, reviewerID string, note string) error {
	q := GetQuerier(ctx, r.db)

	// Only VALID events change status; an event already in the target status is re-stamped
	tag, err := q.Exec(ctx, `
		UPDATE attendance_events SET status = $2, reviewer_id = $3, note = $4
		WHERE id = $1 AND status IN ('VALID', $2)
	`, id, status, reviewerID, note)
	if err != nil {
		return fmt.Errorf("failed to update attendance event: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendance_events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check attendance event: %w", err)
	}
	if exists {
		return attendance.ErrStatusTransition
	}
	return attendance.ErrEventNotFound
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
