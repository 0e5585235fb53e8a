package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveSelect = `
	SELECT lr.id, lr.type, lr.reason, lr.start_date::text, lr.end_date::text, lr.status, lr.paid,
		   lr.resolution_note, lr.requester_id, lr.resolver_id, lr.created_at, lr.resolved_at,
		   rq.id, rq.first_name, rq.last_name, rq.email,
		   rs.id, rs.first_name, rs.last_name, rs.email
	FROM leave_requests lr
	INNER JOIN users rq ON rq.id = lr.requester_id
	LEFT JOIN users rs ON rs.id = lr.resolver_id
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		lr       leave.LeaveRequest
		resID    *string
		resFirst *string
		resLast  *string
		resEmail *string
	)
	err := row.Scan(
		&lr.ID,
		&lr.Type,
		&lr.Reason,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.Paid,
		&lr.ResolutionNote,
		&lr.RequesterID,
		&lr.ResolverID,
		&lr.CreatedAt,
		&lr.ResolvedAt,
		&lr.Requester.ID,
		&lr.Requester.FirstName,
		&lr.Requester.LastName,
		&lr.Requester.Email,
		&resID,
		&resFirst,
		&resLast,
		&resEmail,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if resID != nil {
		lr.Resolver = &user.Ref{ID: *resID, FirstName: deref(resFirst), LastName: deref(resLast), Email: deref(resEmail)}
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) queryLeaveRequests(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, type, reason, start_date, end_date, status, paid, requester_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		req.ID,
		req.Type,
		req.Reason,
		req.StartDate,
		req.EndDate,
		req.Status,
		req.Paid,
		req.RequesterID,
		req.CreatedAt,
	).Scan(&req.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return leave.LeaveRequest{}, leave.ErrRequesterDoesNotExist
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return r.queryLeaveRequests(ctx, leaveSelect+` WHERE lr.status = $1 ORDER BY lr.created_at DESC, lr.id DESC`, status)
}

// ListByRequester implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	return r.queryLeaveRequests(ctx, leaveSelect+` WHERE lr.requester_id = $1 ORDER BY lr.created_at DESC, lr.id DESC`, requesterID)
}

// Resolve implements leave.LeaveRequestRepository.
// Only a PENDING row is updated, so a concurrent resolution loses cleanly.
func (r *leaveRequestRepositoryImpl) Resolve(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, paid = $3, resolution_note = $4, resolver_id = $5, resolved_at = $6
		WHERE id = $1 AND status = $7
	`
	tag, err := q.Exec(ctx, query,
		req.ID,
		req.Status,
		req.Paid,
		req.ResolutionNote,
		req.ResolverID,
		req.ResolvedAt,
		leave.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}

// FindApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindApprovedCovering(ctx context.Context, userID string, dateKey string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + `
		WHERE lr.requester_id = $1 AND lr.status = $2
		  AND lr.start_date <= $3::date AND lr.end_date >= $3::date
		ORDER BY lr.start_date
		LIMIT 1
	`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, userID, leave.StatusApproved, dateKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lr, nil
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, userID string, fromKey, toKey string) (leave.Spans, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT start_date::text, end_date::text
		FROM leave_requests
		WHERE requester_id = $1 AND status = $2
		  AND start_date <= $4::date AND end_date >= $3::date
		ORDER BY start_date
	`
	rows, err := q.Query(ctx, query, userID, leave.StatusApproved, fromKey, toKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spans leave.Spans
	for rows.Next() {
		var s leave.Span
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, rows.Err()
}
