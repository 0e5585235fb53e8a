package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/task"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.due_date::text, t.assigned_by, t.assigned_to,
		   t.created_at, t.updated_at,
		   ae.id, ae.first_name, ae.last_name, ae.email,
		   ar.id, ar.first_name, ar.last_name, ar.email
	FROM tasks t
	INNER JOIN users ae ON ae.id = t.assigned_to
	LEFT JOIN users ar ON ar.id = t.assigned_by
`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (task.Task, error) {
	var (
		t       task.Task
		byID    *string
		byFirst *string
		byLast  *string
		byEmail *string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.DueDate,
		&t.AssignedByID,
		&t.AssigneeID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Assignee.ID,
		&t.Assignee.FirstName,
		&t.Assignee.LastName,
		&t.Assignee.Email,
		&byID,
		&byFirst,
		&byLast,
		&byEmail,
	)
	if err != nil {
		return task.Task{}, err
	}
	if byID != nil {
		t.AssignedBy = &user.Ref{ID: *byID, FirstName: deref(byFirst), LastName: deref(byLast), Email: deref(byEmail)}
	}
	return t, nil
}

func (r *taskRepositoryImpl) queryTasks(ctx context.Context, query string, args ...interface{}) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (id, title, description, status, due_date, assigned_by, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Status,
		t.DueDate,
		t.AssignedByID,
		t.AssigneeID,
		t.CreatedAt,
		t.UpdatedAt,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return task.Task{}, task.ErrAssigneeNotFound
		}
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

// Update implements task.TaskRepository. assigned_by is never rewritten.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, assigned_to = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Status,
		t.DueDate,
		t.AssigneeID,
		t.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return task.ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// UpdateStatus implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id string, status task.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// ListAll implements task.TaskRepository.
func (r *taskRepositoryImpl) ListAll(ctx context.Context) ([]task.Task, error) {
	return r.queryTasks(ctx, taskSelect+` ORDER BY t.created_at DESC, t.id DESC`)
}

// ListByAssignee implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByAssignee(ctx context.Context, assigneeID string) ([]task.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.assigned_to = $1 ORDER BY t.created_at DESC, t.id DESC`, assigneeID)
}

// ListByAssigner implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByAssigner(ctx context.Context, assignerID string) ([]task.Task, error) {
	return r.queryTasks(ctx, taskSelect+` WHERE t.assigned_by = $1 ORDER BY t.created_at DESC, t.id DESC`, assignerID)
}
