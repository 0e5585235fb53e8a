package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/position"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// activeMovementIndex allows a single open movement per user.
const activeMovementIndex = "uq_position_movements_active"

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (id, code, name, active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := q.QueryRow(ctx, query, p.ID, p.Code, p.Name, p.Active).Scan(&p.CreatedAt); err != nil {
		if database.IsUniqueViolation(err, "positions_code_key") {
			return position.Position{}, position.ErrPositionCodeExists
		}
		return position.Position{}, fmt.Errorf("failed to insert position: %w", err)
	}
	return p, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	var p position.Position
	err := q.QueryRow(ctx, `SELECT id, code, name, active, created_at FROM positions WHERE id = $1`, id).
		Scan(&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, err
	}
	return p, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, code, name, active, created_at FROM positions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

type unitRepositoryImpl struct {
	db *database.DB
}

func NewUnitRepository(db *database.DB) position.UnitRepository {
	return &unitRepositoryImpl{db: db}
}

// Create implements position.UnitRepository.
func (r *unitRepositoryImpl) Create(ctx context.Context, u position.Unit) (position.Unit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO org_units (id, name, active)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := q.QueryRow(ctx, query, u.ID, u.Name, u.Active).Scan(&u.CreatedAt); err != nil {
		if database.IsUniqueViolation(err, "org_units_name_key") {
			return position.Unit{}, position.ErrUnitNameExists
		}
		return position.Unit{}, fmt.Errorf("failed to insert unit: %w", err)
	}
	return u, nil
}

// GetByID implements position.UnitRepository.
func (r *unitRepositoryImpl) GetByID(ctx context.Context, id string) (position.Unit, error) {
	q := GetQuerier(ctx, r.db)

	var u position.Unit
	err := q.QueryRow(ctx, `SELECT id, name, active, created_at FROM org_units WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Unit{}, position.ErrUnitNotFound
		}
		return position.Unit{}, err
	}
	return u, nil
}

// List implements position.UnitRepository.
func (r *unitRepositoryImpl) List(ctx context.Context) ([]position.Unit, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, active, created_at FROM org_units ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []position.Unit
	for rows.Next() {
		var u position.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

const movementSelect = `
	SELECT m.id, m.user_id, m.type, m.position_id, m.unit_id, m.start_date::text, m.end_date::text,
		   m.note, m.created_by, m.created_at, p.name, u.name
	FROM position_movements m
	LEFT JOIN positions p ON p.id = m.position_id
	LEFT JOIN org_units u ON u.id = m.unit_id
`

type movementRepositoryImpl struct {
	db *database.DB
}

func NewMovementRepository(db *database.DB) position.MovementRepository {
	return &movementRepositoryImpl{db: db}
}

func scanMovement(row pgx.Row) (position.Movement, error) {
	var m position.Movement
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Type,
		&m.PositionID,
		&m.UnitID,
		&m.StartDate,
		&m.EndDate,
		&m.Note,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.PositionName,
		&m.UnitName,
	)
	return m, err
}

// GetActiveForUpdate implements position.MovementRepository.
func (r *movementRepositoryImpl) GetActiveForUpdate(ctx context.Context, userID string) (*position.Movement, error) {
	q := GetQuerier(ctx, r.db)

	// FOR UPDATE cannot lock the nullable side of an outer join
	query := movementSelect + ` WHERE m.user_id = $1 AND m.end_date IS NULL FOR UPDATE OF m`
	m, err := scanMovement(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Close implements position.MovementRepository.
func (r *movementRepositoryImpl) Close(ctx context.Context, id string, endDate string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE position_movements SET end_date = $2::date WHERE id = $1 AND end_date IS NULL`, id, endDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return position.ErrNoActivePosition
	}
	return nil
}

// Create implements position.MovementRepository.
func (r *movementRepositoryImpl) Create(ctx context.Context, m position.Movement) (position.Movement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO position_movements (
			id, user_id, type, position_id, unit_id, start_date, end_date, note, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		m.ID,
		m.UserID,
		m.Type,
		m.PositionID,
		m.UnitID,
		m.StartDate,
		m.EndDate,
		m.Note,
		m.CreatedBy,
	).Scan(&m.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, activeMovementIndex) {
			return position.Movement{}, position.ErrAlreadyActive
		}
		return position.Movement{}, fmt.Errorf("failed to insert movement: %w", err)
	}
	return m, nil
}

// ListByUser implements position.MovementRepository.
func (r *movementRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]position.Movement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, movementSelect+` WHERE m.user_id = $1 ORDER BY m.start_date DESC, m.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []position.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
