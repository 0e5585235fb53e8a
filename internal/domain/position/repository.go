package position

import "context"

type PositionRepository interface {
	Create(ctx context.Context, p Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	List(ctx context.Context) ([]Position, error)
}

type UnitRepository interface {
	Create(ctx context.Context, u Unit) (Unit, error)
	GetByID(ctx context.Context, id string) (Unit, error)
	List(ctx context.Context) ([]Unit, error)
}

type MovementRepository interface {
	// GetActiveForUpdate returns the user's active movement locked for the transaction, or nil.
	GetActiveForUpdate(ctx context.Context, userID string) (*Movement, error)
	Close(ctx context.Context, id string, endDate string) error
	Create(ctx context.Context, m Movement) (Movement, error)
	// ListByUser orders by start date then creation time, newest first.
	ListByUser(ctx context.Context, userID string) ([]Movement, error)
}
