package position

import (
	"context"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

type PositionService interface {
	CreatePosition(ctx context.Context, actor user.Actor, req CreatePositionRequest) (PositionResponse, error)
	ListPositions(ctx context.Context, actor user.Actor) ([]PositionResponse, error)
	CreateUnit(ctx context.Context, actor user.Actor, req CreateUnitRequest) (UnitResponse, error)
	ListUnits(ctx context.Context, actor user.Actor) ([]UnitResponse, error)

	// RegisterMovement closes the user's active movement, if any, and opens a new one atomically.
	RegisterMovement(ctx context.Context, actor user.Actor, userID string, req RegisterMovementRequest) (HistoryResponse, error)
	ListMovements(ctx context.Context, actor user.Actor, userID string) (HistoryResponse, error)
}
