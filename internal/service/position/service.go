package position

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/position"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type PositionServiceImpl struct {
	tx        database.Transactor
	positions position.PositionRepository
	units     position.UnitRepository
	movements position.MovementRepository
	user.UserRepository
}

func NewPositionService(
	tx database.Transactor,
	positionRepository position.PositionRepository,
	unitRepository position.UnitRepository,
	movementRepository position.MovementRepository,
	userRepository user.UserRepository,
) position.PositionService {
	return &PositionServiceImpl{
		tx:             tx,
		positions:      positionRepository,
		units:          unitRepository,
		movements:      movementRepository,
		UserRepository: userRepository,
	}
}

func (s *PositionServiceImpl) authorize(actor user.Actor) error {
	if !actor.IsAuthenticated() {
		return position.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionPositionManage) {
		return position.ErrForbidden
	}
	return nil
}

// CreatePosition implements position.PositionService.
func (s *PositionServiceImpl) CreatePosition(ctx context.Context, actor user.Actor, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := s.authorize(actor); err != nil {
		return position.PositionResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := s.positions.Create(ctx, position.Position{
		ID:     id.String(),
		Code:   req.Code,
		Name:   req.Name,
		Active: active,
	})
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToPositionResponse(created), nil
}

// ListPositions implements position.PositionService.
func (s *PositionServiceImpl) ListPositions(ctx context.Context, actor user.Actor) ([]position.PositionResponse, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	list, err := s.positions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	resp := make([]position.PositionResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, position.ToPositionResponse(p))
	}
	return resp, nil
}

// CreateUnit implements position.PositionService.
func (s *PositionServiceImpl) CreateUnit(ctx context.Context, actor user.Actor, req position.CreateUnitRequest) (position.UnitResponse, error) {
	if err := s.authorize(actor); err != nil {
		return position.UnitResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return position.UnitResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := s.units.Create(ctx, position.Unit{ID: id.String(), Name: req.Name, Active: active})
	if err != nil {
		return position.UnitResponse{}, err
	}
	return position.ToUnitResponse(created), nil
}

// ListUnits implements position.PositionService.
func (s *PositionServiceImpl) ListUnits(ctx context.Context, actor user.Actor) ([]position.UnitResponse, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	list, err := s.units.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	resp := make([]position.UnitResponse, 0, len(list))
	for _, u := range list {
		resp = append(resp, position.ToUnitResponse(u))
	}
	return resp, nil
}

// RegisterMovement implements position.PositionService.
func (s *PositionServiceImpl) RegisterMovement(ctx context.Context, actor user.Actor, userID string, req position.RegisterMovementRequest) (position.HistoryResponse, error) {
	if err := s.authorize(actor); err != nil {
		return position.HistoryResponse{}, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return position.HistoryResponse{}, err
	}

	movementType := position.MovementType(req.Type)
	if movementType != position.MovementTermination {
		if req.PositionID == nil || *req.PositionID == "" {
			return position.HistoryResponse{}, position.ErrPositionRequired
		}
		if req.UnitID == nil || *req.UnitID == "" {
			return position.HistoryResponse{}, position.ErrUnitRequired
		}
		if _, err := s.positions.GetByID(ctx, *req.PositionID); err != nil {
			return position.HistoryResponse{}, err
		}
		if _, err := s.units.GetByID(ctx, *req.UnitID); err != nil {
			return position.HistoryResponse{}, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return position.HistoryResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	movement := position.Movement{
		ID:        id.String(),
		UserID:    userID,
		Type:      movementType,
		StartDate: req.StartDate,
		Note:      req.Note,
		CreatedBy: actor.UserID,
	}
	if movementType != position.MovementTermination {
		movement.PositionID = req.PositionID
		movement.UnitID = req.UnitID
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		active, err := s.movements.GetActiveForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get active movement: %w", err)
		}

		if movementType == position.MovementInitial {
			if active != nil {
				return position.ErrAlreadyActive
			}
		} else {
			if active == nil {
				return position.ErrNoActivePosition
			}
			if req.StartDate < active.StartDate {
				return position.ErrStartBeforeCurrent
			}
			if err := s.movements.Close(txCtx, active.ID, req.StartDate); err != nil {
				return fmt.Errorf("failed to close active movement: %w", err)
			}
		}

		_, err = s.movements.Create(txCtx, movement)
		return err
	})
	if err != nil {
		return position.HistoryResponse{}, err
	}

	slog.Info("position movement registered", "user_id", userID, "type", movementType, "created_by", actor.UserID)
	return s.ListMovements(ctx, actor, userID)
}

// ListMovements implements position.PositionService.
func (s *PositionServiceImpl) ListMovements(ctx context.Context, actor user.Actor, userID string) (position.HistoryResponse, error) {
	if err := s.authorize(actor); err != nil {
		return position.HistoryResponse{}, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return position.HistoryResponse{}, err
	}

	movements, err := s.movements.ListByUser(ctx, userID)
	if err != nil {
		return position.HistoryResponse{}, fmt.Errorf("failed to list movements: %w", err)
	}
	return position.ToHistoryResponse(userID, movements), nil
}

func (s *PositionServiceImpl) ensureUser(ctx context.Context, userID string) error {
	exists, err := s.UserRepository.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return position.ErrUserNotFound
	}
	return nil
}
