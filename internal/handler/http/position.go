package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/position"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/response"
)

type PositionHandler interface {
	CreatePosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	CreateUnit(w http.ResponseWriter, r *http.Request)
	ListUnits(w http.ResponseWriter, r *http.Request)
	RegisterMovement(w http.ResponseWriter, r *http.Request)
	ListMovements(w http.ResponseWriter, r *http.Request)
}

type positionHandlerImpl struct {
	positionService position.PositionService
}

func NewPositionHandler(positionService position.PositionService) PositionHandler {
	return &positionHandlerImpl{positionService: positionService}
}

// CreatePosition implements PositionHandler.
func (h *positionHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.CreatePosition(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created", result)
}

// ListPositions implements PositionHandler.
func (h *positionHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	result, err := h.positionService.ListPositions(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateUnit implements PositionHandler.
func (h *positionHandlerImpl) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req position.CreateUnitRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.CreateUnit(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Unit created", result)
}

// ListUnits implements PositionHandler.
func (h *positionHandlerImpl) ListUnits(w http.ResponseWriter, r *http.Request) {
	result, err := h.positionService.ListUnits(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// RegisterMovement implements PositionHandler.
func (h *positionHandlerImpl) RegisterMovement(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req position.RegisterMovementRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.positionService.RegisterMovement(r.Context(), middleware.ActorFromContext(r.Context()), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Movement registered", result)
}

// ListMovements implements PositionHandler.
func (h *positionHandlerImpl) ListMovements(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.positionService.ListMovements(r.Context(), middleware.ActorFromContext(r.Context()), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
