package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	SummaryMine(w http.ResponseWriter, r *http.Request)
	ListForUser(w http.ResponseWriter, r *http.Request)
	SummaryForUser(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), middleware.ActorFromContext(r.Context()), req, clientIP(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// ListMine implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListMine(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SummaryMine implements AttendanceHandler.
func (h *attendanceHandlerImpl) SummaryMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	h.summarize(w, r, actor.UserID)
}

// ListForUser implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attendanceService.ListForUser(r.Context(), middleware.ActorFromContext(r.Context()), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SummaryForUser implements AttendanceHandler.
func (h *attendanceHandlerImpl) SummaryForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	h.summarize(w, r, userID)
}

func (h *attendanceHandlerImpl) summarize(w http.ResponseWriter, r *http.Request, userID string) {
	filter := attendance.SummaryFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.attendanceService.Summarize(r.Context(), middleware.ActorFromContext(r.Context()), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

// CreateManual implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CreateManual(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		slog.Warn("manual attendance rejected", "user_id", req.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual attendance recorded", result)
}

// Void implements AttendanceHandler.
func (h *attendanceHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req attendance.VoidRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Void(r.Context(), middleware.ActorFromContext(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance voided", result)
}
