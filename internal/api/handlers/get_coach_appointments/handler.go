package get_coach_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CSP-BookingService/internal/api/handlers"
	"github.com/m04kA/CSP-BookingService/internal/api/middleware"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgInvalidPeriod  = "некорректный формат периода, ожидается YYYY-MM-DD"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/appointments
// Query params: from, to (YYYY-MM-DD), status, includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	coachIDStr := vars["coachId"]

	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/appointments - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /coaches/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := map[string]string{
		"from":             r.URL.Query().Get("from"),
		"to":               r.URL.Query().Get("to"),
		"status":           r.URL.Query().Get("status"),
		"includeCancelled": r.URL.Query().Get("includeCancelled"),
	}

	req, err := ToServiceRequest(coachID, userID, query)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/appointments - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetCoachAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /coaches/{id}/appointments - Access denied: coach_id=%d, user_id=%d", coachID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/appointments - Invalid filter: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /coaches/{id}/appointments - Failed to get appointments: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coaches/{id}/appointments - Appointments retrieved successfully: coach_id=%d, count=%d",
		coachID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
