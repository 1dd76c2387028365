package get_athlete_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CSP-BookingService/internal/api/handlers"
	"github.com/m04kA/CSP-BookingService/internal/api/middleware"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidAthleteID = "некорректный ID атлета"
	msgInvalidStatus    = "некорректный статус записи"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/athletes/{athleteId}/appointments
// Query params: status (optional, confirmed | cancelled)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	athleteIDStr := vars["athleteId"]

	athleteID, err := strconv.ParseInt(athleteIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /athletes/{id}/appointments - Invalid athlete ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAthleteID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /athletes/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetAthleteAppointmentsRequest{
		AthleteID: athleteID,
		UserID:    userID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetAthleteAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /athletes/{id}/appointments - Access denied: athlete_id=%d, user_id=%d", athleteID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /athletes/{id}/appointments - Invalid status: athlete_id=%d", athleteID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /athletes/{id}/appointments - Failed to get appointments: athlete_id=%d, error=%v",
				athleteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /athletes/{id}/appointments - Appointments retrieved successfully: athlete_id=%d, count=%d",
		athleteID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
