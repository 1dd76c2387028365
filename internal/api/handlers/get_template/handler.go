package get_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CSP-BookingService/internal/api/handlers"
	"github.com/m04kA/CSP-BookingService/internal/api/middleware"
	templateService "github.com/m04kA/CSP-BookingService/internal/service/template"
)

const (
	msgInvalidCoachID = "некорректный ID тренера"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	coachIDStr := vars["coachId"]

	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/template - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /coaches/{id}/template - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	tmpl, err := h.service.Get(r.Context(), coachID, userID)
	if err != nil {
		switch {
		case errors.Is(err, templateService.ErrAccessDenied):
			h.logger.Warn("GET /coaches/{id}/template - Access denied: coach_id=%d, user_id=%d", coachID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /coaches/{id}/template - Failed to get template: coach_id=%d, error=%v", coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coaches/{id}/template - Template retrieved successfully: coach_id=%d, version=%d",
		coachID, tmpl.Version)
	handlers.RespondJSON(w, http.StatusOK, tmpl)
}
