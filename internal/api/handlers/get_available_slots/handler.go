package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CSP-BookingService/internal/api/handlers"
	"github.com/m04kA/CSP-BookingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/CSP-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCoachID   = "некорректный ID тренера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateTooFar       = "дата выходит за пределы окна бронирования"
	msgListingNotPublic = "расписание тренера скрыто"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/available-slots
// Query params: date (required, YYYY-MM-DD)
// Заголовок X-User-ID необязателен: аутентификация открывает скрытые расписания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /coaches/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(coachID, dateStr, middleware.MaybeUserID(r))
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /coaches/{id}/available-slots - Date too far: coach_id=%d, date=%s", coachID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrListingNotPublic):
			h.logger.Warn("GET /coaches/{id}/available-slots - Listing not public: coach_id=%d", coachID)
			handlers.RespondForbidden(w, msgListingNotPublic)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/available-slots - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /coaches/{id}/available-slots - Failed to get slots: coach_id=%d, date=%s, error=%v",
				coachID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /coaches/{id}/available-slots - Slots retrieved successfully: coach_id=%d, date=%s, slots_count=%d",
		coachID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
