package create_external_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CSP-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/CSP-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidCoachID         = "некорректный ID тренера"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgTemplateNotFound       = "у тренера нет расписания"
	msgExternalBookingsClosed = "тренер не принимает внешние бронирования"
	msgSlotConflict           = "выбранный слот уже занят"
	msgInvalidBookingDate     = "некорректная дата бронирования"
	msgDateTooFar             = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot        = "выбранное время не является слотом расписания"
	msgTooLateToBook          = "слот уже начался"
	msgInvalidInput           = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/coaches/{coachId}/external-bookings
// Публичный маршрут: бронирование от клиента без аккаунта.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/external-bookings - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	var req CreateExternalBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coaches/{id}/external-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(coachID)
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/external-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrExternalBookingDisabled):
			h.logger.Warn("POST /coaches/{id}/external-bookings - External bookings disabled: coach_id=%d", coachID)
			handlers.RespondForbidden(w, msgExternalBookingsClosed)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Slot conflict: coach_id=%d, time=%s",
				coachID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrTemplateNotFound):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Template not found: coach_id=%d", coachID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Invalid booking date: coach_id=%d", coachID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Date too far in future: coach_id=%d", coachID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Invalid time slot: coach_id=%d, time=%s",
				coachID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Too late to book: coach_id=%d, time=%s",
				coachID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /coaches/{id}/external-bookings - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /coaches/{id}/external-bookings - Failed to create booking: coach_id=%d, error=%v",
				coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /coaches/{id}/external-bookings - Booking created successfully: appointment_id=%d, coach_id=%d",
		result.ID, coachID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
