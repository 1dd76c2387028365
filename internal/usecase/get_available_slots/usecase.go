package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	"github.com/m04kA/CSP-BookingService/pkg/ptr"
)

// UseCase use case для получения сетки слотов тренера на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	templateRepo    TemplateRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	templateRepo TemplateRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		templateRepo:    templateRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: coach=%d, date=%s",
		req.CoachID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем шаблон доступности тренера
	tmpl, err := uc.templateRepo.GetByCoachID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			// Тренер без шаблона - пустая сетка, не ошибка
			uc.logger.Info("GetAvailableSlots: coach id=%d has no availability template", req.CoachID)
			return &Response{
				CoachID: req.CoachID,
				Date:    req.Date,
				Slots:   []domain.Slot{},
			}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get template for coach id=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	// 4. Скрытое расписание доступно только аутентифицированным пользователям
	if !tmpl.IsPublicListing && req.RequesterID == nil {
		uc.logger.Warn("GetAvailableSlots: coach id=%d listing is not public, anonymous request rejected", req.CoachID)
		return nil, ErrListingNotPublic
	}

	// 5. Проверяем окно бронирования
	if err := validateBookingWindow(req.Date, now, tmpl.BookingWindowDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: booking window check failed: %v", err)
		return nil, err
	}

	// 6. Генерируем сетку слотов-кандидатов из шаблона
	candidates := generateCandidates(tmpl, req.Date)
	if len(candidates) == 0 {
		// Закрытый день
		uc.logger.Info("GetAvailableSlots: coach id=%d is closed on %s", req.CoachID, req.Date.Format(domain.DateFormat))
		return &Response{
			CoachID:         req.CoachID,
			Date:            req.Date,
			DurationMinutes: tmpl.DefaultDurationMinutes,
			Slots:           []domain.Slot{},
		}, nil
	}

	// 7. Получаем записи тренера на эту дату
	from, to := dayBounds(req.Date)
	filter := domain.CoachAppointmentsFilter{
		CoachID:          req.CoachID,
		From:             ptr.Ptr(from),
		To:               ptr.Ptr(to),
		IncludeCancelled: false, // Отменённые записи слоты не блокируют
	}

	appointments, err := uc.appointmentRepo.GetByCoachWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Помечаем занятые и прошедшие слоты
	slots := annotateSlots(candidates, req.Date, tmpl.DefaultDurationMinutes, appointments, now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for coach=%d, date=%s",
		len(slots), req.CoachID, req.Date.Format(domain.DateFormat))

	return &Response{
		CoachID:         req.CoachID,
		Date:            req.Date,
		DurationMinutes: tmpl.DefaultDurationMinutes,
		Slots:           slots,
	}, nil
}
