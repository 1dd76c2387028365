package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/events"
	appointmentRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/appointment"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	"github.com/m04kA/CSP-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	templateRepo    TemplateRepository
	txManager       TransactionManager
	dispatcher      EventDispatcher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	templateRepo TemplateRepository,
	txManager TransactionManager,
	dispatcher EventDispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		templateRepo:    templateRepo,
		txManager:       txManager,
		dispatcher:      dispatcher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все проверки повторяются внутри сериализуемой транзакции: просмотр слотов
// не резервирует слот, поэтому между просмотром и бронированием состояние
// могло измениться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: coach=%d, athlete=%v, date=%s, time=%s",
		req.CoachID, req.AthleteID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем шаблон доступности тренера
		tmpl, err := uc.templateRepo.GetByCoachID(txCtx, req.CoachID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				uc.logger.Warn("CreateBooking: coach id=%d has no availability template", req.CoachID)
				return ErrTemplateNotFound
			}
			uc.logger.Error("CreateBooking: failed to get template for coach id=%d: %v", req.CoachID, err)
			return fmt.Errorf("%w: failed to get template: %w", ErrInternal, err)
		}

		// 3.2. Внешние бронирования принимаются только при включённом флаге
		if req.AthleteID == nil && !tmpl.IsExternalBookingEnabled {
			uc.logger.Warn("CreateBooking: external booking disabled for coach id=%d", req.CoachID)
			return ErrExternalBookingDisabled
		}

		// 3.3. Валидация даты: не в прошлом и внутри окна бронирования
		if err := validateDate(req.Date, now, tmpl.BookingWindowDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 3.4. Время начала должно совпадать со слотом из сетки шаблона
		if err := validateSlotInGrid(tmpl, req.Date, req.StartTime); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 3.5. Вычисляем абсолютные границы слота
		slotStart, err := req.StartTime.OnDate(req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
		}
		slotEnd := slotStart.Add(time.Duration(tmpl.DefaultDurationMinutes) * time.Minute)

		// Начавшийся слот бронировать нельзя
		if slotStart.Before(now) {
			uc.logger.Warn("CreateBooking: slot %s already started", req.StartTime)
			return ErrTooLateToBook
		}

		// 3.6. Получаем записи тренера на день с блокировкой (FOR UPDATE)
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
		filter := domain.CoachAppointmentsFilter{
			CoachID:          req.CoachID,
			From:             ptr.Ptr(dayStart),
			To:               ptr.Ptr(dayStart.AddDate(0, 0, 1)),
			IncludeCancelled: false,
		}

		appointments, err := uc.appointmentRepo.GetByCoachWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 3.7. Проверяем пересечение с существующими записями
		if conflict := findOverlapping(slotStart, slotEnd, appointments); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s conflicts with appointment id=%d", req.StartTime, conflict.ID)
			return ErrSlotConflict
		}

		// 3.8. Создаем запись со снимком цены из шаблона
		appointment := &domain.Appointment{
			CoachID:           req.CoachID,
			AthleteID:         req.AthleteID,
			StartTime:         slotStart.UTC(),
			EndTime:           slotEnd.UTC(),
			Status:            domain.StatusConfirmed,
			Type:              req.Type,
			BillingStatus:     billingStatusFor(req.BillingIntent),
			SessionPriceCents: tmpl.SessionPriceCents,
			Currency:          tmpl.Currency,
			ClientName:        req.ClientName,
			ClientEmail:       req.ClientEmail,
			ClientPhone:       req.ClientPhone,
		}

		// 3.9. Сохраняем. Exclusion constraint БД - последний рубеж против гонок
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently", req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			// Цепочка ошибки репозитория сохраняется: конфликт сериализации
			// внутри неё перехватывает txmanager
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	// 4. Публикуем событие после коммита
	uc.dispatcher.Dispatch(events.BookingConfirmed{Appointment: result})

	return toResponse(result), nil
}
