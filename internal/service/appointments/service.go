package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/events"
	appointmentRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	dispatcher      EventDispatcher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	dispatcher EventDispatcher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		dispatcher:      dispatcher,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - запись видят только её атлет и её тренер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetAthleteAppointments получает историю записей атлета
// Атлет видит только собственную историю
func (s *Service) GetAthleteAppointments(ctx context.Context, req *models.GetAthleteAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAthleteAppointments: fetching appointments for athlete=%d, status=%v", req.AthleteID, req.Status)

	if req.AthleteID != req.UserID {
		s.logger.Warn("GetAthleteAppointments: user=%d requested history of athlete=%d", req.UserID, req.AthleteID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAthleteAppointments: invalid status=%s for athlete=%d", *req.Status, req.AthleteID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByAthleteID(ctx, req.AthleteID, domainStatus)
	if err != nil {
		s.logger.Error("GetAthleteAppointments: repository error for athlete=%d: %v", req.AthleteID, err)
		return nil, fmt.Errorf("%w: GetAthleteAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAthleteAppointments: successfully fetched %d appointments for athlete=%d", len(appointments), req.AthleteID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetCoachAppointments получает расписание тренера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых записей.
// Доступно только самому тренеру.
func (s *Service) GetCoachAppointments(ctx context.Context, req *models.GetCoachAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCoachAppointments: fetching appointments for coach=%d, user=%d", req.CoachID, req.UserID)

	if req.CoachID != req.UserID {
		s.logger.Warn("GetCoachAppointments: user=%d requested agenda of coach=%d", req.UserID, req.CoachID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetCoachAppointments: invalid period for coach=%d", req.CoachID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCoachAppointments: invalid filter for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByCoachWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCoachAppointments: repository error for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: GetCoachAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCoachAppointments: successfully fetched %d appointments for coach=%d", len(appointments), req.CoachID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись. Единственный допустимый переход: confirmed -> cancelled.
// Актор выводится из прав доступа: атлет записи отменяет как athlete,
// тренер записи - как coach. Повторная отмена уже отменённой записи - no-op:
// возвращается сохранённая запись с метаданными первой отмены.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Определяем актора отмены из прав доступа
	actor, err := s.resolveCancelActor(appointment, req.UserID)
	if err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
		return nil, err
	}

	// Повторная отмена - no-op, метаданные первой отмены не перезаписываются
	if appointment.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%d is already cancelled, no-op", appointmentID)
		return models.FromDomainAppointment(appointment), nil
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, actor, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// Запись отменили конкурентно между чтением и апдейтом - тоже no-op
			s.logger.Warn("Cancel: appointment id=%d cancelled concurrently", appointmentID)
			return s.GetByID(ctx, appointmentID, req.UserID)
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись с заполненными метаданными отмены
	cancelled, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - failed to reload appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d by %s", appointmentID, actor)

	s.dispatcher.Dispatch(events.BookingCancelled{Appointment: cancelled})

	return models.FromDomainAppointment(cancelled), nil
}

// resolveCancelActor выводит актора отмены из прав доступа к записи
func (s *Service) resolveCancelActor(appointment *domain.Appointment, userID int64) (domain.CancelActor, error) {
	if appointment.AthleteID != nil && *appointment.AthleteID == userID {
		return domain.CancelledByAthlete, nil
	}
	if appointment.CoachID == userID {
		return domain.CancelledByCoach, nil
	}
	return "", ErrAccessDenied
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Доступ есть у атлета записи и у её тренера
func (s *Service) checkUserAccess(appointment *domain.Appointment, userID int64) error {
	if appointment.AthleteID != nil && *appointment.AthleteID == userID {
		return nil
	}
	if appointment.CoachID == userID {
		return nil
	}
	return ErrAccessDenied
}
