package events

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/integrations/notifyservice"
)

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	GetCoachPreferences(ctx context.Context, coachID int64) (*notifyservice.CoachPreferences, error)
	SendBookingNotification(ctx context.Context, notification *notifyservice.BookingNotification) error
}

// NotificationSubscriber отправляет уведомления о событиях бронирования.
// Отправка гейтится настройками уведомлений тренера; отсутствие настроек
// трактуется как "включено".
type NotificationSubscriber struct {
	client NotifyClient
	log    Logger
}

// NewNotificationSubscriber создает подписчика уведомлений
func NewNotificationSubscriber(client NotifyClient, log Logger) *NotificationSubscriber {
	return &NotificationSubscriber{client: client, log: log}
}

// SubscriberName имя подписчика для логов
func (s *NotificationSubscriber) SubscriberName() string { return "notifications" }

// Handle обрабатывает событие бронирования
func (s *NotificationSubscriber) Handle(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case BookingConfirmed:
		return s.notify(ctx, e.Appointment, "booking_confirmed")
	case BookingCancelled:
		return s.notify(ctx, e.Appointment, "booking_cancelled")
	default:
		return nil
	}
}

func (s *NotificationSubscriber) notify(ctx context.Context, appt *domain.Appointment, kind string) error {
	enabled, err := s.kindEnabled(ctx, appt.CoachID, kind)
	if err != nil {
		return err
	}
	if !enabled {
		s.log.Info("notifications: %s disabled by coach=%d preferences, skipping appointment=%d",
			kind, appt.CoachID, appt.ID)
		return nil
	}

	notification := &notifyservice.BookingNotification{
		AppointmentID: appt.ID,
		CoachID:       appt.CoachID,
		AthleteID:     appt.AthleteID,
		ClientName:    appt.ClientName,
		ClientEmail:   appt.ClientEmail,
		ClientPhone:   appt.ClientPhone,
		StartTime:     appt.StartTime.Format(time.RFC3339),
		EndTime:       appt.EndTime.Format(time.RFC3339),
		Kind:          kind,
	}
	if appt.CancelledBy != nil {
		actor := string(*appt.CancelledBy)
		notification.CancelledBy = &actor
		notification.CancelReason = appt.CancellationReason
	}

	return s.client.SendBookingNotification(ctx, notification)
}

func (s *NotificationSubscriber) kindEnabled(ctx context.Context, coachID int64, kind string) (bool, error) {
	prefs, err := s.client.GetCoachPreferences(ctx, coachID)
	if err != nil {
		// Нет настроек - уведомления включены по умолчанию
		if errors.Is(err, notifyservice.ErrPreferencesNotFound) {
			return true, nil
		}
		return false, err
	}

	switch kind {
	case "booking_confirmed":
		return prefs.BookingConfirmedEnabled, nil
	case "booking_cancelled":
		return prefs.BookingCancelledEnabled, nil
	default:
		return true, nil
	}
}
