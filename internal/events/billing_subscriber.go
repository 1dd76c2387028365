package events

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/integrations/billingservice"
)

// BillingClient интерфейс клиента BillingService
type BillingClient interface {
	CapturePayment(ctx context.Context, req *billingservice.CaptureRequest) (*billingservice.CaptureResponse, error)
}

// BillingSubscriber списывает оплату за подтверждённые бронирования
// со статусом оплаты paid (прямая оплата внешнего клиента).
type BillingSubscriber struct {
	client BillingClient
	log    Logger
}

// NewBillingSubscriber создает подписчика биллинга
func NewBillingSubscriber(client BillingClient, log Logger) *BillingSubscriber {
	return &BillingSubscriber{client: client, log: log}
}

// SubscriberName имя подписчика для логов
func (s *BillingSubscriber) SubscriberName() string { return "billing" }

// Handle обрабатывает событие бронирования
func (s *BillingSubscriber) Handle(ctx context.Context, event Event) error {
	confirmed, ok := event.(BookingConfirmed)
	if !ok {
		return nil
	}

	appt := confirmed.Appointment
	if appt.BillingStatus != domain.BillingPaid {
		return nil
	}

	capture, err := s.client.CapturePayment(ctx, &billingservice.CaptureRequest{
		AppointmentID: appt.ID,
		CoachID:       appt.CoachID,
		AmountCents:   appt.SessionPriceCents,
		Currency:      appt.Currency,
		ClientEmail:   appt.ClientEmail,
	})
	if err != nil {
		return err
	}

	s.log.Info("billing: captured payment %s for appointment=%d amount=%d %s",
		capture.PaymentID, appt.ID, appt.SessionPriceCents, appt.Currency)
	return nil
}
