package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/events"
	appointmentRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
	"github.com/m04kA/CSP-BookingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		byID[a.ID] = a
	}
	return &fakeAppointmentRepo{byID: byID}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByAthleteID(_ context.Context, athleteID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.AthleteID == nil || *a.AthleteID != athleteID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByCoachWithFilter(_ context.Context, filter domain.CoachAppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.CoachID != filter.CoachID {
			continue
		}
		if a.IsCancelled() && !filter.IncludeCancelled && filter.Status == nil {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.From != nil && a.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, actor domain.CancelActor, reason *string) error {
	a, ok := f.byID[id]
	if !ok || a.IsCancelled() {
		return appointmentRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	a.Status = domain.StatusCancelled
	a.CancelledBy = &actor
	a.CancellationReason = reason
	a.CancelledAt = &now
	return nil
}

type fakeDispatcher struct {
	events []events.Event
}

func (f *fakeDispatcher) Dispatch(e events.Event) {
	f.events = append(f.events, e)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func confirmedAppointment(id, coachID int64, athleteID *int64, start time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:        id,
		CoachID:   coachID,
		AthleteID: athleteID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    domain.StatusConfirmed,
		Type:      domain.TypeVideo,
	}
}

var testStart = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func TestGetByID_Access(t *testing.T) {
	repo := newFakeRepo(confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart))
	svc := NewService(repo, &fakeDispatcher{}, noopLogger{})

	// Атлет записи
	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Тренер записи
	_, err = svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)

	// Посторонний пользователь
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Несуществующая запись
	_, err = svc.GetByID(context.Background(), 77, 100)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetAthleteAppointments(t *testing.T) {
	repo := newFakeRepo(
		confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart),
		confirmedAppointment(2, 42, ptr.Ptr(int64(100)), testStart.Add(24*time.Hour)),
		confirmedAppointment(3, 42, ptr.Ptr(int64(200)), testStart),
	)
	svc := NewService(repo, &fakeDispatcher{}, noopLogger{})

	resp, err := svc.GetAthleteAppointments(context.Background(), &models.GetAthleteAppointmentsRequest{
		AthleteID: 100,
		UserID:    100,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	// Чужая история недоступна
	_, err = svc.GetAthleteAppointments(context.Background(), &models.GetAthleteAppointmentsRequest{
		AthleteID: 100,
		UserID:    200,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный статус
	_, err = svc.GetAthleteAppointments(context.Background(), &models.GetAthleteAppointmentsRequest{
		AthleteID: 100,
		UserID:    100,
		Status:    ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCoachAppointments(t *testing.T) {
	cancelled := confirmedAppointment(2, 42, ptr.Ptr(int64(100)), testStart.Add(2*time.Hour))
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo(
		confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart),
		cancelled,
	)
	svc := NewService(repo, &fakeDispatcher{}, noopLogger{})

	// По умолчанию отменённые не включаются
	resp, err := svc.GetCoachAppointments(context.Background(), &models.GetCoachAppointmentsRequest{
		CoachID: 42,
		UserID:  42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	resp, err = svc.GetCoachAppointments(context.Background(), &models.GetCoachAppointmentsRequest{
		CoachID:          42,
		UserID:           42,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	// Чужое расписание недоступно
	_, err = svc.GetCoachAppointments(context.Background(), &models.GetCoachAppointmentsRequest{
		CoachID: 42,
		UserID:  100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный период
	_, err = svc.GetCoachAppointments(context.Background(), &models.GetCoachAppointmentsRequest{
		CoachID: 42,
		UserID:  42,
		From:    ptr.Ptr(testStart.Add(time.Hour)),
		To:      ptr.Ptr(testStart),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ActorDerivation(t *testing.T) {
	tests := []struct {
		name      string
		userID    int64
		wantActor domain.CancelActor
	}{
		{name: "athlete cancels own appointment", userID: 100, wantActor: domain.CancelledByAthlete},
		{name: "coach cancels appointment", userID: 42, wantActor: domain.CancelledByCoach},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart))
			dispatcher := &fakeDispatcher{}
			svc := NewService(repo, dispatcher, noopLogger{})

			resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
				UserID:             tt.userID,
				CancellationReason: ptr.Ptr("injury"),
			})
			require.NoError(t, err)

			assert.Equal(t, string(domain.StatusCancelled), resp.Status)
			require.NotNil(t, resp.CancelledBy)
			assert.Equal(t, string(tt.wantActor), *resp.CancelledBy)
			assert.Equal(t, "injury", *resp.CancellationReason)
			assert.NotNil(t, resp.CancelledAt)

			require.Len(t, dispatcher.events, 1)
			_, ok := dispatcher.events[0].(events.BookingCancelled)
			assert.True(t, ok)
		})
	}
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := newFakeRepo(confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, noopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.byID[1].IsCancelled())
	assert.Empty(t, dispatcher.events)
}

func TestCancel_RepeatedCancelIsNoOp(t *testing.T) {
	repo := newFakeRepo(confirmedAppointment(1, 42, ptr.Ptr(int64(100)), testStart))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, noopLogger{})

	first, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             100,
		CancellationReason: ptr.Ptr("illness"),
	})
	require.NoError(t, err)

	// Вторая отмена другим актором не перезаписывает метаданные первой
	second, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             42,
		CancellationReason: ptr.Ptr("changed my mind"),
	})
	require.NoError(t, err)

	assert.Equal(t, *first.CancelledBy, *second.CancelledBy)
	assert.Equal(t, "illness", *second.CancellationReason)
	assert.Equal(t, *first.CancelledAt, *second.CancelledAt)

	// Событие публикуется только при реальном переходе
	assert.Len(t, dispatcher.events, 1)
}

func TestCancel_ExternalAppointmentByCoach(t *testing.T) {
	external := confirmedAppointment(1, 42, nil, testStart)
	external.ClientName = ptr.Ptr("Maria Silva")

	repo := newFakeRepo(external)
	svc := NewService(repo, &fakeDispatcher{}, noopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, string(domain.CancelledByCoach), *resp.CancelledBy)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeDispatcher{}, noopLogger{})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
