package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/events"
	appointmentRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/appointment"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	"github.com/m04kA/CSP-BookingService/pkg/ptr"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// fakeAppointmentRepo in-memory репозиторий с мьютексом: вместе с
// fakeTxManager моделирует сериализацию конкурирующих бронирований
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
	createErr    error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	created := *a
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByCoachWithFilter(_ context.Context, filter domain.CoachAppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.CoachID != filter.CoachID {
			continue
		}
		if a.IsCancelled() && !filter.IncludeCancelled {
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

type fakeTemplateRepo struct {
	tmpl *domain.AvailabilityTemplate
	err  error
}

func (f *fakeTemplateRepo) GetByCoachID(_ context.Context, _ int64) (*domain.AvailabilityTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tmpl, nil
}

// fakeTxManager исполняет тело транзакции под глобальным мьютексом,
// имитируя сериализуемую изоляцию
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeDispatcher) Dispatch(e events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Понедельник
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func testTemplate() *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		CoachID: 42,
		WeeklyHours: domain.WeeklyHours{
			"mon": {{Start: "09:00", End: "12:00"}},
		},
		DefaultDurationMinutes:   60,
		BufferMinutes:            0,
		BookingWindowDays:        30,
		SessionPriceCents:        15000,
		Currency:                 "BRL",
		IsPublicListing:          true,
		IsExternalBookingEnabled: false,
	}
}

type testEnv struct {
	uc         *UseCase
	appts      *fakeAppointmentRepo
	dispatcher *fakeDispatcher
}

func newTestEnv(tmpl *domain.AvailabilityTemplate, now time.Time) *testEnv {
	appts := &fakeAppointmentRepo{}
	dispatcher := &fakeDispatcher{}
	uc := NewUseCase(appts, &fakeTemplateRepo{tmpl: tmpl}, &fakeTxManager{}, dispatcher, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return &testEnv{uc: uc, appts: appts, dispatcher: dispatcher}
}

func athleteRequest(start types.TimeString) *Request {
	return &Request{
		CoachID:       42,
		AthleteID:     ptr.Ptr(int64(100)),
		Date:          testMonday,
		StartTime:     start,
		Type:          domain.TypeVideo,
		BillingIntent: domain.BillingIntentNone,
	}
}

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	resp, err := env.uc.Execute(context.Background(), athleteRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.CoachID)
	assert.Equal(t, int64(100), *resp.AthleteID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), resp.StartTime)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), resp.EndTime)

	// Снимок цены из шаблона
	assert.Equal(t, int64(15000), resp.SessionPriceCents)
	assert.Equal(t, "BRL", resp.Currency)
	assert.Equal(t, string(domain.BillingPending), resp.BillingStatus)

	// Событие опубликовано после коммита
	require.Len(t, env.dispatcher.events, 1)
	confirmed, ok := env.dispatcher.events[0].(events.BookingConfirmed)
	require.True(t, ok)
	assert.Equal(t, resp.ID, confirmed.Appointment.ID)
}

func TestExecute_BillingStatusFromIntent(t *testing.T) {
	tests := []struct {
		intent domain.BillingIntent
		want   domain.BillingStatus
	}{
		{domain.BillingIntentDirect, domain.BillingPaid},
		{domain.BillingIntentPackage, domain.BillingIncluded},
		{domain.BillingIntentNone, domain.BillingPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			env := newTestEnv(testTemplate(), testNow)

			req := athleteRequest("09:00")
			req.BillingIntent = tt.intent

			resp, err := env.uc.Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.BillingStatus)
		})
	}
}

func TestExecute_SlotNotInGrid(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	// 09:30 не попадает в сетку с шагом 60 минут от 09:00
	_, err := env.uc.Execute(context.Background(), athleteRequest("09:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// 11:30 поместился бы по началу, но конец выходит за интервал
	_, err = env.uc.Execute(context.Background(), athleteRequest("11:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	assert.Empty(t, env.appts.appointments)
	assert.Empty(t, env.dispatcher.events)
}

func TestExecute_ClampedLastSlotBookable(t *testing.T) {
	// Буфер 15 минут на интервале 09:00-12:00: шаги дают 09:00 и 10:15,
	// последняя сессия прижимается к концу интервала - слот 11:00-12:00
	tmpl := testTemplate()
	tmpl.BufferMinutes = 15
	env := newTestEnv(tmpl, testNow)

	resp, err := env.uc.Execute(context.Background(), athleteRequest("11:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC), resp.StartTime)
	assert.Equal(t, time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC), resp.EndTime)

	// 11:30 по-прежнему вне сетки
	_, err = env.uc.Execute(context.Background(), athleteRequest("11:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_DriverErrorChainPreserved(t *testing.T) {
	// Конфликт сериализации (40001) должен доходить до менеджера транзакций
	// сквозь обёртки репозитория и use case, иначе повтор не сработает
	env := newTestEnv(testTemplate(), testNow)
	env.appts.createErr = fmt.Errorf("%w: Create - execute insert: %w",
		appointmentRepo.ErrExecQuery, &pq.Error{Code: "40001"})

	_, err := env.uc.Execute(context.Background(), athleteRequest("10:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	_, err := env.uc.Execute(context.Background(), athleteRequest("10:00"))
	require.NoError(t, err)

	// Повторное бронирование того же слота другим атлетом
	req := athleteRequest("10:00")
	req.AthleteID = ptr.Ptr(int64(101))
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Соседний слот свободен: граничащие интервалы не пересекаются
	req = athleteRequest("11:00")
	req.AthleteID = ptr.Ptr(int64(101))
	_, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	env.appts.appointments = append(env.appts.appointments, &domain.Appointment{
		ID:        1,
		CoachID:   42,
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
		Status:    domain.StatusCancelled,
	})
	env.appts.nextID = 1

	_, err := env.uc.Execute(context.Background(), athleteRequest("10:00"))
	require.NoError(t, err)
}

func TestExecute_ConcurrentBookingsAtMostOneWins(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	const attempts = 16
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(athleteID int64) {
			defer wg.Done()
			req := athleteRequest("10:00")
			req.AthleteID = ptr.Ptr(athleteID)
			_, err := env.uc.Execute(context.Background(), req)
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Len(t, env.appts.appointments, 1)
}

func TestExecute_ExternalBooking(t *testing.T) {
	tmpl := testTemplate()
	tmpl.IsExternalBookingEnabled = true
	env := newTestEnv(tmpl, testNow)

	req := &Request{
		CoachID:       42,
		Date:          testMonday,
		StartTime:     "09:00",
		Type:          domain.TypePresencial,
		BillingIntent: domain.BillingIntentDirect,
		ClientName:    ptr.Ptr("Maria Silva"),
		ClientEmail:   ptr.Ptr("maria@example.com"),
	}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, resp.AthleteID)
	assert.Equal(t, "Maria Silva", *resp.ClientName)
	assert.Equal(t, string(domain.BillingPaid), resp.BillingStatus)
}

func TestExecute_ExternalBookingDisabled(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	req := &Request{
		CoachID:       42,
		Date:          testMonday,
		StartTime:     "09:00",
		Type:          domain.TypeVideo,
		BillingIntent: domain.BillingIntentDirect,
		ClientName:    ptr.Ptr("Maria Silva"),
		ClientPhone:   ptr.Ptr("+55 11 99999-0000"),
	}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrExternalBookingDisabled)
}

func TestExecute_ExternalBookingRequiresContact(t *testing.T) {
	tmpl := testTemplate()
	tmpl.IsExternalBookingEnabled = true
	env := newTestEnv(tmpl, testNow)

	// Без имени
	req := &Request{
		CoachID:       42,
		Date:          testMonday,
		StartTime:     "09:00",
		Type:          domain.TypeVideo,
		BillingIntent: domain.BillingIntentDirect,
		ClientEmail:   ptr.Ptr("maria@example.com"),
	}
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Без email и телефона
	req.ClientName = ptr.Ptr("Maria Silva")
	req.ClientEmail = nil
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DateValidation(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	// Дата в прошлом
	req := athleteRequest("10:00")
	req.Date = testNow.AddDate(0, 0, -7)
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Дата за пределами окна бронирования
	req = athleteRequest("10:00")
	req.Date = testNow.AddDate(0, 0, 31)
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_PastSlotOnRequestDay(t *testing.T) {
	// Сейчас 09:30 того же дня: слот 09:00 уже начался
	now := time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(testTemplate(), now)

	_, err := env.uc.Execute(context.Background(), athleteRequest("09:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Следующий слот ещё не начался
	_, err = env.uc.Execute(context.Background(), athleteRequest("10:00"))
	require.NoError(t, err)
}

func TestExecute_NoTemplate(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := NewUseCase(appts, &fakeTemplateRepo{err: templateRepo.ErrTemplateNotFound}, &fakeTxManager{}, &fakeDispatcher{}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), athleteRequest("10:00"))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(testTemplate(), testNow)

	req := athleteRequest("10:00")
	req.CoachID = 0
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = athleteRequest("25:00")
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = athleteRequest("10:00")
	req.Type = "telepathy"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = athleteRequest("10:00")
	req.BillingIntent = "barter"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
