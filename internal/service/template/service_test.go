package template

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	"github.com/m04kA/CSP-BookingService/internal/service/template/models"
)

type fakeTemplateRepo struct {
	byCoach map[int64]*domain.AvailabilityTemplate
}

func newFakeRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byCoach: make(map[int64]*domain.AvailabilityTemplate)}
}

func (f *fakeTemplateRepo) GetByCoachID(_ context.Context, coachID int64) (*domain.AvailabilityTemplate, error) {
	t, ok := f.byCoach[coachID]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTemplateRepo) Save(_ context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	saved := *tmpl
	if existing, ok := f.byCoach[tmpl.CoachID]; ok {
		saved.Version = existing.Version + 1
	} else {
		saved.Version = 1
	}
	f.byCoach[tmpl.CoachID] = &saved
	copied := saved
	return &copied, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *models.UpdateTemplateRequest {
	return &models.UpdateTemplateRequest{
		UserID:  42,
		CoachID: 42,
		WeeklyHours: domain.WeeklyHours{
			"mon": {{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}},
			"wed": {{Start: "09:00", End: "12:00"}},
		},
		DefaultDurationMinutes:   60,
		BufferMinutes:            15,
		BookingWindowDays:        30,
		SessionPriceCents:        15000,
		Currency:                 "BRL",
		IsPublicListing:          true,
		IsExternalBookingEnabled: true,
	}
}

func TestGet_ReturnsDefaultsWhenMissing(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	resp, err := svc.Get(context.Background(), 42, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.CoachID)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DefaultDurationMinutes)
	assert.Equal(t, domain.DefaultBookingWindowDays, resp.BookingWindowDays)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.Equal(t, int64(0), resp.Version)
	assert.False(t, resp.IsPublicListing)
	assert.Empty(t, resp.WeeklyHours)
}

func TestGet_AccessDenied(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	_, err := svc.Get(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSave_WholeDocumentBumpsVersion(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Save(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Version)

	// Повторное сохранение заменяет документ целиком и увеличивает версию
	req := validRequest()
	req.WeeklyHours = domain.WeeklyHours{"fri": {{Start: "10:00", End: "14:00"}}}
	resp, err = svc.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Version)
	assert.NotContains(t, resp.WeeklyHours, "mon")
	assert.Contains(t, resp.WeeklyHours, "fri")
}

func TestSave_AccessDenied(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	req := validRequest()
	req.UserID = 100
	_, err := svc.Save(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSave_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.UpdateTemplateRequest)
	}{
		{"unknown day key", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["monday"] = []domain.TimeRange{{Start: "09:00", End: "10:00"}}
		}},
		{"bad time format", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["mon"] = []domain.TimeRange{{Start: "9am", End: "10:00"}}
		}},
		{"start equals end", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["mon"] = []domain.TimeRange{{Start: "10:00", End: "10:00"}}
		}},
		{"start after end", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["mon"] = []domain.TimeRange{{Start: "12:00", End: "10:00"}}
		}},
		{"unsorted ranges", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["mon"] = []domain.TimeRange{
				{Start: "14:00", End: "16:00"},
				{Start: "09:00", End: "12:00"},
			}
		}},
		{"overlapping ranges", func(r *models.UpdateTemplateRequest) {
			r.WeeklyHours["mon"] = []domain.TimeRange{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "14:00"},
			}
		}},
		{"duration too small", func(r *models.UpdateTemplateRequest) { r.DefaultDurationMinutes = 1 }},
		{"duration too large", func(r *models.UpdateTemplateRequest) { r.DefaultDurationMinutes = 600 }},
		{"negative buffer", func(r *models.UpdateTemplateRequest) { r.BufferMinutes = -5 }},
		{"booking window too large", func(r *models.UpdateTemplateRequest) { r.BookingWindowDays = 1000 }},
		{"negative price", func(r *models.UpdateTemplateRequest) { r.SessionPriceCents = -1 }},
		{"bad currency", func(r *models.UpdateTemplateRequest) { r.Currency = "REAIS" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), noopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := svc.Save(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSave_TouchingRangesAllowed(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	req := validRequest()
	req.WeeklyHours["mon"] = []domain.TimeRange{
		{Start: "09:00", End: "12:00"},
		{Start: "12:00", End: "15:00"},
	}

	_, err := svc.Save(context.Background(), req)
	require.NoError(t, err)
}

func TestSave_RoundTripThroughGet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	saved, err := svc.Save(context.Background(), validRequest())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 42, 42)
	require.NoError(t, err)

	assert.Equal(t, saved.WeeklyHours, got.WeeklyHours)
	assert.Equal(t, saved.Version, got.Version)
	assert.Equal(t, saved.SessionPriceCents, got.SessionPriceCents)
}
