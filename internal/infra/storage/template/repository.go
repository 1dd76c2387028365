package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CSP-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий шаблонов доступности.
// Один шаблон на тренера, документ сохраняется целиком.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCoachID получает шаблон доступности тренера
func (r *Repository) GetByCoachID(ctx context.Context, coachID int64) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"coach_id",
		"weekly_hours",
		"default_duration_minutes",
		"buffer_minutes",
		"booking_window_days",
		"session_price_cents",
		"currency",
		"is_public_listing",
		"is_external_booking_enabled",
		"version",
		"created_at",
		"updated_at",
	).
		From("availability_templates").
		Where(squirrel.Eq{"coach_id": coachID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - build select query: %v", ErrBuildQuery, err)
	}

	var tmpl domain.AvailabilityTemplate
	var weeklyHoursRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tmpl.CoachID,
		&weeklyHoursRaw,
		&tmpl.DefaultDurationMinutes,
		&tmpl.BufferMinutes,
		&tmpl.BookingWindowDays,
		&tmpl.SessionPriceCents,
		&tmpl.Currency,
		&tmpl.IsPublicListing,
		&tmpl.IsExternalBookingEnabled,
		&tmpl.Version,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - scan template: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal(weeklyHoursRaw, &tmpl.WeeklyHours); err != nil {
		return nil, fmt.Errorf("%w: GetByCoachID - decode weekly_hours: %v", ErrScanRow, err)
	}

	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	return &tmpl, nil
}

// Save сохраняет шаблон целиком (upsert по coach_id).
// Частичных обновлений полей нет - документ всегда перезаписывается,
// version увеличивается на каждое сохранение.
func (r *Repository) Save(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weeklyHoursRaw, err := json.Marshal(tmpl.WeeklyHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - encode weekly_hours: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("availability_templates").
		Columns(
			"coach_id",
			"weekly_hours",
			"default_duration_minutes",
			"buffer_minutes",
			"booking_window_days",
			"session_price_cents",
			"currency",
			"is_public_listing",
			"is_external_booking_enabled",
		).
		Values(
			tmpl.CoachID,
			weeklyHoursRaw,
			tmpl.DefaultDurationMinutes,
			tmpl.BufferMinutes,
			tmpl.BookingWindowDays,
			tmpl.SessionPriceCents,
			tmpl.Currency,
			tmpl.IsPublicListing,
			tmpl.IsExternalBookingEnabled,
		).
		Suffix(`ON CONFLICT (coach_id) DO UPDATE SET
			weekly_hours = EXCLUDED.weekly_hours,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			booking_window_days = EXCLUDED.booking_window_days,
			session_price_cents = EXCLUDED.session_price_cents,
			currency = EXCLUDED.currency,
			is_public_listing = EXCLUDED.is_public_listing,
			is_external_booking_enabled = EXCLUDED.is_external_booking_enabled,
			version = availability_templates.version + 1
		RETURNING version, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tmpl.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	return tmpl, nil
}
