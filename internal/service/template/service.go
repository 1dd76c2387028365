package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	templateRepo "github.com/m04kA/CSP-BookingService/internal/infra/storage/template"
	"github.com/m04kA/CSP-BookingService/internal/service/template/models"
)

// Service сервис для работы с шаблонами доступности
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Get возвращает шаблон доступности тренера.
// Шаблон с ценами и настройками видит только сам тренер.
// Тренеру без сохранённого шаблона возвращаются дефолтные настройки
// (version=0), чтобы их можно было отредактировать и сохранить.
func (s *Service) Get(ctx context.Context, coachID int64, userID int64) (*models.TemplateResponse, error) {
	s.logger.Info("Get: fetching template for coach=%d by user=%d", coachID, userID)

	if coachID != userID {
		s.logger.Warn("Get: user=%d requested template of coach=%d", userID, coachID)
		return nil, ErrAccessDenied
	}

	tmpl, err := s.templateRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Info("Get: coach id=%d has no template, returning defaults", coachID)
			return models.FromDomainTemplate(domain.NewDefaultTemplate(coachID)), nil
		}
		s.logger.Error("Get: repository error for coach=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched template for coach=%d, version=%d", coachID, tmpl.Version)
	return models.FromDomainTemplate(tmpl), nil
}

// Save сохраняет шаблон доступности целиком.
// Каждое сохранение увеличивает версию. Существующие записи не пересчитываются:
// изменение шаблона влияет только на будущую генерацию слотов.
func (s *Service) Save(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Save: saving template for coach=%d by user=%d", req.CoachID, req.UserID)

	if req.CoachID != req.UserID {
		s.logger.Warn("Save: user=%d tried to save template of coach=%d", req.UserID, req.CoachID)
		return nil, ErrAccessDenied
	}

	tmpl := req.ToDomainTemplate()
	if err := validateTemplate(tmpl); err != nil {
		s.logger.Warn("Save: validation failed for coach=%d: %v", req.CoachID, err)
		return nil, err
	}

	saved, err := s.templateRepo.Save(ctx, tmpl)
	if err != nil {
		s.logger.Error("Save: repository error for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: Save - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Save: successfully saved template for coach=%d, version=%d", req.CoachID, saved.Version)
	return models.FromDomainTemplate(saved), nil
}
