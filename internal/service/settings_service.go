package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
	"github.com/LucasFJU/portfolio-flow-ai/internal/validation"
)

// SettingsRepo описывает зависимости SettingsService от слоя хранилища.
type SettingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PortfolioSettings, error)
	Upsert(ctx context.Context, settings *models.PortfolioSettings) error
}

// SettingsService отвечает за настройки отображения портфолио.
// Одна запись на пользователя, сохранение всегда через upsert.
type SettingsService struct {
	repo  SettingsRepo
	users ProfileRepository
	cache *CacheService
}

// NewSettingsService создаёт сервис настроек.
func NewSettingsService(repo SettingsRepo, users ProfileRepository, cache *CacheService) *SettingsService {
	return &SettingsService{repo: repo, users: users, cache: cache}
}

// SettingsInput — сохраняемые настройки. Nil поля остаются без изменений.
type SettingsInput struct {
	Template     *string
	PrimaryColor *string
	Font         *string
	Columns      *int
	ProjectOrder []uuid.UUID
}

// Get возвращает настройки пользователя. Без сохранённой записи
// отдаются значения по умолчанию, в базе ничего не создаётся.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.PortfolioSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return models.DefaultPortfolioSettings(userID), nil
		}
		return nil, err
	}
	return settings, nil
}

// Save применяет изменения поверх текущих настроек и сохраняет их upsert-ом.
func (s *SettingsService) Save(ctx context.Context, userID uuid.UUID, in SettingsInput) (*models.PortfolioSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Template != nil {
		if err := validation.ValidateTemplate(*in.Template); err != nil {
			return nil, fmt.Errorf("settings service: %w", err)
		}
		settings.Template = *in.Template
	}
	if in.PrimaryColor != nil {
		if err := validation.ValidateHexColor(*in.PrimaryColor); err != nil {
			return nil, fmt.Errorf("settings service: %w", err)
		}
		settings.PrimaryColor = *in.PrimaryColor
	}
	if in.Font != nil {
		if err := validation.ValidateNonEmpty("шрифт", *in.Font); err != nil {
			return nil, fmt.Errorf("settings service: %w", err)
		}
		settings.Font = *in.Font
	}
	if in.Columns != nil {
		if err := validation.ValidateColumns(*in.Columns); err != nil {
			return nil, fmt.Errorf("settings service: %w", err)
		}
		settings.Columns = *in.Columns
	}
	if in.ProjectOrder != nil {
		settings.ProjectOrder = in.ProjectOrder
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.invalidatePortfolio(ctx, userID)

	return settings, nil
}

func (s *SettingsService) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil || s.users == nil {
		return
	}
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		s.cache.InvalidatePortfolio(user.Username)
	}
}
