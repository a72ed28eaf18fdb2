package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/portfolio"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
)

// PortfolioUserRepo — доступ к пользователю и профилю для публичной страницы.
type PortfolioUserRepo interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// PortfolioProjectRepo — доступ к завершённым проектам владельца.
type PortfolioProjectRepo interface {
	ListCompleteByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
}

// portfolioCacheTTL — страница пересобирается не чаще раза в минуту,
// при изменениях кэш сбрасывается сервисами явно.
const portfolioCacheTTL = time.Minute

// PortfolioService собирает публичное портфолио: профиль владельца,
// завершённые проекты в сохранённом порядке и настройки отображения.
type PortfolioService struct {
	users    PortfolioUserRepo
	projects PortfolioProjectRepo
	settings SettingsRepo
	cache    *CacheService
}

// NewPortfolioService создаёт сервис публичного портфолио.
func NewPortfolioService(users PortfolioUserRepo, projects PortfolioProjectRepo, settings SettingsRepo, cache *CacheService) *PortfolioService {
	return &PortfolioService{
		users:    users,
		projects: projects,
		settings: settings,
		cache:    cache,
	}
}

// PublicPortfolio — собранные данные публичной страницы.
type PublicPortfolio struct {
	UserID   uuid.UUID                 `json:"-"`
	Username string                    `json:"username"`
	Profile  *models.Profile           `json:"profile"`
	Projects []models.Project          `json:"projects"`
	Settings *models.PortfolioSettings `json:"settings"`
}

// Get возвращает публичное портфолио по username.
// В выдачу попадают только завершённые проекты.
func (s *PortfolioService) Get(ctx context.Context, username string) (*PublicPortfolio, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(PortfolioCacheKey(username)); ok {
			if result, ok := cached.(*PublicPortfolio); ok {
				return result, nil
			}
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrPortfolioNotFound
		}
		return nil, err
	}

	profile, err := s.users.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			settings = models.DefaultPortfolioSettings(user.ID)
		} else {
			return nil, err
		}
	}

	projects, err := s.projects.ListCompleteByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	result := &PublicPortfolio{
		UserID:   user.ID,
		Username: user.Username,
		Profile:  profile,
		Projects: portfolio.SortProjects(projects, settings.ProjectOrder),
		Settings: settings,
	}

	if s.cache != nil {
		s.cache.Set(PortfolioCacheKey(username), result, portfolioCacheTTL)
	}

	return result, nil
}
