package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/validation"
)

// ProfileRepository описывает зависимости ProfileService от слоя хранилища.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	UpdatePlan(ctx context.Context, userID uuid.UUID, plan string) error
}

// ProfileService отвечает за онбординг и позиционирование пользователя.
type ProfileService struct {
	repo  ProfileRepository
	cache *CacheService
}

// NewProfileService создаёт сервис профиля.
func NewProfileService(repo ProfileRepository, cache *CacheService) *ProfileService {
	return &ProfileService{repo: repo, cache: cache}
}

// UpdateProfileInput — данные онбординга и биография.
type UpdateProfileInput struct {
	Name               *string
	Area               *string
	Niche              *string
	PortfolioObjective *string
	ExperienceLevel    *string
	IdealClient        *string
	Bio                *string
}

// Get возвращает профиль пользователя.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Update сохраняет поля онбординга. Флаг onboarding_complete выставляется,
// когда заполнены все шесть полей анкеты, и больше не сбрасывается.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyIfSet := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	applyIfSet(&profile.Name, in.Name)
	applyIfSet(&profile.Area, in.Area)
	applyIfSet(&profile.Niche, in.Niche)
	applyIfSet(&profile.PortfolioObjective, in.PortfolioObjective)
	applyIfSet(&profile.ExperienceLevel, in.ExperienceLevel)
	applyIfSet(&profile.IdealClient, in.IdealClient)
	applyIfSet(&profile.Bio, in.Bio)

	if profile.Bio != nil {
		if err := validation.ValidateDescription("биография", *profile.Bio); err != nil {
			return nil, fmt.Errorf("profile service: %w", err)
		}
	}

	if profile.HasOnboardingData() {
		profile.OnboardingComplete = true
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.invalidatePortfolio(ctx, userID)

	return profile, nil
}

// UpgradePlan переводит пользователя на платный тариф.
func (s *ProfileService) UpgradePlan(ctx context.Context, userID uuid.UUID) error {
	return s.repo.UpdatePlan(ctx, userID, models.PlanPro)
}

// invalidatePortfolio сбрасывает кэш публичной страницы после изменения профиля.
func (s *ProfileService) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if user, err := s.repo.GetByID(ctx, userID); err == nil {
		s.cache.InvalidatePortfolio(user.Username)
	}
}
