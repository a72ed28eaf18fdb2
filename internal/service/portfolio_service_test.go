package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/pkg/apperror"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
)

// stubPortfolioUsers отдаёт владельца портфолио по username.
type stubPortfolioUsers struct {
	user    *models.User
	profile *models.Profile
}

func (u *stubPortfolioUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u.user == nil || u.user.Username != username {
		return nil, repository.ErrUserNotFound
	}
	return u.user, nil
}

func (u *stubPortfolioUsers) GetProfile(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return u.profile, nil
}

// stubPortfolioProjects отдаёт завершённые проекты и считает обращения.
type stubPortfolioProjects struct {
	projects []models.Project
	calls    int
}

func (p *stubPortfolioProjects) ListCompleteByUser(_ context.Context, _ uuid.UUID) ([]models.Project, error) {
	p.calls++
	return p.projects, nil
}

func newPortfolioFixture() (*stubPortfolioUsers, *stubPortfolioProjects, *stubSettingsRepo) {
	userID := uuid.New()
	users := &stubPortfolioUsers{
		user:    &models.User{ID: userID, Username: "lucas"},
		profile: &models.Profile{UserID: userID},
	}
	return users, &stubPortfolioProjects{}, &stubSettingsRepo{}
}

func TestPortfolioService_Get_UnknownUsername(t *testing.T) {
	users, projects, settings := newPortfolioFixture()
	svc := NewPortfolioService(users, projects, settings, nil)

	_, err := svc.Get(context.Background(), "desconhecido")
	assert.ErrorIs(t, err, apperror.ErrPortfolioNotFound)
}

func TestPortfolioService_Get_DefaultSettingsWithoutRow(t *testing.T) {
	users, projects, settings := newPortfolioFixture()
	svc := NewPortfolioService(users, projects, settings, nil)

	result, err := svc.Get(context.Background(), "lucas")
	require.NoError(t, err)
	assert.Equal(t, "lucas", result.Username)
	assert.Equal(t, models.TemplateCase, result.Settings.Template)
	assert.Equal(t, users.user.ID, result.UserID)
}

func TestPortfolioService_Get_AppliesSavedOrder(t *testing.T) {
	users, projects, settings := newPortfolioFixture()

	first := models.Project{ID: uuid.New(), Title: "Primeiro", DisplayOrder: 0}
	second := models.Project{ID: uuid.New(), Title: "Segundo", DisplayOrder: 1}
	projects.projects = []models.Project{first, second}

	settings.settings = &models.PortfolioSettings{
		UserID:       users.user.ID,
		Template:     models.TemplateGallery,
		PrimaryColor: "#8B5CF6",
		Font:         "DM Sans",
		Columns:      2,
		ProjectOrder: []uuid.UUID{second.ID, first.ID},
	}

	svc := NewPortfolioService(users, projects, settings, nil)

	result, err := svc.Get(context.Background(), "lucas")
	require.NoError(t, err)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, second.ID, result.Projects[0].ID)
	assert.Equal(t, first.ID, result.Projects[1].ID)
}

func TestPortfolioService_Get_Cached(t *testing.T) {
	users, projects, settings := newPortfolioFixture()
	svc := NewPortfolioService(users, projects, settings, NewCacheService())

	_, err := svc.Get(context.Background(), "lucas")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "lucas")
	require.NoError(t, err)
	assert.Equal(t, 1, projects.calls, "повторная сборка страницы идёт из кэша")
}
