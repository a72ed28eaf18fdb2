package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
)

// stubSettingsRepo хранит одну запись настроек.
type stubSettingsRepo struct {
	settings *models.PortfolioSettings
	upserts  int
}

func (r *stubSettingsRepo) Get(_ context.Context, _ uuid.UUID) (*models.PortfolioSettings, error) {
	if r.settings == nil {
		return nil, repository.ErrSettingsNotFound
	}
	copied := *r.settings
	return &copied, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, settings *models.PortfolioSettings) error {
	r.settings = settings
	r.upserts++
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestSettingsService_Get_DefaultsWithoutRow(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo, nil, nil)
	userID := uuid.New()

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateCase, settings.Template)
	assert.Equal(t, userID, settings.UserID)
	assert.Zero(t, repo.upserts, "чтение не должно создавать запись")
}

func TestSettingsService_Save_MergesOverExisting(t *testing.T) {
	repo := &stubSettingsRepo{settings: &models.PortfolioSettings{
		Template:     models.TemplateGallery,
		PrimaryColor: "#112233",
		Font:         "Inter",
		Columns:      3,
	}}
	svc := NewSettingsService(repo, nil, nil)

	saved, err := svc.Save(context.Background(), uuid.New(), SettingsInput{
		Template: strPtr(models.TemplateSlides),
	})

	require.NoError(t, err)
	assert.Equal(t, models.TemplateSlides, saved.Template)
	// Остальные поля не тронуты.
	assert.Equal(t, "#112233", saved.PrimaryColor)
	assert.Equal(t, "Inter", saved.Font)
	assert.Equal(t, 3, saved.Columns)
	assert.Equal(t, 1, repo.upserts)
}

func TestSettingsService_Save_StartsFromDefaults(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo, nil, nil)

	saved, err := svc.Save(context.Background(), uuid.New(), SettingsInput{
		Columns: intPtr(4),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, saved.Columns)
	assert.Equal(t, models.TemplateCase, saved.Template)
}

func TestSettingsService_Save_Validation(t *testing.T) {
	svc := NewSettingsService(&stubSettingsRepo{}, nil, nil)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Save(ctx, userID, SettingsInput{Template: strPtr("newsletter")})
	assert.Error(t, err)

	_, err = svc.Save(ctx, userID, SettingsInput{PrimaryColor: strPtr("purple")})
	assert.Error(t, err)

	_, err = svc.Save(ctx, userID, SettingsInput{Columns: intPtr(7)})
	assert.Error(t, err)

	_, err = svc.Save(ctx, userID, SettingsInput{Font: strPtr("   ")})
	assert.Error(t, err)
}

func TestSettingsService_Save_ProjectOrder(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo, nil, nil)

	order := []uuid.UUID{uuid.New(), uuid.New()}
	saved, err := svc.Save(context.Background(), uuid.New(), SettingsInput{ProjectOrder: order})

	require.NoError(t, err)
	assert.Equal(t, order, saved.ProjectOrder)
}
