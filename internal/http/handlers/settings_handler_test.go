package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/http/middleware"
	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/repository"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// memorySettingsRepo хранит одну запись настроек в памяти.
type memorySettingsRepo struct {
	settings *models.PortfolioSettings
}

func (r *memorySettingsRepo) Get(_ context.Context, _ uuid.UUID) (*models.PortfolioSettings, error) {
	if r.settings == nil {
		return nil, repository.ErrSettingsNotFound
	}
	copied := *r.settings
	return &copied, nil
}

func (r *memorySettingsRepo) Upsert(_ context.Context, settings *models.PortfolioSettings) error {
	r.settings = settings
	return nil
}

// newSettingsRouter собирает маршруты настроек с подменой авторизации.
func newSettingsRouter(repo service.SettingsRepo, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewSettingsHandler(service.NewSettingsService(repo, nil, nil))

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})
	r.GET("/settings", handler.Get)
	r.PUT("/settings", handler.Save)
	return r
}

func TestSettingsHandler_Get_Defaults(t *testing.T) {
	router := newSettingsRouter(&memorySettingsRepo{}, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var settings models.PortfolioSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, models.TemplateCase, settings.Template)
}

func TestSettingsHandler_Get_Unauthorized(t *testing.T) {
	router := newSettingsRouter(&memorySettingsRepo{}, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettingsHandler_Save(t *testing.T) {
	repo := &memorySettingsRepo{}
	router := newSettingsRouter(repo, uuid.New())

	body := `{"template":"gallery","columns":3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.settings)
	assert.Equal(t, models.TemplateGallery, repo.settings.Template)
	assert.Equal(t, 3, repo.settings.Columns)
}

func TestSettingsHandler_Save_InvalidTemplate(t *testing.T) {
	router := newSettingsRouter(&memorySettingsRepo{}, uuid.New())

	body := `{"template":"newsletter"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Ошибка валидации доходит до клиента через централизованный обработчик.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "некорректный шаблон")
}
