package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/portfolio/render"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// PortfolioHandler обслуживает публичную страницу портфолио:
// HTML версию, JSON для SPA, контактную форму и события аналитики.
type PortfolioHandler struct {
	portfolios *service.PortfolioService
	analytics  *service.AnalyticsService
}

// NewPortfolioHandler создаёт хэндлер.
func NewPortfolioHandler(portfolios *service.PortfolioService, analytics *service.AnalyticsService) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, analytics: analytics}
}

// GetPage обрабатывает GET /p/:username — готовая HTML страница.
// Шаблон берётся из настроек владельца, ?mode=dark включает тёмную тему.
func (h *PortfolioHandler) GetPage(c *gin.Context) {
	username := c.Param("username")

	result, err := h.portfolios.Get(c.Request.Context(), username)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.trackView(c, result.UserID)

	colorMode := "light"
	if c.Query("mode") == "dark" {
		colorMode = "dark"
	}

	renderer := render.ForTemplate(result.Settings.Template)

	c.Writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	if err := renderer.Render(c.Writer, render.Input{
		Profile:   result.Profile,
		Projects:  result.Projects,
		Settings:  result.Settings,
		ColorMode: colorMode,
	}); err != nil {
		// Заголовки уже отправлены, остаётся только залогировать через gin.
		_ = c.Error(err)
	}
}

// GetJSON обрабатывает GET /api/portfolio/:username — данные портфолио для SPA.
func (h *PortfolioHandler) GetJSON(c *gin.Context) {
	username := c.Param("username")

	result, err := h.portfolios.Get(c.Request.Context(), username)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.trackView(c, result.UserID)

	c.JSON(http.StatusOK, result)
}

// CreateLead обрабатывает POST /api/portfolio/:username/leads — контактная форма.
func (h *PortfolioHandler) CreateLead(c *gin.Context) {
	username := c.Param("username")

	result, err := h.portfolios.Get(c.Request.Context(), username)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   string  `json:"email" binding:"required"`
		Message *string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.analytics.CreateLead(c.Request.Context(), result.UserID, service.LeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Source:  models.ResourcePortfolio,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// TrackEvent обрабатывает POST /api/portfolio/:username/events — клики по проектам
// и прочие события с публичной страницы.
func (h *PortfolioHandler) TrackEvent(c *gin.Context) {
	username := c.Param("username")

	result, err := h.portfolios.Get(c.Request.Context(), username)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req struct {
		EventType    string               `json:"event_type" binding:"required"`
		ResourceType string               `json:"resource_type" binding:"required"`
		ResourceID   *uuid.UUID           `json:"resource_id"`
		Metadata     models.EventMetadata `json:"metadata"`
		Source       *string              `json:"source"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ip := c.ClientIP()

	if err := h.analytics.Track(service.TrackInput{
		UserID:       result.UserID,
		EventType:    req.EventType,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Metadata:     req.Metadata,
		Source:       req.Source,
		UserAgent:    &userAgent,
		IPAddress:    &ip,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "событие принято"})
}

// trackView регистрирует просмотр публичной страницы.
func (h *PortfolioHandler) trackView(c *gin.Context, ownerID uuid.UUID) {
	if h.analytics == nil {
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ip := c.ClientIP()
	_ = h.analytics.Track(service.TrackInput{
		UserID:       ownerID,
		EventType:    models.EventPortfolioView,
		ResourceType: models.ResourcePortfolio,
		UserAgent:    &userAgent,
		IPAddress:    &ip,
	})
}
