package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers/common"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// SettingsHandler обслуживает настройки отображения портфолио.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler создаёт хэндлер.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get обрабатывает GET /settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Save обрабатывает PUT /settings.
func (h *SettingsHandler) Save(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Template     *string     `json:"template"`
		PrimaryColor *string     `json:"primary_color"`
		Font         *string     `json:"font"`
		Columns      *int        `json:"columns"`
		ProjectOrder []uuid.UUID `json:"project_order"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.Save(c.Request.Context(), userID, service.SettingsInput{
		Template:     req.Template,
		PrimaryColor: req.PrimaryColor,
		Font:         req.Font,
		Columns:      req.Columns,
		ProjectOrder: req.ProjectOrder,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
