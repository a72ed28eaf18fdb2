package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers/common"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// AnalyticsHandler отдаёт агрегаты дашборда и заявки владельцу кабинета.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler создаёт хэндлер.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Summary обрабатывает GET /analytics/summary.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.analytics.Summary(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListLeads обрабатывает GET /leads.
func (h *AnalyticsHandler) ListLeads(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	leads, err := h.analytics.ListLeads(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}
