package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers/common"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// ProfileHandler обслуживает профиль и онбординг пользователя.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler создаёт хэндлер.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMe обрабатывает GET /profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe обрабатывает PUT /profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name               *string `json:"name"`
		Area               *string `json:"area"`
		Niche              *string `json:"niche"`
		PortfolioObjective *string `json:"portfolio_objective"`
		ExperienceLevel    *string `json:"experience_level"`
		IdealClient        *string `json:"ideal_client"`
		Bio                *string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:               req.Name,
		Area:               req.Area,
		Niche:              req.Niche,
		PortfolioObjective: req.PortfolioObjective,
		ExperienceLevel:    req.ExperienceLevel,
		IdealClient:        req.IdealClient,
		Bio:                req.Bio,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpgradePlan обрабатывает POST /profile/upgrade.
func (h *ProfileHandler) UpgradePlan(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.profiles.UpgradePlan(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "тариф обновлён"})
}
