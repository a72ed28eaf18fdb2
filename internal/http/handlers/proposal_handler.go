package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers/common"
	"github.com/LucasFJU/portfolio-flow-ai/internal/models"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// ProposalHandler обслуживает CRUD и публикацию коммерческих предложений.
type ProposalHandler struct {
	proposals *service.ProposalService
	analytics *service.AnalyticsService
}

// NewProposalHandler создаёт хэндлер.
func NewProposalHandler(proposals *service.ProposalService, analytics *service.AnalyticsService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, analytics: analytics}
}

// proposalRequest — общее тело создания и обновления предложения.
type proposalRequest struct {
	Title         string             `json:"title" binding:"required"`
	ClientName    *string            `json:"client_name"`
	ClientEmail   *string            `json:"client_email"`
	Introduction  *string            `json:"introduction"`
	Justification *string            `json:"justification"`
	Closing       *string            `json:"closing"`
	ProjectIDs    []uuid.UUID        `json:"project_ids"`
	BudgetItems   models.BudgetItems `json:"budget_items"`
	BudgetType    string             `json:"budget_type"`
	LogoURL       *string            `json:"logo_url"`
	PrimaryColor  string             `json:"primary_color"`
	CoverImageURL *string            `json:"cover_image_url"`
}

func (r *proposalRequest) toInput() service.ProposalInput {
	return service.ProposalInput{
		Title:         r.Title,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		Introduction:  r.Introduction,
		Justification: r.Justification,
		Closing:       r.Closing,
		ProjectIDs:    r.ProjectIDs,
		BudgetItems:   r.BudgetItems,
		BudgetType:    r.BudgetType,
		LogoURL:       r.LogoURL,
		PrimaryColor:  r.PrimaryColor,
		CoverImageURL: r.CoverImageURL,
	}
}

// Create обрабатывает POST /proposals.
func (h *ProposalHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// List обрабатывает GET /proposals.
func (h *ProposalHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposals, err := h.proposals.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

// Get обрабатывает GET /proposals/:id.
func (h *ProposalHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Get(c.Request.Context(), userID, proposalID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// Update обрабатывает PUT /proposals/:id.
func (h *ProposalHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Update(c.Request.Context(), userID, proposalID, req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// Publish обрабатывает POST /proposals/:id/publish.
// Повторный вызов возвращает уже существующую ссылку.
func (h *ProposalHandler) Publish(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Publish(c.Request.Context(), userID, proposalID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.analytics != nil && proposal.ShareToken != nil {
		_ = h.analytics.Track(service.TrackInput{
			UserID:       userID,
			EventType:    models.EventProposalShare,
			ResourceType: models.ResourceProposal,
			ResourceID:   &proposal.ID,
		})
	}

	c.JSON(http.StatusOK, proposal)
}

// Duplicate обрабатывает POST /proposals/:id/duplicate.
func (h *ProposalHandler) Duplicate(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Duplicate(c.Request.Context(), userID, proposalID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// Delete обрабатывает DELETE /proposals/:id.
func (h *ProposalHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.proposals.Delete(c.Request.Context(), userID, proposalID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetShared обрабатывает GET /proposals/shared/:token — публичная страница предложения.
// Первое открытие переводит предложение в статус viewed.
func (h *ProposalHandler) GetShared(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "токен обязателен"})
		return
	}

	result, err := h.proposals.GetByShareToken(c.Request.Context(), token)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.analytics != nil {
		userAgent := c.GetHeader("User-Agent")
		ip := c.ClientIP()
		_ = h.analytics.Track(service.TrackInput{
			UserID:       result.Proposal.UserID,
			EventType:    models.EventProposalView,
			ResourceType: models.ResourceProposal,
			ResourceID:   &result.Proposal.ID,
			UserAgent:    &userAgent,
			IPAddress:    &ip,
		})
	}

	c.JSON(http.StatusOK, result)
}

// Respond обрабатывает POST /proposals/shared/:token/respond.
// Клиент принимает или отклоняет предложение по публичной ссылке.
func (h *ProposalHandler) Respond(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "токен обязателен"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Respond(c.Request.Context(), token, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}
