package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
	"github.com/brightmark/marketing-dispatcher-backend/internal/services"
	"github.com/brightmark/marketing-dispatcher-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	messageService  *services.MessageStatusService
}

func NewCampaignHandler(campaignService *services.CampaignService, messageService *services.MessageStatusService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		messageService:  messageService,
	}
}

// createCampaignBody wraps the create request with the owning operator id.
// Operator identity is resolved by the external access-control layer and
// forwarded here.
type createCampaignBody struct {
	UserID string `json:"user_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440001"`
	models.CreateCampaignRequest
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a new draft campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body createCampaignBody true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req createCampaignBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(req.UserID, &req.CreateCampaignRequest)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Description List campaigns belonging to an operator
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id query string true "Operator ID"
// @Param page query int false "Page number (default: 1)" minimum(1)
// @Param limit query int false "Number of items per page (default: 20, max: 100)" minimum(1) maximum(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("limit"))

	campaigns, total, err := h.campaignService.GetCampaignsByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	paginationInfo := utils.CalculatePaginationInfo(total, page, pageSize)

	c.JSON(http.StatusOK, gin.H{
		"data":         campaigns,
		"total":        total,
		"page":         paginationInfo.Page,
		"limit":        paginationInfo.PageSize,
		"total_pages":  paginationInfo.TotalPages,
		"has_next":     paginationInfo.HasNext,
		"has_previous": paginationInfo.HasPrevious,
	})
}

// GetCampaignByID godoc
// @Summary Get campaign by ID
// @Description Get a specific campaign with its aggregate delivery counters
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// StartCampaign godoc
// @Summary Start a campaign
// @Description Move a campaign to pending and hand it off to the automation worker
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/start [post]
func (h *CampaignHandler) StartCampaign(c *gin.Context) {
	if err := h.campaignService.StartCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Campaign triggered successfully.",
	})
}

// PauseCampaign godoc
// @Summary Pause a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/pause [post]
func (h *CampaignHandler) PauseCampaign(c *gin.Context) {
	if err := h.campaignService.PauseCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Campaign paused.",
	})
}

// ResumeCampaign godoc
// @Summary Resume a paused campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/resume [post]
func (h *CampaignHandler) ResumeCampaign(c *gin.Context) {
	if err := h.campaignService.ResumeCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Campaign resumed.",
	})
}

// GetCampaignMessages godoc
// @Summary Get campaign message ledger
// @Description Per-contact delivery rows for a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} models.CampaignMessage
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/messages [get]
func (h *CampaignHandler) GetCampaignMessages(c *gin.Context) {
	messages, err := h.messageService.GetCampaignMessages(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// DeleteCampaign godoc
// @Summary Delete campaign
// @Description Delete a campaign and its message ledger rows
// @Tags campaigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignService.DeleteCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
