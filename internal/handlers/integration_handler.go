package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
	"github.com/brightmark/marketing-dispatcher-backend/internal/services"
)

// IntegrationHandler serves the endpoints the automation worker calls while
// it processes a campaign: campaign/list reads and the per-contact message
// status callback.
type IntegrationHandler struct {
	campaignService *services.CampaignService
	messageService  *services.MessageStatusService
	webhookService  *services.WebhookService
}

func NewIntegrationHandler(
	campaignService *services.CampaignService,
	messageService *services.MessageStatusService,
	webhookService *services.WebhookService,
) *IntegrationHandler {
	return &IntegrationHandler{
		campaignService: campaignService,
		messageService:  messageService,
		webhookService:  webhookService,
	}
}

// UpdateMessageStatus godoc
// @Summary Update per-contact message status
// @Description Upsert the delivery status of a campaign message and recompute campaign stats
// @Tags integration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateMessageStatusRequest true "Message status update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaign/update-message [post]
func (h *IntegrationHandler) UpdateMessageStatus(c *gin.Context) {
	var req models.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.messageService.UpdateStatus(&req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message status updated successfully.",
	})
}

// GetCampaignDetails godoc
// @Summary Get campaign details
// @Description Campaign payload for the automation worker, including template content
// @Tags integration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignDetailResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaign/{id} [get]
func (h *IntegrationHandler) GetCampaignDetails(c *gin.Context) {
	detail, err := h.campaignService.GetCampaignDetail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetListContacts godoc
// @Summary Get contacts of a list
// @Description Members of a contact list, resolved for the automation worker
// @Tags integration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "List ID"
// @Success 200 {array} models.ContactResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/list/{id}/contacts [get]
func (h *IntegrationHandler) GetListContacts(c *gin.Context) {
	contacts, err := h.campaignService.GetListContacts(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// WorkflowStatus godoc
// @Summary Update workflow execution status
// @Description Persist the n8n workflow execution status for a campaign
// @Tags integration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.WorkflowStatusRequest true "Workflow status update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/n8n-workflow/status [post]
func (h *IntegrationHandler) WorkflowStatus(c *gin.Context) {
	var req models.WorkflowStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.webhookService.HandleWorkflowStatus(&req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Workflow status updated successfully.",
	})
}
