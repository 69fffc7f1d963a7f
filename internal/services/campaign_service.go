package services

import (
	"fmt"
	"time"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
	"github.com/brightmark/marketing-dispatcher-backend/internal/utils"
)

// CampaignService owns the operator-facing campaign lifecycle and the
// integration read endpoints. Operator transitions go through the status
// transition table; callback-driven writes happen in the webhook and trigger
// services.
type CampaignService struct {
	campaigns CampaignStore
	lists     ContactListStore
	templates TemplateStore
	trigger   *TriggerService
}

func NewCampaignService(
	campaigns CampaignStore,
	lists ContactListStore,
	templates TemplateStore,
	trigger *TriggerService,
) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		lists:     lists,
		templates: templates,
		trigger:   trigger,
	}
}

// CreateCampaign creates a new draft campaign. List and template references
// are validated when present; they may also be attached later, the trigger
// preconditions catch incomplete campaigns.
func (s *CampaignService) CreateCampaign(userID string, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	if req.ListID != nil && *req.ListID != "" {
		if _, err := s.lists.GetByID(*req.ListID); err != nil {
			return nil, err
		}
	}
	if req.TemplateID != nil && *req.TemplateID != "" {
		if _, err := s.templates.GetByID(*req.TemplateID); err != nil {
			return nil, err
		}
	}

	campaign := &models.Campaign{
		UserID:        userID,
		Title:         req.Title,
		Status:        models.StatusDraft,
		ListID:        req.ListID,
		TemplateID:    req.TemplateID,
		IsScheduled:   req.IsScheduled,
		ScheduledTime: req.ScheduledTime,
	}
	if err := s.campaigns.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.toResponse(campaign), nil
}

// GetCampaignsByUser retrieves a page of campaigns for a specific user
func (s *CampaignService) GetCampaignsByUser(userID string, page, pageSize int) ([]*models.CampaignResponse, int, error) {
	offset := utils.CalculateOffset(page, pageSize)
	campaigns, total, err := s.campaigns.GetByUserID(userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, int(total), nil
}

// GetCampaignByID retrieves a campaign by ID
func (s *CampaignService) GetCampaignByID(campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(campaign), nil
}

// StartCampaign moves a campaign to pending and hands it off to the
// automation worker. The state machine guards against double starts; the
// trigger service records the handoff outcome.
func (s *CampaignService) StartCampaign(campaignID string) error {
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return err
	}
	if !models.CanTransition(campaign.Status, models.StatusPending) {
		return fmt.Errorf("%w: cannot start a %s campaign", apperrors.ErrInvalidTransition, campaign.Status)
	}
	// Handoff preconditions run before the transition commits; a start that
	// cannot reach the worker must leave the campaign where it was.
	if err := s.trigger.preflight(campaign); err != nil {
		return err
	}

	if err := s.campaigns.UpdateFields(campaignID, map[string]interface{}{
		"status": models.StatusPending,
	}); err != nil {
		return err
	}

	return s.trigger.Trigger(campaignID)
}

// PauseCampaign pauses a pending or processing campaign.
func (s *CampaignService) PauseCampaign(campaignID string) error {
	return s.transition(campaignID, models.StatusPaused, "pause")
}

// ResumeCampaign moves a paused campaign back to pending.
func (s *CampaignService) ResumeCampaign(campaignID string) error {
	return s.transition(campaignID, models.StatusPending, "resume")
}

func (s *CampaignService) transition(campaignID string, to models.CampaignStatus, action string) error {
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return err
	}
	if !models.CanTransition(campaign.Status, to) {
		return fmt.Errorf("%w: cannot %s a %s campaign", apperrors.ErrInvalidTransition, action, campaign.Status)
	}
	return s.campaigns.UpdateFields(campaignID, map[string]interface{}{
		"status": to,
	})
}

// DeleteCampaign removes a campaign and its ledger rows.
func (s *CampaignService) DeleteCampaign(campaignID string) error {
	return s.campaigns.Delete(campaignID)
}

// GetCampaignDetail resolves the integration-facing campaign payload,
// including the template content the automation worker renders.
func (s *CampaignService) GetCampaignDetail(campaignID string) (*models.CampaignDetailResponse, error) {
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	templateContent := ""
	if campaign.TemplateID != nil && *campaign.TemplateID != "" {
		template, err := s.templates.GetByID(*campaign.TemplateID)
		if err == nil {
			templateContent = template.Content
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	return &models.CampaignDetailResponse{
		ID:              campaign.ID,
		Title:           campaign.Title,
		Status:          string(campaign.Status),
		ScheduledTime:   campaign.ScheduledTime,
		ListID:          campaign.ListID,
		TemplateID:      campaign.TemplateID,
		TemplateContent: templateContent,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
		AuthorID:        campaign.UserID,
	}, nil
}

// GetListContacts resolves the members of a contact list for the automation
// worker.
func (s *CampaignService) GetListContacts(listID string) ([]models.ContactResponse, error) {
	if _, err := s.lists.GetByID(listID); err != nil {
		return nil, err
	}

	contacts, err := s.lists.GetContacts(listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list contacts: %w", err)
	}

	responses := make([]models.ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = contacts[i].ToResponse()
	}
	return responses, nil
}

// toResponse converts Campaign model to response DTO
func (s *CampaignService) toResponse(campaign *models.Campaign) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:                campaign.ID,
		UserID:            campaign.UserID,
		Title:             campaign.Title,
		Status:            string(campaign.Status),
		ListID:            campaign.ListID,
		TemplateID:        campaign.TemplateID,
		IsScheduled:       campaign.IsScheduled,
		ScheduledTime:     campaign.ScheduledTime,
		TotalMessages:     campaign.TotalMessages,
		TotalSent:         campaign.TotalSent,
		TotalDelivered:    campaign.TotalDelivered,
		TotalFailed:       campaign.TotalFailed,
		StartedAt:         campaign.StartedAt,
		SentAt:            campaign.SentAt,
		CompletedAt:       campaign.CompletedAt,
		LastStatusMessage: campaign.LastStatusMessage,
		CreatedAt:         campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         campaign.UpdatedAt.Format(time.RFC3339),
	}
}
