package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/config"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// TriggerService hands campaigns off to the n8n automation worker. A failed
// handoff marks the campaign failed and is not retried here; retrying is an
// operator action.
type TriggerService struct {
	campaigns CampaignStore
	cfg       *config.IntegrationConfig
	client    *http.Client
}

func NewTriggerService(campaigns CampaignStore, cfg *config.IntegrationConfig) *TriggerService {
	timeout := cfg.TriggerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TriggerService{
		campaigns: campaigns,
		cfg:       cfg,
		client:    &http.Client{Timeout: timeout},
	}
}

// triggerPayload is the body posted to the n8n campaign trigger webhook.
type triggerPayload struct {
	CampaignID    string `json:"campaign_id"`
	CampaignTitle string `json:"campaign_title"`
	ListID        string `json:"list_id"`
	TemplateID    string `json:"template_id"`
	UserID        string `json:"user_id"`
	CallbackURL   string `json:"callback_url"`
	Timestamp     int64  `json:"timestamp"`
}

// triggerResponse is the subset of the n8n response the dispatcher reads.
type triggerResponse struct {
	ExecutionID string `json:"executionId"`
	Message     string `json:"message"`
}

// preflight checks the handoff preconditions without touching the campaign.
// The lifecycle service runs it before committing a status transition so a
// start that can never reach the worker leaves no trace.
func (s *TriggerService) preflight(campaign *models.Campaign) error {
	if !s.cfg.IsConfigured() {
		return apperrors.ErrNotConfigured
	}
	if campaign.ListID == nil || *campaign.ListID == "" ||
		campaign.TemplateID == nil || *campaign.TemplateID == "" {
		return apperrors.ErrIncompleteCampaign
	}
	return nil
}

// Trigger validates the campaign, posts it to the automation worker and
// records the handoff outcome. Precondition failures leave the campaign
// untouched; transport and HTTP failures mark it failed.
func (s *TriggerService) Trigger(campaignID string) error {
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return err
	}
	if err := s.preflight(campaign); err != nil {
		return err
	}

	payload := triggerPayload{
		CampaignID:    campaign.ID,
		CampaignTitle: campaign.Title,
		ListID:        *campaign.ListID,
		TemplateID:    *campaign.TemplateID,
		UserID:        campaign.UserID,
		CallbackURL:   strings.TrimRight(s.cfg.CallbackBaseURL, "/") + "/api/v1/n8n-workflow/status",
		Timestamp:     time.Now().Unix(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger payload: %w", err)
	}

	triggerURL := strings.TrimRight(s.cfg.BaseURL, "/") + "/webhook/marketing-campaign-trigger"
	req, err := http.NewRequest(http.MethodPost, triggerURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		reason := fmt.Sprintf("Failed to connect to n8n: %v", err)
		s.markFailed(campaign.ID, reason)
		return fmt.Errorf("%w: %s", apperrors.ErrTriggerFailed, reason)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var parsed triggerResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reason := parsed.Message
		if reason == "" {
			reason = fmt.Sprintf("n8n returned status %d", resp.StatusCode)
		}
		s.markFailed(campaign.ID, reason)
		return fmt.Errorf("%w: %s", apperrors.ErrTriggerFailed, reason)
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":     models.StatusProcessing,
		"started_at": now,
	}
	if parsed.ExecutionID != "" {
		fields["workflow_execution_id"] = parsed.ExecutionID
	}
	if err := s.campaigns.UpdateFields(campaign.ID, fields); err != nil {
		return fmt.Errorf("failed to record trigger outcome: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":  campaign.ID,
		"execution_id": parsed.ExecutionID,
	}).Info("Campaign handed off to automation worker")
	return nil
}

func (s *TriggerService) markFailed(campaignID, reason string) {
	err := s.campaigns.UpdateFields(campaignID, map[string]interface{}{
		"status":              models.StatusFailed,
		"last_status_message": reason,
	})
	if err != nil {
		logrus.Errorf("Failed to mark campaign %s failed: %v", campaignID, err)
	}
}
