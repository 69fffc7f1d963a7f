package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// WebhookService routes authenticated callbacks from the automation worker to
// their reconciliation routines and manages webhook registrations.
type WebhookService struct {
	campaigns CampaignStore
	contacts  ContactStore
	qrCodes   QRCodeStore
	webhooks  WebhookStore
	notifier  Notifier
}

func NewWebhookService(
	campaigns CampaignStore,
	contacts ContactStore,
	qrCodes QRCodeStore,
	webhooks WebhookStore,
	notifier Notifier,
) *WebhookService {
	return &WebhookService{
		campaigns: campaigns,
		contacts:  contacts,
		qrCodes:   qrCodes,
		webhooks:  webhooks,
		notifier:  notifier,
	}
}

// WebhookResult is returned to the caller of a typed webhook.
type WebhookResult struct {
	Message   string `json:"message"`
	ContactID string `json:"contact_id,omitempty"`
}

// Dispatch routes a raw webhook payload by the registered webhook type.
func (s *WebhookService) Dispatch(webhookType string, payload []byte) (*WebhookResult, error) {
	switch webhookType {
	case models.WebhookCampaignStatus:
		return s.processCampaignStatus(payload)
	case models.WebhookContactUpdate:
		return s.processContactUpdate(payload)
	case models.WebhookQRCodeGenerated:
		return s.processQRCodeGenerated(payload)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedWebhookType, webhookType)
	}
}

type campaignStatusPayload struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// processCampaignStatus writes the worker-declared status straight onto the
// campaign. This path does not consult the ledger; reconciler-derived
// completion runs separately on message-status callbacks.
func (s *WebhookService) processCampaignStatus(payload []byte) (*WebhookResult, error) {
	var p campaignStatusPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload", apperrors.ErrValidation)
	}
	if p.CampaignID == "" || p.Status == "" {
		return nil, fmt.Errorf("%w: missing required fields: campaign_id and status", apperrors.ErrValidation)
	}

	if _, err := s.campaigns.GetByID(p.CampaignID); err != nil {
		return nil, err
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":              p.Status,
		"last_status_message": p.Message,
		"last_updated_at":     now,
	}
	switch p.Status {
	case "sent":
		fields["sent_at"] = now
	case "completed":
		fields["completed_at"] = now
	}

	if err := s.campaigns.UpdateFields(p.CampaignID, fields); err != nil {
		return nil, err
	}

	switch p.Status {
	case "completed":
		s.notifier.CampaignCompleted(p.CampaignID)
	case "failed":
		s.notifier.CampaignFailed(p.CampaignID, p.Message)
	}

	return &WebhookResult{Message: "Campaign status updated successfully."}, nil
}

type contactUpdatePayload struct {
	ContactID string            `json:"contact_id"`
	Data      map[string]string `json:"data"`
}

// processContactUpdate creates or updates a contact keyed by the automation
// worker's contact id. This is the only webhook type allowed to create
// entities.
func (s *WebhookService) processContactUpdate(payload []byte) (*WebhookResult, error) {
	var p contactUpdatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload", apperrors.ErrValidation)
	}
	if p.ContactID == "" || p.Data == nil {
		return nil, fmt.Errorf("%w: missing required fields: contact_id and data", apperrors.ErrValidation)
	}

	contact, err := s.contacts.GetByExternalID(p.ContactID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		contact = &models.Contact{
			ID:         uuid.New().String(),
			Name:       "Unknown",
			ExternalID: p.ContactID,
		}
		applyContactData(contact, p.Data)
		if err := s.contacts.Create(contact); err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
		logrus.WithField("external_id", p.ContactID).Info("Contact created from webhook")
	} else {
		applyContactData(contact, p.Data)
		if err := s.contacts.Update(contact); err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}

	return &WebhookResult{
		Message:   "Contact updated successfully.",
		ContactID: contact.ID,
	}, nil
}

// applyContactData maps the well-known fields onto the contact and routes the
// rest into the custom field bag.
func applyContactData(contact *models.Contact, data map[string]string) {
	for key, value := range data {
		switch key {
		case "name":
			contact.Name = value
		case "phone":
			contact.PhoneNumber = value
		case "email":
			contact.Email = value
		default:
			if contact.CustomFields == nil {
				contact.CustomFields = datatypes.JSONMap{}
			}
			contact.CustomFields[key] = value
		}
	}
}

type qrCodePayload struct {
	QRCodeID  string `json:"qr_code_id"`
	QRCodeURL string `json:"qr_code_url"`
}

func (s *WebhookService) processQRCodeGenerated(payload []byte) (*WebhookResult, error) {
	var p qrCodePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload", apperrors.ErrValidation)
	}
	if p.QRCodeID == "" || p.QRCodeURL == "" {
		return nil, fmt.Errorf("%w: missing required fields: qr_code_id and qr_code_url", apperrors.ErrValidation)
	}

	now := time.Now()
	err := s.qrCodes.UpdateFields(p.QRCodeID, map[string]interface{}{
		"image_url":    p.QRCodeURL,
		"status":       "generated",
		"generated_at": now,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.QRCodeGenerated(p.QRCodeID, p.QRCodeURL)

	return &WebhookResult{Message: "QR code processed successfully."}, nil
}

// HandleWorkflowStatus persists the workflow execution linkage reported by
// the automation worker and maps terminal workflow states onto the campaign
// status. A warning records the message without a status transition.
func (s *WebhookService) HandleWorkflowStatus(req *models.WorkflowStatusRequest) error {
	if !models.IsValidWorkflowStatus(req.Status) {
		return fmt.Errorf("%w: status must be one of started, success, error, warning", apperrors.ErrValidation)
	}

	if _, err := s.campaigns.GetByID(req.CampaignID); err != nil {
		return err
	}

	now := time.Now()
	fields := map[string]interface{}{
		"workflow_execution_id": req.ExecutionID,
		"workflow_status":       req.Status,
		"workflow_message":      req.Message,
		"workflow_updated_at":   now,
	}
	switch req.Status {
	case models.WorkflowError:
		fields["status"] = models.StatusFailed
		fields["last_status_message"] = req.Message
	case models.WorkflowSuccess:
		fields["status"] = models.StatusQueued
	case models.WorkflowStarted:
		fields["status"] = models.StatusProcessing
	}

	return s.campaigns.UpdateFields(req.CampaignID, fields)
}

// Register stores a webhook registration with a freshly generated signing
// secret. Re-registering an id rotates its secret.
func (s *WebhookService) Register(webhookID, webhookType string) (*models.Webhook, error) {
	switch webhookType {
	case models.WebhookCampaignStatus, models.WebhookContactUpdate, models.WebhookQRCodeGenerated:
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedWebhookType, webhookType)
	}

	if webhookID == "" {
		webhookID = uuid.New().String()
	}

	secret, err := generateWebhookSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate webhook secret: %w", err)
	}

	webhook := &models.Webhook{
		WebhookID:   webhookID,
		Secret:      secret,
		WebhookType: webhookType,
	}
	if err := s.webhooks.Save(webhook); err != nil {
		return nil, fmt.Errorf("failed to save webhook registration: %w", err)
	}
	return webhook, nil
}

func generateWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
