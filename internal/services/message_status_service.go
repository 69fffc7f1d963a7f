package services

import (
	"fmt"
	"time"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// MessageStatusService reconciles per-contact delivery callbacks into the
// message ledger and keeps the campaign counters in sync.
type MessageStatusService struct {
	campaigns CampaignStore
	contacts  ContactStore
	messages  MessageStore
	stats     *StatsService
}

func NewMessageStatusService(
	campaigns CampaignStore,
	contacts ContactStore,
	messages MessageStore,
	stats *StatsService,
) *MessageStatusService {
	return &MessageStatusService{
		campaigns: campaigns,
		contacts:  contacts,
		messages:  messages,
		stats:     stats,
	}
}

// UpdateStatus upserts the ledger row for (campaign, contact) and recomputes
// the campaign's aggregates before returning. Both references must already
// exist; callbacks never create campaigns or contacts.
func (s *MessageStatusService) UpdateStatus(req *models.UpdateMessageStatusRequest) error {
	if !models.IsValidMessageStatus(req.Status) {
		return fmt.Errorf("%w: status must be one of sent, delivered, failed", apperrors.ErrValidation)
	}

	if _, err := s.campaigns.GetByID(req.CampaignID); err != nil {
		return err
	}
	if _, err := s.contacts.GetByID(req.ContactID); err != nil {
		return err
	}

	msg := &models.CampaignMessage{
		CampaignID:   req.CampaignID,
		ContactID:    req.ContactID,
		Status:       req.Status,
		MessageID:    req.MessageID,
		ErrorMessage: req.ErrorMessage,
	}
	if req.Status == models.MessageSent || req.Status == models.MessageDelivered {
		now := time.Now()
		msg.SentAt = &now
	}

	if err := s.messages.Upsert(msg); err != nil {
		return fmt.Errorf("failed to upsert message status: %w", err)
	}

	// Reconciliation runs on every upsert, regardless of campaign status.
	if _, err := s.stats.Recompute(req.CampaignID); err != nil {
		return err
	}
	return nil
}

// GetCampaignMessages returns the ledger rows for a campaign.
func (s *MessageStatusService) GetCampaignMessages(campaignID string) ([]models.CampaignMessage, error) {
	if _, err := s.campaigns.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.messages.GetByCampaign(campaignID)
}
