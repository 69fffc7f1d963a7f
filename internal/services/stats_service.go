package services

import (
	"fmt"

	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// StatsService recomputes a campaign's aggregate counters from the message
// ledger. It is the only writer of those counters; every other component
// treats them as a read-only cache.
type StatsService struct {
	campaigns CampaignStore
	messages  MessageStore
}

func NewStatsService(campaigns CampaignStore, messages MessageStore) *StatsService {
	return &StatsService{
		campaigns: campaigns,
		messages:  messages,
	}
}

// Recompute scans the ledger rows for a campaign and writes the four counters
// back onto the campaign record in a single update. When no row is pending
// and at least one exists, the campaign is marked completed in the same
// statement, so the counters and the completion flag can never diverge.
func (s *StatsService) Recompute(campaignID string) (*models.CampaignStats, error) {
	stats, err := s.messages.GetStats(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute campaign stats: %w", err)
	}

	fields := map[string]interface{}{
		"total_messages":  stats.TotalMessages,
		"total_sent":      stats.TotalSent,
		"total_delivered": stats.TotalDelivered,
		"total_failed":    stats.TotalFailed,
	}
	if stats.Pending == 0 && stats.TotalMessages > 0 {
		fields["status"] = models.StatusCompleted
	}

	if err := s.campaigns.UpdateFields(campaignID, fields); err != nil {
		return nil, fmt.Errorf("failed to store campaign stats: %w", err)
	}

	return stats, nil
}
