package services

import (
	"github.com/sirupsen/logrus"
)

// Notifier receives fire-and-forget events from the dispatcher. Implementations
// must not block for long and their failures never affect core behavior; the
// callers log and drop any error.
type Notifier interface {
	CampaignCompleted(campaignID string)
	CampaignFailed(campaignID, reason string)
	QRCodeGenerated(qrCodeID, imageURL string)
}

// LogNotifier writes notification events to the log. It is the fallback when
// the message broker is unavailable.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) CampaignCompleted(campaignID string) {
	logrus.WithField("campaign_id", campaignID).Info("Campaign completed")
}

func (n *LogNotifier) CampaignFailed(campaignID, reason string) {
	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"reason":      reason,
	}).Warn("Campaign failed")
}

func (n *LogNotifier) QRCodeGenerated(qrCodeID, imageURL string) {
	logrus.WithFields(logrus.Fields{
		"qr_code_id": qrCodeID,
		"image_url":  imageURL,
	}).Info("QR code generated")
}

// EventNotifier publishes notification events to RabbitMQ for external
// observers (email digests, dashboards). Publish errors are logged and
// dropped.
type EventNotifier struct {
	rabbitMQ *RabbitMQService
}

func NewEventNotifier(rabbitMQ *RabbitMQService) *EventNotifier {
	return &EventNotifier{rabbitMQ: rabbitMQ}
}

func (n *EventNotifier) CampaignCompleted(campaignID string) {
	n.publish(map[string]interface{}{
		"type":        "campaign_completed",
		"campaign_id": campaignID,
	})
}

func (n *EventNotifier) CampaignFailed(campaignID, reason string) {
	n.publish(map[string]interface{}{
		"type":        "campaign_failed",
		"campaign_id": campaignID,
		"reason":      reason,
	})
}

func (n *EventNotifier) QRCodeGenerated(qrCodeID, imageURL string) {
	n.publish(map[string]interface{}{
		"type":       "qr_code_generated",
		"qr_code_id": qrCodeID,
		"image_url":  imageURL,
	})
}

func (n *EventNotifier) publish(event map[string]interface{}) {
	if err := n.rabbitMQ.PublishMessage(campaignEventsQueue, event); err != nil {
		logrus.Warnf("Failed to publish %v event: %v", event["type"], err)
	}
}
