package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

func newWebhookFixture() (*WebhookService, *fakeCampaignStore, *fakeContactStore, *fakeQRCodeStore, *fakeWebhookStore, *recordingNotifier) {
	campaigns := newFakeCampaignStore(&models.Campaign{ID: "c1", Status: models.StatusProcessing})
	contacts := newFakeContactStore()
	qrCodes := newFakeQRCodeStore()
	webhooks := newFakeWebhookStore()
	notifier := &recordingNotifier{}
	service := NewWebhookService(campaigns, contacts, qrCodes, webhooks, notifier)
	return service, campaigns, contacts, qrCodes, webhooks, notifier
}

func TestWebhookService_Dispatch_UnsupportedType(t *testing.T) {
	service, _, _, _, _, _ := newWebhookFixture()

	_, err := service.Dispatch("bulk_export", []byte(`{}`))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedWebhookType)
}

func TestWebhookService_CampaignStatus_UpdatesCampaign(t *testing.T) {
	service, campaigns, _, _, _, notifier := newWebhookFixture()

	payload := []byte(`{"campaign_id":"c1","status":"sent","message":"batch dispatched"}`)
	result, err := service.Dispatch(models.WebhookCampaignStatus, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Message)

	campaign, err := campaigns.GetByID("c1")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatus("sent"), campaign.Status)
	assert.Equal(t, "batch dispatched", campaign.LastStatusMessage)
	assert.NotNil(t, campaign.SentAt)
	assert.NotNil(t, campaign.LastUpdatedAt)
	assert.Empty(t, notifier.events)
}

func TestWebhookService_CampaignStatus_CompletedNotifies(t *testing.T) {
	service, campaigns, _, _, _, notifier := newWebhookFixture()

	_, err := service.Dispatch(models.WebhookCampaignStatus, []byte(`{"campaign_id":"c1","status":"completed"}`))
	require.NoError(t, err)

	campaign, err := campaigns.GetByID("c1")
	require.NoError(t, err)
	assert.NotNil(t, campaign.CompletedAt)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "completed", notifier.events[0].kind)
	assert.Equal(t, "c1", notifier.events[0].campaignID)
}

func TestWebhookService_CampaignStatus_FailedNotifies(t *testing.T) {
	service, _, _, _, _, notifier := newWebhookFixture()

	_, err := service.Dispatch(models.WebhookCampaignStatus, []byte(`{"campaign_id":"c1","status":"failed","message":"worker crashed"}`))
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "failed", notifier.events[0].kind)
	assert.Equal(t, "worker crashed", notifier.events[0].detail)
}

func TestWebhookService_CampaignStatus_Validation(t *testing.T) {
	service, _, _, _, _, _ := newWebhookFixture()

	_, err := service.Dispatch(models.WebhookCampaignStatus, []byte(`not json`))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.Dispatch(models.WebhookCampaignStatus, []byte(`{"campaign_id":"c1"}`))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.Dispatch(models.WebhookCampaignStatus, []byte(`{"campaign_id":"missing","status":"sent"}`))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWebhookService_ContactUpdate_CreateThenUpdate(t *testing.T) {
	service, _, contacts, _, _, _ := newWebhookFixture()

	created, err := service.Dispatch(models.WebhookContactUpdate,
		[]byte(`{"contact_id":"wa-628123","data":{"name":"Ana","phone":"+628123","plan":"gold"}}`))
	require.NoError(t, err)
	require.NotEmpty(t, created.ContactID)

	contact, err := contacts.GetByExternalID("wa-628123")
	require.NoError(t, err)
	assert.Equal(t, "Ana", contact.Name)
	assert.Equal(t, "+628123", contact.PhoneNumber)
	assert.Equal(t, "gold", contact.CustomFields["plan"])

	updated, err := service.Dispatch(models.WebhookContactUpdate,
		[]byte(`{"contact_id":"wa-628123","data":{"email":"ana@example.com","plan":"platinum"}}`))
	require.NoError(t, err)
	assert.Equal(t, created.ContactID, updated.ContactID, "same external id resolves to the same contact")

	contact, err = contacts.GetByExternalID("wa-628123")
	require.NoError(t, err)
	assert.Equal(t, "Ana", contact.Name, "fields absent from the payload stay put")
	assert.Equal(t, "ana@example.com", contact.Email)
	assert.Equal(t, "platinum", contact.CustomFields["plan"])
}

func TestWebhookService_ContactUpdate_DefaultsName(t *testing.T) {
	service, _, contacts, _, _, _ := newWebhookFixture()

	_, err := service.Dispatch(models.WebhookContactUpdate,
		[]byte(`{"contact_id":"wa-1","data":{"phone":"+62"}}`))
	require.NoError(t, err)

	contact, err := contacts.GetByExternalID("wa-1")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", contact.Name)
}

func TestWebhookService_QRCodeGenerated(t *testing.T) {
	service, _, _, qrCodes, _, notifier := newWebhookFixture()

	_, err := service.Dispatch(models.WebhookQRCodeGenerated,
		[]byte(`{"qr_code_id":"qr-1","qr_code_url":"https://cdn.example.com/qr-1.png"}`))
	require.NoError(t, err)

	fields := qrCodes.updates["qr-1"]
	require.NotNil(t, fields)
	assert.Equal(t, "https://cdn.example.com/qr-1.png", fields["image_url"])
	assert.Equal(t, "generated", fields["status"])

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "qr_generated", notifier.events[0].kind)
}

func TestWebhookService_HandleWorkflowStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus models.CampaignStatus
	}{
		{"started maps to processing", models.WorkflowStarted, models.StatusProcessing},
		{"success maps to queued", models.WorkflowSuccess, models.StatusQueued},
		{"error maps to failed", models.WorkflowError, models.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, campaigns, _, _, _, _ := newWebhookFixture()

			err := service.HandleWorkflowStatus(&models.WorkflowStatusRequest{
				ExecutionID: "8231",
				CampaignID:  "c1",
				Status:      tt.status,
				Message:     "workflow update",
			})
			require.NoError(t, err)

			campaign, err := campaigns.GetByID("c1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, campaign.Status)
			assert.Equal(t, "8231", campaign.WorkflowExecutionID)
			assert.Equal(t, tt.status, campaign.WorkflowStatus)
			assert.NotNil(t, campaign.WorkflowUpdatedAt)
		})
	}
}

func TestWebhookService_HandleWorkflowStatus_WarningRecordsOnly(t *testing.T) {
	service, campaigns, _, _, _, _ := newWebhookFixture()

	err := service.HandleWorkflowStatus(&models.WorkflowStatusRequest{
		ExecutionID: "8231",
		CampaignID:  "c1",
		Status:      models.WorkflowWarning,
		Message:     "rate limited, retrying",
	})
	require.NoError(t, err)

	campaign, err := campaigns.GetByID("c1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, campaign.Status, "warnings never transition the campaign")
	assert.Equal(t, "rate limited, retrying", campaign.WorkflowMessage)
}

func TestWebhookService_HandleWorkflowStatus_RejectsUnknownStatus(t *testing.T) {
	service, _, _, _, _, _ := newWebhookFixture()

	err := service.HandleWorkflowStatus(&models.WorkflowStatusRequest{
		ExecutionID: "8231",
		CampaignID:  "c1",
		Status:      "crashed",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestWebhookService_Register(t *testing.T) {
	service, _, _, _, webhooks, _ := newWebhookFixture()

	first, err := service.Register("evo-1", models.WebhookCampaignStatus)
	require.NoError(t, err)
	assert.Equal(t, "evo-1", first.WebhookID)
	assert.Len(t, first.Secret, 64, "secret is 32 random bytes hex encoded")

	// Re-registering rotates the secret.
	second, err := service.Register("evo-1", models.WebhookCampaignStatus)
	require.NoError(t, err)
	assert.NotEqual(t, first.Secret, second.Secret)

	stored, err := webhooks.GetByWebhookID("evo-1")
	require.NoError(t, err)
	assert.Equal(t, second.Secret, stored.Secret)
}

func TestWebhookService_Register_GeneratesIDAndRejectsBadType(t *testing.T) {
	service, _, _, _, _, _ := newWebhookFixture()

	webhook, err := service.Register("", models.WebhookContactUpdate)
	require.NoError(t, err)
	assert.NotEmpty(t, webhook.WebhookID)

	_, err = service.Register("evo-1", "bulk_export")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedWebhookType)
}
