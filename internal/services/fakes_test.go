package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// In-memory store fakes backing the service tests. UpdateFields applies the
// same column names the gorm repositories use, so the services see consistent
// state across calls.

type fakeCampaignStore struct {
	mu        sync.Mutex
	campaigns map[string]*models.Campaign
	updates   []map[string]interface{}
}

func newFakeCampaignStore(campaigns ...*models.Campaign) *fakeCampaignStore {
	s := &fakeCampaignStore{campaigns: make(map[string]*models.Campaign)}
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}
	return s
}

func (s *fakeCampaignStore) Create(campaign *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	campaign.CreatedAt = time.Now()
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *fakeCampaignStore) GetByID(id string) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
	}
	copied := *campaign
	return &copied, nil
}

func (s *fakeCampaignStore) GetByUserID(userID string, limit, offset int) ([]*models.Campaign, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.Campaign
	for _, c := range s.campaigns {
		if c.UserID == userID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *fakeCampaignStore) UpdateFields(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
	}
	s.updates = append(s.updates, fields)
	for key, value := range fields {
		switch key {
		case "status":
			switch v := value.(type) {
			case models.CampaignStatus:
				campaign.Status = v
			case string:
				campaign.Status = models.CampaignStatus(v)
			}
		case "total_messages":
			campaign.TotalMessages = value.(int)
		case "total_sent":
			campaign.TotalSent = value.(int)
		case "total_delivered":
			campaign.TotalDelivered = value.(int)
		case "total_failed":
			campaign.TotalFailed = value.(int)
		case "last_status_message":
			campaign.LastStatusMessage = value.(string)
		case "workflow_execution_id":
			campaign.WorkflowExecutionID = value.(string)
		case "workflow_status":
			campaign.WorkflowStatus = value.(string)
		case "workflow_message":
			campaign.WorkflowMessage = value.(string)
		case "started_at":
			t := value.(time.Time)
			campaign.StartedAt = &t
		case "sent_at":
			t := value.(time.Time)
			campaign.SentAt = &t
		case "completed_at":
			t := value.(time.Time)
			campaign.CompletedAt = &t
		case "last_updated_at":
			t := value.(time.Time)
			campaign.LastUpdatedAt = &t
		case "workflow_updated_at":
			t := value.(time.Time)
			campaign.WorkflowUpdatedAt = &t
		}
	}
	return nil
}

func (s *fakeCampaignStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
	}
	delete(s.campaigns, id)
	return nil
}

func (s *fakeCampaignStore) lastUpdate() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.updates) == 0 {
		return nil
	}
	return s.updates[len(s.updates)-1]
}

type fakeContactStore struct {
	mu       sync.Mutex
	contacts map[string]*models.Contact
}

func newFakeContactStore(contacts ...*models.Contact) *fakeContactStore {
	s := &fakeContactStore{contacts: make(map[string]*models.Contact)}
	for _, c := range contacts {
		s.contacts[c.ID] = c
	}
	return s
}

func (s *fakeContactStore) Create(contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	s.contacts[contact.ID] = contact
	return nil
}

func (s *fakeContactStore) GetByID(id string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, id)
	}
	return contact, nil
}

func (s *fakeContactStore) GetByExternalID(externalID string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, contact := range s.contacts {
		if contact.ExternalID == externalID {
			return contact, nil
		}
	}
	return nil, fmt.Errorf("%w: contact with external id %s", apperrors.ErrNotFound, externalID)
}

func (s *fakeContactStore) Update(contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = contact
	return nil
}

type fakeContactListStore struct {
	lists    map[string]*models.ContactList
	contacts map[string][]models.Contact
}

func newFakeContactListStore() *fakeContactListStore {
	return &fakeContactListStore{
		lists:    make(map[string]*models.ContactList),
		contacts: make(map[string][]models.Contact),
	}
}

func (s *fakeContactListStore) GetByID(id string) (*models.ContactList, error) {
	list, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("%w: contact list %s", apperrors.ErrNotFound, id)
	}
	return list, nil
}

func (s *fakeContactListStore) GetContacts(listID string) ([]models.Contact, error) {
	return s.contacts[listID], nil
}

type fakeTemplateStore struct {
	templates map[string]*models.Template
}

func newFakeTemplateStore(templates ...*models.Template) *fakeTemplateStore {
	s := &fakeTemplateStore{templates: make(map[string]*models.Template)}
	for _, t := range templates {
		s.templates[t.ID] = t
	}
	return s
}

func (s *fakeTemplateStore) GetByID(id string) (*models.Template, error) {
	template, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, id)
	}
	return template, nil
}

type fakeMessageStore struct {
	mu   sync.Mutex
	rows map[string]*models.CampaignMessage
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{rows: make(map[string]*models.CampaignMessage)}
}

func messageKey(campaignID, contactID string) string {
	return campaignID + "|" + contactID
}

func (s *fakeMessageStore) seed(campaignID, contactID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[messageKey(campaignID, contactID)] = &models.CampaignMessage{
		CampaignID: campaignID,
		ContactID:  contactID,
		Status:     status,
	}
}

func (s *fakeMessageStore) Upsert(msg *models.CampaignMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := messageKey(msg.CampaignID, msg.ContactID)
	if existing, ok := s.rows[key]; ok {
		existing.Status = msg.Status
		existing.MessageID = msg.MessageID
		existing.ErrorMessage = msg.ErrorMessage
		if msg.SentAt != nil {
			existing.SentAt = msg.SentAt
		}
		return nil
	}
	copied := *msg
	s.rows[key] = &copied
	return nil
}

func (s *fakeMessageStore) GetStats(campaignID string) (*models.CampaignStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.CampaignStats{}
	for _, row := range s.rows {
		if row.CampaignID != campaignID {
			continue
		}
		stats.TotalMessages++
		switch row.Status {
		case models.MessageSent:
			stats.TotalSent++
		case models.MessageDelivered:
			stats.TotalSent++
			stats.TotalDelivered++
		case models.MessageFailed:
			stats.TotalFailed++
		case models.MessagePending:
			stats.Pending++
		}
	}
	return stats, nil
}

func (s *fakeMessageStore) GetByCampaign(campaignID string) ([]models.CampaignMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var messages []models.CampaignMessage
	for _, row := range s.rows {
		if row.CampaignID == campaignID {
			messages = append(messages, *row)
		}
	}
	return messages, nil
}

type fakeWebhookStore struct {
	webhooks map[string]*models.Webhook
}

func newFakeWebhookStore(webhooks ...*models.Webhook) *fakeWebhookStore {
	s := &fakeWebhookStore{webhooks: make(map[string]*models.Webhook)}
	for _, w := range webhooks {
		s.webhooks[w.WebhookID] = w
	}
	return s
}

func (s *fakeWebhookStore) GetByWebhookID(webhookID string) (*models.Webhook, error) {
	webhook, ok := s.webhooks[webhookID]
	if !ok {
		return nil, fmt.Errorf("%w: webhook %s", apperrors.ErrNotFound, webhookID)
	}
	return webhook, nil
}

func (s *fakeWebhookStore) Save(webhook *models.Webhook) error {
	s.webhooks[webhook.WebhookID] = webhook
	return nil
}

type fakeQRCodeStore struct {
	updates map[string]map[string]interface{}
}

func newFakeQRCodeStore() *fakeQRCodeStore {
	return &fakeQRCodeStore{updates: make(map[string]map[string]interface{})}
}

func (s *fakeQRCodeStore) UpdateFields(id string, fields map[string]interface{}) error {
	s.updates[id] = fields
	return nil
}

type notifierEvent struct {
	kind       string
	campaignID string
	detail     string
}

type recordingNotifier struct {
	events []notifierEvent
}

func (n *recordingNotifier) CampaignCompleted(campaignID string) {
	n.events = append(n.events, notifierEvent{kind: "completed", campaignID: campaignID})
}

func (n *recordingNotifier) CampaignFailed(campaignID, reason string) {
	n.events = append(n.events, notifierEvent{kind: "failed", campaignID: campaignID, detail: reason})
}

func (n *recordingNotifier) QRCodeGenerated(qrCodeID, imageURL string) {
	n.events = append(n.events, notifierEvent{kind: "qr_generated", campaignID: qrCodeID, detail: imageURL})
}
