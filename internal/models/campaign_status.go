package models

// CampaignStatus is the lifecycle status of a campaign.
type CampaignStatus string

const (
	StatusDraft      CampaignStatus = "draft"
	StatusPending    CampaignStatus = "pending"
	StatusProcessing CampaignStatus = "processing"
	StatusQueued     CampaignStatus = "queued"
	StatusPaused     CampaignStatus = "paused"
	StatusCompleted  CampaignStatus = "completed"
	StatusFailed     CampaignStatus = "failed"
)

// operatorTransitions lists the transitions an operator action may take.
// Callback-driven writes (workflow status, typed webhooks, reconciler
// completion) are not routed through this table.
var operatorTransitions = map[CampaignStatus][]CampaignStatus{
	StatusDraft:      {StatusPending},
	StatusPending:    {StatusPaused},
	StatusProcessing: {StatusPaused},
	StatusPaused:     {StatusPending},
	StatusFailed:     {StatusPending},
}

// CanTransition reports whether an operator may move a campaign from one
// status to another. No transition leaves completed.
func CanTransition(from, to CampaignStatus) bool {
	for _, next := range operatorTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known campaign status.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusProcessing, StatusQueued,
		StatusPaused, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Message delivery statuses recorded in the campaign message ledger.
const (
	MessagePending   = "pending"
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageFailed    = "failed"
)

// IsValidMessageStatus reports whether s is accepted from a status callback.
// Callbacks may only report progress, never reset a row to pending.
func IsValidMessageStatus(s string) bool {
	return s == MessageSent || s == MessageDelivered || s == MessageFailed
}

// Workflow execution statuses reported by the automation worker.
const (
	WorkflowStarted = "started"
	WorkflowSuccess = "success"
	WorkflowError   = "error"
	WorkflowWarning = "warning"
)

// IsValidWorkflowStatus reports whether s is a known workflow status.
func IsValidWorkflowStatus(s string) bool {
	return s == WorkflowStarted || s == WorkflowSuccess || s == WorkflowError || s == WorkflowWarning
}
