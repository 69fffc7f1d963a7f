package apperrors

import "errors"

// Sentinel errors for the campaign dispatcher. Handlers translate these into
// HTTP status codes with errors.Is; services wrap them with fmt.Errorf("%w: ...")
// to add context while keeping the chain intact.
var (
	// ErrNotFound indicates a referenced campaign, contact, list, template or
	// webhook does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrNotConfigured indicates the automation integration is missing its
	// endpoint URL or API key.
	ErrNotConfigured = errors.New("integration not configured")
	// ErrIncompleteCampaign indicates a campaign is missing its contact list
	// or message template.
	ErrIncompleteCampaign = errors.New("campaign has missing list or template")
	// ErrTriggerFailed indicates the automation worker rejected the trigger
	// call or was unreachable.
	ErrTriggerFailed = errors.New("campaign trigger failed")
	// ErrValidation indicates a missing or invalid request field.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedWebhookType indicates a webhook was registered with a type
	// the dispatcher does not handle.
	ErrUnsupportedWebhookType = errors.New("unsupported webhook type")
	// ErrInvalidTransition indicates an operator action not allowed from the
	// campaign's current status.
	ErrInvalidTransition = errors.New("invalid campaign status transition")
)

// IsNotFound checks if the error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is or wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
