package config

import (
	"os"
	"strconv"
	"time"
)

// IntegrationConfig holds the n8n automation integration settings. It is
// loaded once in main and injected into the services that need it, so tests
// can supply their own values without touching the environment.
type IntegrationConfig struct {
	// BaseURL is the n8n instance base URL, e.g. https://n8n.example.com
	BaseURL string
	// APIKey authenticates both directions: outbound trigger calls and
	// inbound integration endpoints.
	APIKey string
	// CallbackBaseURL is this service's public base URL, used to build the
	// workflow status callback URL handed to n8n.
	CallbackBaseURL string
	// TriggerTimeout bounds the outbound trigger call.
	TriggerTimeout time.Duration
}

// IsConfigured reports whether the integration can make outbound calls.
func (c *IntegrationConfig) IsConfigured() bool {
	return c != nil && c.BaseURL != "" && c.APIKey != ""
}

// GetIntegrationConfig returns integration configuration from environment variables
func GetIntegrationConfig() *IntegrationConfig {
	timeoutSecs, _ := strconv.Atoi(getEnv("N8N_TRIGGER_TIMEOUT_SECONDS", "30"))

	return &IntegrationConfig{
		BaseURL:         getEnv("N8N_BASE_URL", ""),
		APIKey:          getEnv("N8N_API_KEY", ""),
		CallbackBaseURL: getEnv("CALLBACK_BASE_URL", "http://localhost:8080"),
		TriggerTimeout:  time.Duration(timeoutSecs) * time.Second,
	}
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
