// Package openrouter talks to the OpenRouter chat completions API with
// a vision-capable model to extract structured receipt data from
// images.
package openrouter

import (
	"net/http"
	"time"
)

// Error represents a failure during an OpenRouter API interaction.
type Error struct {
	Op  string // operation that caused the error
	Err error  // original error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "openrouter error: " + e.Op
	}
	return "openrouter error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Client is a client for the OpenRouter chat completions endpoint.
type Client struct {
	apiKey     string
	apiURL     string
	modelID    string
	httpClient *http.Client
}

// Config holds configuration for the OpenRouter client.
type Config struct {
	APIKey  string
	ModelID string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the client.
func DefaultConfig() *Config {
	return &Config{
		ModelID: "openai/gpt-4.1-nano",
		Timeout: 60 * time.Second,
	}
}

// NewClient creates a new OpenRouter client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	modelID := config.ModelID
	if modelID == "" {
		modelID = DefaultConfig().ModelID
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		apiKey:  config.APIKey,
		apiURL:  "https://openrouter.ai/api/v1/chat/completions",
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
