package factory

import (
	"fmt"
	"strings"
	"time"

	anthprov "locsmith/internal/adapters/llm/anthropic"
	httpprov "locsmith/internal/adapters/llm/httpclient"
	"locsmith/internal/ports"
)

// Options describes the configured translation backend.
type Options struct {
	Type        string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// New builds the provider for the configured type.
func New(opts Options, prompts ports.PromptBuilder) (ports.Provider, error) {
	switch strings.ToLower(opts.Type) {
	case "openrouter", "ollama":
		return httpprov.New(httpprov.Options{
			Type:        opts.Type,
			APIKey:      opts.APIKey,
			BaseURL:     opts.BaseURL,
			Model:       opts.Model,
			Temperature: opts.Temperature,
			Timeout:     opts.Timeout,
		}, prompts), nil
	case "anthropic":
		return anthprov.New(opts.APIKey, opts.Model, prompts), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", opts.Type)
	}
}
