package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if err := c.Translator.validate(); err != nil {
		return fmt.Errorf("translator: %w", err)
	}
	if err := c.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if c.Notify.Debounce < 0 {
		return fmt.Errorf("notify.debounce must be >= 0 (got %v)", c.Notify.Debounce)
	}
	return nil
}

func (c *TranslatorConfig) validate() error {
	switch strings.ToLower(c.Type) {
	case "":
		return nil
	case "openrouter", "anthropic":
		if c.APIKey == "" {
			return fmt.Errorf("api_key is required for type %q", c.Type)
		}
	case "ollama":
	default:
		return fmt.Errorf("unknown type %q (openrouter, ollama, anthropic)", c.Type)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required for type %q", c.Type)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", c.Timeout)
	}
	return nil
}

func (c *ReconcileConfig) validate() error {
	if c.MaxEnglishLength <= 0 {
		return fmt.Errorf("max_english_length must be > 0 (got %d)", c.MaxEnglishLength)
	}
	if c.LengthDeltaRatio <= 0 || c.LengthDeltaRatio > 1 {
		return fmt.Errorf("length_delta_ratio must be in (0, 1] (got %v)", c.LengthDeltaRatio)
	}
	if c.MinWordOverlap < 0 || c.MinWordOverlap > 1 {
		return fmt.Errorf("min_word_overlap must be in [0, 1] (got %v)", c.MinWordOverlap)
	}
	return nil
}
