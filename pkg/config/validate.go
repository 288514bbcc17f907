package config

import (
	"fmt"
	"strings"
)

// Validate performs range checks on the loaded configuration. Load calls
// it automatically.
func (c *Config) Validate() error {
	if !c.Database.InMemory && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Quiz.Options < 2 {
		return fmt.Errorf("quiz.options must be >= 2 (got %d)", c.Quiz.Options)
	}
	if err := c.Harvest.validate(); err != nil {
		return fmt.Errorf("harvest: %w", err)
	}
	return nil
}

func (h *HarvestConfig) validate() error {
	if h.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", h.Workers)
	}
	if h.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", h.Timeout)
	}
	if h.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", h.MaxBodyBytes)
	}
	return nil
}
