package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/canopy/pkg/adapters/anthropic"
	"github.com/aretw0/canopy/pkg/domain"
)

// Config is the file-based configuration for the canopy CLI and server.
// The API key is deliberately not part of the file: it comes from the
// ANTHROPIC_API_KEY environment variable, and its presence is what selects
// service mode over the offline fallback.
type Config struct {
	// Model is the Claude model used in service mode.
	Model string `yaml:"model"`

	// MaxTokens bounds the generator output length.
	MaxTokens int `yaml:"max_tokens"`

	// MaxRetries is the regeneration ceiling after a failed validation.
	MaxRetries int `yaml:"max_retries"`

	// DenylistExtra extends the stock guard denylist.
	DenylistExtra []string `yaml:"denylist_extra"`

	// Listen is the HTTP server bind address.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Model:      anthropic.DefaultModel,
		MaxTokens:  1024,
		MaxRetries: domain.DefaultRetryPolicy().MaxAttempts,
		Listen:     ":8080",
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxRetries < 0 {
		return cfg, fmt.Errorf("max_retries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.MaxTokens <= 0 {
		return cfg, fmt.Errorf("max_tokens must be positive, got %d", cfg.MaxTokens)
	}
	return cfg, nil
}

// GuardPolicy builds the effective guard policy: stock denylist plus any
// configured extras.
func (c Config) GuardPolicy() domain.GuardPolicy {
	policy := domain.DefaultGuardPolicy()
	policy.Denylist = append(policy.Denylist, c.DenylistExtra...)
	return policy
}
