package provider

import (
	"context"
	"fmt"
	"time"

	"grokmcp/config"
)

// CheckResult is what the check command reports.
type CheckResult struct {
	BaseURL string
	Elapsed time.Duration
}

// CheckProvider validates the credential with a provider Ping. Used by the
// check command before wiring the server into a client configuration.
func CheckProvider(ctx context.Context, cfg *config.Config) (*CheckResult, error) {
	if !cfg.HasAPIKey() {
		return nil, fmt.Errorf("%s not found: set it in .env or export it", config.EnvAPIKey)
	}

	p, err := NewXAIProvider(OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Provider] Check against %s ok", cfg.BaseURL)
	}

	return &CheckResult{
		BaseURL: cfg.BaseURL,
		Elapsed: time.Since(start),
	}, nil
}
