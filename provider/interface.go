// Package provider maps validated tool parameters onto the xAI HTTP API.
//
// xAI exposes an OpenAI-compatible surface, so the provider is built on the
// official OpenAI Go SDK pointed at the xAI base URL. The vendor-specific parts
// (live search parameters, reasoning_content, citations, num_sources_used) travel
// as extra JSON fields on the SDK's request and response types.
//
// # Architecture
//
//   - model.Provider defines the contract (interface)
//   - provider.XAIProvider implements it against api.x.ai
//   - provider.NewProvider() builds the provider from process configuration
//   - conversions.go turns SDK response objects into model results
//   - errors.go maps SDK errors onto the model.Error taxonomy
//
// Every method performs a single HTTP round trip. The SDK's own retry loop is
// disabled so a failure is reported to the caller immediately.
//
// # Usage
//
//	cfg, _ := config.Load(config.ResolvePath(""))
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	res, err := p.Chat(ctx, model.ChatParams{Prompt: "2+2?"})
package provider

import (
	"time"

	"grokmcp/config"
)

// Options holds what the provider needs from process configuration.
type Options struct {
	BaseURL string
	APIKey  string
	Models  config.ModelsConfig

	DefaultTimeout       time.Duration
	ReasoningTimeout     time.Duration
	DeepReasoningTimeout time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:              cfg.BaseURL,
		APIKey:               cfg.APIKey,
		Models:               cfg.Models,
		DefaultTimeout:       cfg.DefaultTimeout(),
		ReasoningTimeout:     cfg.ReasoningTimeout(),
		DeepReasoningTimeout: cfg.DeepReasoningTimeout(),
	}
}
