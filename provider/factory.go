package provider

import (
	"grokmcp/config"
	"grokmcp/model"
)

// NewProvider creates the vendor provider from process configuration.
//
// A missing API key is not an error here: the server starts and each vendor
// call reports UpstreamError until XAI_API_KEY is set.
//
// Example:
//
//	cfg, err := config.Load(config.ResolvePath(""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := provider.NewProvider(cfg)
func NewProvider(cfg *config.Config) (model.Provider, error) {
	p, err := NewXAIProvider(OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Provider] xAI provider ready (base URL %s, key set: %v)", cfg.BaseURL, cfg.HasAPIKey())
	}

	return p, nil
}
