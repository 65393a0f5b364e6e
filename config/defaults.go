package config

const (
	DefaultChatModel      = "grok-4-1-fast-non-reasoning"
	DefaultReasoningModel = "grok-4-1-fast-reasoning"
	DefaultVisionModel    = "grok-4-1-fast-non-reasoning"
	DefaultImageModel     = "grok-2-image-1212"
)

func DefaultModelsConfig() ModelsConfig {
	return ModelsConfig{
		Chat:      DefaultChatModel,
		Reasoning: DefaultReasoningModel,
		Vision:    DefaultVisionModel,
		Image:     DefaultImageModel,
		Search:    DefaultChatModel,
		Stateful:  DefaultChatModel,
	}
}

func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		BaseURL: DefaultBaseURL,
		Models:  DefaultModelsConfig(),
		Timeouts: TimeoutsConfig{
			DefaultSeconds:       120,
			ReasoningSeconds:     600,
			DeepReasoningSeconds: 3600,
		},
	}
}

func GenerateConfigTemplate() string {
	return `# grokmcp configuration
# Location: ~/.config/grokmcp/config.toml (override with --config or GROKMCP_CONFIG)
# This file uses TOML format: https://toml.io
#
# The API key is never read from this file. Export XAI_API_KEY or put it in .env.

# xAI API base URL (XAI_BASE_URL overrides)
base_url = "https://api.x.ai/v1"

# Debug log destination when GROKMCP_DEBUG=1 (defaults to stderr)
# log_file = "~/.cache/grokmcp/debug.log"

[models]
# Default model per tool when the caller does not pass one
chat = "grok-4-1-fast-non-reasoning"
reasoning = "grok-4-1-fast-reasoning"
vision = "grok-4-1-fast-non-reasoning"
image = "grok-2-image-1212"
search = "grok-4-1-fast-non-reasoning"
stateful = "grok-4-1-fast-non-reasoning"

[timeouts]
# Per-request HTTP timeouts in seconds
default_seconds = 120
reasoning_seconds = 600
# Used by chat_with_reasoning
deep_reasoning_seconds = 3600
`
}
