package mcp

import (
	"fmt"
	"strings"

	"grokmcp/config"
	"grokmcp/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

const datePattern = `^\d{4}-\d{2}-\d{2}$`

// integer narrows a number property to whole values so counts never bind
// from 2.5.
func integer() mcptypes.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}

func maxItems(n int) mcptypes.PropertyOption {
	return func(schema map[string]any) {
		schema["maxItems"] = n
	}
}

func sampling() []mcptypes.ToolOption {
	return []mcptypes.ToolOption{
		mcptypes.WithNumber("temperature",
			mcptypes.Description("Sampling temperature (0-2)"),
			mcptypes.Min(0), mcptypes.Max(2),
		),
		mcptypes.WithNumber("max_tokens",
			mcptypes.Description("Maximum tokens to generate"),
			integer(), mcptypes.Min(1),
		),
		mcptypes.WithNumber("top_p",
			mcptypes.Description("Nucleus sampling probability mass (0-1)"),
			mcptypes.Min(0), mcptypes.Max(1),
		),
	}
}

func prompt(desc string) mcptypes.ToolOption {
	return mcptypes.WithString("prompt", mcptypes.Required(), mcptypes.Description(desc), mcptypes.MinLength(1))
}

func modelParam(fallback string) mcptypes.ToolOption {
	return mcptypes.WithString("model", mcptypes.Description("Model id (default: "+fallback+")"))
}

func systemPrompt() mcptypes.ToolOption {
	return mcptypes.WithString("system_prompt", mcptypes.Description("Optional system instruction"))
}

func reasoningEffort() mcptypes.ToolOption {
	return mcptypes.WithString("reasoning_effort",
		mcptypes.Description("Thinking budget for reasoning models that accept it"),
		mcptypes.Enum(model.ReasoningEffortValues...),
	)
}

func responseID(desc string) mcptypes.ToolOption {
	return mcptypes.WithString("response_id", mcptypes.Required(), mcptypes.Description(desc), mcptypes.MinLength(1))
}

func build(name, desc string, opts ...mcptypes.ToolOption) mcptypes.Tool {
	return mcptypes.NewTool(name, append([]mcptypes.ToolOption{mcptypes.WithDescription(desc)}, opts...)...)
}

// Tools declares the nine Grok tools. Model defaults are taken from models so
// the published descriptions match what a call without "model" will use.
func Tools(models config.ModelsConfig) []mcptypes.Tool {
	chatOpts := []mcptypes.ToolOption{
		prompt("User message"),
		modelParam(models.Chat),
		systemPrompt(),
	}
	chatOpts = append(chatOpts, sampling()...)
	chatOpts = append(chatOpts,
		mcptypes.WithNumber("presence_penalty", mcptypes.Description("Penalty for repeated topics (-2 to 2), ignored by reasoning models"), mcptypes.Min(-2), mcptypes.Max(2)),
		mcptypes.WithNumber("frequency_penalty", mcptypes.Description("Penalty for repeated tokens (-2 to 2), ignored by reasoning models"), mcptypes.Min(-2), mcptypes.Max(2)),
		mcptypes.WithArray("stop", mcptypes.Description("Up to 4 stop sequences, ignored by reasoning models"), mcptypes.WithStringItems(), maxItems(4)),
		reasoningEffort(),
	)

	reasoningOpts := []mcptypes.ToolOption{
		prompt("Problem to reason about"),
		mcptypes.WithString("model",
			mcptypes.Description("Reasoning model (default: "+models.Reasoning+")"),
			mcptypes.Enum(model.ReasoningModels...),
		),
		systemPrompt(),
		reasoningEffort(),
	}
	reasoningOpts = append(reasoningOpts, sampling()...)

	return []mcptypes.Tool{
		build(ToolListModels, "List the Grok models available to this API key",
			mcptypes.WithString("filter", mcptypes.Description("Fuzzy filter applied to model ids")),
			mcptypes.WithReadOnlyHintAnnotation(true),
		),
		build(ToolChat, "Send a single-turn chat request to Grok", chatOpts...),
		build(ToolChatWithReasoning,
			fmt.Sprintf("Chat with a reasoning model and return its thinking. Models: %s", strings.Join(model.ReasoningModels, ", ")),
			reasoningOpts...,
		),
		build(ToolChatWithVision, "Ask Grok about local image files (jpg, jpeg, png) or image URLs",
			prompt("Question about the images"),
			mcptypes.WithArray("image_paths", mcptypes.Description("Local image files, read and sent inline"), mcptypes.WithStringItems()),
			mcptypes.WithArray("image_urls", mcptypes.Description("Image URLs passed through unchanged"), mcptypes.WithStringItems()),
			mcptypes.WithString("detail",
				mcptypes.Description("Image detail level"),
				mcptypes.Enum(model.DetailValues...),
				mcptypes.DefaultString(string(model.DetailAuto)),
			),
			modelParam(models.Vision),
		),
		build(ToolGenerateImage, "Generate images from a text prompt",
			prompt("Image description"),
			mcptypes.WithNumber("n",
				mcptypes.Description(fmt.Sprintf("Number of images (1-%d)", model.MaxImagesPerRequest)),
				integer(), mcptypes.Min(1), mcptypes.Max(model.MaxImagesPerRequest),
				mcptypes.DefaultNumber(1),
			),
			mcptypes.WithString("response_format",
				mcptypes.Description("Return image URLs or base64 data"),
				mcptypes.Enum(model.ImageFormatValues...),
				mcptypes.DefaultString(string(model.ImageFormatURL)),
			),
			modelParam(models.Image),
		),
		build(ToolLiveSearch, "Answer with live web, news, X and RSS search results",
			prompt("Search question"),
			modelParam(models.Search),
			mcptypes.WithString("mode",
				mcptypes.Description("Whether to search"),
				mcptypes.Enum(model.SearchModeValues...),
				mcptypes.DefaultString(string(model.SearchModeOn)),
			),
			mcptypes.WithBoolean("return_citations", mcptypes.Description("Include source URLs"), mcptypes.DefaultBool(true)),
			mcptypes.WithString("from_date", mcptypes.Description("Earliest date, YYYY-MM-DD"), mcptypes.Pattern(datePattern)),
			mcptypes.WithString("to_date", mcptypes.Description("Latest date, YYYY-MM-DD"), mcptypes.Pattern(datePattern)),
			mcptypes.WithNumber("max_search_results",
				mcptypes.Description(fmt.Sprintf("Result cap (1-%d)", model.MaxSearchResultsLimit)),
				integer(), mcptypes.Min(1), mcptypes.Max(model.MaxSearchResultsLimit),
				mcptypes.DefaultNumber(model.DefaultMaxSearchResults),
			),
			mcptypes.WithString("country", mcptypes.Description("ISO alpha-2 country for web and news"), mcptypes.MinLength(2), mcptypes.MaxLength(2)),
			mcptypes.WithArray("rss_links", mcptypes.Description("RSS feed URLs to search"), mcptypes.WithStringItems()),
			mcptypes.WithArray("sources", mcptypes.Description("Explicit source list, overrides country and rss_links"), mcptypes.Items(searchSourceSchema())),
			systemPrompt(),
		),
		build(ToolStatefulChat, "Chat with history kept on xAI servers for 30 days. Pass response_id to continue",
			prompt("User message"),
			mcptypes.WithString("response_id", mcptypes.Description("Response id from a previous stateful_chat turn")),
			modelParam(models.Stateful),
			mcptypes.WithString("system_prompt", mcptypes.Description("System instruction, used for new conversations only")),
			mcptypes.WithBoolean("include_reasoning", mcptypes.Description("Request encrypted reasoning content"), mcptypes.DefaultBool(false)),
			mcptypes.WithNumber("temperature", mcptypes.Description("Sampling temperature (0-2)"), mcptypes.Min(0), mcptypes.Max(2)),
			mcptypes.WithNumber("max_tokens", mcptypes.Description("Maximum output tokens"), integer(), mcptypes.Min(1)),
		),
		build(ToolRetrieveResponse, "Fetch a stored stateful_chat response",
			responseID("Response id to fetch"),
			mcptypes.WithReadOnlyHintAnnotation(true),
		),
		build(ToolDeleteResponse, "Delete a stored stateful_chat response from xAI servers",
			responseID("Response id to delete"),
			mcptypes.WithDestructiveHintAnnotation(true),
		),
	}
}

func searchSourceSchema() map[string]any {
	stringList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":              map[string]any{"type": "string", "enum": model.SourceTypeValues},
			"country":           map[string]any{"type": "string", "minLength": 2, "maxLength": 2},
			"links":             stringList,
			"excluded_websites": stringList,
			"allowed_websites":  stringList,
			"x_handles":         stringList,
			"safe_search":       map[string]any{"type": "boolean"},
		},
		"required": []string{"type"},
	}
}
