package provider

import (
	"encoding/json"
	"time"

	"grokmcp/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/respjson"
	"github.com/openai/openai-go/v3/responses"
)

// convertCompletionUsage maps chat completion usage, including the xAI
// num_sources_used extra field reported for live search.
func convertCompletionUsage(u openai.CompletionUsage) model.Usage {
	return model.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
		ReasoningTokens:  u.CompletionTokensDetails.ReasoningTokens,
		NumSourcesUsed:   extraInt(u.JSON.ExtraFields, "num_sources_used"),
	}
}

// convertResponseUsage maps Responses API usage onto the chat usage shape.
func convertResponseUsage(u responses.ResponseUsage) model.Usage {
	return model.Usage{
		PromptTokens:     u.InputTokens,
		CompletionTokens: u.OutputTokens,
		TotalTokens:      u.TotalTokens,
		ReasoningTokens:  u.OutputTokensDetails.ReasoningTokens,
	}
}

// convertImages keeps one entry per generated image. The top-level revised
// prompt is the first non-empty one the vendor supplied.
func convertImages(resp *openai.ImagesResponse) *model.ImageResult {
	result := &model.ImageResult{Images: make([]model.GeneratedImage, 0, len(resp.Data))}
	for _, img := range resp.Data {
		result.Images = append(result.Images, model.GeneratedImage{
			URL:           img.URL,
			B64JSON:       img.B64JSON,
			RevisedPrompt: img.RevisedPrompt,
		})
		if result.RevisedPrompt == "" {
			result.RevisedPrompt = img.RevisedPrompt
		}
	}
	return result
}

// extractCitations reads the xAI citation list. It is normally a top-level
// array of URLs; older responses put it on the message, and some entries
// are objects with a url field.
func extractCitations(completion *openai.ChatCompletion) []string {
	raw := extraRaw(completion.JSON.ExtraFields, "citations")
	if raw == "" && len(completion.Choices) > 0 {
		raw = extraRaw(completion.Choices[0].Message.JSON.ExtraFields, "citations")
	}
	if raw == "" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	citations := make([]string, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			citations = append(citations, s)
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && obj.URL != "" {
			citations = append(citations, obj.URL)
		}
	}
	return citations
}

// extractOutput returns the assistant text and the reasoning summary from a
// Responses API object.
func extractOutput(resp *responses.Response) (content, reasoning string) {
	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			if content != "" {
				continue
			}
			for _, part := range item.AsMessage().Content {
				if part.Type == "output_text" {
					content = part.Text
					break
				}
			}
		case "reasoning":
			if reasoning != "" {
				continue
			}
			for _, summary := range item.AsReasoning().Summary {
				if summary.Text != "" {
					reasoning = summary.Text
					break
				}
			}
		}
	}
	return content, reasoning
}

func extraRaw(fields map[string]respjson.Field, key string) string {
	f, ok := fields[key]
	if !ok {
		return ""
	}
	raw := f.Raw()
	if raw == "null" {
		return ""
	}
	return raw
}

func extraString(fields map[string]respjson.Field, key string) string {
	raw := extraRaw(fields, key)
	if raw == "" {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return ""
	}
	return s
}

func extraInt(fields map[string]respjson.Field, key string) int64 {
	raw := extraRaw(fields, key)
	if raw == "" {
		return 0
	}
	var n int64
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return 0
	}
	return n
}

func extraBool(fields map[string]respjson.Field, key string) bool {
	raw := extraRaw(fields, key)
	if raw == "" {
		return false
	}
	var b bool
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return false
	}
	return b
}

func formatDate(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(model.DateLayout)
}

func formatTimestamp(unix float64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(int64(unix), 0).UTC().Format(time.RFC3339)
}
