package model

import "strings"

// Usage is the token accounting reported by the vendor. Responses API calls
// map input/output tokens onto prompt/completion.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	ReasoningTokens  int64 `json:"reasoning_tokens,omitempty"`
	NumSourcesUsed   int64 `json:"num_sources_used,omitempty"`
}

type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
	Created string `json:"created,omitempty"` // YYYY-MM-DD
}

type ModelList struct {
	Models []ModelInfo `json:"models"`
}

// Text renders the list the way it is shown to clients without structured
// content support.
func (l *ModelList) Text() string {
	var b strings.Builder
	b.WriteString("Available Grok Models:")
	for _, m := range l.Models {
		b.WriteString("\n- ")
		b.WriteString(m.ID)
		b.WriteString(" (Owner: ")
		b.WriteString(m.OwnedBy)
		b.WriteString(", Created: ")
		b.WriteString(m.Created)
		b.WriteString(")")
	}
	return b.String()
}

type ChatResult struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

type ReasoningResult struct {
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content"`
	Model            string `json:"model"`
	Usage            Usage  `json:"usage"`
}

type GeneratedImage struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

type ImageResult struct {
	Images        []GeneratedImage `json:"images"`
	RevisedPrompt string           `json:"revised_prompt"`
}

type SearchResult struct {
	Content        string   `json:"content"`
	Citations      []string `json:"citations,omitempty"`
	Usage          Usage    `json:"usage"`
	NumSourcesUsed int64    `json:"num_sources_used,omitempty"`
}

// StatefulResult carries the response id the caller must resupply to
// continue the conversation. Nothing is kept locally.
type StatefulResult struct {
	Content       string `json:"content"`
	ResponseID    string `json:"response_id"`
	Status        string `json:"status"`
	Model         string `json:"model"`
	Usage         Usage  `json:"usage"`
	StoredUntil   string `json:"stored_until"`
	ContinuedFrom string `json:"continued_from,omitempty"`
	Reasoning     string `json:"reasoning,omitempty"`
}

type StoredResponse struct {
	ResponseID         string `json:"response_id"`
	Model              string `json:"model"`
	CreatedAt          string `json:"created_at"`
	Status             string `json:"status"`
	Content            string `json:"content"`
	Reasoning          string `json:"reasoning,omitempty"`
	Usage              Usage  `json:"usage"`
	PreviousResponseID string `json:"previous_response_id,omitempty"`
	Store              bool   `json:"store"`
}

type DeleteResult struct {
	ResponseID string `json:"response_id"`
	Deleted    bool   `json:"deleted"`
	Message    string `json:"message"`
}
