package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Enumerated parameter values. Each type lists its allowed values so the tool
// schemas and the params validation share one source.

type Detail string

const (
	DetailAuto Detail = "auto"
	DetailLow  Detail = "low"
	DetailHigh Detail = "high"
)

var DetailValues = []string{string(DetailAuto), string(DetailLow), string(DetailHigh)}

type ReasoningEffort string

const (
	EffortLow  ReasoningEffort = "low"
	EffortHigh ReasoningEffort = "high"
)

var ReasoningEffortValues = []string{string(EffortLow), string(EffortHigh)}

type ImageFormat string

const (
	ImageFormatURL     ImageFormat = "url"
	ImageFormatB64JSON ImageFormat = "b64_json"
)

var ImageFormatValues = []string{string(ImageFormatURL), string(ImageFormatB64JSON)}

type SearchMode string

const (
	SearchModeOn  SearchMode = "on"
	SearchModeOff SearchMode = "off"
)

var SearchModeValues = []string{string(SearchModeOn), string(SearchModeOff)}

type SourceType string

const (
	SourceWeb  SourceType = "web"
	SourceNews SourceType = "news"
	SourceX    SourceType = "x"
	SourceRSS  SourceType = "rss"
)

var SourceTypeValues = []string{string(SourceWeb), string(SourceNews), string(SourceX), string(SourceRSS)}

const (
	DefaultMaxSearchResults = 20
	MaxSearchResultsLimit   = 50
	MaxImagesPerRequest     = 10
	DateLayout              = "2006-01-02"
)

// Sampling holds the knobs shared by the chat-style tools.
type Sampling struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

func (s Sampling) validate() error {
	if err := checkRange("temperature", s.Temperature, 0, 2); err != nil {
		return err
	}
	if err := checkRange("top_p", s.TopP, 0, 1); err != nil {
		return err
	}
	if s.MaxTokens != nil && *s.MaxTokens < 1 {
		return InvalidArgument("max_tokens must be at least 1, got %d", *s.MaxTokens)
	}
	return nil
}

type ListModelsParams struct {
	Filter string `json:"filter,omitempty"`
}

type ChatParams struct {
	Prompt       string `json:"prompt"`
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Sampling
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	ReasoningEffort  ReasoningEffort `json:"reasoning_effort,omitempty"`
}

func (p *ChatParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	if err := p.Sampling.validate(); err != nil {
		return err
	}
	if err := checkRange("presence_penalty", p.PresencePenalty, -2, 2); err != nil {
		return err
	}
	if err := checkRange("frequency_penalty", p.FrequencyPenalty, -2, 2); err != nil {
		return err
	}
	if len(p.Stop) > 4 {
		return InvalidArgument("stop accepts at most 4 sequences, got %d", len(p.Stop))
	}
	return checkEnum("reasoning_effort", string(p.ReasoningEffort), ReasoningEffortValues)
}

type ReasoningParams struct {
	Prompt          string          `json:"prompt"`
	Model           string          `json:"model,omitempty"`
	SystemPrompt    string          `json:"system_prompt,omitempty"`
	ReasoningEffort ReasoningEffort `json:"reasoning_effort,omitempty"`
	Sampling
}

func (p *ReasoningParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	if p.Model != "" && !IsReasoningModel(p.Model) {
		return InvalidArgument("model %s isn't a reasoning model, use one of: %s",
			p.Model, strings.Join(ReasoningModels, ", "))
	}
	if err := p.Sampling.validate(); err != nil {
		return err
	}
	return checkEnum("reasoning_effort", string(p.ReasoningEffort), ReasoningEffortValues)
}

type VisionParams struct {
	Prompt     string   `json:"prompt"`
	ImagePaths []string `json:"image_paths,omitempty"`
	ImageURLs  []string `json:"image_urls,omitempty"`
	Detail     Detail   `json:"detail,omitempty"`
	Model      string   `json:"model,omitempty"`
}

func (p *VisionParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	if p.Detail == "" {
		p.Detail = DetailAuto
	}
	if err := checkEnum("detail", string(p.Detail), DetailValues); err != nil {
		return err
	}
	if len(p.ImagePaths) == 0 && len(p.ImageURLs) == 0 {
		return InvalidArgument("at least one of image_paths or image_urls is required")
	}
	for _, path := range p.ImagePaths {
		if strings.TrimSpace(path) == "" {
			return InvalidArgument("image_paths contains an empty path")
		}
	}
	for _, u := range p.ImageURLs {
		if !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "data:image/") {
			return InvalidArgument("image_urls entry %q must be an http(s) or data:image/ URL", u)
		}
	}
	return nil
}

type ImageParams struct {
	Prompt         string      `json:"prompt"`
	N              int         `json:"n,omitempty"`
	ResponseFormat ImageFormat `json:"response_format,omitempty"`
	Model          string      `json:"model,omitempty"`
}

func (p *ImageParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	if p.N == 0 {
		p.N = 1
	}
	if p.N < 1 || p.N > MaxImagesPerRequest {
		return InvalidArgument("n must be between 1 and %d, got %d", MaxImagesPerRequest, p.N)
	}
	if p.ResponseFormat == "" {
		p.ResponseFormat = ImageFormatURL
	}
	return checkEnum("response_format", string(p.ResponseFormat), ImageFormatValues)
}

// SearchSource is one entry of a custom live search source list.
type SearchSource struct {
	Type             SourceType `json:"type"`
	Country          string     `json:"country,omitempty"`
	Links            []string   `json:"links,omitempty"`
	ExcludedWebsites []string   `json:"excluded_websites,omitempty"`
	AllowedWebsites  []string   `json:"allowed_websites,omitempty"`
	XHandles         []string   `json:"x_handles,omitempty"`
	SafeSearch       *bool      `json:"safe_search,omitempty"`
}

type SearchParams struct {
	Prompt           string         `json:"prompt"`
	Model            string         `json:"model,omitempty"`
	Mode             SearchMode     `json:"mode,omitempty"`
	ReturnCitations  *bool          `json:"return_citations,omitempty"`
	FromDate         string         `json:"from_date,omitempty"`
	ToDate           string         `json:"to_date,omitempty"`
	MaxSearchResults *int           `json:"max_search_results,omitempty"`
	Country          string         `json:"country,omitempty"`
	RSSLinks         []string       `json:"rss_links,omitempty"`
	Sources          []SearchSource `json:"sources,omitempty"`
	SystemPrompt     string         `json:"system_prompt,omitempty"`
}

// WantsCitations defaults to true when the caller did not say.
func (p *SearchParams) WantsCitations() bool {
	return p.ReturnCitations == nil || *p.ReturnCitations
}

func (p *SearchParams) ResultCap() int {
	if p.MaxSearchResults == nil {
		return DefaultMaxSearchResults
	}
	return *p.MaxSearchResults
}

func (p *SearchParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	if p.Mode == "" {
		p.Mode = SearchModeOn
	}
	if err := checkEnum("mode", string(p.Mode), SearchModeValues); err != nil {
		return err
	}

	from, err := parseDate("from_date", p.FromDate)
	if err != nil {
		return err
	}
	to, err := parseDate("to_date", p.ToDate)
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return InvalidArgument("from_date %s is after to_date %s", p.FromDate, p.ToDate)
	}

	if n := p.ResultCap(); n < 1 || n > MaxSearchResultsLimit {
		return InvalidArgument("max_search_results must be between 1 and %d, got %d", MaxSearchResultsLimit, n)
	}
	if err := checkCountry("country", p.Country); err != nil {
		return err
	}

	for i, src := range p.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if err := checkEnum(field+".type", string(src.Type), SourceTypeValues); err != nil {
			return err
		}
		if src.Type == "" {
			return InvalidArgument("%s.type is required", field)
		}
		if src.Type == SourceRSS && len(src.Links) == 0 {
			return InvalidArgument("%s: rss sources need at least one link", field)
		}
		if err := checkCountry(field+".country", src.Country); err != nil {
			return err
		}
	}
	return nil
}

type StatefulParams struct {
	Prompt           string   `json:"prompt"`
	ResponseID       string   `json:"response_id,omitempty"`
	Model            string   `json:"model,omitempty"`
	SystemPrompt     string   `json:"system_prompt,omitempty"`
	IncludeReasoning bool     `json:"include_reasoning,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
}

// Continuing reports whether the call extends an existing remote conversation.
func (p *StatefulParams) Continuing() bool {
	return p.ResponseID != ""
}

func (p *StatefulParams) Validate() error {
	if err := requirePrompt(p.Prompt); err != nil {
		return err
	}
	p.ResponseID = strings.TrimSpace(p.ResponseID)
	return Sampling{Temperature: p.Temperature, MaxTokens: p.MaxTokens}.validate()
}

type ResponseRef struct {
	ResponseID string `json:"response_id"`
}

func (p *ResponseRef) Validate() error {
	p.ResponseID = strings.TrimSpace(p.ResponseID)
	if p.ResponseID == "" {
		return InvalidArgument("response_id is required")
	}
	if strings.ContainsAny(p.ResponseID, "/?#") {
		return InvalidArgument("response_id %q contains invalid characters", p.ResponseID)
	}
	return nil
}

func requirePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return InvalidArgument("prompt is required")
	}
	return nil
}

func checkRange(field string, v *float64, lo, hi float64) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return InvalidArgument("%s must be between %g and %g, got %g", field, lo, hi, *v)
	}
	return nil
}

// checkEnum accepts the empty string; callers apply defaults first when the
// field has one.
func checkEnum(field, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return InvalidArgument("%s must be one of [%s], got %q", field, strings.Join(allowed, ", "), value)
}

func checkCountry(field, code string) error {
	if code == "" {
		return nil
	}
	if len(code) != 2 {
		return InvalidArgument("%s must be an ISO alpha-2 country code, got %q", field, code)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, InvalidArgument("%s must be YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}
