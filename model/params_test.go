package model

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestChatParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  ChatParams
		wantErr bool
	}{
		{"minimal", ChatParams{Prompt: "2+2?"}, false},
		{"blank prompt", ChatParams{Prompt: "   "}, true},
		{"temperature in range", ChatParams{Prompt: "x", Sampling: Sampling{Temperature: ptr(1.5)}}, false},
		{"temperature too high", ChatParams{Prompt: "x", Sampling: Sampling{Temperature: ptr(2.5)}}, true},
		{"top_p negative", ChatParams{Prompt: "x", Sampling: Sampling{TopP: ptr(-0.1)}}, true},
		{"max_tokens zero", ChatParams{Prompt: "x", Sampling: Sampling{MaxTokens: ptr(0)}}, true},
		{"penalty out of range", ChatParams{Prompt: "x", PresencePenalty: ptr(-3.0)}, true},
		{"too many stops", ChatParams{Prompt: "x", Stop: []string{"a", "b", "c", "d", "e"}}, true},
		{"bad effort", ChatParams{Prompt: "x", ReasoningEffort: "medium"}, true},
		{"good effort", ChatParams{Prompt: "x", ReasoningEffort: EffortHigh}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidArgument(err) {
				t.Errorf("Validate() error kind = %s, want InvalidArgument", KindOf(err))
			}
		})
	}
}

func TestReasoningParamsRejectsNonReasoningModel(t *testing.T) {
	p := ReasoningParams{Prompt: "prove it", Model: "grok-4-1-fast-non-reasoning"}
	if err := p.Validate(); !IsInvalidArgument(err) {
		t.Fatalf("Validate() = %v, want InvalidArgument", err)
	}

	p.Model = "grok-3-mini"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v for reasoning model", err)
	}
}

func TestVisionParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  VisionParams
		wantErr bool
	}{
		{"url", VisionParams{Prompt: "what?", ImageURLs: []string{"https://x.test/a.png"}}, false},
		{"data url", VisionParams{Prompt: "what?", ImageURLs: []string{"data:image/png;base64,AAAA"}}, false},
		{"no images", VisionParams{Prompt: "what?"}, true},
		{"bad detail", VisionParams{Prompt: "what?", ImageURLs: []string{"https://x.test/a.png"}, Detail: "ultra"}, true},
		{"ftp url", VisionParams{Prompt: "what?", ImageURLs: []string{"ftp://x.test/a.png"}}, true},
		{"empty path", VisionParams{Prompt: "what?", ImagePaths: []string{""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	p := VisionParams{Prompt: "what?", ImageURLs: []string{"https://x.test/a.png"}}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.Detail != DetailAuto {
		t.Errorf("Detail default = %q, want auto", p.Detail)
	}
}

func TestImageParamsDefaults(t *testing.T) {
	p := ImageParams{Prompt: "a red cube"}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.N != 1 || p.ResponseFormat != ImageFormatURL {
		t.Errorf("defaults = n:%d format:%q, want 1/url", p.N, p.ResponseFormat)
	}

	p = ImageParams{Prompt: "a red cube", N: 11}
	if err := p.Validate(); !IsInvalidArgument(err) {
		t.Errorf("n=11: Validate() = %v, want InvalidArgument", err)
	}

	p = ImageParams{Prompt: "a red cube", ResponseFormat: "png"}
	if err := p.Validate(); !IsInvalidArgument(err) {
		t.Errorf("format=png: Validate() = %v, want InvalidArgument", err)
	}
}

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{"defaults", SearchParams{Prompt: "news"}, false},
		{"bad mode", SearchParams{Prompt: "news", Mode: "sometimes"}, true},
		{"date range", SearchParams{Prompt: "news", FromDate: "2025-01-01", ToDate: "2025-02-01"}, false},
		{"inverted range", SearchParams{Prompt: "news", FromDate: "2025-03-01", ToDate: "2025-02-01"}, true},
		{"bad date", SearchParams{Prompt: "news", FromDate: "01/02/2025"}, true},
		{"cap too big", SearchParams{Prompt: "news", MaxSearchResults: ptr(51)}, true},
		{"bad country", SearchParams{Prompt: "news", Country: "USA"}, true},
		{"bad source type", SearchParams{Prompt: "news", Sources: []SearchSource{{Type: "blog"}}}, true},
		{"missing source type", SearchParams{Prompt: "news", Sources: []SearchSource{{Country: "us"}}}, true},
		{"rss without links", SearchParams{Prompt: "news", Sources: []SearchSource{{Type: SourceRSS}}}, true},
		{"rss with link", SearchParams{Prompt: "news", Sources: []SearchSource{{Type: SourceRSS, Links: []string{"https://x.test/feed"}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	p := SearchParams{Prompt: "news"}
	if !p.WantsCitations() {
		t.Error("WantsCitations() default should be true")
	}
	if p.ResultCap() != DefaultMaxSearchResults {
		t.Errorf("ResultCap() = %d, want %d", p.ResultCap(), DefaultMaxSearchResults)
	}
}

func TestResponseRefValidate(t *testing.T) {
	for _, id := range []string{"", "  ", "../etc", "a?b"} {
		ref := ResponseRef{ResponseID: id}
		if err := ref.Validate(); !IsInvalidArgument(err) {
			t.Errorf("ResponseRef{%q}.Validate() = %v, want InvalidArgument", id, err)
		}
	}

	ref := ResponseRef{ResponseID: " resp_123 "}
	if err := ref.Validate(); err != nil {
		t.Fatal(err)
	}
	if ref.ResponseID != "resp_123" {
		t.Errorf("ResponseID = %q, want trimmed", ref.ResponseID)
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := UpstreamError("chat", 429, "rate limited", cause)

	if !IsUpstream(err) || IsNotFound(err) {
		t.Errorf("kind checks wrong for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("UpstreamError should unwrap to its cause")
	}
	if err.Error() != "chat: rate limited" {
		t.Errorf("Error() = %q", err.Error())
	}
	if KindOf(errors.New("plain")) != KindUpstream {
		t.Error("KindOf(plain error) should default to UpstreamError")
	}
	if KindOf(NotFound("retrieve", "resp_1", nil)) != KindNotFound {
		t.Error("KindOf(NotFound) mismatch")
	}
}

func TestModelListText(t *testing.T) {
	l := ModelList{Models: []ModelInfo{{ID: "grok-4", OwnedBy: "xai", Created: "2025-07-09"}}}
	want := "Available Grok Models:\n- grok-4 (Owner: xai, Created: 2025-07-09)"
	if got := l.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}
