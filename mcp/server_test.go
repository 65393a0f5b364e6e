package mcp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"grokmcp/model"
	"grokmcp/provider/testutil"
)

func newTestClient(t *testing.T, p model.Provider) *Client {
	t.Helper()
	s, err := NewServer(p, nil, "test")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	c, err := NewClient(context.Background(), s)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewServerRequiresProvider(t *testing.T) {
	if _, err := NewServer(nil, nil, "test"); err == nil {
		t.Error("NewServer(nil) should fail")
	}
}

func TestListToolsPublishesAllNine(t *testing.T) {
	c := newTestClient(t, testutil.NewMockProvider())

	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(tools) != len(ToolNames) {
		t.Fatalf("got %d tools, want %d", len(tools), len(ToolNames))
	}
	for _, tool := range tools {
		if !slices.Contains(ToolNames, tool.Name) {
			t.Errorf("unexpected tool %q", tool.Name)
		}
		if tool.Description == "" {
			t.Errorf("tool %q has no description", tool.Name)
		}
	}
}

func TestCallChat(t *testing.T) {
	mock := testutil.NewMockProvider()
	var got model.ChatParams
	mock.ChatFunc = func(ctx context.Context, params model.ChatParams) (*model.ChatResult, error) {
		got = params
		return &model.ChatResult{Content: "4", Model: params.Model, Usage: testutil.TestUsage()}, nil
	}
	c := newTestClient(t, mock)

	res, err := c.CallTool(context.Background(), ToolChat, map[string]any{
		"prompt":      "2+2?",
		"model":       "grok-4-fast",
		"temperature": 0.1,
		"stop":        []any{"END"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", ResultText(res))
	}

	if got.Prompt != "2+2?" || got.Model != "grok-4-fast" {
		t.Errorf("params = %+v", got)
	}
	if got.Temperature == nil || *got.Temperature != 0.1 {
		t.Errorf("temperature = %v", got.Temperature)
	}
	if len(got.Stop) != 1 || got.Stop[0] != "END" {
		t.Errorf("stop = %v", got.Stop)
	}

	text := ResultText(res)
	if !strings.Contains(text, `"content": "4"`) || !strings.Contains(text, `"total_tokens": 12`) {
		t.Errorf("text fallback = %s", text)
	}
	if res.StructuredContent == nil {
		t.Error("missing structured content")
	}
}

func TestCallListModelsText(t *testing.T) {
	c := newTestClient(t, testutil.NewMockProvider())

	res, err := c.CallTool(context.Background(), ToolListModels, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := testutil.TestModelList().Text(); ResultText(res) != want {
		t.Errorf("text = %q, want %q", ResultText(res), want)
	}
}

func TestCallAppliesDefaults(t *testing.T) {
	mock := testutil.NewMockProvider()
	var vision model.VisionParams
	mock.ChatWithVisionFunc = func(ctx context.Context, params model.VisionParams) (*model.ChatResult, error) {
		vision = params
		return &model.ChatResult{Content: "ok"}, nil
	}
	var image model.ImageParams
	mock.GenerateImageFunc = func(ctx context.Context, params model.ImageParams) (*model.ImageResult, error) {
		image = params
		return testutil.TestImageResult(params.N), nil
	}
	var chat model.ChatParams
	mock.ChatFunc = func(ctx context.Context, params model.ChatParams) (*model.ChatResult, error) {
		chat = params
		return &model.ChatResult{Content: "ok"}, nil
	}
	var stateful model.StatefulParams
	mock.StatefulChatFunc = func(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error) {
		stateful = params
		return &model.StatefulResult{ResponseID: "resp_1", Content: "ok"}, nil
	}
	c := newTestClient(t, mock)
	ctx := context.Background()

	call := func(tool string, args map[string]any) {
		t.Helper()
		res, err := c.CallTool(ctx, tool, args)
		if err != nil {
			t.Fatal(err)
		}
		if res.IsError {
			t.Fatalf("%s: unexpected error result: %s", tool, ResultText(res))
		}
	}

	// JSON null on an optional parameter means "not given".
	call(ToolStatefulChat, map[string]any{"prompt": "hello", "response_id": nil})
	if stateful.Prompt != "hello" || stateful.ResponseID != "" {
		t.Errorf("stateful params = %+v", stateful)
	}

	call(ToolChat, map[string]any{"prompt": "hi", "model": nil, "temperature": nil})
	if chat.Prompt != "hi" || chat.Model != "" || chat.Temperature != nil {
		t.Errorf("chat params = %+v", chat)
	}

	call(ToolChatWithVision, map[string]any{
		"prompt":      "and this?",
		"image_paths": nil,
		"image_urls":  []any{"https://img.test/b.png"},
	})
	if len(vision.ImagePaths) != 0 || len(vision.ImageURLs) != 1 {
		t.Errorf("vision params = %+v", vision)
	}

	if _, err := c.CallTool(ctx, ToolChatWithVision, map[string]any{
		"prompt":     "what is this?",
		"image_urls": []any{"https://img.test/a.png"},
	}); err != nil {
		t.Fatal(err)
	}
	if vision.Detail != model.DetailAuto {
		t.Errorf("detail = %q, want auto", vision.Detail)
	}

	if _, err := c.CallTool(ctx, ToolGenerateImage, map[string]any{"prompt": "a red cube"}); err != nil {
		t.Fatal(err)
	}
	if image.N != 1 || image.ResponseFormat != model.ImageFormatURL {
		t.Errorf("image params = %+v", image)
	}
}

func TestInvalidArgumentsNeverReachProvider(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"chat missing prompt", ToolChat, map[string]any{}},
		{"chat prompt wrong type", ToolChat, map[string]any{"prompt": 42}},
		{"chat blank prompt", ToolChat, map[string]any{"prompt": "   "}},
		{"chat temperature out of range", ToolChat, map[string]any{"prompt": "hi", "temperature": 3}},
		{"chat bad reasoning effort", ToolChat, map[string]any{"prompt": "hi", "reasoning_effort": "medium"}},
		{"reasoning with plain model", ToolChatWithReasoning, map[string]any{"prompt": "hi", "model": "grok-4-fast"}},
		{"vision bad detail", ToolChatWithVision, map[string]any{"prompt": "hi", "image_urls": []any{"https://a.test/x.png"}, "detail": "ultra"}},
		{"vision without images", ToolChatWithVision, map[string]any{"prompt": "hi"}},
		{"image fractional n", ToolGenerateImage, map[string]any{"prompt": "cube", "n": 2.5}},
		{"image too many", ToolGenerateImage, map[string]any{"prompt": "cube", "n": 11}},
		{"image bad format", ToolGenerateImage, map[string]any{"prompt": "cube", "response_format": "png"}},
		{"search mode auto", ToolLiveSearch, map[string]any{"prompt": "news", "mode": "auto"}},
		{"search bad date", ToolLiveSearch, map[string]any{"prompt": "news", "from_date": "2025/01/01"}},
		{"search dates reversed", ToolLiveSearch, map[string]any{"prompt": "news", "from_date": "2025-02-01", "to_date": "2025-01-01"}},
		{"search cap too high", ToolLiveSearch, map[string]any{"prompt": "news", "max_search_results": 51}},
		{"search bad source type", ToolLiveSearch, map[string]any{"prompt": "news", "sources": []any{map[string]any{"type": "tv"}}}},
		{"retrieve missing id", ToolRetrieveResponse, map[string]any{}},
		{"delete empty id", ToolDeleteResponse, map[string]any{"response_id": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider()
			c := newTestClient(t, mock)

			res, err := c.CallTool(context.Background(), tt.tool, tt.args)
			if err != nil {
				t.Fatalf("CallTool() error = %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected error result, got %s", ResultText(res))
			}
			if text := ResultText(res); !strings.HasPrefix(text, "InvalidArgument: ") {
				t.Errorf("text = %q, want InvalidArgument prefix", text)
			}
			if mock.TotalCalls() != 0 {
				t.Errorf("provider called %d times", mock.TotalCalls())
			}
		})
	}
}

func TestProviderErrorsBecomeErrorResults(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"not found", model.NotFound("retrieve_stateful_response", "resp_old", nil), "NotFound: retrieve_stateful_response: response resp_old not found or expired"},
		{"attachment", model.AttachmentError("/tmp/x.gif", nil, "unsupported image type .gif"), "AttachmentError: /tmp/x.gif: unsupported image type .gif"},
		{"upstream", model.UpstreamError("retrieve_stateful_response", 500, "boom", nil), "UpstreamError: retrieve_stateful_response: boom"},
		{"unclassified", errors.New("socket closed"), "UpstreamError: socket closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider()
			mock.RetrieveResponseFunc = func(ctx context.Context, ref model.ResponseRef) (*model.StoredResponse, error) {
				return nil, tt.err
			}
			c := newTestClient(t, mock)

			res, err := c.CallTool(context.Background(), ToolRetrieveResponse, map[string]any{"response_id": "resp_old"})
			if err != nil {
				t.Fatalf("CallTool() error = %v", err)
			}
			if !res.IsError || ResultText(res) != tt.wantText {
				t.Errorf("result = %v %q, want error %q", res.IsError, ResultText(res), tt.wantText)
			}
		})
	}
}

func TestStatefulRoundTripThroughServer(t *testing.T) {
	mock := testutil.NewMockProvider()
	var continued string
	mock.StatefulChatFunc = func(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error) {
		continued = params.ResponseID
		id := "resp_1"
		if params.Continuing() {
			id = "resp_2"
		}
		return &model.StatefulResult{Content: "hi", ResponseID: id, ContinuedFrom: params.ResponseID}, nil
	}
	c := newTestClient(t, mock)
	ctx := context.Background()

	first, err := c.CallTool(ctx, ToolStatefulChat, map[string]any{"prompt": "hello"})
	if err != nil || first.IsError {
		t.Fatalf("first call: %v %s", err, ResultText(first))
	}
	if !strings.Contains(ResultText(first), `"response_id": "resp_1"`) {
		t.Errorf("first = %s", ResultText(first))
	}

	second, err := c.CallTool(ctx, ToolStatefulChat, map[string]any{"prompt": "again", "response_id": " resp_1 "})
	if err != nil || second.IsError {
		t.Fatalf("second call: %v %s", err, ResultText(second))
	}
	if continued != "resp_1" {
		t.Errorf("continued from %q, want trimmed resp_1", continued)
	}
	if mock.Calls("StatefulChat") != 2 {
		t.Errorf("StatefulChat calls = %d", mock.Calls("StatefulChat"))
	}
}

func TestHTTPHandlerInitialize(t *testing.T) {
	s, err := NewServer(testutil.NewMockProvider(), nil, "test")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.HTTPHandler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+HTTPEndpoint, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", HTTPEndpoint, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
	if !strings.Contains(string(data), ServerName) {
		t.Errorf("initialize response does not name the server: %s", data)
	}
}
