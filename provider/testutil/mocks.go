package testutil

import (
	"context"
	"sync"

	"grokmcp/model"
)

// MockProvider implements model.Provider for handler tests. Each method
// delegates to a replaceable function field and counts its calls, so tests
// can assert that a rejected request never reached the provider.
type MockProvider struct {
	ListModelsFunc        func(ctx context.Context, params model.ListModelsParams) (*model.ModelList, error)
	ChatFunc              func(ctx context.Context, params model.ChatParams) (*model.ChatResult, error)
	ChatWithReasoningFunc func(ctx context.Context, params model.ReasoningParams) (*model.ReasoningResult, error)
	ChatWithVisionFunc    func(ctx context.Context, params model.VisionParams) (*model.ChatResult, error)
	GenerateImageFunc     func(ctx context.Context, params model.ImageParams) (*model.ImageResult, error)
	LiveSearchFunc        func(ctx context.Context, params model.SearchParams) (*model.SearchResult, error)
	StatefulChatFunc      func(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error)
	RetrieveResponseFunc  func(ctx context.Context, ref model.ResponseRef) (*model.StoredResponse, error)
	DeleteResponseFunc    func(ctx context.Context, ref model.ResponseRef) (*model.DeleteResult, error)
	PingFunc              func(ctx context.Context) error

	mu    sync.Mutex
	calls map[string]int
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider() *MockProvider {
	m := &MockProvider{calls: make(map[string]int)}
	m.ListModelsFunc = func(ctx context.Context, params model.ListModelsParams) (*model.ModelList, error) {
		return TestModelList(), nil
	}
	m.ChatFunc = func(ctx context.Context, params model.ChatParams) (*model.ChatResult, error) {
		return &model.ChatResult{Content: "Mock response", Model: params.Model, Usage: TestUsage()}, nil
	}
	m.ChatWithReasoningFunc = func(ctx context.Context, params model.ReasoningParams) (*model.ReasoningResult, error) {
		return &model.ReasoningResult{Content: "42", ReasoningContent: "6 * 7", Model: params.Model, Usage: TestUsage()}, nil
	}
	m.ChatWithVisionFunc = func(ctx context.Context, params model.VisionParams) (*model.ChatResult, error) {
		return &model.ChatResult{Content: "A red cube", Model: params.Model, Usage: TestUsage()}, nil
	}
	m.GenerateImageFunc = func(ctx context.Context, params model.ImageParams) (*model.ImageResult, error) {
		return TestImageResult(params.N), nil
	}
	m.LiveSearchFunc = func(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
		return &model.SearchResult{Content: "Mock news", Citations: []string{"https://news.test/1"}, Usage: TestUsage()}, nil
	}
	m.StatefulChatFunc = func(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error) {
		return &model.StatefulResult{Content: "Mock turn", ResponseID: "resp_mock", Status: "completed", ContinuedFrom: params.ResponseID}, nil
	}
	m.RetrieveResponseFunc = func(ctx context.Context, ref model.ResponseRef) (*model.StoredResponse, error) {
		return &model.StoredResponse{ResponseID: ref.ResponseID, Status: "completed", Content: "Mock turn"}, nil
	}
	m.DeleteResponseFunc = func(ctx context.Context, ref model.ResponseRef) (*model.DeleteResult, error) {
		return &model.DeleteResult{ResponseID: ref.ResponseID, Deleted: true}, nil
	}
	m.PingFunc = func(ctx context.Context) error {
		return nil
	}
	return m
}

func (m *MockProvider) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (m *MockProvider) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// TotalCalls returns the number of provider calls of any kind.
func (m *MockProvider) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockProvider) ListModels(ctx context.Context, params model.ListModelsParams) (*model.ModelList, error) {
	m.record("ListModels")
	return m.ListModelsFunc(ctx, params)
}

func (m *MockProvider) Chat(ctx context.Context, params model.ChatParams) (*model.ChatResult, error) {
	m.record("Chat")
	return m.ChatFunc(ctx, params)
}

func (m *MockProvider) ChatWithReasoning(ctx context.Context, params model.ReasoningParams) (*model.ReasoningResult, error) {
	m.record("ChatWithReasoning")
	return m.ChatWithReasoningFunc(ctx, params)
}

func (m *MockProvider) ChatWithVision(ctx context.Context, params model.VisionParams) (*model.ChatResult, error) {
	m.record("ChatWithVision")
	return m.ChatWithVisionFunc(ctx, params)
}

func (m *MockProvider) GenerateImage(ctx context.Context, params model.ImageParams) (*model.ImageResult, error) {
	m.record("GenerateImage")
	return m.GenerateImageFunc(ctx, params)
}

func (m *MockProvider) LiveSearch(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	m.record("LiveSearch")
	return m.LiveSearchFunc(ctx, params)
}

func (m *MockProvider) StatefulChat(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error) {
	m.record("StatefulChat")
	return m.StatefulChatFunc(ctx, params)
}

func (m *MockProvider) RetrieveResponse(ctx context.Context, ref model.ResponseRef) (*model.StoredResponse, error) {
	m.record("RetrieveResponse")
	return m.RetrieveResponseFunc(ctx, ref)
}

func (m *MockProvider) DeleteResponse(ctx context.Context, ref model.ResponseRef) (*model.DeleteResult, error) {
	m.record("DeleteResponse")
	return m.DeleteResponseFunc(ctx, ref)
}

func (m *MockProvider) Ping(ctx context.Context) error {
	m.record("Ping")
	return m.PingFunc(ctx)
}
