package provider

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"grokmcp/config"
	"grokmcp/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/sahilm/fuzzy"
)

// XAIProvider implements model.Provider against the xAI API using the
// official OpenAI Go SDK. It holds no per-conversation state.
type XAIProvider struct {
	client openai.Client
	opts   Options
}

// NewXAIProvider creates a provider instance.
//
// Parameters:
//   - opts.BaseURL: xAI API base URL (default: "https://api.x.ai/v1")
//   - opts.APIKey: bearer credential; may be empty, calls then fail with UpstreamError
//   - opts.Models: default model per tool family
//
// Returns an error if the base URL cannot be parsed.
func NewXAIProvider(opts Options) (*XAIProvider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid xAI base URL %q: %w", opts.BaseURL, err)
	}
	if opts.Models == (config.ModelsConfig{}) {
		opts.Models = config.DefaultModelsConfig()
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 120 * time.Second
	}
	if opts.ReasoningTimeout <= 0 {
		opts.ReasoningTimeout = 600 * time.Second
	}
	if opts.DeepReasoningTimeout <= 0 {
		opts.DeepReasoningTimeout = time.Hour
	}

	client := openai.NewClient(
		option.WithBaseURL(opts.BaseURL),
		option.WithAPIKey(opts.APIKey),
		// One attempt per tool invocation; failures surface immediately.
		option.WithMaxRetries(0),
	)

	return &XAIProvider{
		client: client,
		opts:   opts,
	}, nil
}

// timeoutFor returns the per-request timeout for a model.
func (p *XAIProvider) timeoutFor(modelName string) option.RequestOption {
	if model.IsReasoningModel(modelName) {
		return option.WithRequestTimeout(p.opts.ReasoningTimeout)
	}
	return option.WithRequestTimeout(p.opts.DefaultTimeout)
}

func (p *XAIProvider) requireKey(op string) error {
	if strings.TrimSpace(p.opts.APIKey) == "" {
		return model.UpstreamError(op, 0, config.EnvAPIKey+" not set; export it or add it to .env", nil)
	}
	return nil
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// ListModels implements model.Provider.ListModels.
func (p *XAIProvider) ListModels(ctx context.Context, params model.ListModelsParams) (*model.ModelList, error) {
	const op = "list_models"
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	page, err := p.client.Models.List(ctx, option.WithRequestTimeout(p.opts.DefaultTimeout))
	if err != nil {
		return nil, mapError(op, err)
	}

	models := make([]model.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, model.ModelInfo{
			ID:      m.ID,
			OwnedBy: m.OwnedBy,
			Created: formatDate(m.Created),
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	filter := strings.TrimSpace(params.Filter)
	if filter == "" {
		return &model.ModelList{Models: models}, nil
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	matches := fuzzy.Find(filter, ids)
	filtered := make([]model.ModelInfo, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, models[match.Index])
	}

	return &model.ModelList{Models: filtered}, nil
}

// Chat implements model.Provider.Chat.
//
// Reasoning models reject penalties and stop sequences, so those are dropped
// for them; reasoning_effort is only forwarded where the model supports it.
func (p *XAIProvider) Chat(ctx context.Context, params model.ChatParams) (*model.ChatResult, error) {
	const op = "chat"
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Chat)
	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: buildMessages(params.SystemPrompt, params.Prompt),
	}
	applySampling(&req, params.Sampling)

	switch {
	case model.IsReasoningModel(modelName):
		if params.ReasoningEffort != "" && model.SupportsReasoningEffort(modelName) {
			req.ReasoningEffort = shared.ReasoningEffort(params.ReasoningEffort)
		}
	default:
		if params.PresencePenalty != nil {
			req.PresencePenalty = openai.Float(*params.PresencePenalty)
		}
		if params.FrequencyPenalty != nil {
			req.FrequencyPenalty = openai.Float(*params.FrequencyPenalty)
		}
		if len(params.Stop) > 0 {
			req.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: params.Stop}
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, req, p.timeoutFor(modelName))
	if err != nil {
		return nil, mapError(op, err)
	}

	msg, err := firstMessage(op, completion)
	if err != nil {
		return nil, err
	}

	return &model.ChatResult{
		Content: msg.Content,
		Model:   pick(completion.Model, modelName),
		Usage:   convertCompletionUsage(completion.Usage),
	}, nil
}

// ChatWithReasoning implements model.Provider.ChatWithReasoning. These calls
// can think for a long time and get the deep reasoning timeout.
func (p *XAIProvider) ChatWithReasoning(ctx context.Context, params model.ReasoningParams) (*model.ReasoningResult, error) {
	const op = "chat_with_reasoning"
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Reasoning)
	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: buildMessages(params.SystemPrompt, params.Prompt),
	}
	applySampling(&req, params.Sampling)
	if params.ReasoningEffort != "" && model.SupportsReasoningEffort(modelName) {
		req.ReasoningEffort = shared.ReasoningEffort(params.ReasoningEffort)
	}

	completion, err := p.client.Chat.Completions.New(ctx, req, option.WithRequestTimeout(p.opts.DeepReasoningTimeout))
	if err != nil {
		return nil, mapError(op, err)
	}

	msg, err := firstMessage(op, completion)
	if err != nil {
		return nil, err
	}

	return &model.ReasoningResult{
		Content:          msg.Content,
		ReasoningContent: extraString(msg.JSON.ExtraFields, "reasoning_content"),
		Model:            pick(completion.Model, modelName),
		Usage:            convertCompletionUsage(completion.Usage),
	}, nil
}

// ChatWithVision implements model.Provider.ChatWithVision. Attachments are
// read and validated before anything goes over the wire.
func (p *XAIProvider) ChatWithVision(ctx context.Context, params model.VisionParams) (*model.ChatResult, error) {
	const op = "chat_with_vision"
	if err := params.Validate(); err != nil {
		return nil, err
	}

	parts, err := buildVisionParts(params)
	if err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Vision)
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}

	completion, err := p.client.Chat.Completions.New(ctx, req, p.timeoutFor(modelName))
	if err != nil {
		return nil, mapError(op, err)
	}

	msg, err := firstMessage(op, completion)
	if err != nil {
		return nil, err
	}

	return &model.ChatResult{
		Content: msg.Content,
		Model:   pick(completion.Model, modelName),
		Usage:   convertCompletionUsage(completion.Usage),
	}, nil
}

// GenerateImage implements model.Provider.GenerateImage.
func (p *XAIProvider) GenerateImage(ctx context.Context, params model.ImageParams) (*model.ImageResult, error) {
	const op = "generate_image"
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Image)
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         params.Prompt,
		Model:          openai.ImageModel(modelName),
		N:              openai.Int(int64(params.N)),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat(params.ResponseFormat),
	}, option.WithRequestTimeout(p.opts.DefaultTimeout))
	if err != nil {
		return nil, mapError(op, err)
	}

	return convertImages(resp), nil
}

// Ping implements model.Provider.Ping by listing models.
func (p *XAIProvider) Ping(ctx context.Context) error {
	_, err := p.ListModels(ctx, model.ListModelsParams{})
	if err != nil {
		return fmt.Errorf("xAI ping failed: %w", err)
	}
	return nil
}

func buildMessages(systemPrompt, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	return append(messages, openai.UserMessage(prompt))
}

func applySampling(req *openai.ChatCompletionNewParams, s model.Sampling) {
	if s.Temperature != nil {
		req.Temperature = openai.Float(*s.Temperature)
	}
	if s.MaxTokens != nil {
		req.MaxTokens = openai.Int(int64(*s.MaxTokens))
	}
	if s.TopP != nil {
		req.TopP = openai.Float(*s.TopP)
	}
}

func firstMessage(op string, completion *openai.ChatCompletion) (openai.ChatCompletionMessage, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return openai.ChatCompletionMessage{}, model.UpstreamError(op, 0, "vendor returned no choices", nil)
	}
	return completion.Choices[0].Message, nil
}
