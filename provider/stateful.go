package provider

import (
	"context"
	"time"

	"grokmcp/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// StoredResponseRetention is how long xAI keeps stored responses.
const StoredResponseRetention = 30 * 24 * time.Hour

// now is replaced in tests.
var now = time.Now

// StatefulChat implements model.Provider.StatefulChat via the Responses API
// with store=true. The conversation lives on the vendor side; the caller keeps
// the returned response id.
func (p *XAIProvider) StatefulChat(ctx context.Context, params model.StatefulParams) (*model.StatefulResult, error) {
	const op = "stateful_chat"
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Stateful)

	input := make(responses.ResponseInputParam, 0, 2)
	// The system prompt belongs to the first turn only; a continued
	// conversation already carries it remotely.
	if params.SystemPrompt != "" && !params.Continuing() {
		input = append(input, responses.ResponseInputItemParamOfMessage(params.SystemPrompt, responses.EasyInputMessageRoleSystem))
	}
	input = append(input, responses.ResponseInputItemParamOfMessage(params.Prompt, responses.EasyInputMessageRoleUser))

	req := responses.ResponseNewParams{
		Model: shared.ResponsesModel(modelName),
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: input},
		Store: openai.Bool(true),
	}
	if params.Continuing() {
		req.PreviousResponseID = openai.String(params.ResponseID)
	}
	if params.Temperature != nil {
		req.Temperature = openai.Float(*params.Temperature)
	}
	if params.MaxTokens != nil {
		req.MaxOutputTokens = openai.Int(int64(*params.MaxTokens))
	}
	if params.IncludeReasoning {
		req.Include = []responses.ResponseIncludable{responses.ResponseIncludableReasoningEncryptedContent}
	}

	resp, err := p.client.Responses.New(ctx, req, p.timeoutFor(modelName))
	if err != nil {
		if params.Continuing() {
			return nil, mapStoredError(op, params.ResponseID, err)
		}
		return nil, mapError(op, err)
	}

	content, reasoning := extractOutput(resp)
	result := &model.StatefulResult{
		Content:       content,
		ResponseID:    resp.ID,
		Status:        string(resp.Status),
		Model:         pick(string(resp.Model), modelName),
		Usage:         convertResponseUsage(resp.Usage),
		StoredUntil:   now().Add(StoredResponseRetention).Format(model.DateLayout),
		ContinuedFrom: params.ResponseID,
		Reasoning:     reasoning,
	}

	return result, nil
}

// RetrieveResponse implements model.Provider.RetrieveResponse.
func (p *XAIProvider) RetrieveResponse(ctx context.Context, ref model.ResponseRef) (*model.StoredResponse, error) {
	const op = "retrieve_stateful_response"
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	resp, err := p.client.Responses.Get(ctx, ref.ResponseID, responses.ResponseGetParams{},
		option.WithRequestTimeout(p.opts.DefaultTimeout))
	if err != nil {
		return nil, mapStoredError(op, ref.ResponseID, err)
	}

	content, reasoning := extractOutput(resp)
	return &model.StoredResponse{
		ResponseID:         resp.ID,
		Model:              string(resp.Model),
		CreatedAt:          formatTimestamp(resp.CreatedAt),
		Status:             string(resp.Status),
		Content:            content,
		Reasoning:          reasoning,
		Usage:              convertResponseUsage(resp.Usage),
		PreviousResponseID: resp.PreviousResponseID,
		Store:              extraBool(resp.JSON.ExtraFields, "store"),
	}, nil
}

// DeleteResponse implements model.Provider.DeleteResponse.
func (p *XAIProvider) DeleteResponse(ctx context.Context, ref model.ResponseRef) (*model.DeleteResult, error) {
	const op = "delete_stateful_response"
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	err := p.client.Responses.Delete(ctx, ref.ResponseID, option.WithRequestTimeout(p.opts.DefaultTimeout))
	if err != nil {
		return nil, mapStoredError(op, ref.ResponseID, err)
	}

	return &model.DeleteResult{
		ResponseID: ref.ResponseID,
		Deleted:    true,
		Message:    "Response " + ref.ResponseID + " deleted from xAI servers",
	}, nil
}
