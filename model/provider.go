package model

import "context"

// Provider is the request mapper contract: each method performs exactly one
// vendor round trip and returns a normalized result or an *Error.
//
// This interface lives in the model package (not provider) so the MCP tool
// layer can depend on it without importing the vendor SDK.
type Provider interface {
	ListModels(ctx context.Context, params ListModelsParams) (*ModelList, error)

	Chat(ctx context.Context, params ChatParams) (*ChatResult, error)

	ChatWithReasoning(ctx context.Context, params ReasoningParams) (*ReasoningResult, error)

	// ChatWithVision reads local attachments before the request is sent.
	ChatWithVision(ctx context.Context, params VisionParams) (*ChatResult, error)

	GenerateImage(ctx context.Context, params ImageParams) (*ImageResult, error)

	LiveSearch(ctx context.Context, params SearchParams) (*SearchResult, error)

	// StatefulChat starts a remote conversation, or continues one when
	// params.ResponseID is set.
	StatefulChat(ctx context.Context, params StatefulParams) (*StatefulResult, error)

	RetrieveResponse(ctx context.Context, ref ResponseRef) (*StoredResponse, error)

	DeleteResponse(ctx context.Context, ref ResponseRef) (*DeleteResult, error)

	// Ping checks that the API key is accepted.
	Ping(ctx context.Context) error
}
