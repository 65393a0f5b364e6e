package mcp

// Tool names as published to MCP clients.
const (
	ToolListModels        = "list_models"
	ToolChat              = "chat"
	ToolChatWithReasoning = "chat_with_reasoning"
	ToolChatWithVision    = "chat_with_vision"
	ToolGenerateImage     = "generate_image"
	ToolLiveSearch        = "live_search"
	ToolStatefulChat      = "stateful_chat"
	ToolRetrieveResponse  = "retrieve_stateful_response"
	ToolDeleteResponse    = "delete_stateful_response"
)

// ToolNames lists every tool in registration order.
var ToolNames = []string{
	ToolListModels,
	ToolChat,
	ToolChatWithReasoning,
	ToolChatWithVision,
	ToolGenerateImage,
	ToolLiveSearch,
	ToolStatefulChat,
	ToolRetrieveResponse,
	ToolDeleteResponse,
}
