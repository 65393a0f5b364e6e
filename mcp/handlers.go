package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grokmcp/config"
	"grokmcp/model"

	"github.com/google/uuid"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type validatable interface {
	Validate() error
}

// toolHandler builds the MCP handler for one tool: schema check, bind into
// the params struct P, cross-field Validate, then exactly one provider call.
// Failures are returned as error results, never as protocol errors.
func toolHandler[P any, R any](s *Server, name string, call func(context.Context, P) (R, error), text func(R) string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
		reqID := uuid.NewString()
		start := time.Now()

		res, err := invoke(ctx, s, name, req, call)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[MCP] %s %s failed after %s: %s: %v",
					reqID, name, time.Since(start).Round(time.Millisecond), model.KindOf(err), err)
			}
			return errorResult(err), nil
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[MCP] %s %s ok in %s", reqID, name, time.Since(start).Round(time.Millisecond))
		}
		return mcptypes.NewToolResultStructured(res, text(res)), nil
	}
}

func invoke[P any, R any](ctx context.Context, s *Server, name string, req mcptypes.CallToolRequest, call func(context.Context, P) (R, error)) (R, error) {
	var zero R

	if err := s.validator.Validate(name, req.GetArguments()); err != nil {
		return zero, err
	}

	var params P
	if err := req.BindArguments(&params); err != nil {
		return zero, model.InvalidArgument("cannot bind arguments: %v", err)
	}
	if v, ok := any(&params).(validatable); ok {
		if err := v.Validate(); err != nil {
			return zero, err
		}
	}

	return call(ctx, params)
}

// errorResult renders err as "<Kind>: <message>".
func errorResult(err error) *mcptypes.CallToolResult {
	return mcptypes.NewToolResultError(fmt.Sprintf("%s: %v", model.KindOf(err), err))
}

func jsonText[R any](res R) string {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", res)
	}
	return string(data)
}

func (s *Server) registerTools() {
	p := s.provider
	handlers := map[string]server.ToolHandlerFunc{
		ToolListModels:        toolHandler(s, ToolListModels, p.ListModels, (*model.ModelList).Text),
		ToolChat:              toolHandler(s, ToolChat, p.Chat, jsonText[*model.ChatResult]),
		ToolChatWithReasoning: toolHandler(s, ToolChatWithReasoning, p.ChatWithReasoning, jsonText[*model.ReasoningResult]),
		ToolChatWithVision:    toolHandler(s, ToolChatWithVision, p.ChatWithVision, jsonText[*model.ChatResult]),
		ToolGenerateImage:     toolHandler(s, ToolGenerateImage, p.GenerateImage, jsonText[*model.ImageResult]),
		ToolLiveSearch:        toolHandler(s, ToolLiveSearch, p.LiveSearch, jsonText[*model.SearchResult]),
		ToolStatefulChat:      toolHandler(s, ToolStatefulChat, p.StatefulChat, jsonText[*model.StatefulResult]),
		ToolRetrieveResponse:  toolHandler(s, ToolRetrieveResponse, p.RetrieveResponse, jsonText[*model.StoredResponse]),
		ToolDeleteResponse:    toolHandler(s, ToolDeleteResponse, p.DeleteResponse, jsonText[*model.DeleteResult]),
	}

	for _, tool := range s.tools {
		s.mcp.AddTool(tool, handlers[tool.Name])
	}
}
