package mcp

import (
	"context"
	"fmt"
	"strings"

	"grokmcp/config"

	"github.com/mark3labs/mcp-go/client"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Client talks to a Server in the same process through mcp-go's in-process
// transport, so calls take the same dispatch path as a real MCP client.
type Client struct {
	mcpClient *client.Client
}

func NewClient(ctx context.Context, s *Server) (*Client, error) {
	mcpClient, err := client.NewInProcessClient(s.MCPServer())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-process client: %w", err)
	}

	if err := mcpClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start in-process client: %w", err)
	}

	initReq := mcptypes.InitializeRequest{
		Params: mcptypes.InitializeParams{
			ProtocolVersion: mcptypes.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcptypes.ClientCapabilities{},
			ClientInfo: mcptypes.Implementation{
				Name:    "grokmcp-call",
				Version: "1.0.0",
			},
		},
	}
	if _, err := mcpClient.Initialize(ctx, initReq); err != nil {
		_ = mcpClient.Close()
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	return &Client{mcpClient: mcpClient}, nil
}

func (c *Client) ListTools(ctx context.Context) ([]mcptypes.Tool, error) {
	res, err := c.mcpClient.ListTools(ctx, mcptypes.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return res.Tools, nil
}

func (c *Client) CallTool(ctx context.Context, toolName string, args map[string]any) (*mcptypes.CallToolResult, error) {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[MCP] Client calling %s", toolName)
	}

	req := mcptypes.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args

	res, err := c.mcpClient.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", toolName, err)
	}
	return res, nil
}

func (c *Client) Close() error {
	return c.mcpClient.Close()
}

// ResultText joins the text content blocks of a tool result.
func ResultText(res *mcptypes.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, content := range res.Content {
		switch tc := content.(type) {
		case mcptypes.TextContent:
			parts = append(parts, tc.Text)
		case *mcptypes.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
