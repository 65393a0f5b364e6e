// Package mcp publishes the Grok tools over the Model Context Protocol.
//
// The server side is built on mark3labs/mcp-go: Tools declares the schemas,
// ArgumentValidator enforces them, and each handler performs one
// model.Provider call. Client wraps an in-process mcp-go client for the call
// command and tests.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"grokmcp/config"
	"grokmcp/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName   = "grok-mcp"
	HTTPEndpoint = "/mcp"

	shutdownTimeout = 5 * time.Second
)

type Server struct {
	provider  model.Provider
	tools     []mcptypes.Tool
	validator *ArgumentValidator
	mcp       *server.MCPServer
}

// NewServer registers the tool set backed by p. A nil cfg uses the default
// models for the published descriptions.
func NewServer(p model.Provider, cfg *config.Config, version string) (*Server, error) {
	if p == nil {
		return nil, errors.New("provider is required")
	}
	models := config.DefaultModelsConfig()
	if cfg != nil {
		models = cfg.Models
	}

	tools := Tools(models)
	validator, err := NewArgumentValidator(tools)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument validator: %w", err)
	}

	s := &Server{
		provider:  p,
		tools:     tools,
		validator: validator,
		mcp: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions("Tools for the xAI Grok API: chat, reasoning, vision, image generation, live search and stateful conversations."),
		),
	}
	s.registerTools()

	if config.DebugLog != nil {
		config.DebugLog.Printf("[MCP] Registered %d tools", len(tools))
	}

	return s, nil
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) Tools() []mcptypes.Tool {
	return s.tools
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is
// cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(errorLogger())

	if config.DebugLog != nil {
		config.DebugLog.Printf("[MCP] Serving on stdio")
	}

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// HTTPHandler returns the streamable HTTP transport as a handler.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(HTTPEndpoint, server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(HTTPEndpoint)))
	return mux
}

// ListenHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) ListenHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[MCP] Serving streamable HTTP on %s%s", addr, HTTPEndpoint)
		}
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func errorLogger() *log.Logger {
	if config.DebugLog != nil {
		return config.DebugLog
	}
	return log.New(os.Stderr, "grokmcp: ", log.LstdFlags)
}
