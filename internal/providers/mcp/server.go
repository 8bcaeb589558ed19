// Package mcp publishes the shop lookup tools as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/providers/tools"
	"github.com/sandevgo/tuskshop/pkg/log"
)

type Server struct {
	mcp *server.MCPServer
}

func NewServer(registry *tools.Registry) *Server {
	s := server.NewMCPServer(
		core.ShopName,
		core.ShopVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, def := range registry.Definitions() {
		s.AddTool(mcp.NewToolWithRawSchema(def.Name, def.Description, def.Schema), toolHandler(def))
	}

	return &Server{mcp: s}
}

// Serve speaks MCP over in/out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// toolHandler adapts a native tool. Tool failures are returned as error
// results so the client model can see them.
func toolHandler(def tools.Definition) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
		}

		out, err := def.Handler(ctx, args)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("tool", def.Name).Msg("mcp tool failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
