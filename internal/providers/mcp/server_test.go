package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/tuskshop/internal/providers/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestToolHandler_PassesArguments(t *testing.T) {
	var got json.RawMessage
	def := tools.Definition{
		Name: "get_order_status",
		Handler: func(_ context.Context, args json.RawMessage) (string, error) {
			got = args
			return "Pesanan #2001 sedang Dikirim via JNE, estimasi tiba 2025-09-25.", nil
		},
	}

	res, err := toolHandler(def)(context.Background(), callRequest(def.Name, map[string]any{"order_id": "2001"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "#2001")
	assert.JSONEq(t, `{"order_id":"2001"}`, string(got))
}

func TestToolHandler_ErrorBecomesToolResult(t *testing.T) {
	def := tools.Definition{
		Name: "get_product_info",
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return "", errors.New("product_name is required")
		},
	}

	res, err := toolHandler(def)(context.Background(), callRequest(def.Name, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "product_name is required")
}

func TestNewServer_RegistersEveryTool(t *testing.T) {
	reg := tools.NewRegistry()
	for _, name := range []string{"a", "b"} {
		reg.Register(tools.Definition{
			Name:    name,
			Schema:  json.RawMessage(`{"type":"object","properties":{}}`),
			Handler: func(context.Context, json.RawMessage) (string, error) { return "", nil },
		})
	}

	s := NewServer(reg)
	resp := s.mcp.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"a"`)
	assert.Contains(t, string(raw), `"name":"b"`)
}
