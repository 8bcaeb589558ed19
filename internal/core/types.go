package core

import "encoding/json"

const (
	ShopName          = "TuskShop"
	ShopUserAgent     = "TuskShop-Responder/0.1"
	ShopRepositoryURL = "https://github.com/sandevgo/tuskshop"
	ShopVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Intent is the classified purpose of a single user utterance.
type Intent string

const (
	IntentOrderStatus  Intent = "order_status"
	IntentProductInfo  Intent = "product_info"
	IntentWarranty     Intent = "warranty"
	IntentIntroduction Intent = "introduction"
	IntentMemoryQuery  Intent = "memory_query"
	IntentGreeting     Intent = "greeting"
	IntentGeneral      Intent = "general"
)

func (i Intent) String() string {
	return string(i)
}
