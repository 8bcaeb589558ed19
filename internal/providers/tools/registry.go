package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

// Handler executes a tool with its raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Definition describes a tool the registry can expose.
type Definition struct {
	Name        string
	Description string
	Schema      json.RawMessage
	Handler     Handler
}

// Provider is anything that contributes tool definitions.
type Provider interface {
	GetDefinitions() []Definition
}

// Registry holds native Go tools and satisfies core.ToolExecutor.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Definition
	order []string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		tools: make(map[string]Definition),
	}
	for _, p := range providers {
		for _, def := range p.GetDefinitions() {
			r.Register(def)
		}
	}
	return r
}

// Register adds or replaces a tool. Replacing keeps the original position.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = def
}

// Definitions returns registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

func (r *Registry) GetTools(_ context.Context) ([]core.Tool, error) {
	defs := r.Definitions()
	out := make([]core.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, core.Tool{
			Type: "function",
			Function: core.Function{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Schema,
			},
		})
	}
	return out, nil
}

func (r *Registry) CallTool(ctx context.Context, name string, args string) (string, error) {
	log.FromCtx(ctx).Debug().Str("tool", name).Str("args", args).Msg("executing tool")

	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	if args == "" {
		args = "{}"
	}
	return def.Handler(ctx, json.RawMessage(args))
}
