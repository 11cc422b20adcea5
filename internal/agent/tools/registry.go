package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

// Kind classifies a tool result so the reply composer can bucket it
// without inspecting the text.
type Kind string

const (
	KindCreated  Kind = "created"
	KindDeleted  Kind = "deleted"
	KindEdited   Kind = "edited"
	KindStatus   Kind = "status-changed"
	KindNotFound Kind = "not-found"
	KindOther    Kind = "other"
)

// ToolResult is the outcome of one executed invocation. A "not found"
// lookup is a normal result, never an error.
type ToolResult struct {
	Kind Kind
	Text string
}

// Args is the loosely typed argument map the model sends. Absent or
// mistyped values fall back to zero values; optional parameters default
// at the call site.
type Args map[string]any

func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

func (a Args) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Int returns the integer value for key, or def when absent or zero.
func (a Args) Int(key string, def int) int {
	if v := int(a.Float(key)); v > 0 {
		return v
	}
	return def
}

func (a Args) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// HandlerFunc executes one operation against the record stores.
type HandlerFunc func(ctx context.Context, args Args, mc MessageContext) (ToolResult, error)

// Registry dispatches invocations by operation name.
type Registry struct {
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a handler to an operation name. Re-registering a name
// replaces the previous handler.
func (r *Registry) Register(name string, handler HandlerFunc) {
	r.handlers[name] = handler
}

// Execute runs one invocation. Unknown names produce a fixed result, not
// an error, so a hallucinated tool name doesn't abort the round.
func (r *Registry) Execute(ctx context.Context, call llm.FunctionCall, mc MessageContext) (ToolResult, error) {
	handler, ok := r.handlers[call.Name]
	if !ok {
		r.logger.Warn("unknown tool requested", "tool", call.Name)
		return ToolResult{Kind: KindOther, Text: fmt.Sprintf("Ferramenta desconhecida: %s", call.Name)}, nil
	}

	r.logger.Info("executing tool",
		"tool", call.Name,
		"user_id", mc.UserID,
		"group_id", mc.GroupID,
		"is_group", mc.IsGroup)

	result, err := handler(ctx, Args(call.Args), mc)
	if err != nil {
		return ToolResult{}, fmt.Errorf("tool %s: %w", call.Name, err)
	}

	return result, nil
}

// ExecuteAll runs the round's invocations sequentially in listed order.
// The first error aborts the round.
func (r *Registry) ExecuteAll(ctx context.Context, calls []llm.FunctionCall, mc MessageContext) ([]ToolResult, error) {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		result, err := r.Execute(ctx, call, mc)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
