// Package llm abstracts the reasoning service behind a provider
// interface so the orchestration loop can be tested with fakes.
package llm

import "context"

// Role identifies who produced a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// FunctionCall is one tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// FunctionResult is the outcome of one executed invocation, fed back to
// the model on the next round.
type FunctionResult struct {
	Name string
	Text string
}

// Message is one conversation entry. A model message carrying Calls is a
// tool round; its Results travel with it so the provider can replay the
// call/response exchange in the wire format it needs.
type Message struct {
	Role    Role
	Text    string
	Calls   []FunctionCall
	Results []FunctionResult
}

// Param describes one tool parameter. Type is a JSON-schema primitive:
// "string", "number", "integer" or "boolean".
type Param struct {
	Type        string
	Description string
	Enum        []string
}

// ToolDef declares one callable tool to the model.
type ToolDef struct {
	Name        string
	Description string
	Params      map[string]Param
	Required    []string
}

// Request is one generation turn: full history plus the fixed system
// instruction and the tool schemas available in this scope.
type Request struct {
	System   string
	Messages []Message
	Tools    []ToolDef
}

// Response carries the model's optional text and its function calls in
// the order the model listed them.
type Response struct {
	Text  string
	Calls []FunctionCall
}

// Provider generates one model turn. Implementations must preserve call
// order and must not retry internally.
type Provider interface {
	GenerateTurn(ctx context.Context, req *Request) (*Response, error)
}
