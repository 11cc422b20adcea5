package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExecuteUnknownToolIsNotAnError(t *testing.T) {
	r := NewRegistry(discardLogger())

	result, err := r.Execute(context.Background(), llm.FunctionCall{Name: "made_up_tool"}, MessageContext{})
	if err != nil {
		t.Fatalf("unknown tool must not abort the round: %v", err)
	}
	if result.Kind != KindOther {
		t.Errorf("expected KindOther, got %q", result.Kind)
	}
	if result.Text != "Ferramenta desconhecida: made_up_tool" {
		t.Errorf("unexpected text: %q", result.Text)
	}
}

func TestExecuteWrapsHandlerErrors(t *testing.T) {
	r := NewRegistry(discardLogger())
	sentinel := errors.New("database down")
	r.Register("broken", func(context.Context, Args, MessageContext) (ToolResult, error) {
		return ToolResult{}, sentinel
	})

	_, err := r.Execute(context.Background(), llm.FunctionCall{Name: "broken"}, MessageContext{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
}

func TestExecuteAllRunsInOrderAndAbortsOnError(t *testing.T) {
	r := NewRegistry(discardLogger())
	var order []string
	r.Register("ok", func(_ context.Context, args Args, _ MessageContext) (ToolResult, error) {
		order = append(order, args.String("tag"))
		return ToolResult{Kind: KindOther, Text: args.String("tag")}, nil
	})
	r.Register("fail", func(context.Context, Args, MessageContext) (ToolResult, error) {
		order = append(order, "fail")
		return ToolResult{}, errors.New("boom")
	})

	calls := []llm.FunctionCall{
		{Name: "ok", Args: map[string]any{"tag": "first"}},
		{Name: "fail"},
		{Name: "ok", Args: map[string]any{"tag": "third"}},
	}

	results, err := r.ExecuteAll(context.Background(), calls, MessageContext{})
	if err == nil {
		t.Fatal("expected error from failing call")
	}
	if results != nil {
		t.Errorf("expected no partial results, got %v", results)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "fail" {
		t.Errorf("expected sequential execution aborted at the failure, got %v", order)
	}
}

func TestArgsTypedAccess(t *testing.T) {
	args := Args{
		"name":   "mercado",
		"amount": float64(42.5),
		"count":  3, // untyped int, as tests construct them
		"paid":   true,
	}

	if got := args.String("name"); got != "mercado" {
		t.Errorf("String: got %q", got)
	}
	if got := args.String("missing"); got != "" {
		t.Errorf("String on missing key: got %q", got)
	}
	if got := args.Float("amount"); got != 42.5 {
		t.Errorf("Float: got %v", got)
	}
	if got := args.Float("count"); got != 3 {
		t.Errorf("Float on int: got %v", got)
	}
	if got := args.Float("name"); got != 0 {
		t.Errorf("Float on string: got %v", got)
	}
	if !args.Bool("paid") {
		t.Error("Bool: expected true")
	}
	if args.Bool("missing") {
		t.Error("Bool on missing key: expected false")
	}
}

func TestArgsIntDefaults(t *testing.T) {
	args := Args{"limit": float64(5), "zero": float64(0)}

	if got := args.Int("limit", 10); got != 5 {
		t.Errorf("Int: got %d", got)
	}
	if got := args.Int("zero", 10); got != 10 {
		t.Errorf("Int on zero value must default: got %d", got)
	}
	if got := args.Int("missing", 10); got != 10 {
		t.Errorf("Int on missing key must default: got %d", got)
	}
}
