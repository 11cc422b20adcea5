package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

// scriptedProvider replays a fixed sequence of responses. Once the
// script runs out it answers with plain text and no calls.
type scriptedProvider struct {
	script      []*llm.Response
	invocations int
}

func (p *scriptedProvider) GenerateTurn(_ context.Context, _ *llm.Request) (*llm.Response, error) {
	p.invocations++
	if len(p.script) > 0 {
		resp := p.script[0]
		p.script = p.script[1:]
		return resp, nil
	}
	return &llm.Response{Text: "feito"}, nil
}

// greedyProvider asks for another tool round on every turn.
type greedyProvider struct {
	invocations int
}

func (p *greedyProvider) GenerateTurn(_ context.Context, _ *llm.Request) (*llm.Response, error) {
	p.invocations++
	return &llm.Response{
		Calls: []llm.FunctionCall{{Name: "probe", Args: map[string]any{}}},
	}, nil
}

func newTestAgent(t *testing.T, provider llm.Provider, registry *tools.Registry) (*Agent, *ConversationStore) {
	t.Helper()

	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	history := NewConversationStore(10, config.MaxHistoryTurns)
	return New(provider, registry, tools.NewDefinitions(cat), history, "Jurandir", logger), history
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	return tools.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProcessMessageConversational(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.Response{{Text: "Olá! Como posso ajudar?"}}}
	ag, history := newTestAgent(t, provider, testRegistry(t))

	mc := tools.MessageContext{UserID: uuid.New()}
	reply, err := ag.ProcessMessage(context.Background(), "oi", mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "Olá! Como posso ajudar?" {
		t.Errorf("expected model prose, got %q", reply)
	}
	if provider.invocations != 1 {
		t.Errorf("expected a single provider turn, got %d", provider.invocations)
	}
	if n := history.Len(mc.UserID.String()); n != 2 {
		t.Errorf("expected 2 stored turns (user + reply), got %d", n)
	}
}

func TestProcessMessageToolRoundWinsOverProse(t *testing.T) {
	registry := testRegistry(t)
	registry.Register("add_expense", func(_ context.Context, args tools.Args, _ tools.MessageContext) (tools.ToolResult, error) {
		return tools.ToolResult{
			Kind: tools.KindCreated,
			Text: fmt.Sprintf("Despesa registrada: %s", args.String("description")),
		}, nil
	})

	provider := &scriptedProvider{script: []*llm.Response{
		{Calls: []llm.FunctionCall{
			{Name: "add_expense", Args: map[string]any{"description": "Cemig"}},
			{Name: "add_expense", Args: map[string]any{"description": "DMAE"}},
		}},
		{Text: "Registrei as duas contas para você!"},
	}}
	ag, history := newTestAgent(t, provider, registry)

	mc := tools.MessageContext{UserID: uuid.New()}
	reply, err := ag.ProcessMessage(context.Background(), "Cemig: 116,22, DMAE: 55,38", mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Despesa registrada: Cemig\nDespesa registrada: DMAE"
	if reply != want {
		t.Errorf("tool results must win over prose:\nwant %q\ngot  %q", want, reply)
	}
	// One user turn, one tool round, one final reply.
	if n := history.Len(mc.UserID.String()); n != 3 {
		t.Errorf("expected 3 stored turns, got %d", n)
	}
}

func TestProcessMessageStopsAtRoundCap(t *testing.T) {
	registry := testRegistry(t)
	round := 0
	registry.Register("probe", func(_ context.Context, _ tools.Args, _ tools.MessageContext) (tools.ToolResult, error) {
		round++
		return tools.ToolResult{Kind: tools.KindOther, Text: fmt.Sprintf("r%d", round)}, nil
	})

	provider := &greedyProvider{}
	ag, _ := newTestAgent(t, provider, registry)

	reply, err := ag.ProcessMessage(context.Background(), "loop", tools.MessageContext{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.invocations != config.MaxToolRounds {
		t.Errorf("expected exactly %d provider turns, got %d", config.MaxToolRounds, provider.invocations)
	}
	want := fmt.Sprintf("r%d", config.MaxToolRounds)
	if reply != want {
		t.Errorf("expected reply from the final round (%q), got %q", want, reply)
	}
}

func TestProcessMessageFallbackReply(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.Response{{Text: "   "}}}
	ag, _ := newTestAgent(t, provider, testRegistry(t))

	reply, err := ag.ProcessMessage(context.Background(), "???", tools.MessageContext{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestProcessMessageLoneNotFoundIsVerbatim(t *testing.T) {
	registry := testRegistry(t)
	registry.Register("delete_expense", func(_ context.Context, _ tools.Args, _ tools.MessageContext) (tools.ToolResult, error) {
		return tools.ToolResult{Kind: tools.KindNotFound, Text: `Despesa "Nubank" não encontrada.`}, nil
	})

	provider := &scriptedProvider{script: []*llm.Response{
		{Calls: []llm.FunctionCall{{Name: "delete_expense", Args: map[string]any{"description": "Nubank"}}}},
		{Text: "Não achei."},
	}}
	ag, _ := newTestAgent(t, provider, registry)

	reply, err := ag.ProcessMessage(context.Background(), "remove Nubank", tools.MessageContext{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `Despesa "Nubank" não encontrada.` {
		t.Errorf("lone result must pass through verbatim, got %q", reply)
	}
}

func TestHistoryKeyScopesGroupsTogether(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	groupScope := historyKey(tools.MessageContext{UserID: userA, GroupID: "g1@g.us", IsGroup: true})
	if groupScope != "g1@g.us" {
		t.Errorf("group messages must share the group scope, got %q", groupScope)
	}
	if got := historyKey(tools.MessageContext{UserID: userB, GroupID: "g1@g.us", IsGroup: true}); got != groupScope {
		t.Errorf("same group must map to the same scope, got %q", got)
	}
	if got := historyKey(tools.MessageContext{UserID: userA}); got != userA.String() {
		t.Errorf("private chats must scope by user, got %q", got)
	}
}
