package agent

import (
	"strings"
	"testing"

	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
)

func TestComposeReplySingleResultPassesThrough(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindNotFound, Text: `Despesa "Nubank" não encontrada.`},
	}

	got := composeReply(results)
	if got != `Despesa "Nubank" não encontrada.` {
		t.Errorf("expected verbatim pass-through, got %q", got)
	}
}

func TestComposeReplyEmpty(t *testing.T) {
	if got := composeReply(nil); got != "" {
		t.Errorf("expected empty reply for no results, got %q", got)
	}
}

func TestComposeReplyJoinsSmallCreationRuns(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindCreated, Text: "Despesa registrada: Cemig - R$ 116.22 (moradia)"},
		{Kind: tools.KindCreated, Text: "Despesa registrada: DMAE - R$ 55.38 (moradia)"},
		{Kind: tools.KindCreated, Text: "Despesa registrada: Algar - R$ 99.90 (moradia)"},
	}

	got := composeReply(results)
	if strings.Contains(got, "itens registrados") {
		t.Errorf("three creations must not collapse to a count: %q", got)
	}
	if len(strings.Split(got, "\n")) != 3 {
		t.Errorf("expected three joined lines, got %q", got)
	}
}

func TestComposeReplyCollapsesLongCreationRuns(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindCreated, Text: "a"},
		{Kind: tools.KindCreated, Text: "b"},
		{Kind: tools.KindCreated, Text: "c"},
		{Kind: tools.KindCreated, Text: "d"},
	}

	got := composeReply(results)
	if got != "✅ 4 itens registrados com sucesso!" {
		t.Errorf("expected count line, got %q", got)
	}
}

func TestComposeReplyCollapsesLongDeletionRuns(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindDeleted, Text: "a"},
		{Kind: tools.KindDeleted, Text: "b"},
		{Kind: tools.KindDeleted, Text: "c"},
		{Kind: tools.KindDeleted, Text: "d"},
	}

	got := composeReply(results)
	if got != "🗑️ 4 itens removidos!" {
		t.Errorf("expected count line, got %q", got)
	}
}

func TestComposeReplyDropsNotFoundNoise(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindCreated, Text: "criado"},
		{Kind: tools.KindNotFound, Text: "n1"},
		{Kind: tools.KindNotFound, Text: "n2"},
		{Kind: tools.KindNotFound, Text: "n3"},
		{Kind: tools.KindNotFound, Text: "n4"},
	}

	got := composeReply(results)
	if got != "criado" {
		t.Errorf("more than three not-found results must be dropped, got %q", got)
	}
}

func TestComposeReplyKeepsFewNotFound(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindCreated, Text: "criado"},
		{Kind: tools.KindNotFound, Text: "n1"},
	}

	got := composeReply(results)
	want := "criado\n\nn1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestComposeReplyBucketOrderIsFixed(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindOther, Text: "outro"},
		{Kind: tools.KindDeleted, Text: "removido"},
		{Kind: tools.KindEdited, Text: "editado"},
		{Kind: tools.KindCreated, Text: "criado"},
		{Kind: tools.KindStatus, Text: "pago"},
	}

	want := "criado\n\nremovido\n\neditado\n\npago\n\noutro"
	if got := composeReply(results); got != want {
		t.Errorf("expected fixed bucket order %q, got %q", want, got)
	}
}

func TestComposeReplyDeterministic(t *testing.T) {
	results := []tools.ToolResult{
		{Kind: tools.KindCreated, Text: "a"},
		{Kind: tools.KindDeleted, Text: "b"},
		{Kind: tools.KindOther, Text: "c"},
	}

	first := composeReply(results)
	for i := 0; i < 10; i++ {
		if got := composeReply(results); got != first {
			t.Fatalf("composeReply is not deterministic: %q vs %q", first, got)
		}
	}
}

func TestComposeReplyFallsBackToRawJoin(t *testing.T) {
	// Every bucket suppressed: only a pile of not-found results.
	results := []tools.ToolResult{
		{Kind: tools.KindNotFound, Text: "n1"},
		{Kind: tools.KindNotFound, Text: "n2"},
		{Kind: tools.KindNotFound, Text: "n3"},
		{Kind: tools.KindNotFound, Text: "n4"},
	}

	want := "n1\nn2\nn3\nn4"
	if got := composeReply(results); got != want {
		t.Errorf("expected raw join fallback %q, got %q", want, got)
	}
}
