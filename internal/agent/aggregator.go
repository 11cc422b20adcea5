package agent

import (
	"fmt"
	"strings"

	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
)

// composeReply turns one round's tool results into the reply text.
//
// A single result passes through unchanged. Multiple results are
// bucketed by kind in a fixed order; within a bucket the texts keep
// their execution order. Long runs of creations or deletions collapse
// to a count line, and a pile of "not found" noise is dropped entirely.
// The function is pure: same results in, same reply out.
func composeReply(results []tools.ToolResult) string {
	if len(results) == 0 {
		return ""
	}
	if len(results) == 1 {
		return results[0].Text
	}

	buckets := map[tools.Kind][]string{}
	for _, r := range results {
		buckets[r.Kind] = append(buckets[r.Kind], r.Text)
	}

	var parts []string

	if created := buckets[tools.KindCreated]; len(created) > 0 {
		if len(created) <= 3 {
			parts = append(parts, strings.Join(created, "\n"))
		} else {
			parts = append(parts, fmt.Sprintf("✅ %d itens registrados com sucesso!", len(created)))
		}
	}
	if deleted := buckets[tools.KindDeleted]; len(deleted) > 0 {
		if len(deleted) <= 3 {
			parts = append(parts, strings.Join(deleted, "\n"))
		} else {
			parts = append(parts, fmt.Sprintf("🗑️ %d itens removidos!", len(deleted)))
		}
	}
	if edited := buckets[tools.KindEdited]; len(edited) > 0 {
		parts = append(parts, strings.Join(edited, "\n"))
	}
	if status := buckets[tools.KindStatus]; len(status) > 0 {
		parts = append(parts, strings.Join(status, "\n"))
	}
	if notFound := buckets[tools.KindNotFound]; len(notFound) > 0 && len(notFound) <= 3 {
		parts = append(parts, strings.Join(notFound, "\n"))
	}
	if other := buckets[tools.KindOther]; len(other) > 0 {
		parts = append(parts, strings.Join(other, "\n"))
	}

	reply := strings.Join(parts, "\n\n")
	if reply == "" {
		raw := make([]string, len(results))
		for i, r := range results {
			raw[i] = r.Text
		}
		return strings.Join(raw, "\n")
	}
	return reply
}
