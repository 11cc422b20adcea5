// Package agent runs the tool-calling loop that turns a free-text
// utterance into financial record operations and one reply.
package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

const fallbackReply = "Desculpe, não entendi. Pode reformular?"

// Agent orchestrates the reasoning service and the tool registry.
type Agent struct {
	provider llm.Provider
	registry *tools.Registry
	defs     *tools.Definitions
	history  *ConversationStore
	name     string
	logger   *slog.Logger
}

// New creates an Agent. The history store is injected so callers (and
// tests) control its bounds and lifetime.
func New(
	provider llm.Provider,
	registry *tools.Registry,
	defs *tools.Definitions,
	history *ConversationStore,
	name string,
	logger *slog.Logger,
) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
		defs:     defs,
		history:  history,
		name:     name,
		logger:   logger,
	}
}

// historyKey scopes conversation memory: group chats share one log,
// private chats get one per user.
func historyKey(mc tools.MessageContext) string {
	if mc.IsGroup && mc.GroupID != "" {
		return mc.GroupID
	}
	return mc.UserID.String()
}

// ProcessMessage appends the utterance to the scope's history, runs up
// to MaxToolRounds tool rounds and returns the composed reply. Tool
// results from the most recent round always win over model prose; model
// text only answers purely conversational exchanges. Provider and tool
// errors propagate to the caller.
func (a *Agent) ProcessMessage(ctx context.Context, text string, mc tools.MessageContext) (string, error) {
	scope := historyKey(mc)
	a.logger.Info("processing message",
		"user_id", mc.UserID,
		"group_id", mc.GroupID,
		"is_group", mc.IsGroup)

	a.history.Append(scope, llm.Message{Role: llm.RoleUser, Text: text})

	system := systemPrompt(a.name)
	if mc.IsGroup {
		system = groupSystemPrompt(a.name)
	}
	toolDefs := a.defs.ForScope(mc.IsGroup)

	var (
		lastResults []tools.ToolResult
		resp        *llm.Response
		err         error
		rounds      int
	)

	for rounds = 0; rounds < config.MaxToolRounds; rounds++ {
		resp, err = a.provider.GenerateTurn(ctx, &llm.Request{
			System:   system,
			Messages: a.history.History(scope),
			Tools:    toolDefs,
		})
		if err != nil {
			return "", err
		}

		if len(resp.Calls) == 0 {
			break
		}

		a.logger.Info("processing function calls", "count", len(resp.Calls), "round", rounds+1)

		results, err := a.registry.ExecuteAll(ctx, resp.Calls, mc)
		if err != nil {
			return "", err
		}
		lastResults = results

		a.history.Append(scope, llm.Message{
			Role:    llm.RoleModel,
			Calls:   resp.Calls,
			Results: pairResults(resp.Calls, results),
		})
	}

	var reply string
	switch {
	case len(lastResults) > 0:
		reply = composeReply(lastResults)
	case resp != nil && strings.TrimSpace(resp.Text) != "":
		reply = resp.Text
	default:
		reply = fallbackReply
	}

	a.history.Append(scope, llm.Message{Role: llm.RoleModel, Text: reply})

	a.logger.Info("finished processing message", "rounds", rounds)
	return reply, nil
}

func pairResults(calls []llm.FunctionCall, results []tools.ToolResult) []llm.FunctionResult {
	paired := make([]llm.FunctionResult, len(results))
	for i, r := range results {
		paired[i] = llm.FunctionResult{Name: calls[i].Name, Text: r.Text}
	}
	return paired
}
