package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const groupsOnlyText = "Este comando só funciona em grupos."

func (e *Executor) groupReport(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	if !mc.IsGroup {
		return ToolResult{Kind: KindOther, Text: groupsOnlyText}, nil
	}

	now := time.Now()
	text, err := e.reports.GroupMonthly(ctx, mc.GroupID, int(now.Month()), now.Year())
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Kind: KindOther, Text: text}, nil
}

func (e *Executor) groupSplit(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	if !mc.IsGroup {
		return ToolResult{Kind: KindOther, Text: groupsOnlyText}, nil
	}

	now := time.Now()
	text, err := e.reports.GroupSplit(ctx, mc.GroupID, int(now.Month()), now.Year())
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Kind: KindOther, Text: text}, nil
}

func (e *Executor) listGroupMembers(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	if !mc.IsGroup {
		return ToolResult{Kind: KindOther, Text: groupsOnlyText}, nil
	}

	members, err := e.groups.Members(ctx, mc.GroupID)
	if err != nil {
		return ToolResult{}, err
	}
	if len(members) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhum membro registrado no grupo."}, nil
	}

	lines := make([]string, 0, len(members))
	for _, m := range members {
		name := m.UserID.String()
		if m.User != nil {
			name = m.User.Name
			if name == "" {
				name = m.User.Phone
			}
		}
		lines = append(lines, fmt.Sprintf("• %s (%s)", name, m.Role))
	}

	return ToolResult{Kind: KindOther, Text: strings.Join(lines, "\n")}, nil
}
