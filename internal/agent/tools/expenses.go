package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// inRule adapts a string slice to an ozzo In rule.
func inRule(values []string) validation.Rule {
	vs := make([]interface{}, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return validation.In(vs...)
}

// resolveTarget maps an optional member_name to the record owner. In
// private scope, or without a member_name, records belong to the sender.
func (e *Executor) resolveTarget(ctx context.Context, args Args, mc MessageContext) (uuid.UUID, string, error) {
	memberName := args.String("member_name")
	if !mc.IsGroup || memberName == "" {
		return mc.UserID, "", nil
	}

	target, err := e.resolver.Resolve(ctx, mc.GroupID, memberName)
	if err != nil {
		return uuid.Nil, "", err
	}

	return target, e.resolver.DisplayName(ctx, mc.GroupID, target, memberName), nil
}

type addExpenseInput struct {
	Description string
	Amount      float64
	Category    string
}

func (in addExpenseInput) Validate(categories []string) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&in.Category, validation.Required, inRule(categories)),
	)
}

func (e *Executor) addExpense(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	in := addExpenseInput{
		Description: args.String("description"),
		Amount:      args.Float("amount"),
		Category:    args.String("category"),
	}
	if err := in.Validate(e.catalog.ExpenseCategories()); err != nil {
		return ToolResult{}, fmt.Errorf("add_expense: %w", err)
	}

	target, memberName, err := e.resolveTarget(ctx, args, mc)
	if err != nil {
		return ToolResult{}, err
	}

	expense := &models.Expense{
		UserID:      target,
		GroupID:     mc.Scope(),
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Paid:        args.Bool("paid"),
	}
	if err := e.expenses.Create(ctx, expense); err != nil {
		return ToolResult{}, err
	}

	paidMark := ""
	if expense.Paid {
		paidMark = " ✅"
	}
	forMember := ""
	if memberName != "" {
		forMember = fmt.Sprintf(" (%s)", memberName)
	}

	return ToolResult{
		Kind: KindCreated,
		Text: fmt.Sprintf("Despesa registrada: %s - R$ %.2f (%s)%s%s",
			expense.Description, expense.Amount, expense.Category, paidMark, forMember),
	}, nil
}

func (e *Executor) listExpenses(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	filter := models.ExpenseFilter{
		Category: args.String("category"),
		Limit:    args.Int("limit", config.DefaultListLimit),
	}

	if mc.IsGroup {
		expenses, err := e.expenses.ListByGroup(ctx, mc.GroupID, filter)
		if err != nil {
			return ToolResult{}, err
		}
		if len(expenses) == 0 {
			return ToolResult{Kind: KindNotFound, Text: "Nenhuma despesa encontrada no grupo."}, nil
		}
		lines := make([]string, 0, len(expenses))
		for _, x := range expenses {
			owner := ""
			if x.User != nil {
				owner = x.User.DisplayName()
			}
			lines = append(lines, fmt.Sprintf("• %s: R$ %.2f (%s) - %s", x.Description, x.Amount, x.Category, owner))
		}
		return ToolResult{Kind: KindOther, Text: strings.Join(lines, "\n")}, nil
	}

	expenses, err := e.expenses.ListByUser(ctx, mc.UserID, filter)
	if err != nil {
		return ToolResult{}, err
	}
	if len(expenses) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma despesa encontrada."}, nil
	}
	lines := make([]string, 0, len(expenses))
	for _, x := range expenses {
		lines = append(lines, fmt.Sprintf("• %s: R$ %.2f (%s)", x.Description, x.Amount, x.Category))
	}
	return ToolResult{Kind: KindOther, Text: strings.Join(lines, "\n")}, nil
}

func (e *Executor) expensesSummary(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	from, to := models.MonthRange(time.Now())

	if mc.IsGroup {
		summary, err := e.expenses.GroupSummaryByCategory(ctx, mc.GroupID, from, to)
		if err != nil {
			return ToolResult{}, err
		}
		if len(summary) == 0 {
			return ToolResult{Kind: KindNotFound, Text: "Nenhuma despesa do grupo este mês."}, nil
		}
		return ToolResult{Kind: KindOther, Text: summaryText(summary, "Total do grupo")}, nil
	}

	summary, err := e.expenses.SummaryByCategory(ctx, mc.UserID, from, to)
	if err != nil {
		return ToolResult{}, err
	}
	if len(summary) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma despesa este mês."}, nil
	}
	return ToolResult{Kind: KindOther, Text: summaryText(summary, "Total")}, nil
}

func summaryText(summary []models.CategoryTotal, totalLabel string) string {
	var b strings.Builder
	var total float64
	for i, s := range summary {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s: R$ %.2f", s.Category, s.Total)
		total += s.Total
	}
	fmt.Fprintf(&b, "\n\n%s: R$ %.2f", totalLabel, total)
	return b.String()
}

func (e *Executor) markExpensePaid(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	return e.markExpense(ctx, args, mc, true)
}

func (e *Executor) markExpenseUnpaid(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	return e.markExpense(ctx, args, mc, false)
}

func (e *Executor) markExpense(ctx context.Context, args Args, mc MessageContext, paid bool) (ToolResult, error) {
	description := args.String("description")

	expense, err := e.expenses.FindByDescription(ctx, mc.UserID, mc.Scope(), description)
	if err != nil {
		return ToolResult{}, err
	}
	if expense == nil {
		scope := ""
		if mc.IsGroup {
			scope = " no grupo"
		}
		return ToolResult{Kind: KindNotFound, Text: fmt.Sprintf("Despesa %q não encontrada%s.", description, scope)}, nil
	}

	if err := e.expenses.SetPaid(ctx, expense.ID, paid); err != nil {
		return ToolResult{}, err
	}

	if paid {
		return ToolResult{Kind: KindStatus, Text: fmt.Sprintf("✅ Despesa %q marcada como paga!", expense.Description)}, nil
	}
	return ToolResult{Kind: KindStatus, Text: fmt.Sprintf("⏳ Despesa %q marcada como pendente.", expense.Description)}, nil
}

func (e *Executor) deleteExpense(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	description := args.String("description")

	expense, err := e.expenses.FindByDescription(ctx, mc.UserID, mc.Scope(), description)
	if err != nil {
		return ToolResult{}, err
	}
	if expense == nil {
		return ToolResult{Kind: KindNotFound, Text: fmt.Sprintf("Despesa %q não encontrada.", description)}, nil
	}

	if err := e.expenses.DeleteByID(ctx, expense.ID); err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindDeleted,
		Text: fmt.Sprintf("🗑️ Despesa %q (R$ %.2f) removida!", expense.Description, expense.Amount),
	}, nil
}

func (e *Executor) clearAllExpenses(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	count, err := e.expenses.DeleteAll(ctx, mc.UserID, mc.Scope())
	if err != nil {
		return ToolResult{}, err
	}
	if count == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma despesa para remover."}, nil
	}
	return ToolResult{Kind: KindDeleted, Text: fmt.Sprintf("🗑️ %d despesa(s) removida(s)!", count)}, nil
}

func (e *Executor) editExpense(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	update := models.ExpenseUpdate{}
	if v := args.String("new_description"); v != "" {
		update.Description = &v
	}
	if v := args.Float("new_amount"); v != 0 {
		update.Amount = &v
	}
	if v := args.String("new_category"); v != "" {
		update.Category = &v
	}
	if update.Empty() {
		return ToolResult{Kind: KindOther, Text: "Nenhuma alteração informada."}, nil
	}

	expense, err := e.expenses.FindByDescription(ctx, mc.UserID, mc.Scope(), args.String("description"))
	if err != nil {
		return ToolResult{}, err
	}
	if expense == nil {
		return ToolResult{Kind: KindNotFound, Text: fmt.Sprintf("Despesa %q não encontrada.", args.String("description"))}, nil
	}

	updated, err := e.expenses.UpdateByID(ctx, expense.ID, update)
	if err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindEdited,
		Text: fmt.Sprintf("✏️ Despesa atualizada: %s - R$ %.2f (%s)", updated.Description, updated.Amount, updated.Category),
	}, nil
}
