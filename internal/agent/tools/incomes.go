package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

type addIncomeInput struct {
	Description string
	Amount      float64
	Source      string
}

func (in addIncomeInput) Validate(sources []string) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&in.Source, validation.Required, inRule(sources)),
	)
}

func (e *Executor) addIncome(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	in := addIncomeInput{
		Description: args.String("description"),
		Amount:      args.Float("amount"),
		Source:      args.String("source"),
	}
	if err := in.Validate(e.catalog.IncomeSources()); err != nil {
		return ToolResult{}, fmt.Errorf("add_income: %w", err)
	}

	target, memberName, err := e.resolveTarget(ctx, args, mc)
	if err != nil {
		return ToolResult{}, err
	}

	income := &models.Income{
		UserID:      target,
		GroupID:     mc.Scope(),
		Description: in.Description,
		Amount:      in.Amount,
		Source:      in.Source,
	}
	if err := e.incomes.Create(ctx, income); err != nil {
		return ToolResult{}, err
	}

	forMember := ""
	if memberName != "" {
		forMember = fmt.Sprintf(" (%s)", memberName)
	}

	return ToolResult{
		Kind: KindCreated,
		Text: fmt.Sprintf("Entrada registrada: %s - R$ %.2f (%s)%s",
			income.Description, income.Amount, income.Source, forMember),
	}, nil
}

func (e *Executor) listIncomes(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	incomes, err := e.incomes.ListByUser(ctx, mc.UserID, models.IncomeFilter{
		Source: args.String("source"),
		Limit:  args.Int("limit", config.DefaultListLimit),
	})
	if err != nil {
		return ToolResult{}, err
	}
	if len(incomes) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma entrada encontrada."}, nil
	}

	lines := make([]string, 0, len(incomes))
	for _, i := range incomes {
		lines = append(lines, fmt.Sprintf("• %s: R$ %.2f (%s)", i.Description, i.Amount, i.Source))
	}
	return ToolResult{Kind: KindOther, Text: strings.Join(lines, "\n")}, nil
}

func (e *Executor) incomeSummary(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	from, to := models.MonthRange(time.Now())

	summary, err := e.incomes.SummaryBySource(ctx, mc.UserID, from, to)
	if err != nil {
		return ToolResult{}, err
	}
	if len(summary) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma entrada este mês."}, nil
	}

	var b strings.Builder
	var total float64
	for i, s := range summary {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s: R$ %.2f", s.Source, s.Total)
		total += s.Total
	}
	fmt.Fprintf(&b, "\n\nTotal: R$ %.2f", total)

	return ToolResult{Kind: KindOther, Text: b.String()}, nil
}

func (e *Executor) deleteIncome(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	description := args.String("description")

	income, err := e.incomes.FindByDescription(ctx, mc.UserID, mc.Scope(), description)
	if err != nil {
		return ToolResult{}, err
	}
	if income == nil {
		return ToolResult{Kind: KindNotFound, Text: fmt.Sprintf("Entrada %q não encontrada.", description)}, nil
	}

	if err := e.incomes.DeleteByID(ctx, income.ID); err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindDeleted,
		Text: fmt.Sprintf("🗑️ Entrada %q (R$ %.2f) removida!", income.Description, income.Amount),
	}, nil
}

func (e *Executor) clearAllIncomes(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	count, err := e.incomes.DeleteAll(ctx, mc.UserID, mc.Scope())
	if err != nil {
		return ToolResult{}, err
	}
	if count == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma entrada para remover."}, nil
	}
	return ToolResult{Kind: KindDeleted, Text: fmt.Sprintf("🗑️ %d entrada(s) removida(s)!", count)}, nil
}

func (e *Executor) clearAll(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	expenseCount, err := e.expenses.DeleteAll(ctx, mc.UserID, mc.Scope())
	if err != nil {
		return ToolResult{}, err
	}
	incomeCount, err := e.incomes.DeleteAll(ctx, mc.UserID, mc.Scope())
	if err != nil {
		return ToolResult{}, err
	}

	if expenseCount+incomeCount == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhuma transação para remover."}, nil
	}
	return ToolResult{
		Kind: KindDeleted,
		Text: fmt.Sprintf("🗑️ Tudo removido! %d despesa(s) e %d entrada(s) apagadas.", expenseCount, incomeCount),
	}, nil
}

func (e *Executor) editIncome(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	update := models.IncomeUpdate{}
	if v := args.String("new_description"); v != "" {
		update.Description = &v
	}
	if v := args.Float("new_amount"); v != 0 {
		update.Amount = &v
	}
	if v := args.String("new_source"); v != "" {
		update.Source = &v
	}
	if update.Empty() {
		return ToolResult{Kind: KindOther, Text: "Nenhuma alteração informada."}, nil
	}

	income, err := e.incomes.FindByDescription(ctx, mc.UserID, mc.Scope(), args.String("description"))
	if err != nil {
		return ToolResult{}, err
	}
	if income == nil {
		return ToolResult{Kind: KindNotFound, Text: fmt.Sprintf("Entrada %q não encontrada.", args.String("description"))}, nil
	}

	updated, err := e.incomes.UpdateByID(ctx, income.ID, update)
	if err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindEdited,
		Text: fmt.Sprintf("✏️ Entrada atualizada: %s - R$ %.2f (%s)", updated.Description, updated.Amount, updated.Source),
	}, nil
}
