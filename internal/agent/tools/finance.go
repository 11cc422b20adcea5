package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

type addInvestmentInput struct {
	Name   string
	Type   string
	Amount float64
}

func (in addInvestmentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Type, validation.Required, inRule(models.InvestmentTypes)),
		validation.Field(&in.Amount, validation.Required, validation.Min(0.01)),
	)
}

func (e *Executor) addInvestment(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	in := addInvestmentInput{
		Name:   args.String("name"),
		Type:   args.String("type"),
		Amount: args.Float("amount"),
	}
	if err := in.Validate(); err != nil {
		return ToolResult{}, fmt.Errorf("add_investment: %w", err)
	}

	investment := &models.Investment{
		UserID: mc.UserID,
		Name:   in.Name,
		Type:   in.Type,
		Amount: in.Amount,
	}
	if err := e.investments.Create(ctx, investment); err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindCreated,
		Text: fmt.Sprintf("Investimento registrado: %s - R$ %.2f (%s)", investment.Name, investment.Amount, investment.Type),
	}, nil
}

func (e *Executor) investmentSummary(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	investments, err := e.investments.ListByUser(ctx, mc.UserID)
	if err != nil {
		return ToolResult{}, err
	}

	var invested, current float64
	for _, inv := range investments {
		invested += inv.Amount
		current += inv.CurrentValue
	}
	if invested == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhum investimento registrado."}, nil
	}

	ret := current - invested
	pct := ret / invested * 100

	return ToolResult{
		Kind: KindOther,
		Text: fmt.Sprintf("Total Investido: R$ %.2f\nValor Atual: R$ %.2f\nRetorno: R$ %.2f (%.2f%%)",
			invested, current, ret, pct),
	}, nil
}

type setBudgetInput struct {
	Category string
	Limit    float64
}

func (in setBudgetInput) Validate(categories []string) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Category, validation.Required, inRule(categories)),
		validation.Field(&in.Limit, validation.Required, validation.Min(0.01)),
	)
}

func (e *Executor) setBudget(ctx context.Context, args Args, mc MessageContext) (ToolResult, error) {
	in := setBudgetInput{
		Category: args.String("category"),
		Limit:    args.Float("limit"),
	}
	if err := in.Validate(e.catalog.ExpenseCategories()); err != nil {
		return ToolResult{}, fmt.Errorf("set_budget: %w", err)
	}

	now := time.Now()
	budget := &models.Budget{
		UserID:   mc.UserID,
		Category: in.Category,
		Limit:    in.Limit,
		Month:    int(now.Month()),
		Year:     now.Year(),
	}
	if err := e.budgets.Upsert(ctx, budget); err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Kind: KindCreated,
		Text: fmt.Sprintf("Orçamento definido: %s - R$ %.2f/mês", in.Category, in.Limit),
	}, nil
}

func (e *Executor) budgetStatus(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	now := time.Now()
	budgets, err := e.budgets.ListForMonth(ctx, mc.UserID, int(now.Month()), now.Year())
	if err != nil {
		return ToolResult{}, err
	}
	if len(budgets) == 0 {
		return ToolResult{Kind: KindNotFound, Text: "Nenhum orçamento definido."}, nil
	}

	from, to := models.MonthRange(now)
	summary, err := e.expenses.SummaryByCategory(ctx, mc.UserID, from, to)
	if err != nil {
		return ToolResult{}, err
	}
	spentByCategory := make(map[string]float64, len(summary))
	for _, s := range summary {
		spentByCategory[s.Category] = s.Total
	}

	lines := make([]string, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		over := ""
		if spent > b.Limit {
			over = " ⚠️ EXCEDIDO"
		}
		lines = append(lines, fmt.Sprintf("• %s: R$ %.2f / R$ %.2f (%.0f%%)%s",
			b.Category, spent, b.Limit, spent/b.Limit*100, over))
	}

	return ToolResult{Kind: KindOther, Text: strings.Join(lines, "\n")}, nil
}

func (e *Executor) balance(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	from, to := models.MonthRange(time.Now())

	totalIncome, err := e.incomes.TotalForPeriod(ctx, mc.UserID, from, to)
	if err != nil {
		return ToolResult{}, err
	}
	summary, err := e.expenses.SummaryByCategory(ctx, mc.UserID, from, to)
	if err != nil {
		return ToolResult{}, err
	}
	var totalExpenses float64
	for _, s := range summary {
		totalExpenses += s.Total
	}

	balance := totalIncome - totalExpenses
	status := "positivo"
	if balance < 0 {
		status = "negativo"
	}

	return ToolResult{
		Kind: KindOther,
		Text: fmt.Sprintf("Entradas: R$ %.2f\nDespesas: R$ %.2f\nSaldo: R$ %.2f (%s)",
			totalIncome, totalExpenses, balance, status),
	}, nil
}

func (e *Executor) fullReport(ctx context.Context, _ Args, mc MessageContext) (ToolResult, error) {
	now := time.Now()

	if mc.IsGroup {
		text, err := e.reports.GroupMonthly(ctx, mc.GroupID, int(now.Month()), now.Year())
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{Kind: KindOther, Text: text}, nil
	}

	text, err := e.reports.Monthly(ctx, mc.UserID, int(now.Month()), now.Year())
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{Kind: KindOther, Text: text}, nil
}
