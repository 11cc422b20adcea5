// Package mcptools exposes the financial record store over the Model
// Context Protocol, so external AI tooling can read and write the same
// data the chat assistant manages.
package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// Toolset owns the MCP tool handlers and the stores they act on.
type Toolset struct {
	expenses    repositories.ExpenseRepository
	investments repositories.InvestmentRepository
	budgets     repositories.BudgetRepository
}

// NewToolset creates a Toolset over the record stores.
func NewToolset(
	expenses repositories.ExpenseRepository,
	investments repositories.InvestmentRepository,
	budgets repositories.BudgetRepository,
) *Toolset {
	return &Toolset{
		expenses:    expenses,
		investments: investments,
		budgets:     budgets,
	}
}

// Register adds every tool to the MCP server.
func (t *Toolset) Register(s *server.MCPServer) {
	s.AddTool(t.addExpenseTool(), t.handleAddExpense)
	s.AddTool(t.listExpensesTool(), t.handleListExpenses)
	s.AddTool(t.expensesByCategoryTool(), t.handleExpensesByCategory)
	s.AddTool(t.addInvestmentTool(), t.handleAddInvestment)
	s.AddTool(t.investmentSummaryTool(), t.handleInvestmentSummary)
	s.AddTool(t.budgetStatusTool(), t.handleBudgetStatus)
	s.AddTool(t.setBudgetTool(), t.handleSetBudget)
}

func (t *Toolset) addExpenseTool() mcp.Tool {
	return mcp.NewTool("add_expense",
		mcp.WithDescription("Adiciona uma nova despesa"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Descrição da despesa"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Valor da despesa"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Categoria (alimentação, transporte, lazer, etc)"),
		),
	)
}

func (t *Toolset) handleAddExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	description := req.GetString("description", "")
	amount := floatArg(req, "amount")
	category := req.GetString("category", "")
	if description == "" || category == "" || amount <= 0 {
		return mcp.NewToolResultError("'description', 'amount' and 'category' are required"), nil
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
	}
	if err := t.expenses.Create(ctx, expense); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create expense failed: %v", err)), nil
	}

	return mcp.NewToolResultText(
		fmt.Sprintf("Despesa adicionada: %s - R$ %.2f (%s)", description, amount, category),
	), nil
}

func (t *Toolset) listExpensesTool() mcp.Tool {
	return mcp.NewTool("list_expenses",
		mcp.WithDescription("Lista as despesas do usuário"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithString("category",
			mcp.Description("Filtrar por categoria"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Limitar quantidade de resultados"),
		),
	)
}

func (t *Toolset) handleListExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filter := models.ExpenseFilter{
		Category: req.GetString("category", ""),
		Limit:    intArg(req, "limit", 0),
	}
	expenses, err := t.expenses.ListByUser(ctx, userID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list expenses failed: %v", err)), nil
	}
	if len(expenses) == 0 {
		return mcp.NewToolResultText("Nenhuma despesa encontrada"), nil
	}

	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, fmt.Sprintf("- %s: R$ %.2f (%s) - %s",
			e.Description, e.Amount, e.Category, e.Date.Format("02/01/2006")))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (t *Toolset) expensesByCategoryTool() mcp.Tool {
	return mcp.NewTool("expenses_by_category",
		mcp.WithDescription("Mostra o total de despesas por categoria no mês"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithNumber("month",
			mcp.Description("Mês (1-12)"),
		),
		mcp.WithNumber("year",
			mcp.Description("Ano"),
		),
	)
}

func (t *Toolset) handleExpensesByCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	from, to := monthWindowArgs(req)
	summary, err := t.expenses.SummaryByCategory(ctx, userID, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	if len(summary) == 0 {
		return mcp.NewToolResultText("Nenhuma despesa no período"), nil
	}

	lines := make([]string, 0, len(summary))
	for _, s := range summary {
		lines = append(lines, fmt.Sprintf("- %s: R$ %.2f", s.Category, s.Total))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (t *Toolset) addInvestmentTool() mcp.Tool {
	return mcp.NewTool("add_investment",
		mcp.WithDescription("Adiciona um novo investimento"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Nome do investimento"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Tipo: stocks, crypto, fixed_income, funds ou other"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Valor investido"),
		),
	)
}

func (t *Toolset) handleAddInvestment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "")
	typ := req.GetString("type", "")
	amount := floatArg(req, "amount")
	if name == "" || amount <= 0 {
		return mcp.NewToolResultError("'name' and 'amount' are required"), nil
	}
	if !validInvestmentType(typ) {
		return mcp.NewToolResultError(
			fmt.Sprintf("'type' must be one of: %s", strings.Join(models.InvestmentTypes, ", ")),
		), nil
	}

	investment := &models.Investment{
		UserID: userID,
		Name:   name,
		Type:   typ,
		Amount: amount,
	}
	if err := t.investments.Create(ctx, investment); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create investment failed: %v", err)), nil
	}

	return mcp.NewToolResultText(
		fmt.Sprintf("Investimento adicionado: %s - R$ %.2f (%s)", name, amount, typ),
	), nil
}

func (t *Toolset) investmentSummaryTool() mcp.Tool {
	return mcp.NewTool("investment_summary",
		mcp.WithDescription("Mostra o resumo dos investimentos do usuário"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
	)
}

func (t *Toolset) handleInvestmentSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	investments, err := t.investments.ListByUser(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list investments failed: %v", err)), nil
	}
	if len(investments) == 0 {
		return mcp.NewToolResultText("Nenhum investimento registrado."), nil
	}

	var invested, current float64
	byType := make(map[string]float64)
	for _, inv := range investments {
		invested += inv.Amount
		current += inv.CurrentValue
		byType[inv.Type] += inv.CurrentValue
	}
	ret := current - invested
	pct := 0.0
	if invested > 0 {
		pct = ret / invested * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Investido: R$ %.2f\n", invested)
	fmt.Fprintf(&b, "Valor Atual: R$ %.2f\n", current)
	fmt.Fprintf(&b, "Retorno: R$ %.2f (%.2f%%)\n\nPor tipo:\n", ret, pct)
	for _, typ := range models.InvestmentTypes {
		if v, ok := byType[typ]; ok {
			fmt.Fprintf(&b, "- %s: R$ %.2f\n", typ, v)
		}
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func (t *Toolset) budgetStatusTool() mcp.Tool {
	return mcp.NewTool("budget_status",
		mcp.WithDescription("Mostra o status do orçamento por categoria"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithNumber("month",
			mcp.Description("Mês (1-12)"),
		),
		mcp.WithNumber("year",
			mcp.Description("Ano"),
		),
	)
}

func (t *Toolset) handleBudgetStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	now := time.Now()
	month := intArg(req, "month", int(now.Month()))
	year := intArg(req, "year", now.Year())

	budgets, err := t.budgets.ListForMonth(ctx, userID, month, year)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list budgets failed: %v", err)), nil
	}
	if len(budgets) == 0 {
		return mcp.NewToolResultText("Nenhum orçamento definido"), nil
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	summary, err := t.expenses.SummaryByCategory(ctx, userID, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	spent := make(map[string]float64, len(summary))
	for _, s := range summary {
		spent[s.Category] = s.Total
	}

	lines := make([]string, 0, len(budgets))
	for _, budget := range budgets {
		used := spent[budget.Category]
		pct := 0.0
		if budget.Limit > 0 {
			pct = used / budget.Limit * 100
		}
		line := fmt.Sprintf("- %s: R$ %.2f / R$ %.2f (%.0f%%)", budget.Category, used, budget.Limit, pct)
		if used > budget.Limit {
			line += " EXCEDIDO!"
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (t *Toolset) setBudgetTool() mcp.Tool {
	return mcp.NewTool("set_budget",
		mcp.WithDescription("Define um limite de orçamento para uma categoria"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("ID do usuário"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Categoria"),
		),
		mcp.WithNumber("limit",
			mcp.Required(),
			mcp.Description("Limite de gastos"),
		),
	)
}

func (t *Toolset) handleSetBudget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := userIDArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := req.GetString("category", "")
	limit := floatArg(req, "limit")
	if category == "" || limit <= 0 {
		return mcp.NewToolResultError("'category' and 'limit' are required"), nil
	}

	now := time.Now()
	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    limit,
		Month:    int(now.Month()),
		Year:     now.Year(),
	}
	if err := t.budgets.Upsert(ctx, budget); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("set budget failed: %v", err)), nil
	}

	return mcp.NewToolResultText(
		fmt.Sprintf("Orçamento definido: %s - R$ %.2f/mês", category, limit),
	), nil
}

// userIDArg parses the mandatory user_id argument.
func userIDArg(req mcp.CallToolRequest) (uuid.UUID, error) {
	raw := req.GetString("user_id", "")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("'user_id' must be a valid UUID")
	}
	return id, nil
}

// monthWindowArgs resolves the optional month/year arguments to the
// inclusive bounds of that month, defaulting to the current one.
func monthWindowArgs(req mcp.CallToolRequest) (time.Time, time.Time) {
	now := time.Now()
	month := intArg(req, "month", int(now.Month()))
	year := intArg(req, "year", now.Year())
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0).Add(-time.Second)
}

func validInvestmentType(typ string) bool {
	for _, t := range models.InvestmentTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// intArg extracts a numeric argument as int. JSON numbers decode as
// float64, so the typed getters don't apply.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// floatArg extracts a numeric argument, zero when absent.
func floatArg(req mcp.CallToolRequest, key string) float64 {
	v, _ := req.GetArguments()[key].(float64)
	return v
}
