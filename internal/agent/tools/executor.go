package tools

import (
	"log/slog"

	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
	"github.com/thallesrafaell/jurandir-finance/internal/service/report"
)

// Executor owns the handlers for every financial operation and the
// collaborators they need.
type Executor struct {
	expenses    repositories.ExpenseRepository
	incomes     repositories.IncomeRepository
	budgets     repositories.BudgetRepository
	investments repositories.InvestmentRepository
	groups      repositories.GroupRepository
	reports     *report.Service
	resolver    *MemberResolver
	catalog     *catalog.Catalog
	logger      *slog.Logger
}

// NewExecutor creates an Executor over the record stores.
func NewExecutor(
	expenses repositories.ExpenseRepository,
	incomes repositories.IncomeRepository,
	budgets repositories.BudgetRepository,
	investments repositories.InvestmentRepository,
	groups repositories.GroupRepository,
	reports *report.Service,
	resolver *MemberResolver,
	cat *catalog.Catalog,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		expenses:    expenses,
		incomes:     incomes,
		budgets:     budgets,
		investments: investments,
		groups:      groups,
		reports:     reports,
		resolver:    resolver,
		catalog:     cat,
		logger:      logger,
	}
}

// RegisterAll binds every operation to the registry.
func (e *Executor) RegisterAll(r *Registry) {
	r.Register("add_expense", e.addExpense)
	r.Register("list_expenses", e.listExpenses)
	r.Register("get_expenses_summary", e.expensesSummary)
	r.Register("mark_expense_paid", e.markExpensePaid)
	r.Register("mark_expense_unpaid", e.markExpenseUnpaid)
	r.Register("delete_expense", e.deleteExpense)
	r.Register("clear_all_expenses", e.clearAllExpenses)
	r.Register("edit_expense", e.editExpense)

	r.Register("add_income", e.addIncome)
	r.Register("list_incomes", e.listIncomes)
	r.Register("get_income_summary", e.incomeSummary)
	r.Register("delete_income", e.deleteIncome)
	r.Register("clear_all_incomes", e.clearAllIncomes)
	r.Register("edit_income", e.editIncome)
	r.Register("clear_all", e.clearAll)

	r.Register("add_investment", e.addInvestment)
	r.Register("get_investment_summary", e.investmentSummary)
	r.Register("set_budget", e.setBudget)
	r.Register("get_budget_status", e.budgetStatus)
	r.Register("get_balance", e.balance)
	r.Register("get_full_report", e.fullReport)

	r.Register("get_group_report", e.groupReport)
	r.Register("get_group_split", e.groupSplit)
	r.Register("list_group_members", e.listGroupMembers)
}
