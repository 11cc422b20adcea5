// Package report renders WhatsApp-formatted monthly summaries of the
// stored financial records. Bold uses single asterisks, the convention
// WhatsApp renders.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// Service builds report texts over the record repositories.
type Service struct {
	expenses repositories.ExpenseRepository
	incomes  repositories.IncomeRepository
	groups   repositories.GroupRepository
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewService creates a report Service.
func NewService(
	expenses repositories.ExpenseRepository,
	incomes repositories.IncomeRepository,
	groups repositories.GroupRepository,
	cat *catalog.Catalog,
	logger *slog.Logger,
) *Service {
	return &Service{
		expenses: expenses,
		incomes:  incomes,
		groups:   groups,
		catalog:  cat,
		logger:   logger,
	}
}

// monthWindow returns the [first instant, last second] of the given month.
func monthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}

// Monthly renders the personal report for one month: incomes by source,
// expenses by category with paid marks, subtotals and the closing balance.
func (s *Service) Monthly(ctx context.Context, userID uuid.UUID, month, year int) (string, error) {
	from, to := monthWindow(month, year)

	expenses, err := s.expenses.ListByUser(ctx, userID, models.ExpenseFilter{From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("monthly report: %w", err)
	}
	incomes, err := s.incomes.ListByUser(ctx, userID, models.IncomeFilter{From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("monthly report: %w", err)
	}

	if len(expenses) == 0 && len(incomes) == 0 {
		return "Nenhuma movimentação encontrada no período.", nil
	}

	var b strings.Builder
	b.WriteString("✅ *Resumo Financeiro*\n\n")
	s.writeIncomeSection(&b, incomes, false)
	s.writeExpenseSection(&b, expenses, false)
	writeBalance(&b, "SALDO DO MÊS", totalIncomes(incomes)-totalExpenses(expenses))

	return b.String(), nil
}

// GroupMonthly renders the group report for one month with per-member
// attribution on each line.
func (s *Service) GroupMonthly(ctx context.Context, groupID string, month, year int) (string, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return "Grupo não encontrado.", nil
	}

	from, to := monthWindow(month, year)

	expenses, err := s.expenses.ListByGroup(ctx, groupID, models.ExpenseFilter{From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("group report: %w", err)
	}
	incomes, err := s.incomes.ListByGroup(ctx, groupID, models.IncomeFilter{From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("group report: %w", err)
	}

	groupName := group.Name
	if groupName == "" {
		groupName = "Grupo"
	}

	if len(expenses) == 0 && len(incomes) == 0 {
		return fmt.Sprintf("👥 *%s*\n\nNenhuma movimentação encontrada no período.", groupName), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 *Relatório do %s*\n\n", groupName)
	s.writeIncomeSection(&b, incomes, true)
	s.writeExpenseSection(&b, expenses, true)
	writeBalance(&b, "SALDO DO GRUPO", totalIncomes(incomes)-totalExpenses(expenses))

	return b.String(), nil
}

func (s *Service) writeIncomeSection(b *strings.Builder, incomes []models.Income, attributed bool) {
	if len(incomes) == 0 {
		return
	}

	b.WriteString("📥 *ENTRADAS*\n\n")

	bySource := map[string][]models.Income{}
	for _, i := range incomes {
		bySource[i.Source] = append(bySource[i.Source], i)
	}
	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		items := bySource[source]
		var subtotal float64
		fmt.Fprintf(b, "%s *%s*\n", s.catalog.SourceEmoji(source), capitalize(source))
		for _, item := range items {
			subtotal += item.Amount
			attribution := ""
			if attributed && item.User != nil {
				attribution = fmt.Sprintf(" (%s)", item.User.DisplayName())
			}
			fmt.Fprintf(b, "    • %s: %s%s\n", item.Description, formatCurrency(item.Amount), attribution)
		}
		fmt.Fprintf(b, "\n_Subtotal: R$ %s_\n\n", formatCurrency(subtotal))
	}

	fmt.Fprintf(b, "💰 *Total Entradas: R$ %s*\n\n", formatCurrency(totalIncomes(incomes)))
	b.WriteString("⸻\n\n")
}

func (s *Service) writeExpenseSection(b *strings.Builder, expenses []models.Expense, attributed bool) {
	if len(expenses) == 0 {
		return
	}

	b.WriteString("📤 *DESPESAS*\n\n")

	byCategory := map[string][]models.Expense{}
	for _, e := range expenses {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		items := byCategory[category]
		var subtotal float64
		fmt.Fprintf(b, "%s *%s*\n", s.catalog.CategoryEmoji(category), capitalize(category))
		for _, item := range items {
			subtotal += item.Amount
			attribution := ""
			if attributed && item.User != nil {
				attribution = fmt.Sprintf(" (%s)", item.User.DisplayName())
			}
			paidMark := ""
			if item.Paid {
				paidMark = " ✅"
			}
			fmt.Fprintf(b, "    • %s: %s%s%s\n", item.Description, formatCurrency(item.Amount), attribution, paidMark)
		}
		fmt.Fprintf(b, "\n_Subtotal: R$ %s_\n\n", formatCurrency(subtotal))
	}

	total := totalExpenses(expenses)
	var paid float64
	for _, e := range expenses {
		if e.Paid {
			paid += e.Amount
		}
	}
	pending := total - paid

	fmt.Fprintf(b, "💸 *Total Despesas: R$ %s*\n", formatCurrency(total))
	if paid > 0 {
		fmt.Fprintf(b, "✅ Pago: R$ %s\n", formatCurrency(paid))
	}
	if pending > 0 {
		fmt.Fprintf(b, "⏳ Pendente: R$ %s\n", formatCurrency(pending))
	}
	b.WriteString("\n⸻\n\n")
}

func writeBalance(b *strings.Builder, label string, balance float64) {
	emoji := "🟢"
	if balance < 0 {
		emoji = "🔴"
	}
	fmt.Fprintf(b, "🔢 *%s*\n\n", label)
	fmt.Fprintf(b, "%s *R$ %s*", emoji, formatCurrency(balance))
}

func totalExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func totalIncomes(incomes []models.Income) float64 {
	var total float64
	for _, i := range incomes {
		total += i.Amount
	}
	return total
}
