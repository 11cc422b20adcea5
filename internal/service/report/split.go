package report

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// Balance is one member's position in a split: positive balance means the
// member paid more than their share and is owed the difference.
type Balance struct {
	UserID  uuid.UUID
	Name    string
	Spent   float64
	Balance float64
}

// Debt is one simplified transfer between two members.
type Debt struct {
	From     uuid.UUID
	FromName string
	To       uuid.UUID
	ToName   string
	Amount   float64
}

// Split is the equal-division settlement of a group's expenses.
type Split struct {
	Total     float64
	PerPerson float64
	Balances  []Balance
	Debts     []Debt
}

// CalculateSplit divides the month's group expenses equally among the
// registered members and matches debtors to creditors greedily, settling
// amounts to the cent.
func (s *Service) CalculateSplit(ctx context.Context, groupID string, month, year int) (*Split, error) {
	from, to := monthWindow(month, year)

	expenses, err := s.expenses.ListByGroup(ctx, groupID, models.ExpenseFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("calculate split: %w", err)
	}
	members, err := s.groups.Members(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("calculate split: %w", err)
	}

	if len(members) == 0 {
		return &Split{}, nil
	}

	total := totalExpenses(expenses)
	perPerson := total / float64(len(members))

	spent := map[uuid.UUID]float64{}
	for _, e := range expenses {
		spent[e.UserID] += e.Amount
	}

	balances := make([]Balance, 0, len(members))
	for _, m := range members {
		name := m.UserID.String()
		if m.User != nil {
			name = m.User.DisplayName()
		}
		balances = append(balances, Balance{
			UserID:  m.UserID,
			Name:    name,
			Spent:   spent[m.UserID],
			Balance: spent[m.UserID] - perPerson,
		})
	}

	var debts []Debt
	creditors := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if b.Balance > 0 {
			creditors = append(creditors, b)
		}
	}
	for _, debtor := range balances {
		if debtor.Balance >= 0 {
			continue
		}
		remaining := -debtor.Balance
		for i := range creditors {
			if remaining <= 0.01 {
				break
			}
			if creditors[i].Balance <= 0.01 {
				continue
			}
			amount := math.Min(remaining, creditors[i].Balance)
			if amount > 0.01 {
				debts = append(debts, Debt{
					From:     debtor.UserID,
					FromName: debtor.Name,
					To:       creditors[i].UserID,
					ToName:   creditors[i].Name,
					Amount:   roundCents(amount),
				})
				remaining -= amount
				creditors[i].Balance -= amount
			}
		}
	}

	return &Split{
		Total:     roundCents(total),
		PerPerson: roundCents(perPerson),
		Balances:  balances,
		Debts:     debts,
	}, nil
}

// GroupSplit renders the settlement report for a group's month.
func (s *Service) GroupSplit(ctx context.Context, groupID string, month, year int) (string, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return "Grupo não encontrado.", nil
	}

	split, err := s.CalculateSplit(ctx, groupID, month, year)
	if err != nil {
		return "", err
	}

	groupName := group.Name
	if groupName == "" {
		groupName = "Grupo"
	}

	if split.Total == 0 {
		return fmt.Sprintf("👥 *%s*\n\nNenhuma despesa encontrada no período.", groupName), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 *Divisão de Despesas - %s*\n\n", groupName)
	fmt.Fprintf(&b, "📊 *Total gasto:* R$ %s\n", formatCurrency(split.Total))
	fmt.Fprintf(&b, "👤 *Por pessoa:* R$ %s\n\n", formatCurrency(split.PerPerson))

	b.WriteString("⸻\n\n")
	b.WriteString("📋 *Quanto cada um gastou:*\n\n")

	for _, balance := range split.Balances {
		emoji, status := "🟢", "a receber"
		if balance.Balance < 0 {
			emoji, status = "🔴", "a pagar"
		}
		fmt.Fprintf(&b, "%s *%s*\n", emoji, balance.Name)
		fmt.Fprintf(&b, "    Gastou: R$ %s\n", formatCurrency(balance.Spent))
		fmt.Fprintf(&b, "    %s: R$ %s\n\n", status, formatCurrency(math.Abs(balance.Balance)))
	}

	if len(split.Debts) > 0 {
		b.WriteString("⸻\n\n")
		b.WriteString("💸 *Quem deve para quem:*\n\n")
		for _, debt := range split.Debts {
			fmt.Fprintf(&b, "• *%s* deve pagar *R$ %s* para *%s*\n", debt.FromName, formatCurrency(debt.Amount), debt.ToName)
		}
	}

	return b.String(), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
