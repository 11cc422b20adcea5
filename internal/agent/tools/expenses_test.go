package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// fakeExpenseRepo is an in-memory ExpenseRepository covering the paths
// the handlers exercise.
type fakeExpenseRepo struct {
	expenses []*models.Expense
}

func (f *fakeExpenseRepo) Create(_ context.Context, e *models.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeExpenseRepo) ListByUser(_ context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.UserID == userID && e.GroupID == nil {
			if filter.Category != "" && e.Category != filter.Category {
				continue
			}
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) ListByGroup(_ context.Context, groupID string, _ models.ExpenseFilter) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.GroupID != nil && *e.GroupID == groupID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) SummaryByCategory(_ context.Context, userID uuid.UUID, _, _ time.Time) ([]models.CategoryTotal, error) {
	totals := map[string]float64{}
	var order []string
	for _, e := range f.expenses {
		if e.UserID != userID || e.GroupID != nil {
			continue
		}
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}
	out := make([]models.CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, models.CategoryTotal{Category: c, Total: totals[c]})
	}
	return out, nil
}

func (f *fakeExpenseRepo) GroupSummaryByCategory(context.Context, string, time.Time, time.Time) ([]models.CategoryTotal, error) {
	return nil, nil
}

func (f *fakeExpenseRepo) FindByDescription(_ context.Context, userID uuid.UUID, groupID *string, description string) (*models.Expense, error) {
	search := strings.ToLower(description)
	for i := len(f.expenses) - 1; i >= 0; i-- {
		e := f.expenses[i]
		if groupID != nil {
			if e.GroupID == nil || *e.GroupID != *groupID {
				continue
			}
		} else if e.UserID != userID || e.GroupID != nil {
			continue
		}
		if strings.Contains(strings.ToLower(e.Description), search) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeExpenseRepo) UpdateByID(_ context.Context, id uuid.UUID, update models.ExpenseUpdate) (*models.Expense, error) {
	for _, e := range f.expenses {
		if e.ID != id {
			continue
		}
		if update.Description != nil {
			e.Description = *update.Description
		}
		if update.Amount != nil {
			e.Amount = *update.Amount
		}
		if update.Category != nil {
			e.Category = *update.Category
		}
		if update.Paid != nil {
			e.Paid = *update.Paid
		}
		return e, nil
	}
	return nil, nil
}

func (f *fakeExpenseRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeExpenseRepo) DeleteAll(_ context.Context, userID uuid.UUID, groupID *string) (int64, error) {
	var kept []*models.Expense
	var removed int64
	for _, e := range f.expenses {
		match := false
		if groupID != nil {
			match = e.GroupID != nil && *e.GroupID == *groupID
		} else {
			match = e.UserID == userID && e.GroupID == nil
		}
		if match {
			removed++
		} else {
			kept = append(kept, e)
		}
	}
	f.expenses = kept
	return removed, nil
}

func (f *fakeExpenseRepo) SetPaid(_ context.Context, id uuid.UUID, paid bool) error {
	for _, e := range f.expenses {
		if e.ID == id {
			e.Paid = paid
		}
	}
	return nil
}

var _ repositories.ExpenseRepository = (*fakeExpenseRepo)(nil)

func newExpenseExecutor(t *testing.T, expenses *fakeExpenseRepo) *Executor {
	t.Helper()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	logger := discardLogger()
	return NewExecutor(expenses, nil, nil, nil, nil, nil, nil, cat, logger)
}

func TestAddExpensePersonal(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	result, err := e.addExpense(context.Background(), Args{
		"description": "conta de luz",
		"amount":      float64(200),
		"category":    "moradia",
		"paid":        true,
	}, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Kind != KindCreated {
		t.Errorf("kind: got %q", result.Kind)
	}
	want := "Despesa registrada: conta de luz - R$ 200.00 (moradia) ✅"
	if result.Text != want {
		t.Errorf("text:\nwant %q\ngot  %q", want, result.Text)
	}
	if len(repo.expenses) != 1 {
		t.Fatalf("expected 1 stored expense, got %d", len(repo.expenses))
	}
	if stored := repo.expenses[0]; stored.GroupID != nil || !stored.Paid {
		t.Errorf("stored expense wrong: %+v", stored)
	}
}

func TestAddExpenseRejectsUnknownCategory(t *testing.T) {
	e := newExpenseExecutor(t, &fakeExpenseRepo{})

	_, err := e.addExpense(context.Background(), Args{
		"description": "x",
		"amount":      float64(10),
		"category":    "nada-a-ver",
	}, MessageContext{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected validation error for unknown category")
	}
}

func TestMarkExpensePaidByDescription(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	repo.Create(context.Background(), &models.Expense{
		UserID: mc.UserID, Description: "Fatura Nubank", Amount: 350, Category: "cartões",
	})

	result, err := e.markExpensePaid(context.Background(), Args{"description": "nubank"}, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindStatus {
		t.Errorf("kind: got %q", result.Kind)
	}
	if result.Text != `✅ Despesa "Fatura Nubank" marcada como paga!` {
		t.Errorf("text: got %q", result.Text)
	}
	if !repo.expenses[0].Paid {
		t.Error("expense not flagged paid")
	}
}

func TestMarkExpensePaidMissIsNotFound(t *testing.T) {
	e := newExpenseExecutor(t, &fakeExpenseRepo{})

	result, err := e.markExpensePaid(context.Background(), Args{"description": "inexistente"}, MessageContext{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("a miss must not be an error: %v", err)
	}
	if result.Kind != KindNotFound {
		t.Errorf("kind: got %q", result.Kind)
	}
	if result.Text != `Despesa "inexistente" não encontrada.` {
		t.Errorf("text: got %q", result.Text)
	}
}

func TestDeleteExpenseRemovesMostRecentMatch(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "mercado semana 1", Amount: 150, Category: "alimentação"})
	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "mercado semana 2", Amount: 180, Category: "alimentação"})

	result, err := e.deleteExpense(context.Background(), Args{"description": "mercado"}, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindDeleted {
		t.Errorf("kind: got %q", result.Kind)
	}
	if result.Text != `🗑️ Despesa "mercado semana 2" (R$ 180.00) removida!` {
		t.Errorf("text: got %q", result.Text)
	}
	if len(repo.expenses) != 1 || repo.expenses[0].Description != "mercado semana 1" {
		t.Errorf("wrong expense removed: %+v", repo.expenses)
	}
}

func TestClearAllExpenses(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	result, err := e.clearAllExpenses(context.Background(), nil, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindNotFound || result.Text != "Nenhuma despesa para remover." {
		t.Errorf("empty clear: got %+v", result)
	}

	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "a", Amount: 1, Category: "outros"})
	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "b", Amount: 2, Category: "outros"})

	result, err = e.clearAllExpenses(context.Background(), nil, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindDeleted || result.Text != "🗑️ 2 despesa(s) removida(s)!" {
		t.Errorf("clear: got %+v", result)
	}
}

func TestEditExpenseWithoutChangesIsRefused(t *testing.T) {
	e := newExpenseExecutor(t, &fakeExpenseRepo{})

	result, err := e.editExpense(context.Background(), Args{"description": "aluguel"}, MessageContext{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindOther || result.Text != "Nenhuma alteração informada." {
		t.Errorf("got %+v", result)
	}
}

func TestEditExpenseUpdatesAmount(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "aluguel", Amount: 1200, Category: "moradia"})

	result, err := e.editExpense(context.Background(), Args{
		"description": "aluguel",
		"new_amount":  float64(1500),
	}, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != KindEdited {
		t.Errorf("kind: got %q", result.Kind)
	}
	if result.Text != "✏️ Despesa atualizada: aluguel - R$ 1500.00 (moradia)" {
		t.Errorf("text: got %q", result.Text)
	}
	if repo.expenses[0].Amount != 1500 {
		t.Errorf("amount not updated: %v", repo.expenses[0].Amount)
	}
}

func TestExpensesSummaryTotals(t *testing.T) {
	repo := &fakeExpenseRepo{}
	e := newExpenseExecutor(t, repo)
	mc := MessageContext{UserID: uuid.New()}

	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "luz", Amount: 200, Category: "moradia"})
	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "água", Amount: 55.38, Category: "moradia"})
	repo.Create(context.Background(), &models.Expense{UserID: mc.UserID, Description: "mercado", Amount: 150, Category: "alimentação"})

	result, err := e.expensesSummary(context.Background(), nil, mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "• moradia: R$ 255.38\n• alimentação: R$ 150.00\n\nTotal: R$ 405.38"
	if result.Text != want {
		t.Errorf("summary:\nwant %q\ngot  %q", want, result.Text)
	}
}
