package report

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// Embedding the interface keeps the fakes small: only the methods the
// split path touches are implemented.
type fakeExpenseRepo struct {
	repositories.ExpenseRepository
	expenses []models.Expense
}

func (f *fakeExpenseRepo) ListByGroup(context.Context, string, models.ExpenseFilter) ([]models.Expense, error) {
	return f.expenses, nil
}

type fakeGroupRepo struct {
	repositories.GroupRepository
	group   *models.Group
	members []models.GroupMember
}

func (f *fakeGroupRepo) Get(context.Context, string) (*models.Group, error) {
	if f.group == nil {
		return nil, &domain.NotFoundError{Message: "group not found"}
	}
	return f.group, nil
}

func (f *fakeGroupRepo) Members(context.Context, string) ([]models.GroupMember, error) {
	return f.members, nil
}

func member(name string) models.GroupMember {
	id := uuid.New()
	return models.GroupMember{
		UserID: id,
		Role:   models.RoleMember,
		User:   &models.User{ID: id, Name: name, Phone: "5534999990000"},
	}
}

func groupExpense(userID uuid.UUID, amount float64) models.Expense {
	gid := "g1@g.us"
	return models.Expense{
		ID:      uuid.New(),
		UserID:  userID,
		GroupID: &gid,
		Amount:  amount,
		Date:    time.Now(),
	}
}

func newSplitService(expenses *fakeExpenseRepo, groups *fakeGroupRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(expenses, nil, groups, nil, logger)
}

func TestCalculateSplitGreedyMatching(t *testing.T) {
	ana := member("Ana")
	bia := member("Bia")
	caio := member("Caio")

	groups := &fakeGroupRepo{
		group:   &models.Group{ID: "g1@g.us", Name: "República"},
		members: []models.GroupMember{ana, bia, caio},
	}
	expenses := &fakeExpenseRepo{expenses: []models.Expense{
		groupExpense(ana.UserID, 90),
		groupExpense(bia.UserID, 30),
	}}

	now := time.Now()
	split, err := newSplitService(expenses, groups).CalculateSplit(context.Background(), "g1@g.us", int(now.Month()), now.Year())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if split.Total != 120 {
		t.Errorf("total: got %v, want 120", split.Total)
	}
	if split.PerPerson != 40 {
		t.Errorf("per person: got %v, want 40", split.PerPerson)
	}
	if len(split.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(split.Balances))
	}
	if b := split.Balances[0]; b.Balance != 50 {
		t.Errorf("Ana's balance: got %v, want 50", b.Balance)
	}

	if len(split.Debts) != 2 {
		t.Fatalf("expected 2 debts, got %+v", split.Debts)
	}
	if split.Debts[0].FromName != "Bia" || split.Debts[0].ToName != "Ana" || split.Debts[0].Amount != 10 {
		t.Errorf("first debt wrong: %+v", split.Debts[0])
	}
	if split.Debts[1].FromName != "Caio" || split.Debts[1].ToName != "Ana" || split.Debts[1].Amount != 40 {
		t.Errorf("second debt wrong: %+v", split.Debts[1])
	}
}

func TestCalculateSplitRoundsToCents(t *testing.T) {
	ana := member("Ana")
	bia := member("Bia")
	caio := member("Caio")

	groups := &fakeGroupRepo{
		group:   &models.Group{ID: "g1@g.us"},
		members: []models.GroupMember{ana, bia, caio},
	}
	expenses := &fakeExpenseRepo{expenses: []models.Expense{
		groupExpense(ana.UserID, 100),
	}}

	now := time.Now()
	split, err := newSplitService(expenses, groups).CalculateSplit(context.Background(), "g1@g.us", int(now.Month()), now.Year())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if split.PerPerson != 33.33 {
		t.Errorf("per person must round to cents: got %v", split.PerPerson)
	}
	for _, d := range split.Debts {
		if math.Round(d.Amount*100) != d.Amount*100 {
			t.Errorf("debt amount not settled to the cent: %v", d.Amount)
		}
	}
}

func TestCalculateSplitEmptyGroup(t *testing.T) {
	groups := &fakeGroupRepo{group: &models.Group{ID: "g1@g.us"}}
	expenses := &fakeExpenseRepo{}

	split, err := newSplitService(expenses, groups).CalculateSplit(context.Background(), "g1@g.us", 1, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if split.Total != 0 || len(split.Balances) != 0 || len(split.Debts) != 0 {
		t.Errorf("expected empty split, got %+v", split)
	}
}

func TestGroupSplitUnknownGroup(t *testing.T) {
	svc := newSplitService(&fakeExpenseRepo{}, &fakeGroupRepo{})

	text, err := svc.GroupSplit(context.Background(), "missing@g.us", 1, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Grupo não encontrado." {
		t.Errorf("got %q", text)
	}
}

func TestGroupSplitReportText(t *testing.T) {
	ana := member("Ana")
	bia := member("Bia")

	groups := &fakeGroupRepo{
		group:   &models.Group{ID: "g1@g.us", Name: "Viagem"},
		members: []models.GroupMember{ana, bia},
	}
	expenses := &fakeExpenseRepo{expenses: []models.Expense{
		groupExpense(ana.UserID, 200),
	}}

	now := time.Now()
	text, err := newSplitService(expenses, groups).GroupSplit(context.Background(), "g1@g.us", int(now.Month()), now.Year())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"💰 *Divisão de Despesas - Viagem*",
		"📊 *Total gasto:* R$ 200,00",
		"👤 *Por pessoa:* R$ 100,00",
		"💸 *Quem deve para quem:*",
		"• *Bia* deve pagar *R$ 100,00* para *Ana*",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}
