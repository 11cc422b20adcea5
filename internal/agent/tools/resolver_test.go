package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) GetOrCreateByPhone(_ context.Context, phone, name string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	u := &models.User{ID: uuid.New(), Phone: phone, Name: name}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeGroupRepo struct {
	members map[string][]models.GroupMember
	users   *fakeUserRepo
}

func newFakeGroupRepo(users *fakeUserRepo) *fakeGroupRepo {
	return &fakeGroupRepo{members: make(map[string][]models.GroupMember), users: users}
}

func (f *fakeGroupRepo) Get(_ context.Context, groupID string) (*models.Group, error) {
	if _, ok := f.members[groupID]; ok {
		return &models.Group{ID: groupID}, nil
	}
	return nil, &domain.NotFoundError{Message: "group not found"}
}

func (f *fakeGroupRepo) EnsureMember(ctx context.Context, groupID string, userID uuid.UUID, _ string) error {
	return f.AddMember(ctx, groupID, userID, models.RoleMember)
}

func (f *fakeGroupRepo) AddMember(_ context.Context, groupID string, userID uuid.UUID, role string) error {
	for _, m := range f.members[groupID] {
		if m.UserID == userID {
			return nil
		}
	}
	f.members[groupID] = append(f.members[groupID], models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
		User:    f.users.users[userID],
	})
	return nil
}

func (f *fakeGroupRepo) Members(_ context.Context, groupID string) ([]models.GroupMember, error) {
	return f.members[groupID], nil
}

func addNamedMember(t *testing.T, users *fakeUserRepo, groups *fakeGroupRepo, groupID, name string) uuid.UUID {
	t.Helper()
	u := &models.User{ID: uuid.New(), Phone: "55340000" + name, Name: name}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := groups.AddMember(context.Background(), groupID, u.ID, models.RoleMember); err != nil {
		t.Fatalf("add member: %v", err)
	}
	return u.ID
}

func TestResolveExactMatchWinsOverSubstring(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo(users)
	addNamedMember(t, users, groups, "g1", "Laura Maria")
	lauraID := addNamedMember(t, users, groups, "g1", "Laura")

	r := NewMemberResolver(users, groups, discardLogger())

	got, err := r.Resolve(context.Background(), "g1", "laura")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != lauraID {
		t.Errorf("exact name match must win, got %v want %v", got, lauraID)
	}
}

func TestResolveSubstringMatch(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo(users)
	joaoID := addNamedMember(t, users, groups, "g1", "João Pedro")

	r := NewMemberResolver(users, groups, discardLogger())

	got, err := r.Resolve(context.Background(), "g1", "joão")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != joaoID {
		t.Errorf("substring match expected %v, got %v", joaoID, got)
	}
}

func TestResolveProvisionsPlaceholderOnce(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo(users)
	r := NewMemberResolver(users, groups, discardLogger())

	first, err := r.Resolve(context.Background(), "g1", "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := users.GetByID(context.Background(), first)
	if err != nil {
		t.Fatalf("placeholder not stored: %v", err)
	}
	if u.Name != "Maria" {
		t.Errorf("placeholder name: got %q", u.Name)
	}
	if !strings.HasPrefix(u.Phone, "virtual_maria_") {
		t.Errorf("placeholder phone must be synthetic, got %q", u.Phone)
	}

	// A second lookup by the same name resolves to the same member.
	second, err := r.Resolve(context.Background(), "g1", "maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("repeated resolution created a new member: %v vs %v", first, second)
	}
}

func TestDisplayNameFallsBack(t *testing.T) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo(users)
	r := NewMemberResolver(users, groups, discardLogger())

	if got := r.DisplayName(context.Background(), "g1", uuid.New(), "fulano"); got != "fulano" {
		t.Errorf("expected fallback name, got %q", got)
	}

	id := addNamedMember(t, users, groups, "g1", "Ana")
	if got := r.DisplayName(context.Background(), "g1", id, "fulano"); got != "Ana" {
		t.Errorf("expected stored name, got %q", got)
	}
}
