package tools

import (
	"testing"

	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/llm"
)

func toolNames(defs []llm.ToolDef) map[string]bool {
	names := make(map[string]bool, len(defs))
	for _, d := range defs {
		names[d.Name] = true
	}
	return names
}

func TestForScopeGroupToolsAreGroupOnly(t *testing.T) {
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	defs := NewDefinitions(cat)

	personal := toolNames(defs.ForScope(false))
	group := toolNames(defs.ForScope(true))

	for _, name := range []string{"add_expense", "add_income", "get_full_report", "clear_all", "set_budget"} {
		if !personal[name] {
			t.Errorf("personal scope missing %q", name)
		}
		if !group[name] {
			t.Errorf("group scope missing %q", name)
		}
	}

	for _, name := range []string{"get_group_report", "get_group_split", "list_group_members"} {
		if personal[name] {
			t.Errorf("%q must not be advertised in private chats", name)
		}
		if !group[name] {
			t.Errorf("group scope missing %q", name)
		}
	}
}

func TestDefinitionsEnumsMatchCatalog(t *testing.T) {
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	defs := NewDefinitions(cat)

	for _, d := range defs.ForScope(false) {
		if d.Name != "add_expense" {
			continue
		}
		enum := d.Params["category"].Enum
		if len(enum) != len(cat.ExpenseCategories()) {
			t.Errorf("category enum out of sync with catalog: %v", enum)
		}
		return
	}
	t.Fatal("add_expense definition not found")
}
