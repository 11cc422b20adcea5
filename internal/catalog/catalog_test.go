package catalog

import (
	"testing"
)

func TestNewLoadsEmbeddedCatalog(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	categories := c.ExpenseCategories()
	if len(categories) == 0 {
		t.Fatal("expected expense categories")
	}
	sources := c.IncomeSources()
	if len(sources) == 0 {
		t.Fatal("expected income sources")
	}

	// Category inference in the system prompt relies on these names.
	for _, want := range []string{"moradia", "alimentação", "transporte", "outros"} {
		if !contains(categories, want) {
			t.Errorf("category %q missing from catalog", want)
		}
	}
	for _, want := range []string{"salário", "freelance", "outros"} {
		if !contains(sources, want) {
			t.Errorf("source %q missing from catalog", want)
		}
	}
}

func TestEmojiLookupFallsBack(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	if e := c.CategoryEmoji("moradia"); e == "" || e == fallbackEmoji {
		t.Errorf("expected dedicated emoji for moradia, got %q", e)
	}
	if e := c.CategoryEmoji("unknown-category"); e != fallbackEmoji {
		t.Errorf("expected fallback emoji, got %q", e)
	}
	if e := c.SourceEmoji("unknown-source"); e != fallbackEmoji {
		t.Errorf("expected fallback emoji, got %q", e)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
