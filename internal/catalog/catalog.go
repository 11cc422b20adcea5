package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// fallbackEmoji marks catalogue entries the YAML file doesn't know.
const fallbackEmoji = "📦"

// Entry is one catalogue value with its report emoji.
type Entry struct {
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
}

type catalogFile struct {
	ExpenseCategories []Entry `yaml:"expense_categories"`
	IncomeSources     []Entry `yaml:"income_sources"`
}

// Catalog holds the fixed sets of expense categories and income sources.
// These back the enum values in the tool schemas and the emoji used by
// report formatting. Loaded once from the embedded YAML file.
type Catalog struct {
	categories []Entry
	sources    []Entry

	categoryEmoji map[string]string
	sourceEmoji   map[string]string
}

// New loads the embedded catalogue.
func New() (*Catalog, error) {
	data, err := configFiles.ReadFile("config/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	if len(file.ExpenseCategories) == 0 || len(file.IncomeSources) == 0 {
		return nil, fmt.Errorf("catalog is incomplete: %d categories, %d sources",
			len(file.ExpenseCategories), len(file.IncomeSources))
	}

	c := &Catalog{
		categories:    file.ExpenseCategories,
		sources:       file.IncomeSources,
		categoryEmoji: make(map[string]string, len(file.ExpenseCategories)),
		sourceEmoji:   make(map[string]string, len(file.IncomeSources)),
	}
	for _, e := range file.ExpenseCategories {
		c.categoryEmoji[e.Name] = e.Emoji
	}
	for _, e := range file.IncomeSources {
		c.sourceEmoji[e.Name] = e.Emoji
	}
	return c, nil
}

// ExpenseCategories returns the category names in schema order.
func (c *Catalog) ExpenseCategories() []string {
	return names(c.categories)
}

// IncomeSources returns the source names in schema order.
func (c *Catalog) IncomeSources() []string {
	return names(c.sources)
}

// CategoryEmoji returns the emoji for an expense category.
func (c *Catalog) CategoryEmoji(name string) string {
	if e, ok := c.categoryEmoji[name]; ok {
		return e
	}
	return fallbackEmoji
}

// SourceEmoji returns the emoji for an income source.
func (c *Catalog) SourceEmoji(name string) string {
	if e, ok := c.sourceEmoji[name]; ok {
		return e
	}
	return fallbackEmoji
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
