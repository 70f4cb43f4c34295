package catalog_test

import (
	"testing"

	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/stretchr/testify/assert"
)

func ids(tools []models.Tool) []string {
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	r := catalog.Default()

	tests := []struct {
		name     string
		query    string
		category models.Category
		want     []string
	}{
		{"empty query all", "", models.CategoryAll, ids(r.Tools())},
		{"name match is case-insensitive", "REBAR", models.CategoryAll, []string{"rebar-weight"}},
		{"description match", "monthly loan", models.CategoryAll, []string{"emi-calculator"}},
		{"category only", "", models.CategoryUnitConverter, []string{"inches-to-units", "cement-weight-vol"}},
		{"query and category", "cement", models.CategoryUnitConverter, []string{"cement-weight-vol"}},
		{"query outside category", "rebar", models.CategoryUnitConverter, []string{}},
		{"no match", "zzz", models.CategoryAll, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(r.Search(tt.query, tt.category))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	tools := []models.Tool{
		{ID: "b", Name: "Beam", Category: models.CategoryDesignRCC},
		{ID: "a", Name: "Another beam", Category: models.CategoryDesignRCC},
	}
	assert.Equal(t, []string{"b", "a"}, ids(catalog.Filter(tools, "beam", models.CategoryAll)))
}

func TestFilter_IsSubsetOfInput(t *testing.T) {
	tools := catalog.Default().Tools()
	got := catalog.Filter(tools, "slab", models.CategoryAll)
	assert.Subset(t, ids(tools), ids(got))
	assert.Len(t, got, 2)
}

func TestSearch_IsIntersectionOfQueryAndCategory(t *testing.T) {
	reg := catalog.Default()
	queries := []string{"", "slab", "CALCULATOR", "weight", "converter", "₹", "zzz"}
	categories := append([]models.Category{models.CategoryAll}, models.AllCategories()...)

	for _, c := range categories {
		for _, q := range queries {
			byCategory := reg.Search("", c)
			byQuery := make(map[string]bool)
			for _, tool := range reg.Search(q, models.CategoryAll) {
				byQuery[tool.ID] = true
			}

			var want []string
			for _, tool := range byCategory {
				if byQuery[tool.ID] {
					want = append(want, tool.ID)
				}
			}

			got := ids(reg.Search(q, c))
			assert.Subset(t, ids(byCategory), got, "category %q query %q", c, q)
			if len(want) == 0 {
				assert.Empty(t, got, "category %q query %q", c, q)
			} else {
				assert.Equal(t, want, got, "category %q query %q", c, q)
			}
		}
	}
}
