package catalog

import (
	"strings"

	"github.com/civiltoolbox/toolbox/pkg/models"
)

// Filter returns the tools matching both the free-text query and the
// category, preserving their order. An empty query matches everything and
// models.CategoryAll matches every category.
func Filter(tools []models.Tool, query string, category models.Category) []models.Tool {
	q := strings.ToLower(query)
	out := make([]models.Tool, 0, len(tools))
	for _, t := range tools {
		if matchesQuery(t, q) && matchesCategory(t, category) {
			out = append(out, t)
		}
	}
	return out
}

func matchesQuery(t models.Tool, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(t.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Description), lowerQuery)
}

func matchesCategory(t models.Tool, category models.Category) bool {
	return category == models.CategoryAll || t.Category == category
}

// Search filters the registry's own tools.
func (r *Registry) Search(query string, category models.Category) []models.Tool {
	return Filter(r.Tools(), query, category)
}
