// Package catalog provides the Tool Registry for the toolbox dashboard.
//
// The registry is compiled into the binary: every calculator is declared in
// builtin.go with its field schema and formula variant. A Registry is built
// once, validated, and never mutated afterwards. Lookups are map-backed and
// every accessor hands out copies, so callers cannot reach the shared data.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/civiltoolbox/toolbox/internal/formula"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// ErrToolNotFound is returned when a tool id is not in the registry.
var ErrToolNotFound = errors.New("tool not found")

// Registry is an immutable, ordered catalog of tools.
type Registry struct {
	tools      []models.Tool
	byID       map[string]int
	categories []models.Category
	counts     map[models.Category]int
}

// Option configures how the builtin catalog is assembled.
type Option func(*options)

type options struct {
	locale language.Tag
}

// WithLocale sets the locale used to group currency outputs.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// New validates tools and builds a registry over them in the given order.
func New(tools []models.Tool) (*Registry, error) {
	r := &Registry{
		tools:  make([]models.Tool, 0, len(tools)),
		byID:   make(map[string]int, len(tools)),
		counts: make(map[models.Category]int),
	}

	for _, t := range tools {
		if err := validate(t); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", t.ID)
		}
		t = clone(t)
		r.byID[t.ID] = len(r.tools)
		r.tools = append(r.tools, t)

		if r.counts[t.Category] == 0 {
			r.categories = append(r.categories, t.Category)
		}
		r.counts[t.Category]++
	}
	return r, nil
}

// MustNew is New for compiled-in catalogs; invalid data is a programming error.
func MustNew(tools []models.Tool) *Registry {
	r, err := New(tools)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return r
}

// Builtin assembles the compiled-in calculator catalog.
func Builtin(opts ...Option) *Registry {
	o := options{locale: language.AmericanEnglish}
	for _, opt := range opts {
		opt(&o)
	}
	r := MustNew(builtinTools(formula.NewMoney(o.locale)))
	log.Debug().
		Int("tools", r.Count()).
		Str("locale", o.locale.String()).
		Msg("Catalog: builtin tools loaded")
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide builtin registry, built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Builtin()
	})
	return defaultRegistry
}

func validate(t models.Tool) error {
	if t.ID == "" {
		return errors.New("tool with empty id")
	}
	if !t.Category.Valid() {
		return fmt.Errorf("tool %q: unknown category %q", t.ID, t.Category)
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.ID == "" {
			return fmt.Errorf("tool %q: field with empty id", t.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("tool %q: duplicate field id %q", t.ID, f.ID)
		}
		seen[f.ID] = true
	}
	if t.Formula != nil {
		for _, id := range t.Formula.Requires() {
			if !seen[id] {
				return fmt.Errorf("tool %q: formula %s reads undeclared field %q", t.ID, t.Formula.Kind(), id)
			}
		}
	}
	return nil
}

func clone(t models.Tool) models.Tool {
	t.Fields = slices.Clone(t.Fields)
	for i := range t.Fields {
		t.Fields[i].Options = slices.Clone(t.Fields[i].Options)
	}
	return t
}

// Lookup returns the tool with the given id.
func (r *Registry) Lookup(id string) (models.Tool, error) {
	i, ok := r.byID[id]
	if !ok {
		return models.Tool{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return clone(r.tools[i]), nil
}

// Tools returns every tool in declaration order.
func (r *Registry) Tools() []models.Tool {
	out := make([]models.Tool, len(r.tools))
	for i, t := range r.tools {
		out[i] = clone(t)
	}
	return out
}

// Categories returns the distinct categories present, in declaration order.
func (r *Registry) Categories() []models.Category {
	return slices.Clone(r.categories)
}

// CategoryCounts pairs every present category with its number of tools.
func (r *Registry) CategoryCounts() []models.CategoryCount {
	out := make([]models.CategoryCount, len(r.categories))
	for i, c := range r.categories {
		out[i] = models.CategoryCount{Category: c, Tools: r.counts[c]}
	}
	return out
}

// Count returns the number of tools.
func (r *Registry) Count() int {
	return len(r.tools)
}
