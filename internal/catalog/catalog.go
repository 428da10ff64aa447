// Package catalog holds the static template pools challenges are
// generated from: target labels for quick-judgment grids and literal
// prompt strings for collection tasks.
package catalog

import (
	"github.com/pranav/snapquest/internal/challenge"
)

// poolKey addresses one template pool. Quick-judgment pools use
// CategoryNone.
type poolKey struct {
	Kind       challenge.TaskKind
	Difficulty challenge.Difficulty
	Category   challenge.Category
}

// Static is an in-memory catalog. It satisfies challenge.Catalog and
// is read-only after construction apart from LoadPack merges.
type Static struct {
	pools map[poolKey][]string
}

var _ challenge.Catalog = (*Static)(nil)

// New returns an empty catalog.
func New() *Static {
	return &Static{pools: make(map[poolKey][]string)}
}

// Builtin returns the catalog seeded with the shipped pools.
func Builtin() *Static {
	c := New()
	for d, labels := range judgmentSeed {
		c.add(challenge.KindQuickJudgment, d, challenge.CategoryNone, labels)
	}
	for cat, byDifficulty := range collectionSeed {
		for d, prompts := range byDifficulty {
			c.add(challenge.KindCollection, d, cat, prompts)
		}
	}
	return c
}

// Templates returns the ordered pool for the combination, or nil when
// no pool exists.
func (c *Static) Templates(kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category) []string {
	return c.pools[poolKey{Kind: kind, Difficulty: d, Category: cat}]
}

// add appends templates to a pool, dropping entries already present.
func (c *Static) add(kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category, templates []string) {
	key := poolKey{Kind: kind, Difficulty: d, Category: cat}
	existing := c.pools[key]
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t] = true
	}
	for _, t := range templates {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		existing = append(existing, t)
	}
	c.pools[key] = existing
}
