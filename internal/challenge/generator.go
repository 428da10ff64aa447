package challenge

import (
	"fmt"
	"math/rand"
	"time"
)

// Catalog supplies the ordered template pool for a kind/difficulty/
// category combination. Quick-judgment pools are keyed with
// CategoryNone and hold target labels; collection pools hold literal
// prompt strings.
type Catalog interface {
	Templates(kind TaskKind, d Difficulty, cat Category) []string
}

// Generator produces the next challenge for a session, avoiding
// session-local template repeats until the pool is exhausted.
type Generator struct {
	catalog Catalog
	rng     *rand.Rand
}

// hard grids always hold six candidates, three of which match.
const (
	hardGridSize    = 6
	hardMatchCount  = 3
	mediumGridSize  = 3
	easyOptionCount = 2
)

// NewGenerator creates a generator over the given catalog. src may be
// nil, in which case a time-seeded source is used; tests inject a
// fixed source for reproducible output.
func NewGenerator(catalog Catalog, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		catalog: catalog,
		rng:     rand.New(src),
	}
}

// Next returns a freshly assembled challenge. Templates already in
// used are excluded from selection; once the pool is exhausted the
// full pool is sampled again so short pools never stall a session.
func (g *Generator) Next(kind TaskKind, d Difficulty, cat Category, used map[string]bool) (*Challenge, error) {
	poolCat := cat
	if kind == KindQuickJudgment {
		poolCat = CategoryNone
	}
	pool := g.catalog.Templates(kind, d, poolCat)
	if len(pool) == 0 {
		return nil, fmt.Errorf("empty template pool for %s/%s/%s", kind, d, cat)
	}

	tpl := g.sample(pool, used)

	if kind == KindCollection {
		return &Challenge{
			Kind:       kind,
			Difficulty: d,
			Category:   cat,
			TemplateID: tpl,
			Title:      tpl,
			Prompt:     tpl,
			Deadline:   Deadline(kind, d),
		}, nil
	}

	return g.assembleJudgment(d, pool, tpl)
}

// sample picks uniformly from pool excluding used entries, falling
// back to the full pool once every template has been seen.
func (g *Generator) sample(pool []string, used map[string]bool) string {
	fresh := make([]string, 0, len(pool))
	for _, t := range pool {
		if !used[t] {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}
	return fresh[g.rng.Intn(len(fresh))]
}

// assembleJudgment builds the option list or candidate grid around a
// target label. Match tagging is fixed here and never re-derived.
func (g *Generator) assembleJudgment(d Difficulty, pool []string, target string) (*Challenge, error) {
	c := &Challenge{
		Kind:       KindQuickJudgment,
		Difficulty: d,
		TemplateID: target,
		Target:     target,
		Deadline:   Deadline(KindQuickJudgment, d),
	}

	switch d {
	case Easy:
		distractors, err := g.distractors(pool, target, easyOptionCount-1)
		if err != nil {
			return nil, err
		}
		c.Title = fmt.Sprintf("Which one is the %s?", target)
		c.Options = []string{target, distractors[0]}
		g.rng.Shuffle(len(c.Options), func(i, j int) {
			c.Options[i], c.Options[j] = c.Options[j], c.Options[i]
		})

	case Medium:
		// Positive mode: one matching item among three. Negative mode:
		// one odd item out among two matches.
		c.IsNegative = g.rng.Intn(2) == 1
		matches := 1
		if c.IsNegative {
			matches = mediumGridSize - 1
		}
		cands, err := g.buildGrid(pool, target, mediumGridSize, matches)
		if err != nil {
			return nil, err
		}
		c.Candidates = cands
		if c.IsNegative {
			c.Title = fmt.Sprintf("Which one is NOT a %s?", target)
		} else {
			c.Title = fmt.Sprintf("Which one is a %s?", target)
		}

	case Hard:
		cands, err := g.buildGrid(pool, target, hardGridSize, hardMatchCount)
		if err != nil {
			return nil, err
		}
		c.Candidates = cands
		c.Title = fmt.Sprintf("Select every %s", target)

	default:
		return nil, fmt.Errorf("unknown difficulty %d", d)
	}

	return c, nil
}

// buildGrid assembles size candidates with exactly matches of them
// tagged as the target, then shuffles positions.
func (g *Generator) buildGrid(pool []string, target string, size, matches int) ([]Candidate, error) {
	distractors, err := g.distractors(pool, target, size-matches)
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, size)
	for i := 0; i < matches; i++ {
		cands = append(cands, Candidate{Label: target, Match: true})
	}
	for _, dl := range distractors {
		cands = append(cands, Candidate{Label: dl, Match: false})
	}
	g.rng.Shuffle(len(cands), func(i, j int) {
		cands[i], cands[j] = cands[j], cands[i]
	})
	return cands, nil
}

// distractors samples n distinct labels from pool, none equal to
// target.
func (g *Generator) distractors(pool []string, target string, n int) ([]string, error) {
	others := make([]string, 0, len(pool))
	for _, t := range pool {
		if t != target {
			others = append(others, t)
		}
	}
	if len(others) < n {
		return nil, fmt.Errorf("pool too small: need %d distractors for %q, have %d", n, target, len(others))
	}
	g.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	return others[:n], nil
}
