package challenge

import "time"

// TaskKind determines the shape of a challenge and whether the
// fingerprint ledger applies to its answers.
type TaskKind string

const (
	// KindQuickJudgment presents pre-tagged candidate items to judge.
	KindQuickJudgment TaskKind = "quick_judgment"

	// KindCollection prompts the player to submit new media.
	KindCollection TaskKind = "collection"
)

// Difficulty is the ordered challenge tier. It fixes the point value,
// the challenge shape, and the deadline.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the persistable name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "easy"
	}
}

// DifficultyFromString parses a difficulty name back to its value.
func DifficultyFromString(s string) Difficulty {
	switch s {
	case "medium":
		return Medium
	case "hard":
		return Hard
	default:
		return Easy
	}
}

// Points returns the score awarded for a correct answer at this tier.
func (d Difficulty) Points() int {
	switch d {
	case Medium:
		return 3
	case Hard:
		return 6
	default:
		return 1
	}
}

// Deadline returns the per-step time limit for a kind/difficulty pair,
// or 0 when the step is untimed.
func Deadline(kind TaskKind, d Difficulty) time.Duration {
	if d != Hard {
		return 0
	}
	switch kind {
	case KindQuickJudgment:
		return 10 * time.Second
	case KindCollection:
		return 30 * time.Minute
	}
	return 0
}

// Category selects a collection prompt pool. Quick-judgment challenges
// carry no category. Audio and Video are the fixed categories for
// non-photo collection media; the engine treats them like any other.
type Category string

const (
	CategoryNone   Category = ""
	CategoryAnimal Category = "animal"
	CategoryPlant  Category = "plant"
	CategoryPerson Category = "person"
	CategoryStreet Category = "street"
	CategoryLife   Category = "life"
	CategoryAudio  Category = "audio"
	CategoryVideo  Category = "video"
)

// PhotoCategories returns the player-selectable photo categories in
// display order.
func PhotoCategories() []Category {
	return []Category{CategoryAnimal, CategoryPlant, CategoryPerson, CategoryStreet, CategoryLife}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAnimal:
		return "Animals"
	case CategoryPlant:
		return "Plants"
	case CategoryPerson:
		return "People"
	case CategoryStreet:
		return "Street"
	case CategoryLife:
		return "Daily Life"
	case CategoryAudio:
		return "Audio"
	case CategoryVideo:
		return "Video"
	default:
		return string(c)
	}
}

// Candidate is one selectable item in a quick-judgment grid. Match is
// fixed at generation time and never changes afterwards.
type Candidate struct {
	Label string
	Match bool
}

// Challenge is one instantiated step of a session.
//
// QuickJudgment/Easy populates Target and Options (two entries, one of
// which is Target). QuickJudgment/Medium and Hard populate Target and
// Candidates (three and six entries). Collection populates Prompt.
type Challenge struct {
	Kind       TaskKind
	Difficulty Difficulty
	Category   Category

	// TemplateID identifies the catalog template this challenge was
	// built from; sessions use it to avoid repeats.
	TemplateID string

	// Title is the instruction line shown to the player.
	Title string

	Target     string
	Options    []string
	IsNegative bool
	Candidates []Candidate
	Prompt     string

	// Deadline is the per-step time limit, 0 when untimed.
	Deadline time.Duration
}

// CheckPick evaluates a single-choice answer (Easy and Medium shapes).
// For Medium the pick must satisfy match XOR IsNegative.
func (c *Challenge) CheckPick(index int) bool {
	switch c.Difficulty {
	case Easy:
		if index < 0 || index >= len(c.Options) {
			return false
		}
		return c.Options[index] == c.Target
	case Medium:
		if index < 0 || index >= len(c.Candidates) {
			return false
		}
		return c.Candidates[index].Match != c.IsNegative
	}
	return false
}

// CheckPicks evaluates a multi-select answer (Hard shape). The
// selection must be non-empty and every selected candidate must match
// the target; selecting any mismatched item fails.
func (c *Challenge) CheckPicks(indexes []int) bool {
	if len(indexes) == 0 {
		return false
	}
	for _, i := range indexes {
		if i < 0 || i >= len(c.Candidates) {
			return false
		}
		if !c.Candidates[i].Match {
			return false
		}
	}
	return true
}

// MatchCount returns how many candidates are tagged as matching.
func (c *Challenge) MatchCount() int {
	n := 0
	for _, cand := range c.Candidates {
		if cand.Match {
			n++
		}
	}
	return n
}
