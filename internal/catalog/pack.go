package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pranav/snapquest/internal/challenge"
)

// packFile is the on-disk shape of a custom prompt pack. Difficulty
// keys are "easy", "medium", "hard"; collection pools are further
// keyed by category name.
type packFile struct {
	QuickJudgment map[string][]string            `yaml:"quick_judgment"`
	Collection    map[string]map[string][]string `yaml:"collection"`
}

// LoadPack merges a YAML prompt pack into the catalog. Entries that
// duplicate existing templates are ignored.
func (c *Static) LoadPack(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pack: %w", err)
	}

	var pf packFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return fmt.Errorf("parse pack %s: %w", path, err)
	}

	for diff, labels := range pf.QuickJudgment {
		c.add(challenge.KindQuickJudgment, challenge.DifficultyFromString(diff), challenge.CategoryNone, labels)
	}
	for cat, byDifficulty := range pf.Collection {
		for diff, prompts := range byDifficulty {
			c.add(challenge.KindCollection, challenge.DifficultyFromString(diff), challenge.Category(cat), prompts)
		}
	}
	return nil
}
