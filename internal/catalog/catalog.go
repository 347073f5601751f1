// Package catalog loads the static question catalog used to drive practice
// sessions. Questions are grouped by level and each one carries the keyword
// stems a solid answer is expected to contain.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultCatalog []byte

// Question is one catalog entry. Immutable once loaded.
type Question struct {
	Text     string   `yaml:"text" json:"text"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Level groups the questions for one difficulty tier.
type Level struct {
	Name      string     `yaml:"name" json:"name"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Catalog is the full set of levels.
type Catalog struct {
	Levels []Level `yaml:"levels"`
}

// Load reads the catalog from the given YAML file. An empty path loads the
// embedded default catalog.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
		}
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}

	if err := validate(&catalog); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	return &catalog, nil
}

func validate(c *Catalog) error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("catalog must define at least one level")
	}

	seen := make(map[string]bool, len(c.Levels))
	for i, level := range c.Levels {
		name := strings.TrimSpace(level.Name)
		if name == "" {
			return fmt.Errorf("level %d must have a name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate level name %q", name)
		}
		seen[name] = true

		if len(level.Questions) == 0 {
			return fmt.Errorf("level %q must have at least one question", name)
		}

		for j, question := range level.Questions {
			if strings.TrimSpace(question.Text) == "" {
				return fmt.Errorf("level %q question %d has empty text", name, j)
			}
		}
	}

	return nil
}

// Level returns the level with the given name.
func (c *Catalog) Level(name string) (*Level, error) {
	for i := range c.Levels {
		if strings.EqualFold(c.Levels[i].Name, name) {
			return &c.Levels[i], nil
		}
	}

	return nil, fmt.Errorf("level %q not found, available: %s", name, strings.Join(c.LevelNames(), ", "))
}

// LevelNames returns the level names in catalog order.
func (c *Catalog) LevelNames() []string {
	names := make([]string, 0, len(c.Levels))
	for _, level := range c.Levels {
		names = append(names, level.Name)
	}

	return names
}

// FindQuestion looks up a question by its text across all levels,
// case-insensitively. Used to recover expected keywords for ad hoc
// evaluation requests.
func (c *Catalog) FindQuestion(text string) (*Question, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	for i := range c.Levels {
		for j := range c.Levels[i].Questions {
			if strings.ToLower(strings.TrimSpace(c.Levels[i].Questions[j].Text)) == needle {
				return &c.Levels[i].Questions[j], true
			}
		}
	}

	return nil, false
}
