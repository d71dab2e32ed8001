// Package ladderconfig loads the tier/act ladder from a YAML file and
// validates it into a progression.Ladder.
package ladderconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tavola/internal/domain/progression"
)

type fileTier struct {
	Name       string `yaml:"name"`
	MinPoints  int64  `yaml:"min_points"`
	MaxPoints  *int64 `yaml:"max_points,omitempty"`
	Benefit    string `yaml:"benefit"`
	ColorTheme string `yaml:"color_theme,omitempty"`
}

type fileRank struct {
	Name      string `yaml:"name"`
	MinPoints int64  `yaml:"min_points"`
	MaxPoints *int64 `yaml:"max_points,omitempty"`
}

type fileAct struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Subtitle  string     `yaml:"subtitle,omitempty"`
	MinPoints int64      `yaml:"min_points"`
	MaxPoints *int64     `yaml:"max_points,omitempty"`
	Ranks     []fileRank `yaml:"ranks"`
}

type file struct {
	Tiers []fileTier `yaml:"tiers"`
	Acts  []fileAct  `yaml:"acts"`
}

// Load reads a ladder definition from path. An omitted or negative
// max_points marks the bracket as open-ended; NewLadder rejects that
// anywhere but the final bracket of a sequence.
func Load(path string) (progression.Ladder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return progression.Ladder{}, fmt.Errorf("reading ladder %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return progression.Ladder{}, fmt.Errorf("parsing ladder %s: %w", path, err)
	}

	cfg := progression.LadderConfig{
		Tiers: make([]progression.Tier, 0, len(f.Tiers)),
		Acts:  make([]progression.Act, 0, len(f.Acts)),
	}
	for _, t := range f.Tiers {
		cfg.Tiers = append(cfg.Tiers, progression.Tier{
			Name:       t.Name,
			MinPoints:  t.MinPoints,
			MaxPoints:  boundOf(t.MaxPoints),
			Benefit:    t.Benefit,
			ColorTheme: t.ColorTheme,
		})
	}
	for _, a := range f.Acts {
		act := progression.Act{
			ID:        a.ID,
			Title:     a.Title,
			Subtitle:  a.Subtitle,
			MinPoints: a.MinPoints,
			MaxPoints: boundOf(a.MaxPoints),
			Ranks:     make([]progression.Rank, 0, len(a.Ranks)),
		}
		for _, r := range a.Ranks {
			act.Ranks = append(act.Ranks, progression.Rank{
				Name:      r.Name,
				MinPoints: r.MinPoints,
				MaxPoints: boundOf(r.MaxPoints),
			})
		}
		cfg.Acts = append(cfg.Acts, act)
	}

	return progression.NewLadder(cfg)
}

// Default builds the built-in ladder shipped with the service.
func Default() (progression.Ladder, error) {
	return progression.NewLadder(progression.DefaultLadderConfig())
}

func boundOf(max *int64) int64 {
	if max == nil || *max < 0 {
		return progression.Unbounded
	}
	return *max
}
