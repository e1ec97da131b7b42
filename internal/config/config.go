// Package config loads the selector configuration file and compiles it
// into engine selectors. Configuration errors are fatal at load time:
// a selector that cannot be understood must stop the process, not be
// skipped.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ZombieAlex/MFCLogger/internal/logger"
	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

// File is the on-disk configuration shape.
type File struct {
	// LogDir is where per-destination .txt files are written.
	LogDir string `yaml:"log_dir"`

	// NamesDB is the optional SQLite path for identity reconciliation.
	// Empty disables it.
	NamesDB string `yaml:"names_db"`

	Selectors []SelectorSpec `yaml:"selectors"`
}

// SelectorSpec is one selector descriptor. At least one of `id` and
// `when` must be present; `where` overrides the destination file tag
// and `nofile` suppresses the file sink entirely.
type SelectorSpec struct {
	ID     int       `yaml:"id"`
	What   []string  `yaml:"what"`
	When   *WhenSpec `yaml:"when"`
	Where  string    `yaml:"where"`
	NoFile bool      `yaml:"nofile"`
}

// WhenSpec names a predicate from the closed set the config language
// supports. Multiple conditions combine as a conjunction.
type WhenSpec struct {
	Online          *bool    `yaml:"online"`
	State           string   `yaml:"state"`
	RankAtMost      *int     `yaml:"rank_at_most"`
	CamscoreAtLeast *float64 `yaml:"camscore_at_least"`
	TopicContains   string   `yaml:"topic_contains"`
}

// Load reads and parses the configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(f.Selectors) == 0 {
		return nil, fmt.Errorf("config has no selectors")
	}
	return &f, nil
}

// Compile turns the descriptors into engine selectors, validating
// categories and predicate specs. The returned selectors still go
// through logger.New's own registration validation.
func (f *File) Compile() ([]logger.Selector, error) {
	out := make([]logger.Selector, 0, len(f.Selectors))
	for i, spec := range f.Selectors {
		sel, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		out = append(out, sel)
	}
	return out, nil
}

func (s SelectorSpec) compile() (logger.Selector, error) {
	sel := logger.Selector{
		ID:     s.ID,
		Where:  s.Where,
		NoFile: s.NoFile,
	}

	if len(s.What) == 0 {
		return logger.Selector{}, fmt.Errorf("missing 'what'")
	}
	for _, name := range s.What {
		cat, err := logger.ParseCategory(name)
		if err != nil {
			return logger.Selector{}, fmt.Errorf("invalid 'what': %w", err)
		}
		sel.What = append(sel.What, cat)
	}

	if s.When != nil {
		pred, err := s.When.compile()
		if err != nil {
			return logger.Selector{}, fmt.Errorf("invalid 'when': %w", err)
		}
		sel.When = pred
	} else if s.ID == 0 {
		return logger.Selector{}, fmt.Errorf("missing both 'id' and 'when'")
	}

	return sel, nil
}

func (w WhenSpec) compile() (logger.Predicate, error) {
	var conds []logger.Predicate

	if w.Online != nil {
		want := *w.Online
		conds = append(conds, func(m *mfc.Model) bool {
			return (m.Session.State != mfc.StateOffline) == want
		})
	}
	if w.State != "" {
		st, err := mfc.ParseState(w.State)
		if err != nil {
			return nil, err
		}
		conds = append(conds, func(m *mfc.Model) bool {
			return m.Session.State == st
		})
	}
	if w.RankAtMost != nil {
		limit := *w.RankAtMost
		// Rank 0 is the off-leaderboard sentinel, not a top placement.
		conds = append(conds, func(m *mfc.Model) bool {
			return m.Session.RankKnown && m.Session.Rank != 0 && m.Session.Rank <= limit
		})
	}
	if w.CamscoreAtLeast != nil {
		floor := *w.CamscoreAtLeast
		conds = append(conds, func(m *mfc.Model) bool {
			return m.Session.CamscoreKnown && m.Session.Camscore >= floor
		})
	}
	if w.TopicContains != "" {
		needle := strings.ToLower(w.TopicContains)
		conds = append(conds, func(m *mfc.Model) bool {
			return strings.Contains(strings.ToLower(m.Session.Topic), needle)
		})
	}

	if len(conds) == 0 {
		return nil, fmt.Errorf("empty 'when' block")
	}
	if len(conds) == 1 {
		return conds[0], nil
	}
	return func(m *mfc.Model) bool {
		for _, c := range conds {
			if !c(m) {
				return false
			}
		}
		return true
	}, nil
}
