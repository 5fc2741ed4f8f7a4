package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the static game configuration the engine reads: the eight
// guardian assets with their return profiles, the mission and event card
// decks, the achievement rules, and the level table. The compiled-in
// defaults ship the standard game; a YAML file can replace any section
// for classroom variants.
type Catalog struct {
	Assets       []Asset       `yaml:"assets"`
	Missions     []Mission     `yaml:"missions"`
	Events       []Event       `yaml:"events"`
	Achievements []Achievement `yaml:"achievements"`
	Levels       []Level       `yaml:"levels"`
}

type Asset struct {
	ID          string  `yaml:"id"`
	DisplayName string  `yaml:"display_name"`
	ShortName   string  `yaml:"short_name"`
	Type        string  `yaml:"type"`
	Class       string  `yaml:"class"` // growth | defensive | stable | yield
	MinReturn   float64 `yaml:"min_return"`
	MaxReturn   float64 `yaml:"max_return"`
	// Series is an optional precomputed daily return sequence for the
	// simulated mode. Settlement indexes it day mod len, so it loops.
	Series []float64 `yaml:"series,omitempty"`
}

// PredicateKind discriminates the three mission completion rules the
// game supports.
type PredicateKind string

const (
	// PredicateBelowEach completes when every target asset is strictly
	// below the threshold.
	PredicateBelowEach PredicateKind = "below_each"
	// PredicateFloor completes when the single target asset is at or
	// above the threshold.
	PredicateFloor PredicateKind = "floor"
	// PredicateCombinedFloor completes when the target assets together
	// are at or above the threshold.
	PredicateCombinedFloor PredicateKind = "combined_floor"
)

type Mission struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Background   string        `yaml:"background"`
	Tip          string        `yaml:"tip"`
	Focus        string        `yaml:"focus"`
	RewardStars  int           `yaml:"reward_stars"`
	Predicate    PredicateKind `yaml:"predicate"`
	TargetAssets []string      `yaml:"target_assets"`
	Threshold    float64       `yaml:"threshold"`
}

type EffectKind string

const (
	EffectAdd        EffectKind = "add"
	EffectMultiply   EffectKind = "mul"
	EffectVolatility EffectKind = "volatility"
)

type Effect struct {
	Kind      EffectKind `yaml:"kind"`
	Magnitude float64    `yaml:"magnitude"`
	// Targets lists asset ids the effect applies to; the single entry
	// "all" hits every asset.
	Targets []string `yaml:"targets"`
}

type Event struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Category     string `yaml:"category"`
	Effect       Effect `yaml:"effect"`
	DurationDays int    `yaml:"duration_days"`
	// ScheduledDays are day indexes on which the event applies from the
	// calendar, independent of any player-accepted instance.
	ScheduledDays []int `yaml:"scheduled_days,omitempty"`
}

type Achievement struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	StarRating  int    `yaml:"star_rating"`
	TrophyGrade string `yaml:"trophy_grade"` // bronze | silver | gold
}

type Level struct {
	Level         int    `yaml:"level"`
	Title         string `yaml:"title"`
	RequiredStars int    `yaml:"required_stars"`
}

// Load reads a catalog YAML file over the compiled defaults. A missing
// path (or empty string) yields the defaults unchanged; sections present
// in the file replace their default wholesale.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(overlay.Assets) > 0 {
		cat.Assets = overlay.Assets
	}
	if len(overlay.Missions) > 0 {
		cat.Missions = overlay.Missions
	}
	if len(overlay.Events) > 0 {
		cat.Events = overlay.Events
	}
	if len(overlay.Achievements) > 0 {
		cat.Achievements = overlay.Achievements
	}
	if len(overlay.Levels) > 0 {
		cat.Levels = overlay.Levels
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks cross-references so a bad overlay fails at startup
// instead of mid-settlement.
func (c *Catalog) Validate() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("catalog has no assets")
	}
	ids := make(map[string]bool, len(c.Assets))
	for _, a := range c.Assets {
		if a.ID == "" {
			return fmt.Errorf("asset with empty id")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate asset id %q", a.ID)
		}
		ids[a.ID] = true
		if a.MinReturn > a.MaxReturn {
			return fmt.Errorf("asset %q: min_return above max_return", a.ID)
		}
	}
	for _, m := range c.Missions {
		switch m.Predicate {
		case PredicateBelowEach, PredicateFloor, PredicateCombinedFloor:
		default:
			return fmt.Errorf("mission %q: unknown predicate %q", m.ID, m.Predicate)
		}
		if len(m.TargetAssets) == 0 {
			return fmt.Errorf("mission %q: no target assets", m.ID)
		}
		for _, t := range m.TargetAssets {
			if !ids[t] {
				return fmt.Errorf("mission %q: unknown asset %q", m.ID, t)
			}
		}
	}
	for _, e := range c.Events {
		switch e.Effect.Kind {
		case EffectAdd, EffectMultiply, EffectVolatility:
		default:
			return fmt.Errorf("event %q: unknown effect kind %q", e.ID, e.Effect.Kind)
		}
		if e.DurationDays <= 0 {
			return fmt.Errorf("event %q: duration must be positive", e.ID)
		}
		for _, t := range e.Effect.Targets {
			if t != TargetAll && !ids[t] {
				return fmt.Errorf("event %q: unknown target %q", e.ID, t)
			}
		}
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("catalog has no levels")
	}
	prev := -1
	for _, l := range c.Levels {
		if l.RequiredStars <= prev {
			return fmt.Errorf("level table must ascend by required stars")
		}
		prev = l.RequiredStars
	}
	return nil
}

// TargetAll is the wildcard event target.
const TargetAll = "all"

func (c *Catalog) AssetByID(id string) (Asset, bool) {
	for _, a := range c.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

func (c *Catalog) MissionByID(id string) (Mission, bool) {
	for _, m := range c.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

func (c *Catalog) AchievementByID(id string) (Achievement, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

func (c *Catalog) EventByID(id string) (Event, bool) {
	for _, e := range c.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// ScheduledEvents returns the catalog events whose calendar includes the
// given day.
func (c *Catalog) ScheduledEvents(day int) []Event {
	var out []Event
	for _, e := range c.Events {
		for _, d := range e.ScheduledDays {
			if d == day {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
