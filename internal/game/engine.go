package game

import (
	"skyland/internal/catalog"
)

// Engine holds the pure game rules: return sampling, event effects,
// settlement, card lifecycle, badges, levels. It mutates nothing it is
// given; every operation takes a GameState by value and returns the
// successor. Instances are cheap and safe to share across sessions as
// long as the Rand source is.
type Engine struct {
	cat  *catalog.Catalog
	rnd  Rand
	mode ReturnMode
}

func NewEngine(cat *catalog.Catalog, rnd Rand, mode ReturnMode) *Engine {
	if mode != ReturnRandom {
		mode = ReturnSimulated
	}
	return &Engine{cat: cat, rnd: rnd, mode: mode}
}

// NewGameState builds the day-one snapshot: full coin purse, every
// guardian at zero allocation, nothing pending.
func (e *Engine) NewGameState(mode Mode) GameState {
	if mode != ModeChaos {
		mode = ModeNormal
	}
	allocs := make([]AssetAllocation, 0, len(e.cat.Assets))
	for _, a := range e.cat.Assets {
		allocs = append(allocs, AssetAllocation{
			ID:          a.ID,
			DisplayName: a.DisplayName,
			ShortName:   a.ShortName,
			Type:        a.Type,
		})
	}
	return GameState{
		CurrentDay:  1,
		Level:       LevelForStars(e.cat.Levels, 0).Level,
		Mode:        mode,
		Coins:       StartingCoins,
		Allocations: allocs,
	}
}

// Catalog exposes the static configuration the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}
