package game

import (
	"context"
	"fmt"
)

// AchievementStore is the external badge ledger. Achieve must be
// idempotent: unlocking an id twice is a silent no-op.
type AchievementStore interface {
	HasAchievement(ctx context.Context, sessionID, achievementID string) (bool, error)
	Achieve(ctx context.Context, sessionID, achievementID string, starRating int, trophyGrade string) error
	Summary(ctx context.Context, sessionID string) (AchievementSummary, error)
}

type badgeRule struct {
	id   string
	test func(e *Engine, allocs []AssetAllocation, stars int) bool
}

// badgeRules is the fixed evaluation order. The rules are independent,
// so order only decides how newly unlocked ids line up in the result.
var badgeRules = []badgeRule{
	{"steady-hands", func(_ *Engine, allocs []AssetAllocation, _ int) bool {
		for _, a := range allocs {
			if a.Allocation > 50 {
				return false
			}
		}
		return true
	}},
	{"explorer", func(_ *Engine, allocs []AssetAllocation, _ int) bool {
		n := 0
		for _, a := range allocs {
			if a.Allocation > 0 {
				n++
			}
		}
		return n >= 3
	}},
	{"harmony", func(_ *Engine, allocs []AssetAllocation, _ int) bool {
		var min, max float64
		n := 0
		for _, a := range allocs {
			if a.Allocation <= 0 {
				continue
			}
			if n == 0 || a.Allocation < min {
				min = a.Allocation
			}
			if n == 0 || a.Allocation > max {
				max = a.Allocation
			}
			n++
		}
		return n >= 2 && max-min <= 30
	}},
	{"guardian-of-ages", func(e *Engine, allocs []AssetAllocation, _ int) bool {
		return e.classShare(allocs, "defensive") >= 25
	}},
	{"safe-harbor", func(e *Engine, allocs []AssetAllocation, _ int) bool {
		return e.classShare(allocs, "defensive", "stable") >= 40
	}},
	{"skyward-growth", func(e *Engine, allocs []AssetAllocation, _ int) bool {
		return e.classShare(allocs, "growth") >= 50
	}},
	{"first-light", starsAtLeast(10)},
	{"constellation", starsAtLeast(25)},
	{"galaxy", starsAtLeast(50)},
	{"legend-of-skyland", starsAtLeast(100)},
}

func starsAtLeast(n int) func(*Engine, []AssetAllocation, int) bool {
	return func(_ *Engine, _ []AssetAllocation, stars int) bool {
		return stars >= n
	}
}

// EvaluateAchievements runs the badge rules and unlocks whatever newly
// holds, returning the ids unlocked by this call. The balance guard is
// load-bearing: an allocation vector off 100 yields no evaluation and
// no store writes at all.
func (e *Engine) EvaluateAchievements(ctx context.Context, store AchievementStore, sessionID string, allocs []AssetAllocation, stars int) ([]string, error) {
	if !AllocationBalanced(allocs) {
		return nil, nil
	}
	var unlocked []string
	for _, rule := range badgeRules {
		meta, ok := e.cat.AchievementByID(rule.id)
		if !ok {
			continue
		}
		has, err := store.HasAchievement(ctx, sessionID, rule.id)
		if err != nil {
			return unlocked, fmt.Errorf("check achievement %s: %w", rule.id, err)
		}
		if has || !rule.test(e, allocs, stars) {
			continue
		}
		if err := store.Achieve(ctx, sessionID, rule.id, meta.StarRating, meta.TrophyGrade); err != nil {
			return unlocked, fmt.Errorf("unlock achievement %s: %w", rule.id, err)
		}
		unlocked = append(unlocked, rule.id)
	}
	return unlocked, nil
}

// classShare sums the allocation held in assets of the given classes.
func (e *Engine) classShare(allocs []AssetAllocation, classes ...string) float64 {
	want := make(map[string]bool, len(classes))
	for _, c := range classes {
		want[c] = true
	}
	var sum float64
	for _, a := range allocs {
		asset, ok := e.cat.AssetByID(a.ID)
		if ok && want[asset.Class] {
			sum += a.Allocation
		}
	}
	return sum
}
