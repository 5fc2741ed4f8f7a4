package game

import (
	"math"

	"skyland/internal/catalog"
)

// ApplyEvents folds the effects active today into an asset's base
// return. The ordering is fixed and load-bearing for reproducibility:
// additive bumps first, then the multiplicative product, and volatility
// last as pure additive noise in [-|sum|, +|sum|]. Add-then-multiply is
// a simplicity choice over financial realism and must not be reordered.
func (e *Engine) ApplyEvents(base float64, assetID string, effects []catalog.Effect) float64 {
	var addSum, volSum float64
	mulProduct := 1.0
	for _, ef := range effects {
		if !effectTargets(ef, assetID) {
			continue
		}
		switch ef.Kind {
		case catalog.EffectAdd:
			addSum += ef.Magnitude
		case catalog.EffectMultiply:
			mulProduct *= ef.Magnitude
		case catalog.EffectVolatility:
			volSum += ef.Magnitude
		}
	}
	adjusted := (base + addSum) * mulProduct
	if volSum != 0 {
		amp := math.Abs(volSum)
		adjusted += -amp + e.rnd.Float64()*2*amp
	}
	return adjusted
}

func effectTargets(ef catalog.Effect, assetID string) bool {
	for _, t := range ef.Targets {
		if t == catalog.TargetAll || t == assetID {
			return true
		}
	}
	return false
}

// effectsForDay gathers everything that moves prices on the given day:
// the catalog's scheduled events plus the session's accepted instances
// that have not yet run out. A scripted storm and a player-accepted
// boon can both apply on the same day.
func (e *Engine) effectsForDay(state GameState) []catalog.Effect {
	var out []catalog.Effect
	for _, ev := range e.cat.ScheduledEvents(state.CurrentDay) {
		out = append(out, ev.Effect)
	}
	for _, inst := range state.ActiveEvents {
		ev, ok := e.cat.EventByID(inst.RefID)
		if !ok {
			continue
		}
		if state.CurrentDay-inst.AcceptedAtDay >= ev.DurationDays {
			continue
		}
		out = append(out, ev.Effect)
	}
	return out
}
