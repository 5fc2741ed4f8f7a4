package game

import "math"

// SettleDay runs the once-per-day market close: sample each asset's
// base return, fold in today's event effects, weight by the player's
// allocation, and move coins. The day counter advances and a derived
// entry joins the capped history ring.
//
// The allocation sum guard is asserted here, not assumed: an unbalanced
// vector returns ErrAllocationUnbalanced with the state untouched.
func (e *Engine) SettleDay(state GameState) (SettlementResult, GameState, error) {
	if !AllocationBalanced(state.Allocations) {
		return SettlementResult{}, state, ErrAllocationUnbalanced
	}

	effects := e.effectsForDay(state)
	res := SettlementResult{
		Day:      state.CurrentDay,
		PerAsset: make([]AssetSettlement, 0, len(state.Allocations)),
	}
	assetReturns := make(map[string]float64, len(state.Allocations))
	for _, alloc := range state.Allocations {
		base := e.SampleBaseReturn(alloc.ID, state.CurrentDay)
		adjusted := e.ApplyEvents(base, alloc.ID, effects)
		contribution := (alloc.Allocation / 100) * adjusted
		// Half-coin ties round to even.
		delta := int64(math.RoundToEven(float64(state.Coins) * contribution))
		res.PerAsset = append(res.PerAsset, AssetSettlement{
			ID:                   alloc.ID,
			BaseReturn:           base,
			AdjustedReturn:       adjusted,
			ContributionFraction: contribution,
			CoinDelta:            delta,
		})
		res.PortfolioReturn += contribution
		res.CoinDelta += delta
		assetReturns[alloc.ID] = adjusted
	}

	next := state
	next.Coins = state.Coins + res.CoinDelta
	next.CurrentDay = state.CurrentDay + 1
	next.History = appendHistory(state.History, PerformancePoint{
		Day:             res.Day,
		PortfolioReturn: res.PortfolioReturn,
		TotalCoins:      next.Coins,
		AssetReturns:    assetReturns,
	})
	res.CoinsAfter = next.Coins
	return res, next, nil
}

// appendHistory keeps only the most recent HistoryCap entries.
func appendHistory(hist []PerformancePoint, p PerformancePoint) []PerformancePoint {
	out := make([]PerformancePoint, 0, HistoryCap)
	if len(hist) >= HistoryCap {
		out = append(out, hist[len(hist)-HistoryCap+1:]...)
	} else {
		out = append(out, hist...)
	}
	return append(out, p)
}
