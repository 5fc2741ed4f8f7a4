package game

// SampleBaseReturn produces an asset's raw daily return as a decimal
// fraction (0.05 = +5%) before any event effect.
//
// Simulated mode indexes the asset's precomputed series with
// (day-1) mod len, so day one plays the first series entry, the series
// loops forever, and the same (asset, day) always yields the same
// value. An asset without a series falls back to
// random mode, and an asset the catalog does not know at all draws from
// the conservative default range rather than failing; new assets may
// appear in a catalog overlay before every table learns about them.
func (e *Engine) SampleBaseReturn(assetID string, day int) float64 {
	asset, ok := e.cat.AssetByID(assetID)
	if !ok {
		return e.uniform(DefaultMinReturn, DefaultMaxReturn)
	}
	if e.mode == ReturnSimulated && len(asset.Series) > 0 {
		idx := (day - 1) % len(asset.Series)
		if idx < 0 {
			idx += len(asset.Series)
		}
		return asset.Series[idx]
	}
	return e.uniform(asset.MinReturn, asset.MaxReturn)
}

func (e *Engine) uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + e.rnd.Float64()*(max-min)
}
