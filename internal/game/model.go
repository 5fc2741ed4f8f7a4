package game

import (
	"errors"
	"math"
	mathrand "math/rand"
	"sync"
)

const (
	StartingCoins = int64(1000)

	// AllocationTolerance is how far the allocation sum may drift from
	// 100 before settlement and badge checks refuse to run.
	AllocationTolerance = 0.1

	// HistoryCap bounds the in-state performance ring.
	HistoryCap = 7

	// Fallback sampling range for asset ids the catalog does not know.
	DefaultMinReturn = -0.01
	DefaultMaxReturn = 0.02
)

var (
	ErrAllocationUnbalanced = errors.New("allocations must sum to 100")
	ErrUnknownAsset         = errors.New("unknown asset id")
	ErrCardNotFound         = errors.New("card not found")
	ErrUnknownCatalogID     = errors.New("no mission or event with that id")
	ErrSessionNotFound      = errors.New("session not found")
)

// cardOdds holds the per-trigger chance of offering a mission and an
// event. Nothing is granted on first load.
var cardOdds = map[Trigger]struct{ Mission, Event float64 }{
	TriggerApply:   {Mission: 0.30, Event: 0.25},
	TriggerNextDay: {Mission: 0.20, Event: 0.15},
	TriggerInit:    {Mission: 0.00, Event: 0.00},
}

// AllocationTotal sums the allocation percentages.
func AllocationTotal(allocs []AssetAllocation) float64 {
	var total float64
	for _, a := range allocs {
		total += a.Allocation
	}
	return total
}

// AllocationBalanced reports whether the vector sums to 100 within
// tolerance. Both settlement and achievement evaluation gate on this.
func AllocationBalanced(allocs []AssetAllocation) bool {
	return math.Abs(AllocationTotal(allocs)-100) <= AllocationTolerance
}

// Rand is the entropy the engine consumes: card rolls, random-mode
// sampling, and volatility jitter. Production wires a seeded
// math/rand source; tests inject fixed sequences so settlement replays
// deterministically.
type Rand interface {
	Float64() float64
}

// LockedRand guards a math/rand source with a mutex so the worker and
// API goroutines can share one engine.
type LockedRand struct {
	mu  sync.Mutex
	rnd *mathrand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: mathrand.New(mathrand.NewSource(seed))}
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}
