// Package picker chooses the next question to serve from a session's
// candidate pool.
package picker

import (
	"math/rand/v2"

	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/qset"
)

// Strategy selects how the next question is chosen.
type Strategy string

const (
	// StrategyRandom picks uniformly over the whole pool.
	StrategyRandom Strategy = "random"

	// StrategyAdaptive prefers questions at the user's current level,
	// degrading to uniform-random when none are eligible.
	StrategyAdaptive Strategy = "adaptive"
)

// Picker selects questions using its own random source, so tests can
// inject a seeded one for reproducible draws.
type Picker struct {
	rng *rand.Rand
}

// New creates a Picker with the given random source. A nil source gets a
// fresh PCG seeded from the global generator.
func New(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// Pick returns the next question from pool, or nil when the pool is empty.
// Adaptive selection never fails on configuration problems: an unknown
// level or an empty eligible set falls back to a uniform draw over the
// whole pool.
func (p *Picker) Pick(pool []qset.Question, strategy Strategy, lvl int, ranges level.Ranges) *qset.Question {
	if len(pool) == 0 {
		return nil
	}

	if strategy != StrategyAdaptive {
		return p.uniform(pool)
	}

	r, ok := ranges.Range(lvl)
	if !ok {
		return p.uniform(pool)
	}

	var eligible []qset.Question
	for _, q := range pool {
		if q.Number != nil && r.Contains(*q.Number) {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return p.uniform(pool)
	}
	return p.uniform(eligible)
}

func (p *Picker) uniform(pool []qset.Question) *qset.Question {
	q := pool[p.rng.IntN(len(pool))]
	return &q
}
