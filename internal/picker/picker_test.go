package picker

import (
	"math/rand/v2"
	"testing"

	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/qset"
)

func seeded(seed uint64) *Picker {
	return New(rand.New(rand.NewPCG(seed, seed)))
}

// numberedPool builds questions q01..qNN numbered 1..n.
func numberedPool(n int) []qset.Question {
	pool := make([]qset.Question, n)
	for i := range pool {
		num := i + 1
		pool[i] = qset.Question{
			ImageFilename: string(rune('a'+i)) + ".png",
			Number:        &num,
			Correct:       "A",
		}
	}
	return pool
}

func TestPick_EmptyPool(t *testing.T) {
	p := seeded(1)
	if got := p.Pick(nil, StrategyRandom, 1, level.DefaultRanges()); got != nil {
		t.Errorf("Pick(empty) = %+v, want nil", got)
	}
	if got := p.Pick(nil, StrategyAdaptive, 1, level.DefaultRanges()); got != nil {
		t.Errorf("Pick(empty, adaptive) = %+v, want nil", got)
	}
}

func TestPick_MemberOfPool(t *testing.T) {
	p := seeded(2)
	pool := numberedPool(10)
	for i := 0; i < 50; i++ {
		got := p.Pick(pool, StrategyRandom, 1, level.DefaultRanges())
		if got == nil {
			t.Fatal("Pick returned nil for non-empty pool")
		}
		found := false
		for _, q := range pool {
			if q.ImageFilename == got.ImageFilename {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Pick returned question not in pool: %+v", got)
		}
	}
}

func TestPick_AdaptiveStaysInLevelRange(t *testing.T) {
	p := seeded(3)
	pool := numberedPool(25)
	ranges := level.DefaultRanges()

	for lvl := 1; lvl <= ranges.Levels(); lvl++ {
		r, _ := ranges.Range(lvl)
		for i := 0; i < 30; i++ {
			got := p.Pick(pool, StrategyAdaptive, lvl, ranges)
			if got == nil || got.Number == nil {
				t.Fatalf("level %d: unexpected pick %+v", lvl, got)
			}
			if !r.Contains(*got.Number) {
				t.Fatalf("level %d: picked question %d outside [%d, %d)",
					lvl, *got.Number, r.Min, r.Max)
			}
		}
	}
}

func TestPick_AdaptiveFallsBackWhenNoneEligible(t *testing.T) {
	p := seeded(4)
	// All questions at level 1; ask for level 5.
	pool := numberedPool(5)
	got := p.Pick(pool, StrategyAdaptive, 5, level.DefaultRanges())
	if got == nil {
		t.Fatal("adaptive fallback returned nil for non-empty pool")
	}
}

func TestPick_AdaptiveFallsBackOnUnknownLevel(t *testing.T) {
	p := seeded(5)
	pool := numberedPool(5)
	got := p.Pick(pool, StrategyAdaptive, 99, level.DefaultRanges())
	if got == nil {
		t.Fatal("unknown level should fall back to random, not nil")
	}
}

func TestPick_UnnumberedNeverAdaptivelyEligible(t *testing.T) {
	p := seeded(6)
	num := 3
	pool := []qset.Question{
		{ImageFilename: "unnumbered.png", Correct: "A"},
		{ImageFilename: "numbered.png", Number: &num, Correct: "A"},
	}
	for i := 0; i < 30; i++ {
		got := p.Pick(pool, StrategyAdaptive, 1, level.DefaultRanges())
		if got.ImageFilename != "numbered.png" {
			t.Fatalf("adaptive pick chose unnumbered question")
		}
	}
}

func TestPick_SeededReproducibility(t *testing.T) {
	pool := numberedPool(20)
	a, b := seeded(42), seeded(42)
	for i := 0; i < 20; i++ {
		qa := a.Pick(pool, StrategyAdaptive, 2, level.DefaultRanges())
		qb := b.Pick(pool, StrategyAdaptive, 2, level.DefaultRanges())
		if qa.ImageFilename != qb.ImageFilename {
			t.Fatalf("draw %d diverged: %s vs %s", i, qa.ImageFilename, qb.ImageFilename)
		}
	}
}

func TestPick_SingleQuestionPool(t *testing.T) {
	p := seeded(7)
	pool := numberedPool(1)
	for i := 0; i < 3; i++ {
		got := p.Pick(pool, StrategyRandom, 1, level.DefaultRanges())
		if got == nil || got.ImageFilename != pool[0].ImageFilename {
			t.Fatalf("single-question pool pick = %+v", got)
		}
	}
}
