package level

import "fmt"

// Range is a half-open interval [Min, Max) of question numbers.
type Range struct {
	Min int
	Max int
}

// Contains reports whether n falls inside the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n < r.Max
}

// Ranges maps difficulty levels to question-number intervals. Level k is
// Ranges[k-1]; levels are contiguous from 1 to len(Ranges) with no gaps.
// The mapping is a process-wide constant for the lifetime of a session.
type Ranges []Range

// DefaultRanges returns the standard five-level layout: level 1 covers
// question numbers 1-5, level 2 covers 6-10, up to level 5 covering 21-25.
func DefaultRanges() Ranges {
	return Ranges{
		{Min: 1, Max: 6},
		{Min: 6, Max: 11},
		{Min: 11, Max: 16},
		{Min: 16, Max: 21},
		{Min: 21, Max: 26},
	}
}

// Levels returns the number of configured levels.
func (rs Ranges) Levels() int {
	return len(rs)
}

// Range returns the interval for the given level and whether it exists.
func (rs Ranges) Range(level int) (Range, bool) {
	if level < 1 || level > len(rs) {
		return Range{}, false
	}
	return rs[level-1], true
}

// Validate checks that every range is non-empty and that no two ranges
// overlap.
func (rs Ranges) Validate() error {
	for i, r := range rs {
		if r.Min >= r.Max {
			return fmt.Errorf("level %d: empty range [%d, %d)", i+1, r.Min, r.Max)
		}
		for j := i + 1; j < len(rs); j++ {
			o := rs[j]
			if r.Min < o.Max && o.Min < r.Max {
				return fmt.Errorf("level %d and level %d ranges overlap", i+1, j+1)
			}
		}
	}
	return nil
}
