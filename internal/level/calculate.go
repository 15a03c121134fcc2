// Package level computes a user's working difficulty level from their
// attempt history. The algorithm is a strictly sequential gate: level k+1
// is only assessed after level k has been passed, and the result is
// re-derived from the full history on every call rather than ratcheted.
package level

// Attempt is the slice of an attempt record the calculator needs.
// QuestionNumber is nil for questions without a number (they never count
// toward any level). Choice is nil when the question timed out unanswered.
type Attempt struct {
	QuestionNumber *int
	Choice         *string
	Correct        string
}

// Correct reports whether the user's choice matched the correct answer.
func (a Attempt) IsCorrect() bool {
	return a.Choice != nil && *a.Choice == a.Correct
}

// Calculate returns the working level for the given history, which must be
// ordered newest first. window is the number of most recent same-level
// attempts assessed; passThreshold is the correct count that must be
// strictly exceeded to pass a level.
//
// A level with fewer than window qualifying attempts halts assessment: the
// working level is one above the highest level passed so far (level 1 when
// none). Passing every configured level caps the result at the top level.
func Calculate(history []Attempt, ranges Ranges, window, passThreshold int) int {
	if len(history) == 0 {
		return 1
	}

	highestPassed := 0
	for lvl := 1; lvl <= ranges.Levels(); lvl++ {
		r, ok := ranges.Range(lvl)
		if !ok {
			continue
		}

		var atLevel []Attempt
		for _, a := range history {
			if a.QuestionNumber != nil && r.Contains(*a.QuestionNumber) {
				atLevel = append(atLevel, a)
			}
		}

		if len(atLevel) < window {
			// Not enough data to assess mastery here; stop.
			break
		}

		correct := 0
		for _, a := range atLevel[:window] {
			if a.IsCorrect() {
				correct++
			}
		}
		if correct > passThreshold {
			highestPassed = lvl
			continue
		}
		break
	}

	lvl := highestPassed + 1
	if max := ranges.Levels(); lvl > max {
		lvl = max
	}
	return lvl
}
