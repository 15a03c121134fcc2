package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/tanmay-g/prepdrill/internal/level"
)

// OptionLetters is the fixed answer alphabet for multiple-choice questions.
var OptionLetters = []string{"A", "B", "C", "D", "E"}

// Config holds all runtime configuration. It is built once at startup and
// passed explicitly to the session controller and its collaborators.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string

	// QuestionDir is the root directory containing practice-set folders.
	QuestionDir string

	// Ranges maps each difficulty level to its question-number interval.
	Ranges level.Ranges

	// AssessmentWindow is the number of recent same-level attempts
	// considered when deciding mastery.
	AssessmentWindow int

	// PassThreshold is the correct count that must be strictly exceeded
	// within the assessment window to advance a level.
	PassThreshold int

	// QuestionTimeout is the per-question countdown duration.
	QuestionTimeout time.Duration
}

// Default returns a Config with the standard five-level setup:
// levels 1-5 covering question numbers 1-5, 6-10, ... 21-25, a 25-attempt
// assessment window, and a pass threshold of 21 (22+ correct advances).
func Default() Config {
	return Config{
		QuestionDir:      ".",
		Ranges:           level.DefaultRanges(),
		AssessmentWindow: 25,
		PassThreshold:    21,
		QuestionTimeout:  150 * time.Second,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is
// loaded first when present.
func FromEnv() (Config, error) {
	// Missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()

	cfg := Default()

	if p := os.Getenv("PREPDRILL_DB"); p != "" {
		cfg.DBPath = p
	}
	if d := os.Getenv("PREPDRILL_QUESTION_DIR"); d != "" {
		cfg.QuestionDir = d
	}
	if v := os.Getenv("PREPDRILL_ASSESSMENT_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid PREPDRILL_ASSESSMENT_WINDOW %q", v)
		}
		cfg.AssessmentWindow = n
	}
	if v := os.Getenv("PREPDRILL_PASS_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid PREPDRILL_PASS_THRESHOLD %q", v)
		}
		cfg.PassThreshold = n
	}
	if v := os.Getenv("PREPDRILL_QUESTION_TIMEOUT_SECS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid PREPDRILL_QUESTION_TIMEOUT_SECS %q", v)
		}
		cfg.QuestionTimeout = time.Duration(n) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if len(c.Ranges) == 0 {
		return fmt.Errorf("no difficulty levels configured")
	}
	if c.PassThreshold >= c.AssessmentWindow {
		return fmt.Errorf("pass threshold %d must be below assessment window %d",
			c.PassThreshold, c.AssessmentWindow)
	}
	return c.Ranges.Validate()
}
