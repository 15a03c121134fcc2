// Package qset loads practice sets: folders of question images described
// by a metadata.json file. The loader validates the metadata against a
// JSON Schema and drops entries whose backing image is missing on disk.
package qset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoQuestions is returned when a set contains no usable questions
// after metadata and image validation.
var ErrNoQuestions = errors.New("no valid questions in set")

// metadataFile is the required descriptor inside every set folder.
const metadataFile = "metadata.json"

type metadata struct {
	Questions []metadataQuestion `json:"questions"`
}

type metadataQuestion struct {
	ImageFilename string  `json:"image_filename"`
	CorrectAnswer string  `json:"correct_answer"`
	Year          *int    `json:"year"`
	Number        *int    `json:"question_number"`
	SetID         *string `json:"set_identifier"`
	Category      *string `json:"category"`
}

// LoadSet reads and validates the practice set in dir. Questions whose
// image file is missing are skipped and reported in missing. A set with
// zero surviving questions returns ErrNoQuestions.
func LoadSet(dir string) (*Set, []string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", metadataFile, err)
	}
	if err := validateMetadata(raw); err != nil {
		return nil, nil, fmt.Errorf("%s in %s: %w", metadataFile, dir, err)
	}

	var md metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", metadataFile, err)
	}

	set := &Set{
		Name: filepath.Base(dir),
		Dir:  dir,
	}
	var missing []string
	for _, q := range md.Questions {
		path := filepath.Join(dir, q.ImageFilename)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, q.ImageFilename)
			continue
		}
		question := Question{
			ImageFilename: q.ImageFilename,
			ImagePath:     path,
			Year:          q.Year,
			Number:        q.Number,
			Correct:       q.CorrectAnswer,
		}
		if q.SetID != nil {
			question.SetID = *q.SetID
		}
		if q.Category != nil {
			question.Category = *q.Category
		}
		set.Questions = append(set.Questions, question)
	}

	if len(set.Questions) == 0 {
		return nil, missing, fmt.Errorf("%w: %s", ErrNoQuestions, dir)
	}
	return set, missing, nil
}

// ListSets returns the names of subdirectories of root that contain a
// metadata.json, sorted alphabetically.
func ListSets(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read question dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), metadataFile)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
