package qset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeSet creates a set folder with the given metadata and image files.
func writeSet(t *testing.T, meta string, images ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(meta), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	for _, img := range images {
		if err := os.WriteFile(filepath.Join(dir, img), []byte("png"), 0o644); err != nil {
			t.Fatalf("write image %s: %v", img, err)
		}
	}
	return dir
}

func TestLoadSet(t *testing.T) {
	meta := `{
		"questions": [
			{"image_filename": "q01.png", "correct_answer": "C",
			 "year": 2019, "question_number": 1, "set_identifier": "10A", "category": "Algebra"},
			{"image_filename": "q02.png", "correct_answer": "E", "question_number": 2}
		]
	}`
	dir := writeSet(t, meta, "q01.png", "q02.png")

	set, missing, err := LoadSet(dir)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(set.Questions))
	}

	q := set.Questions[0]
	if q.ImageFilename != "q01.png" || q.Correct != "C" || q.SetID != "10A" {
		t.Errorf("unexpected first question: %+v", q)
	}
	if q.Number == nil || *q.Number != 1 {
		t.Errorf("first question number = %v, want 1", q.Number)
	}
	if q.Year == nil || *q.Year != 2019 {
		t.Errorf("first question year = %v, want 2019", q.Year)
	}
	if set.Questions[1].SetID != "" || set.Questions[1].Category != "" {
		t.Errorf("optional fields should default to empty: %+v", set.Questions[1])
	}
}

func TestLoadSet_MissingImagesSkipped(t *testing.T) {
	meta := `{
		"questions": [
			{"image_filename": "present.png", "correct_answer": "A"},
			{"image_filename": "gone.png", "correct_answer": "B"}
		]
	}`
	dir := writeSet(t, meta, "present.png")

	set, missing, err := LoadSet(dir)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if len(set.Questions) != 1 || set.Questions[0].ImageFilename != "present.png" {
		t.Errorf("questions = %+v, want only present.png", set.Questions)
	}
	if len(missing) != 1 || missing[0] != "gone.png" {
		t.Errorf("missing = %v, want [gone.png]", missing)
	}
}

func TestLoadSet_AllImagesMissing(t *testing.T) {
	meta := `{"questions": [{"image_filename": "gone.png", "correct_answer": "A"}]}`
	dir := writeSet(t, meta)

	_, _, err := LoadSet(dir)
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestLoadSet_SchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		meta string
	}{
		{"missing questions key", `{"items": []}`},
		{"bad option letter", `{"questions": [{"image_filename": "q.png", "correct_answer": "F"}]}`},
		{"missing answer", `{"questions": [{"image_filename": "q.png"}]}`},
		{"empty filename", `{"questions": [{"image_filename": "", "correct_answer": "A"}]}`},
		{"zero question number", `{"questions": [{"image_filename": "q.png", "correct_answer": "A", "question_number": 0}]}`},
		{"not json", `questions:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSet(t, tt.meta, "q.png")
			if _, _, err := LoadSet(dir); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSet_NoMetadata(t *testing.T) {
	if _, _, err := LoadSet(t.TempDir()); err == nil {
		t.Error("expected error for missing metadata.json")
	}
}

func TestListSets(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"amc10-2019", "amc8-2020"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A folder without metadata is not a set.
	if err := os.MkdirAll(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := ListSets(root)
	if err != nil {
		t.Fatalf("ListSets: %v", err)
	}
	want := []string{"amc10-2019", "amc8-2020"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("ListSets = %v, want %v", names, want)
	}
}
