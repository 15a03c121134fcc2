package qset

// Question is one multiple-choice question inside a practice set. It is
// identified within its set by the image filename and is immutable once
// loaded for a session.
type Question struct {
	// ImageFilename uniquely identifies the question within the set.
	ImageFilename string

	// ImagePath is the resolved absolute path to the backing image.
	ImagePath string

	// Year the question appeared, when known.
	Year *int

	// Number is the 1-based question number that drives leveling.
	// Nil for questions without a number; such questions are never
	// eligible for adaptive selection.
	Number *int

	// SetID identifies the exam set, e.g. "10A".
	SetID string

	// Category is an optional topic label, e.g. "Geometry".
	Category string

	// Correct is the correct option letter.
	Correct string
}

// Set is a loaded practice set: the folder name it came from and its
// validated questions in metadata order.
type Set struct {
	Name      string
	Dir       string
	Questions []Question
}
