package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Attempt is one answered (or timed-out) question. Records are written
// exactly once and never updated or deleted; attempted_at is assigned by
// the database at write time.
type Attempt struct {
	ID             int64
	Username       string
	SetName        string
	Year           *int
	QuestionNumber *int
	SetID          string
	Category       string
	ImageFilename  string
	Choice         *string
	Correct        string
	AnswerTimeSecs int
	AttemptedAt    time.Time
}

// IsCorrect reports whether the recorded choice matched the correct one.
func (a Attempt) IsCorrect() bool {
	return a.Choice != nil && *a.Choice == a.Correct
}

// AttemptRepo provides append and full-history read access to attempts.
type AttemptRepo struct {
	db *sql.DB
}

// Append durably persists one attempt. Negative answer times are clamped
// to zero. The insert is all-or-nothing; no partial record is written.
func (r *AttemptRepo) Append(ctx context.Context, a *Attempt) error {
	if a.AnswerTimeSecs < 0 {
		a.AnswerTimeSecs = 0
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (username, set_name, year, question_number,
			set_identifier, category, image_filename, user_choice,
			correct_choice, answer_time_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Username, a.SetName, a.Year, a.QuestionNumber,
		a.SetID, a.Category, a.ImageFilename, a.Choice,
		a.Correct, a.AnswerTimeSecs,
	)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		a.ID = id
	}
	return nil
}

// AllForUser returns every attempt ever written for username, newest
// first. A user with no history gets an empty slice, not an error.
func (r *AttemptRepo) AllForUser(ctx context.Context, username string) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, set_name, year, question_number, set_identifier,
			category, image_filename, user_choice, correct_choice,
			answer_time_secs, attempted_at
		FROM attempts
		WHERE username = ?
		ORDER BY attempted_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			a        Attempt
			setName  sql.NullString
			setID    sql.NullString
			category sql.NullString
			image    sql.NullString
			choice   sql.NullString
			year     sql.NullInt64
			number   sql.NullInt64
		)
		err := rows.Scan(&a.ID, &a.Username, &setName, &year, &number,
			&setID, &category, &image, &choice, &a.Correct,
			&a.AnswerTimeSecs, &a.AttemptedAt)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.SetName = setName.String
		a.SetID = setID.String
		a.Category = category.String
		a.ImageFilename = image.String
		if year.Valid {
			v := int(year.Int64)
			a.Year = &v
		}
		if number.Valid {
			v := int(number.Int64)
			a.QuestionNumber = &v
		}
		if choice.Valid {
			v := choice.String
			a.Choice = &v
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
