package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// Invite is a single-use registration code.
type Invite struct {
	Code        string
	Used        bool
	GeneratedAt time.Time
	UsedBy      *string
	UsedAt      *time.Time
}

// InviteRepo manages invitation codes gating registration.
type InviteRepo struct {
	db *sql.DB
}

// Generate creates and stores a fresh random code.
func (r *InviteRepo) Generate(ctx context.Context) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := hex.EncodeToString(buf)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitation_codes (code) VALUES (?)`, code,
	)
	if err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// Validate reports whether code exists and is still unused.
func (r *InviteRepo) Validate(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM invitation_codes WHERE code = ? AND is_used = 0`, code,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("validate code: %w", err)
	}
	return true, nil
}

// MarkUsed consumes a code for username. Returns false when the code was
// already used or never existed (a concurrent registration may win the
// race; the row update is the arbiter).
func (r *InviteRepo) MarkUsed(ctx context.Context, code, username string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitation_codes
		SET is_used = 1, used_by = ?, used_at = CURRENT_TIMESTAMP
		WHERE code = ? AND is_used = 0`,
		username, code,
	)
	if err != nil {
		return false, fmt.Errorf("mark code used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark code used: %w", err)
	}
	return n > 0, nil
}

// List returns all codes, newest first.
func (r *InviteRepo) List(ctx context.Context) ([]Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, is_used, generated_at, used_by, used_at
		FROM invitation_codes
		ORDER BY generated_at DESC, code`)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()

	var invites []Invite
	for rows.Next() {
		var (
			inv    Invite
			usedBy sql.NullString
			usedAt sql.NullTime
		)
		if err := rows.Scan(&inv.Code, &inv.Used, &inv.GeneratedAt, &usedBy, &usedAt); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		if usedBy.Valid {
			inv.UsedBy = &usedBy.String
		}
		if usedAt.Valid {
			inv.UsedAt = &usedAt.Time
		}
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate codes: %w", err)
	}
	return invites, nil
}
