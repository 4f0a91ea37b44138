package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobtrack-engine/internal/tracker"
)

// SaveApplications replaces the persisted snapshot with the given one in a
// single transaction. The tracker is the source of truth; the table is
// only ever written whole.
func SaveApplications(ctx context.Context, db *sql.DB, apps []tracker.Application) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications;`); err != nil {
		return fmt.Errorf("clear applications: %w", err)
	}

	for _, a := range apps {
		fuB, _ := json.Marshal(a.FollowUps)
		nB, _ := json.Marshal(a.Notes)
		if _, err := tx.ExecContext(ctx, `
INSERT INTO applications (id, title, company, status, created_at, last_contact, follow_ups, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			a.ID, a.Title, a.Company, string(a.Status),
			a.CreatedAt.UTC().Format(time.RFC3339Nano),
			a.LastContact.UTC().Format(time.RFC3339Nano),
			string(fuB), string(nB),
		); err != nil {
			return fmt.Errorf("insert application id=%d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// LoadApplications reads the snapshot back in id order, ready for
// tracker.Restore.
func LoadApplications(ctx context.Context, db *sql.DB) ([]tracker.Application, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, title, company, status, created_at, last_contact, follow_ups, notes
FROM applications
ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.Application
	for rows.Next() {
		var a tracker.Application
		var status, createdAt, lastContact, fuJSON, notesJSON string
		if err := rows.Scan(&a.ID, &a.Title, &a.Company, &status, &createdAt, &lastContact, &fuJSON, &notesJSON); err != nil {
			return nil, err
		}
		a.Status = tracker.Status(status)
		a.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		a.LastContact, _ = time.Parse(time.RFC3339Nano, lastContact)
		_ = json.Unmarshal([]byte(fuJSON), &a.FollowUps)
		_ = json.Unmarshal([]byte(notesJSON), &a.Notes)
		out = append(out, a)
	}
	return out, rows.Err()
}
