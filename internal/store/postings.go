package store

import (
	"context"
	"database/sql"
	"fmt"

	"jobtrack-engine/internal/domain"
)

type ListPostingsOpts struct {
	Limit int
}

// InsertPostingIgnore inserts a posting unless its URL is already known.
// Relies on the unique index on url WHERE url != ''.
func InsertPostingIgnore(db *sql.DB, p domain.Posting) (added bool, err error) {
	_, err = db.Exec(`
INSERT OR IGNORE INTO postings (company, title, location, description, compensation, source, posted_at, url)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		p.Company, p.Title, p.Location, p.Description, p.Compensation, p.Source, p.PostedAt, p.URL,
	)
	if err != nil {
		return false, fmt.Errorf("insert posting: %w", err)
	}

	// SELECT changes() tells us whether IGNORE swallowed the insert.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func ListPostings(ctx context.Context, db *sql.DB, opts ListPostingsOpts) ([]domain.Posting, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.QueryContext(ctx, `
SELECT company, title, location, description, compensation, source, posted_at, url
FROM postings
ORDER BY id
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(&p.Company, &p.Title, &p.Location, &p.Description, &p.Compensation, &p.Source, &p.PostedAt, &p.URL); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
