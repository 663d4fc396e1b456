// internal/redirect/store.go
//
// Redirect table persistence.  The build replaces the whole table in one
// transaction; serve instances only ever read it.

package redirect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// Save replaces the redirect table with rows.
func Save(ctx context.Context, db *sqlx.DB, rows []Row) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("redirect: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM redirect`); err != nil {
		return fmt.Errorf("redirect: clear table: %w", err)
	}
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO redirect (from_path, to_path) VALUES (?, ?)`,
			r.FromPath, r.ToPath); err != nil {
			return fmt.Errorf("redirect: insert %s: %w", r.FromPath, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("redirect: commit: %w", err)
	}
	return nil
}

// WriteJSON emits rows as one JSON object (legacy path → canonical path)
// for web servers that consume the table directly.
func WriteJSON(path string, rows []Row) error {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.FromPath] = r.ToPath
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("redirect: marshal: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("redirect: write %s: %w", path, err)
	}
	return nil
}
