//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"math"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS captures_fts USING fts5(
			path UNINDEXED,
			app,
			title,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, path, app, title, body string) error {
	_, _ = tx.Exec(`DELETE FROM captures_fts WHERE path = ?`, path)
	_, err := tx.Exec(`INSERT INTO captures_fts (path, app, title, body) VALUES (?, ?, ?, ?)`,
		path, app, title, body)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM captures_fts WHERE path = ?`, path)
}

// Search performs an FTS5 full-text search ranked by bm25. The bm25 rank is
// negated into a positive relevance score (higher = more relevant) and
// rounded to 4 decimals, matching the API contract.
func (db *DB) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT c.id, c.path, c.app, c.title, c.body, c.ts, c.checksum,
		       bm25(captures_fts) AS rank
		FROM captures_fts
		JOIN captures c ON c.path = captures_fts.path
		WHERE captures_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []Hit
	for rows.Next() {
		var h Hit
		var rank float64
		if err := rows.Scan(&h.ID, &h.Path, &h.App, &h.Title, &h.Body, &h.Timestamp, &h.Checksum, &rank); err != nil {
			return nil, err
		}
		h.Score = math.Round(math.Max(-rank, 0)*10000) / 10000
		out = append(out, h)
	}
	return out, rows.Err()
}
