//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses the LIKE fallback on the captures table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error {
	// App, title and body are already stored in the captures table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled
// in). Results come back newest first; scores are positional so the ordering
// survives the similarity contract, nothing more.
func (db *DB) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT `+captureCols+`
		FROM captures
		WHERE app LIKE ? OR title LIKE ? OR body LIKE ?
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []Hit
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, Hit{CaptureRow: c})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Score = float64(len(out)-i) / float64(len(out))
	}
	return out, nil
}
