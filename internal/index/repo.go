package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nordvik/glance/internal/apperr"
)

// CaptureRow represents a row in the captures table.
type CaptureRow struct {
	ID        int64
	Path      string
	App       string
	Title     string
	Body      string
	Timestamp int64
	Checksum  string
}

// Hit is one search result: a capture plus its relevance score
// (higher = more relevant).
type Hit struct {
	CaptureRow
	Score float64
}

// AppCount is one row of the per-app histogram.
type AppCount struct {
	App   string
	Count int
}

// HourCount is one bucket of the hourly histogram. Hours with no captures
// are absent.
type HourCount struct {
	Hour  int
	Count int
}

// ListFilter holds the optional filters for paginated listing.
type ListFilter struct {
	StartDate *int64
	EndDate   *int64
	App       string
}

// UpsertCapture inserts or replaces a capture and its FTS entry within a
// transaction. The autoincrement id stays stable across updates to the same
// path.
func (db *DB) UpsertCapture(c CaptureRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO captures (path, app, title, body, ts, checksum)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			app      = excluded.app,
			title    = excluded.title,
			body     = excluded.body,
			ts       = excluded.ts,
			checksum = excluded.checksum
	`, c.Path, c.App, c.Title, c.Body, c.Timestamp, c.Checksum)
	if err != nil {
		return fmt.Errorf("index: upsert capture: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, c.Path, c.App, c.Title, c.Body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCapture removes a capture and its FTS entry.
func (db *DB) DeleteCapture(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM captures WHERE path = ?`, path)

	return tx.Commit()
}

const captureCols = `id, path, app, title, body, ts, checksum`

func scanCapture(row interface{ Scan(...any) error }) (CaptureRow, error) {
	var c CaptureRow
	err := row.Scan(&c.ID, &c.Path, &c.App, &c.Title, &c.Body, &c.Timestamp, &c.Checksum)
	return c, err
}

// GetByID returns a capture by its entry id, or apperr.ErrNotFound.
func (db *DB) GetByID(id int64) (*CaptureRow, error) {
	c, err := scanCapture(db.conn.QueryRow(
		`SELECT `+captureCols+` FROM captures WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get by id: %w", err)
	}
	return &c, nil
}

// ListPage returns one page of captures, newest first, plus the total count
// matching the filter. page is 1-based.
func (db *DB) ListPage(page, limit int, f ListFilter) ([]CaptureRow, int, error) {
	where, args := filterClause(f)

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM captures`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := db.conn.Query(
		`SELECT `+captureCols+` FROM captures`+where+` ORDER BY ts DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list page: %w", err)
	}
	defer rows.Close()

	var out []CaptureRow
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func filterClause(f ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.StartDate != nil {
		conds = append(conds, "ts >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conds = append(conds, "ts <= ?")
		args = append(args, *f.EndDate)
	}
	if f.App != "" {
		conds = append(conds, "app = ?")
		args = append(args, f.App)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Timestamps returns every capture timestamp, newest first.
func (db *DB) Timestamps() ([]int64, error) {
	rows, err := db.conn.Query(`SELECT ts FROM captures ORDER BY ts DESC`)
	if err != nil {
		return nil, fmt.Errorf("index: timestamps: %w", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// GetChecksum returns the stored checksum for a path, or empty string if
// not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM captures WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed capture.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM captures`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// TotalCount returns the number of indexed captures.
func (db *DB) TotalCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: total count: %w", err)
	}
	return n, nil
}

// AppCounts returns per-app capture counts, busiest first.
func (db *DB) AppCounts() ([]AppCount, error) {
	rows, err := db.conn.Query(`
		SELECT app, COUNT(*) AS n
		FROM captures
		GROUP BY app
		ORDER BY n DESC, app ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("index: app counts: %w", err)
	}
	defer rows.Close()
	var out []AppCount
	for rows.Next() {
		var a AppCount
		if err := rows.Scan(&a.App, &a.Count); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// HourCounts returns the hourly activity histogram. Hours with no captures
// are absent, which the API contract treats as zero.
func (db *DB) HourCounts() ([]HourCount, error) {
	rows, err := db.conn.Query(`
		SELECT CAST(strftime('%H', ts, 'unixepoch') AS INTEGER) AS hour, COUNT(*)
		FROM captures
		GROUP BY hour
		ORDER BY hour
	`)
	if err != nil {
		return nil, fmt.Errorf("index: hour counts: %w", err)
	}
	defer rows.Close()
	var out []HourCount
	for rows.Next() {
		var h HourCount
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Bounds returns the oldest and newest capture timestamps, or nils when the
// index is empty.
func (db *DB) Bounds() (first, last *int64, err error) {
	var lo, hi sql.NullInt64
	err = db.conn.QueryRow(`SELECT MIN(ts), MAX(ts) FROM captures`).Scan(&lo, &hi)
	if err != nil {
		return nil, nil, fmt.Errorf("index: bounds: %w", err)
	}
	if lo.Valid {
		first = &lo.Int64
	}
	if hi.Valid {
		last = &hi.Int64
	}
	return first, last, nil
}
