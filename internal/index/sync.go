package index

import (
	"log/slog"

	"github.com/nordvik/glance/internal/checksum"
	"github.com/nordvik/glance/internal/parser"
	"github.com/nordvik/glance/internal/storage"
)

// Sync walks the captures directory and brings the index up to date:
//   - new/changed sidecars are parsed and upserted
//   - sidecars removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteCapture(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses sidecar data and upserts it into the DB. The capture
// timestamp falls back to the numeric filename stem when the frontmatter
// carries none; the app falls back to "Unknown".
func indexFile(db *DB, path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}

	ts := res.Timestamp
	if ts == 0 {
		ts = parser.TimestampFromPath(path)
	}
	app := res.App
	if app == "" {
		app = "Unknown"
	}

	return db.UpsertCapture(CaptureRow{
		Path:      path,
		App:       app,
		Title:     res.Title,
		Body:      res.Body,
		Timestamp: ts,
		Checksum:  checksum.Sum(data),
	})
}
