package index

import (
	"errors"
	"os"
	"testing"

	"github.com/nordvik/glance/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "glance-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustUpsert(t *testing.T, db *DB, c CaptureRow) {
	t.Helper()
	if err := db.UpsertCapture(c); err != nil {
		t.Fatalf("UpsertCapture(%q): %v", c.Path, err)
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM captures`).Scan(&count); err != nil {
		t.Fatalf("captures table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "100.md", App: "Code", Title: "main.go", Body: "text", Timestamp: 100, Checksum: "abc123"})

	cs, err := db.GetChecksum("100.md")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestUpsertKeepsIDStable(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "same.md", App: "Code", Timestamp: 1, Checksum: "1"})

	rows, _, err := db.ListPage(1, 10, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	id := rows[0].ID

	mustUpsert(t, db, CaptureRow{Path: "same.md", App: "Firefox", Timestamp: 2, Checksum: "2"})

	got, err := db.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.App != "Firefox" || got.Checksum != "2" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetByID(9999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCapture(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "del.md", Checksum: "x", Timestamp: 1})

	if err := db.DeleteCapture("del.md"); err != nil {
		t.Fatalf("DeleteCapture: %v", err)
	}
	cs, _ := db.GetChecksum("del.md")
	if cs != "" {
		t.Errorf("deleted capture still has checksum %q", cs)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestListPage_OrderAndPagination(t *testing.T) {
	db := testDB(t)
	for i, ts := range []int64{100, 300, 200} {
		mustUpsert(t, db, CaptureRow{Path: string(rune('a'+i)) + ".md", App: "Code", Timestamp: ts, Checksum: "x"})
	}

	rows, total, err := db.ListPage(1, 2, ListFilter{})
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(rows) != 2 || rows[0].Timestamp != 300 || rows[1].Timestamp != 200 {
		t.Errorf("page 1 = %+v, want newest first", rows)
	}

	rows, _, err = db.ListPage(2, 2, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Timestamp != 100 {
		t.Errorf("page 2 = %+v, want the oldest row", rows)
	}
}

func TestListPage_Filters(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "1.md", App: "Code", Timestamp: 100, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "2.md", App: "Firefox", Timestamp: 200, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "3.md", App: "Code", Timestamp: 300, Checksum: "x"})

	start, end := int64(150), int64(350)
	rows, total, err := db.ListPage(1, 10, ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("date filter: total=%d rows=%d, want 2/2", total, len(rows))
	}

	rows, total, err = db.ListPage(1, 10, ListFilter{App: "Code"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("app filter total = %d, want 2", total)
	}
	for _, r := range rows {
		if r.App != "Code" {
			t.Errorf("app filter leaked %q", r.App)
		}
	}
}

func TestTimestampsNewestFirst(t *testing.T) {
	db := testDB(t)
	for i, ts := range []int64{50, 150, 100} {
		mustUpsert(t, db, CaptureRow{Path: string(rune('a'+i)) + ".md", Timestamp: ts, Checksum: "x"})
	}
	got, err := db.Timestamps()
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{150, 100, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("timestamps = %v, want %v", got, want)
		}
	}
}

func TestAppCountsBusiestFirst(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "1.md", App: "Code", Timestamp: 1, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "2.md", App: "Code", Timestamp: 2, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "3.md", App: "Firefox", Timestamp: 3, Checksum: "x"})

	counts, err := db.AppCounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 || counts[0].App != "Code" || counts[0].Count != 2 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestHourCounts(t *testing.T) {
	db := testDB(t)
	// 1756090800 = 2026-08-25 03:00:00 UTC; shift to hours 3 and 4.
	mustUpsert(t, db, CaptureRow{Path: "1.md", Timestamp: 1756090800, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "2.md", Timestamp: 1756090800 + 120, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "3.md", Timestamp: 1756090800 + 3600, Checksum: "x"})

	counts, err := db.HourCounts()
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[int]int)
	for _, c := range counts {
		got[c.Hour] = c.Count
	}
	if got[3] != 2 || got[4] != 1 {
		t.Errorf("hour counts = %v, want hour 3 -> 2 and hour 4 -> 1", got)
	}
}

func TestBounds(t *testing.T) {
	db := testDB(t)

	first, last, err := db.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if first != nil || last != nil {
		t.Errorf("empty index bounds = %v/%v, want nils", first, last)
	}

	mustUpsert(t, db, CaptureRow{Path: "1.md", Timestamp: 100, Checksum: "x"})
	mustUpsert(t, db, CaptureRow{Path: "2.md", Timestamp: 300, Checksum: "x"})

	first, last, err = db.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if first == nil || last == nil || *first != 100 || *last != 300 {
		t.Errorf("bounds = %v/%v, want 100/300", first, last)
	}
}

func TestTotalCount(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "1.md", Timestamp: 1, Checksum: "x"})
	n, err := db.TotalCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("total = %d, want 1", n)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	mustUpsert(t, db, CaptureRow{Path: "s.md", App: "Code", Title: "Search Me", Body: "uniqueword appears here", Timestamp: 10, Checksum: "x"})

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("search results = %+v, want 1 hit for s.md", results)
	}
	if results[0].Score < 0 {
		t.Errorf("score = %v, want non-negative", results[0].Score)
	}
}
