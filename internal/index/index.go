package index

// CaptureIndex defines the interface for capture indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type CaptureIndex interface {
	UpsertCapture(c CaptureRow) error
	DeleteCapture(path string) error
	GetByID(id int64) (*CaptureRow, error)
	ListPage(page, limit int, f ListFilter) ([]CaptureRow, int, error)
	Search(query string, limit int) ([]Hit, error)
	Timestamps() ([]int64, error)
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	TotalCount() (int, error)
	AppCounts() ([]AppCount, error)
	HourCounts() ([]HourCount, error)
	Bounds() (first, last *int64, err error)
	Close() error
}

// Verify *DB satisfies CaptureIndex at compile time.
var _ CaptureIndex = (*DB)(nil)
