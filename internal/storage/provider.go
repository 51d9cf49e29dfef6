// Package storage defines the captures-directory abstraction. A capture is
// a Markdown sidecar file (OCR text plus frontmatter) living next to its
// screenshot image.
package storage

import "time"

// SidecarMeta is a lightweight representation returned by list operations.
type SidecarMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for capture file operations.
type Provider interface {
	// List returns metadata for every .md sidecar under dir (relative to the captures root).
	List(dir string) ([]SidecarMeta, error)
	// Read returns the raw bytes of the file at path (relative to the captures root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the captures root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to the captures root).
	Delete(path string) error
	// Usage returns the total size in bytes of everything under the captures
	// root, screenshots included.
	Usage() (int64, error)
}
