// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

// ErrNotFound marks a lookup for an entry or sidecar that does not exist.
var ErrNotFound = errors.New("not found")
