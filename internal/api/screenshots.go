package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ScreenshotHandler serves capture screenshots from the captures directory.
type ScreenshotHandler struct {
	capturesRoot string
}

// NewScreenshotHandler creates a handler rooted at the captures directory.
func NewScreenshotHandler(capturesRoot string) *ScreenshotHandler {
	return &ScreenshotHandler{capturesRoot: capturesRoot}
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the captures dir.
func (h *ScreenshotHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	// Reject anything with path separators or traversal.
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.capturesRoot, cleaned)
	// Double-check the resolved path is under the captures dir.
	if !strings.HasPrefix(abs, h.capturesRoot+string(os.PathSeparator)) && abs != h.capturesRoot {
		return "", fmt.Errorf("path escapes captures directory")
	}
	return abs, nil
}

// ServeFile handles GET /static/{filename}.
func (h *ScreenshotHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
