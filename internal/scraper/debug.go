package scraper

import (
	"log/slog"
	"os"
	"path/filepath"
)

// DebugSink writes rendered page HTML to disk for offline inspection.
// Strictly best effort: a nil sink is valid, and write failures are logged
// without ever affecting control flow.
type DebugSink struct {
	dir string
}

// NewDebugSink returns a sink writing into dir, or nil when dir is empty.
func NewDebugSink(dir string) *DebugSink {
	if dir == "" {
		return nil
	}
	return &DebugSink{dir: dir}
}

// Dump writes html under the sink directory.
func (d *DebugSink) Dump(name, html string) {
	if d == nil {
		return
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		slog.Warn("Failed to create debug directory", "dir", d.dir, "error", err)
		return
	}
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		slog.Warn("Failed to save page source", "path", path, "error", err)
		return
	}
	slog.Debug("Saved page source", "path", path)
}
