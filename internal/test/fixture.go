package test

import (
	"os"
	"path/filepath"
	"time"
)

// Files maps slash separated relative paths to their content.
type Files map[string]string

// WriteFiles creates the given files below a fresh temporary directory
// and returns its path.
func (h *Helper) WriteFiles(files Files) string {
	h.tb.Helper()
	dir := h.tb.TempDir()
	h.WriteFilesTo(dir, files)
	return dir
}

func (h *Helper) WriteFilesTo(dir string, files Files) {
	h.tb.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		h.Must(os.MkdirAll(filepath.Dir(p), 0o755))
		h.Must(os.WriteFile(p, []byte(content), 0o644))
	}
}

// Touch sets the modification time of the given file.
func (h *Helper) Touch(path string, mtime time.Time) {
	h.tb.Helper()
	h.Must(os.Chtimes(path, mtime, mtime))
}

func (h *Helper) ReadFile(path string) string {
	h.tb.Helper()
	b, err := os.ReadFile(path)
	h.Must(err)
	return string(b)
}
