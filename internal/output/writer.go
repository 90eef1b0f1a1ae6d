package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const fileSuffix = "_persona.txt"

// StorageError reports a failure persisting a persona document.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("writing persona to %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Writer saves persona documents as <username>_persona.txt files.
type Writer struct {
	dir string
}

// NewWriter returns a Writer that writes into dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the file a persona for username is written to.
func (w *Writer) Path(username string) string {
	return filepath.Join(w.dir, username+fileSuffix)
}

// Save writes content verbatim, replacing any previous file for username,
// and returns the file path.
func (w *Writer) Save(username, content string) (string, error) {
	path := w.Path(username)
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", &StorageError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", &StorageError{Path: path, Err: err}
	}
	slog.Info("wrote persona", "path", path, "bytes", len(content))
	return path, nil
}
