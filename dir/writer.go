package dir

import (
	"os"
	"path/filepath"

	"github.com/eak1mov/go-libedge/level"
)

// Writer implements store.Writer for levels in a directory.
type Writer struct {
	filePattern string
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/levels/level{id}.bin").
func NewWriter(filePattern string) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern}, nil
}

// WriteRaw writes the level file for id. The name is stored in the file
// header already and is ignored.
func (w *Writer) WriteRaw(id int32, name string, data []byte) error {
	filePath := formatPattern(w.filePattern, id)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}

// WriteLevel encodes l and writes it to the file for l.ID. An existing file is
// replaced atomically.
func (w *Writer) WriteLevel(l *level.Level, opts ...level.Option) error {
	filePath := formatPattern(w.filePattern, l.ID)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return level.WriteFile(filePath, l, opts...)
}
