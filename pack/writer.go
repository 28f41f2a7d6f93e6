package pack

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eak1mov/go-libedge/level"
)

// Writer stores encoded levels in a new pack file.
type Writer struct {
	db          *sql.DB
	stmt        *sql.Stmt
	compression Compression
	logger      *slog.Logger
}

type writerConfig struct {
	Metadata    map[string]string
	Compression Compression
	Logger      *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithCompression sets the compression of levels written afterwards.
// The default is CompressionGzip.
func WithCompression(compression Compression) WriterOption {
	return func(c *writerConfig) { c.Compression = compression }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a pack at filePath. It applies given options and creates
// the metadata and levels tables.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Compression: CompressionGzip,
		Logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if _, err := Compress(nil, config.Compression); err != nil {
		return nil, err
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE levels (
			level_id INTEGER,
			level_name TEXT,
			compression INTEGER,
			level_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO levels (level_id, level_name, compression, level_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db, stmt, config.Compression, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

// WriteRaw stores an already encoded level file.
func (w *Writer) WriteRaw(id int32, name string, data []byte) error {
	compressed, err := Compress(data, w.compression)
	if err != nil {
		return err
	}
	_, err = w.stmt.Exec(id, name, uint8(w.compression), compressed)
	return err
}

func (w *Writer) WriteLevel(l *level.Level) error {
	data, err := level.Encode(l, level.WithLogger(w.logger))
	if err != nil {
		return err
	}
	return w.WriteRaw(l.ID, l.Name, data)
}

// Finalize creates the level index. Writing the same level id twice makes it fail.
func (w *Writer) Finalize() error {
	w.logger.Debug("libedge: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX level_index ON levels (level_id)")
	w.logger.Debug("libedge: done!")
	return err
}
