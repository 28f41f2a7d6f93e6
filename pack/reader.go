// Package pack stores many level files in one SQLite database, each blob
// compressed on its own.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package pack

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-libedge/level"
)

type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens the pack at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT compression, level_data FROM levels WHERE level_id = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadRaw returns the decompressed level file with the given id, or nil if
// the pack has no such level.
func (r *Reader) ReadRaw(id int32) ([]byte, error) {
	var compression uint8
	var data []byte
	if err := r.stmt.QueryRow(id).Scan(&compression, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return Decompress(data, Compression(compression))
}

// ReadLevel decodes the level with the given id. It returns nil, nil if the
// pack has no such level.
func (r *Reader) ReadLevel(id int32, opts ...level.Option) (*level.Level, error) {
	data, err := r.ReadRaw(id)
	if err != nil || data == nil {
		return nil, err
	}
	l, err := level.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", id, err)
	}
	return l, nil
}

// VisitLevels calls visitor for every level in id order with the
// decompressed level file.
func (r *Reader) VisitLevels(visitor func(id int32, name string, data []byte) error) error {
	rows, err := r.db.Query("SELECT level_id, level_name, compression, level_data FROM levels ORDER BY level_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int32
		var name string
		var compression uint8
		var blob []byte

		if err := rows.Scan(&id, &name, &compression, &blob); err != nil {
			return err
		}

		data, err := Decompress(blob, Compression(compression))
		if err != nil {
			return fmt.Errorf("level %d: %w", id, err)
		}

		if err := visitor(id, name, data); err != nil {
			return err
		}
	}

	return rows.Err()
}
