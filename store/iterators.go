package store

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// Entry identifies a level in a collection.
type Entry struct {
	ID   int32
	Name string
}

// IterLevels returns an iterator over all levels in the collection.
// Iteration panics on unrecoverable errors.
func IterLevels(v Visitor) iter.Seq2[Entry, []byte] {
	return func(yield func(Entry, []byte) bool) {
		err := v.VisitLevels(func(id int32, name string, data []byte) error {
			if !yield(Entry{ID: id, Name: name}, data) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// Copy writes every level of src to dst and finalizes dst. The progress
// callback, if not nil, is called after each level.
func Copy(dst Writer, src Visitor, progress func(Entry)) error {
	err := src.VisitLevels(func(id int32, name string, data []byte) error {
		if err := dst.WriteRaw(id, name, data); err != nil {
			return err
		}
		if progress != nil {
			progress(Entry{ID: id, Name: name})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return dst.Finalize()
}
