// Package store provides common interfaces for collections of encoded levels.
package store

// Writer defines an interface for adding levels to a collection.
type Writer interface {
	// WriteRaw writes a single encoded level file.
	WriteRaw(id int32, name string, data []byte) error

	// Finalize completes the writing process: flushes buffers and writes indices.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadRaw reads a single encoded level file.
	// If the level does not exist, it returns nil with no error.
	ReadRaw(id int32) ([]byte, error)
}

type Visitor interface {
	// VisitLevels visits all levels in the collection, calling the visitor for each.
	// Order of levels is implementation-defined.
	VisitLevels(visitor func(id int32, name string, data []byte) error) error
}
