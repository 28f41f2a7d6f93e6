package format

import (
	"errors"
	"fmt"
)

var ErrCorrupt = errors.New("libedge: corrupt level data")
var ErrInconsistent = errors.New("libedge: inconsistent level")

// CorruptError describes a failed structural check. Offset is the position of the
// failing field, or -1 when the check spans a whole section (e.g. cross references).
type CorruptError struct {
	Section string
	Offset  int
	Reason  string
	Err     error
}

func (e *CorruptError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrCorrupt, e.Section)
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *CorruptError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCorrupt, e.Err}
	}
	return []error{ErrCorrupt}
}

func corruptf(section string, format string, args ...any) error {
	return &CorruptError{Section: section, Offset: -1, Reason: fmt.Sprintf(format, args...)}
}

func inconsistentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
}
