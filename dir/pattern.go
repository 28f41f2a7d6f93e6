// Package dir reads and writes levels stored as individual files with paths
// like "/levels/level{id}.bin".
package dir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPattern = errors.New("libedge: invalid file pattern")

const placeholder = "{id}"

func validatePattern(pattern string) error {
	if !strings.Contains(pattern, placeholder) {
		return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, placeholder)
	}
	return nil
}

func formatPattern(pattern string, id int32) string {
	return strings.ReplaceAll(pattern, placeholder, strconv.Itoa(int(id)))
}
