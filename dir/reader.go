package dir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libedge/level"
	"github.com/eak1mov/go-libedge/level/format"
)

// Reader implements store.Reader and store.Visitor for levels in a directory.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/levels/level{id}.bin").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	regexPattern := strings.ReplaceAll(regexp.QuoteMeta(filePattern), regexp.QuoteMeta(placeholder), "(?P<id>-?\\d+)")
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(filePattern, 0)
	path1 := formatPattern(filePattern, 1)
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	rootDir := path0

	return &Reader{filePattern, rootDir, pathRegex}, nil
}

func (r *Reader) ReadRaw(id int32) ([]byte, error) {
	data, err := os.ReadFile(formatPattern(r.filePattern, id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadLevel reads and decodes the level id. If the file does not exist, it
// returns nil with no error.
func (r *Reader) ReadLevel(id int32, opts ...level.Option) (*level.Level, error) {
	data, err := r.ReadRaw(id)
	if err != nil || data == nil {
		return nil, err
	}
	l, err := level.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", formatPattern(r.filePattern, id), err)
	}
	return l, nil
}

// VisitLevels walks the directory tree in lexical order. The level name is
// taken from the file header.
func (r *Reader) VisitLevels(visitor func(id int32, name string, data []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		id, err := strconv.ParseInt(matches[r.pathRegexp.SubexpIndex("id")], 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		header, err := format.DeserializeHeader(data)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}

		return visitor(int32(id), header.Name, data)
	})
}
