package internal

import (
	"iter"
	"testing"

	"github.com/eak1mov/go-libedge/level"
)

// TestdataCases yields the encoded test levels by name.
func TestdataCases(t *testing.T) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		t.Helper()

		if !yield("minimal", MinimalFile()) {
			return
		}

		demo, err := level.Encode(DemoLevel())
		if err != nil {
			t.Fatal(err)
		}
		if !yield("demo", demo) {
			return
		}

		empty := level.New(3, pt(0, 0, 0), pt(0, 0, 1))
		empty.Name = "żółw"
		data, err := level.Encode(empty)
		if err != nil {
			t.Fatal(err)
		}
		yield("empty", data)
	}
}
