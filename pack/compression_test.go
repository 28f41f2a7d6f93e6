package pack_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eak1mov/go-libedge/pack"
	"github.com/google/go-cmp/cmp"
)

func TestCompression(t *testing.T) {
	dataCases := []struct {
		Name string
		Data []byte
	}{
		{Name: "Repeat", Data: bytes.Repeat([]byte{42}, 100500)},
		{Name: "Foobar", Data: []byte("foobar")},
	}
	compressionCases := []struct {
		Name        string
		Compression pack.Compression
	}{
		{Name: "None", Compression: pack.CompressionNone},
		{Name: "Gzip", Compression: pack.CompressionGzip},
		{Name: "Zstd", Compression: pack.CompressionZstd},
	}
	for _, dc := range dataCases {
		for _, cc := range compressionCases {
			t.Run(dc.Name+cc.Name, func(t *testing.T) {
				compressed, err := pack.Compress(dc.Data, cc.Compression)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				decompressed, err := pack.Decompress(compressed, cc.Compression)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !cmp.Equal(dc.Data, decompressed) {
					t.Errorf("Decompress(Compress(input)) != input")
				}
			})
		}
	}
}

func TestCompressionUnsupported(t *testing.T) {
	if _, err := pack.Compress([]byte("x"), pack.CompressionUnknown); !errors.Is(err, pack.ErrUnsupported) {
		t.Errorf("Compress error = %v, want ErrUnsupported", err)
	}
	if _, err := pack.Decompress([]byte("x"), pack.Compression(42)); !errors.Is(err, pack.ErrUnsupported) {
		t.Errorf("Decompress error = %v, want ErrUnsupported", err)
	}
}

func TestParseCompression(t *testing.T) {
	for _, c := range []pack.Compression{pack.CompressionNone, pack.CompressionGzip, pack.CompressionZstd} {
		got, err := pack.ParseCompression(c.String())
		if err != nil {
			t.Fatalf("ParseCompression(%q) failed: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseCompression(%q) = %v, want = %v", c.String(), got, c)
		}
	}
	if _, err := pack.ParseCompression("unknown"); !errors.Is(err, pack.ErrUnsupported) {
		t.Errorf("ParseCompression(unknown) error = %v, want ErrUnsupported", err)
	}
}
