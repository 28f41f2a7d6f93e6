package main

import (
	"fmt"
	"strings"

	"github.com/eak1mov/go-libedge/dir"
	"github.com/eak1mov/go-libedge/pack"
	"github.com/eak1mov/go-libedge/store"
)

func deduceFormat(format, filePath string) string {
	if format == "" && (strings.HasSuffix(filePath, ".db") || strings.HasSuffix(filePath, ".sqlite")) {
		return "pack"
	}
	return format
}

func openReader(format, filePath string) (store.Visitor, error) {
	switch format {
	case "pack":
		return pack.NewReader(filePath)
	case "dir", "":
		return dir.NewReader(filePath)
	}
	return nil, fmt.Errorf("invalid input format: %q", format)
}

func openWriter(format, filePath string, opts ...pack.WriterOption) (store.Writer, error) {
	switch format {
	case "pack":
		return pack.NewWriter(filePath, opts...)
	case "dir", "":
		return dir.NewWriter(filePath)
	}
	return nil, fmt.Errorf("invalid output format: %q", format)
}
