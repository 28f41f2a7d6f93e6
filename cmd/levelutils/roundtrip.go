package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-libedge/level"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type roundtripCmd struct {
	strict bool
}

func (c *roundtripCmd) Name() string     { return "roundtrip" }
func (c *roundtripCmd) Synopsis() string { return "check that level files survive decode and encode" }
func (c *roundtripCmd) Usage() string {
	return "levelutils roundtrip [-strict] <path>...\n"
}
func (c *roundtripCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Require re-encoded files to be identical to the input")
}

type roundtripResult struct {
	identical bool
}

// roundtrip decodes data, encodes it and checks that a second pass produces
// the same bytes.
func roundtrip(data []byte, opts []level.Option) (roundtripResult, error) {
	l, err := level.Decode(data, opts...)
	if err != nil {
		return roundtripResult{}, fmt.Errorf("decode: %w", err)
	}
	encoded, err := level.Encode(l, opts...)
	if err != nil {
		return roundtripResult{}, fmt.Errorf("encode: %w", err)
	}
	again, err := level.Decode(encoded, opts...)
	if err != nil {
		return roundtripResult{}, fmt.Errorf("decode re-encoded: %w", err)
	}
	reencoded, err := level.Encode(again, opts...)
	if err != nil {
		return roundtripResult{}, fmt.Errorf("encode again: %w", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		return roundtripResult{}, fmt.Errorf("encoding is not stable")
	}
	return roundtripResult{identical: bytes.Equal(data, encoded)}, nil
}

func (c *roundtripCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	_, logger := environment(args)
	opts := levelOptions(logger)

	var failed, identical int
	bar := progressbar.NewOptions(f.NArg(), progressbar.OptionShowCount())
	for _, path := range f.Args() {
		bar.Add(1)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Println(err)
			failed++
			continue
		}
		result, err := roundtrip(data, opts)
		switch {
		case err != nil:
			log.Printf("%s: %v", path, err)
			failed++
		case result.identical:
			identical++
		case c.strict:
			log.Printf("%s: re-encoded file differs", path)
			failed++
		}
	}
	bar.Finish()
	fmt.Println()

	fmt.Printf("%d files, %d identical, %d failed\n", f.NArg(), identical, failed)
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
