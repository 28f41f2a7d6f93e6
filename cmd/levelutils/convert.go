package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/eak1mov/go-libedge/pack"
	"github.com/eak1mov/go-libedge/store"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	inputFormat  string
	inputPath    string
	outputFormat string
	outputPath   string
	compression  string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "convert between level directories and packs" }
func (c *convertCmd) Usage() string {
	return "levelutils convert -i <path> -o <path> [-if <format> | -of <format> | -c <compression>]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path (default levels.pattern from config)")
	f.StringVar(&c.inputFormat, "if", "", "Input format (pack, dir)")
	f.StringVar(&c.outputPath, "o", "", "Output path (default levels.pattern from config)")
	f.StringVar(&c.outputFormat, "of", "", "Output format (pack, dir)")
	f.StringVar(&c.compression, "c", "", "Pack compression (none, gzip, zstd; default pack.compression from config)")
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...any) subcommands.ExitStatus {
	cfg, logger := environment(args)

	if c.inputPath == "" {
		c.inputPath = cfg.Levels.Pattern
	}
	if c.outputPath == "" {
		c.outputPath = cfg.Levels.Pattern
	}
	if c.compression == "" {
		c.compression = cfg.Pack.Compression
	}
	compression, err := pack.ParseCompression(c.compression)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	reader, err := openReader(deduceFormat(c.inputFormat, c.inputPath), c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	writer, err := openWriter(
		deduceFormat(c.outputFormat, c.outputPath),
		c.outputPath,
		pack.WithCompression(compression),
		pack.WithMetadata(cfg.Pack.Metadata),
		pack.WithLogger(logger),
	)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = store.Copy(writer, reader, func(store.Entry) { bar.Add(1) })
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
