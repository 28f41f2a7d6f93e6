package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/eak1mov/go-libedge/index"
	"github.com/eak1mov/go-libedge/level"
	"github.com/google/subcommands"
)

type exportCmd struct {
	inputPath       string
	outputIndexPath string
}

func (c *exportCmd) Name() string     { return "export_index" }
func (c *exportCmd) Synopsis() string { return "export the placement index of a level" }
func (c *exportCmd) Usage() string {
	return "levelutils export_index -i <path> -o <path>\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input level file path")
	f.StringVar(&c.outputIndexPath, "o", "", "Output index file path")
}

func (c *exportCmd) export(l *level.Level) error {
	items, err := index.FromLevel(l)
	if err != nil {
		return err
	}

	file, err := os.Create(c.outputIndexPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := index.WriteAll(items, writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...any) subcommands.ExitStatus {
	_, logger := environment(args)

	l, err := level.ReadFile(c.inputPath, levelOptions(logger)...)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := c.export(l); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
