package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-libedge/level"
	"github.com/google/subcommands"
)

type infoCmd struct{}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print a short summary of level files" }
func (c *infoCmd) Usage() string {
	return "levelutils info <path>...\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {}

func printInfo(path string, l *level.Level) {
	origin, bounds := l.Static.Bounds()
	fmt.Printf("%s: level %d %q\n", path, l.ID, l.Name)
	fmt.Printf("  size %v, blocks at %v size %v\n", l.Size(), origin, bounds)
	fmt.Printf("  times %v, theme %v, music %v, legacy music %d, zoom %d\n", l.Times, l.Theme, l.Music, l.MusicJava, l.Camera.Zoom)

	counts := make(map[level.Kind]int)
	for _, part := range l.Parts() {
		counts[part.Kind()]++
	}
	for kind := level.KindMovingPlatform; kind <= level.KindExitPoint; kind++ {
		if counts[kind] > 0 {
			fmt.Printf("  %v: %d\n", kind, counts[kind])
		}
	}
	if len(l.Sequences) > 0 {
		fmt.Printf("  button sequences: %d\n", len(l.Sequences))
	}
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	_, logger := environment(args)

	if f.NArg() == 0 {
		log.Println("no level files given")
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		l, err := level.ReadFile(path, levelOptions(logger)...)
		if err != nil {
			log.Println(err)
			status = subcommands.ExitFailure
			continue
		}
		printInfo(path, l)
	}
	return status
}
