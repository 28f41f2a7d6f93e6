package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-libedge/geom"
	"github.com/eak1mov/go-libedge/level"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type levelDump struct {
	ID        int32          `yaml:"id"`
	Name      string         `yaml:"name"`
	Size      [3]int         `yaml:"size,flow"`
	Times     []uint16       `yaml:"times,flow"`
	Theme     string         `yaml:"theme"`
	Music     string         `yaml:"music"`
	MusicJava int            `yaml:"legacy_music"`
	Zoom      int16          `yaml:"zoom"`
	Parts     []partDump     `yaml:"parts"`
	Sequences []sequenceDump `yaml:"sequences,omitempty"`
}

type partDump struct {
	Kind     string `yaml:"kind"`
	Position [3]int `yaml:"position,flow"`
	Slot     int    `yaml:"slot"`
}

type sequenceDump struct {
	Buttons [][3]int `yaml:"buttons,flow"`
	InOrder bool     `yaml:"in_order"`
	Events  int      `yaml:"events"`
}

func triple(p geom.Point3D) [3]int {
	return [3]int{p.X, p.Y, p.Z}
}

func dumpLevel(l *level.Level, opts []level.Option) (*levelDump, error) {
	slots, err := level.Layout(l, opts...)
	if err != nil {
		return nil, err
	}

	size := l.Size()
	d := &levelDump{
		ID:        l.ID,
		Name:      l.Name,
		Size:      [3]int{size.X, size.Y, size.Z},
		Times:     l.Times[:],
		Theme:     l.Theme.String(),
		Music:     l.Music.String(),
		MusicJava: int(l.MusicJava),
		Zoom:      l.Camera.Zoom,
	}
	for _, s := range slots {
		d.Parts = append(d.Parts, partDump{Kind: s.Kind.String(), Position: triple(s.Position), Slot: s.Index})
	}

	positions := make(map[*level.Button]geom.Point3D)
	for _, placed := range level.PartsOf[*level.Button](l) {
		positions[placed.Part] = placed.Position
	}
	for _, seq := range l.Sequences {
		sd := sequenceDump{InOrder: seq.InOrder, Events: len(seq.Events)}
		for _, b := range seq.Buttons {
			sd.Buttons = append(sd.Buttons, triple(positions[b]))
		}
		d.Sequences = append(d.Sequences, sd)
	}
	return d, nil
}

type dumpCmd struct{}

func (c *dumpCmd) Name() string     { return "dump" }
func (c *dumpCmd) Synopsis() string { return "print level contents as YAML" }
func (c *dumpCmd) Usage() string {
	return "levelutils dump <path>\n"
}
func (c *dumpCmd) SetFlags(f *flag.FlagSet) {}

func (c *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	_, logger := environment(args)

	if f.NArg() != 1 {
		log.Println("expected one level file")
		return subcommands.ExitUsageError
	}

	opts := levelOptions(logger)
	l, err := level.ReadFile(f.Arg(0), opts...)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	d, err := dumpLevel(l, opts)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := encoder.Close(); err != nil {
		log.Println(fmt.Errorf("failed to write yaml: %w", err))
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
