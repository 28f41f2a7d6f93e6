package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libedge/internal/config"
	"github.com/eak1mov/go-libedge/level"
	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default $"+config.EnvPath+")")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&dumpCmd{}, "")
	subcommands.Register(&roundtripCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&convertCmd{}, "")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	os.Exit(int(subcommands.Execute(context.Background(), cfg)))
}

// environment unpacks the config passed to every command and builds the
// logger used by the library.
func environment(args []any) (*config.Config, *slog.Logger) {
	cfg := config.Default()
	if len(args) > 0 {
		cfg = args[0].(*config.Config)
	}
	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cfg, logger
}

func levelOptions(logger *slog.Logger) []level.Option {
	return []level.Option{level.WithLogger(logger)}
}
