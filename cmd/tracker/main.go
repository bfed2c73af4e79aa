package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/BBBtp/Tracker/internal/cli"
	"github.com/BBBtp/Tracker/internal/config"
	"github.com/BBBtp/Tracker/internal/errors"
	"github.com/BBBtp/Tracker/internal/feed"
	"github.com/BBBtp/Tracker/internal/logger"
	"github.com/BBBtp/Tracker/internal/stats"
	"github.com/BBBtp/Tracker/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:""`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize tracker storage."`
	Tracker  cli.TrackerCmd  `cmd:"" help:"Manage trackers."`
	Complete cli.CompleteCmd `cmd:"" help:"Mark or unmark a tracker for a day."`
	Category cli.CategoryCmd `cmd:"" help:"Manage categories."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show the statistics dashboard."`
	Export   cli.ExportCmd   `cmd:"" help:"Export trackers and completion history."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tracker"),
		kong.Description("Habit and event tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	configPath := CLI.Config
	if configPath == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			errors.Fatal(err)
		}
		configPath = filepath.Join(dir, "config.toml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	store := sqlite.NewStore(cfg.DatabasePath)
	statsSvc := stats.New(store)

	appCtx := &cli.Context{
		Store: store,
		Feed:  feed.New(store, statsSvc),
		Stats: statsSvc,
	}

	// Every command except init expects an existing database.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
