// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hatchery-project/hatchery/journal"
	"github.com/hatchery-project/hatchery/launch"
	"github.com/hatchery-project/hatchery/lib/config"
	"github.com/hatchery-project/hatchery/lib/process"
	"github.com/hatchery-project/hatchery/lib/version"
	"github.com/hatchery-project/hatchery/shutdown"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	// Snapshot the environment before anything else touches the
	// process: this exact array backs the '*' launch method.
	startupEnviron := os.Environ()

	var (
		configPath  string
		filterPath  string
		journalPath string
		logFormat   string
		pause       time.Duration
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("hatchery", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to hatchery.yaml (default: $HATCHERY_CONFIG)")
	flagSet.StringVar(&filterPath, "filter", "", "filter file path (default: <CHILD_PATH>/<filter_file>)")
	flagSet.StringVar(&journalPath, "journal", "", "append a CBOR record of every launch to this file")
	flagSet.StringVar(&logFormat, "log-format", "", "log output format: auto, text, json")
	flagSet.DurationVar(&pause, "pause", 0, "foreground pause after a successful launch")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showVersion {
		fmt.Printf("hatchery %s\n", version.Info())
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if journalPath != "" {
		cfg.Journal = journalPath
	}
	if flagSet.Changed("pause") {
		cfg.ForegroundPause = pause.String()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	printEnviron(os.Stdout, startupEnviron)
	diagnose(logger, cfg)

	monitor := shutdown.NewMonitor()
	defer monitor.Stop()

	var journalWriter *journal.Writer
	if cfg.Journal != "" {
		journalWriter, err = journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer journalWriter.Close()
	}

	pauseDuration, err := cfg.PauseDuration()
	if err != nil {
		return fmt.Errorf("invalid foreground pause: %w", err)
	}
	launcher, err := launch.New(launch.Config{
		ChildBinary:     cfg.ChildBinary,
		StartupEnviron:  startupEnviron,
		ForegroundPause: pauseDuration,
		Journal:         journalWriter,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	loop := newCommandLoop(loopConfig{
		Launcher:       launcher,
		Monitor:        monitor,
		Config:         cfg,
		FilterOverride: filterPath,
		Logger:         logger,
		Input:          os.Stdin,
		Output:         os.Stdout,
		Styled:         term.IsTerminal(int(os.Stdout.Fd())),
	})
	return loop.run(context.Background())
}

// loadConfig loads the configuration: the --config path when given,
// otherwise HATCHERY_CONFIG, otherwise defaults.
func loadConfig(flagPath string) (*config.Config, error) {
	if flagPath != "" {
		return config.LoadFile(flagPath)
	}
	return config.Load()
}

// newLogger builds the process-wide logger on stderr. The auto format
// picks the text handler on a terminal and JSON when piped, so script
// and service captures stay machine-parseable.
func newLogger(format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	text := false
	switch format {
	case config.LogFormatText:
		text = true
	case config.LogFormatJSON:
		text = false
	default:
		text = term.IsTerminal(int(os.Stderr.Fd()))
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
