// Package main is the entry point for joyride.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/joyride/internal/app"
	"github.com/dshills/joyride/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// scriptList collects repeated -script flags.
type scriptList []string

func (s *scriptList) String() string { return strings.Join(*s, ",") }

func (s *scriptList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseFlags() app.Options {
	var opts app.Options
	var scripts scriptList
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (yaml, toml or json)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Backend, "backend", "", "Input backend: "+strings.Join(config.Backends, ", "))
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Var(&scripts, "script", "Lua script to load (repeatable)")
	flag.BoolVar(&opts.Monitor, "monitor", false, "Print every input event")
	flag.BoolVar(&opts.Monitor, "m", false, "Print every input event (shorthand)")
	flag.StringVar(&opts.RecordPath, "record", "", "Record input events into a macros file")
	flag.StringVar(&opts.RecordName, "record-name", "session", "Macro name used by -record")
	flag.StringVar(&opts.ReplayPath, "replay", "", "Replay every macro in a macros file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "joyride - unified gamepad and keyboard input\n\n")
		fmt.Fprintf(os.Stderr, "Usage: joyride [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  joyride -monitor                     Show events from SDL gamepads\n")
		fmt.Fprintf(os.Stderr, "  joyride -backend terminal -monitor   Show key events in this terminal\n")
		fmt.Fprintf(os.Stderr, "  joyride -c joyride.yaml -script combos.lua\n")
		fmt.Fprintf(os.Stderr, "  joyride -record run.json               Record a session for replay\n")
		fmt.Fprintf(os.Stderr, "\nSettings may also come from %s* environment variables.\n", config.EnvPrefix)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("joyride %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Scripts = scripts
	return opts
}
