package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"retitle/internal/config"
	"retitle/internal/orchestrator"
	"retitle/internal/output"
	"retitle/internal/watcher"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.3.0-dev"

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// options holds the parsed command line.
type options struct {
	configPath   string
	dryRun       bool
	verbose      bool
	watch        bool
	allMatches   bool
	extensions   string
	omittedWords string
	showVersion  bool

	reference string
	directory string
}

// parseArgs parses args into options.
// The directory defaults to "." so that running in a folder of books works without arguments beyond the reference file.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("retitle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: retitle [flags] <reference-file> [directory]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Renames e-book files in directory (default: current directory) to the")
		fmt.Fprintln(stderr, "titles listed one per line in reference-file.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Configuration file (YAML or JSON)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Show planned renames without renaming")
	fs.BoolVar(&opts.dryRun, "n", false, "Same as -dry-run")
	fs.BoolVar(&opts.verbose, "verbose", false, "Print every match attempt")
	fs.BoolVar(&opts.verbose, "v", false, "Same as -verbose")
	fs.BoolVar(&opts.watch, "watch", false, "Keep running and rename new files as they arrive")
	fs.BoolVar(&opts.allMatches, "all-matches", false, "Let one title rename several files (e.g. one per format)")
	fs.StringVar(&opts.extensions, "ext", "", "Comma-separated list of recognized extensions")
	fs.StringVar(&opts.omittedWords, "omit", "", "Comma-separated words a filename may leave out")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 1:
		opts.reference = fs.Arg(0)
		opts.directory = "."
	case 2:
		opts.reference = fs.Arg(0)
		opts.directory = fs.Arg(1)
	default:
		fs.Usage()
		return nil, errors.New("expected <reference-file> [directory]")
	}

	return opts, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(opts *options) (*config.Configuration, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.extensions != "" {
		cfg.Extensions = splitList(opts.extensions)
	}
	if opts.omittedWords != "" {
		cfg.OmittedWords = splitList(opts.omittedWords)
	}
	if opts.allMatches {
		cfg.SetOnePerTitle(false)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "retitle: %v\n", err)
		return exitUsage
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, "retitle v"+version)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "retitle: %v\n", err)
		return exitError
	}

	outCfg := output.ConfigFor(stdout, stderr)
	outCfg.Verbose = opts.verbose
	out := output.New(outCfg)

	for _, w := range config.ValidateConfig(cfg).Warnings {
		out.Warn("Warning: %s: %s", w.Field, w.Message)
	}

	orch := orchestrator.New(cfg, out)
	runOpts := orchestrator.RunOptions{DryRun: opts.dryRun}

	_, summary, err := orch.RunWithSummary(opts.reference, opts.directory, runOpts)
	if err != nil {
		if orchestrator.IsPathNotFound(err) {
			out.Error("Error: path does not exist: %v", err)
		} else {
			out.Error("Error: %v", err)
		}
		return exitError
	}

	if opts.watch {
		return watch(orch, cfg, opts, runOpts, out)
	}

	if summary.HasErrors() {
		return exitError
	}
	return exitOK
}

// watch re-runs the pass whenever the directory or the reference file changes,
// until interrupted.
func watch(orch *orchestrator.Orchestrator, cfg *config.Configuration, opts *options, runOpts orchestrator.RunOptions, out *output.Output) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(cfg.Watch, func() ([]string, error) {
		result, _, err := orch.RunWithSummary(opts.reference, opts.directory, runOpts)
		if err != nil {
			return nil, err
		}
		return result.Created(), nil
	}, func(err error) {
		out.Error("Error: %v", err)
	})

	if err := w.Start(opts.directory, opts.reference, cfg.Extensions); err != nil {
		out.Error("Error: failed to watch %s: %v", opts.directory, err)
		return exitError
	}
	if out.IsTTY() {
		out.Info("Watching %s for new files (Ctrl-C to stop)", opts.directory)
	} else {
		out.Info("Watching %s for new files", opts.directory)
	}

	<-ctx.Done()

	summary := w.Stop()
	out.Info("Watched for %s: %d pass(es), %d file(s) renamed",
		summary.Duration.Round(time.Second), summary.Passes, summary.FilesRenamed)
	if summary.FailedPasses > 0 {
		return exitError
	}
	return exitOK
}
