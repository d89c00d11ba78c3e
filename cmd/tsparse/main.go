package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/driver"
	"github.com/nooga/tsgrammar/pkg/errors"
	"github.com/nooga/tsgrammar/pkg/source"
)

const historyFile = ".tsparse_history"

type app struct {
	cfg    driver.Config
	spans  bool
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func main() {
	exprFlag := flag.String("e", "", "Parse the given source text and exit")
	configFlag := flag.String("config", "", "YAML config file (default "+driver.DefaultConfigFile+" if present)")
	formatFlag := flag.String("format", "", "Output format: json, yaml or pretty")
	locationsFlag := flag.Bool("locations", false, "Add line/column locations to every node")
	noSpansFlag := flag.Bool("no-spans", false, "Omit start/end/loc from json and yaml output")
	noColorFlag := flag.Bool("no-color", false, "Disable colored diagnostics")
	debugFlag := flag.Bool("debug", false, "Log parser traces to stderr")
	watchFlag := flag.Bool("watch", false, "Re-parse the file whenever it changes")
	jobsFlag := flag.Int("j", 0, "Parallel parsers when several files are given (0 = one per CPU)")

	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %s\n", err)
		os.Exit(64)
	}
	// Flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "locations":
			cfg.Locations = *locationsFlag
		case "no-color":
			cfg.Color = !*noColorFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})
	if *formatFlag != "" {
		if cfg.Format, err = driver.ParseFormat(*formatFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(64)
		}
	}
	if !cfg.Color {
		color.NoColor = true
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %s\n", err)
		os.Exit(70)
	}
	defer logger.Sync() //nolint:errcheck

	a := &app{cfg: cfg, spans: !*noSpansFlag, logger: logger, out: os.Stdout, errOut: os.Stderr}

	if *exprFlag != "" {
		if !a.run(source.NewEvalSource(*exprFlag)) {
			os.Exit(70)
		}
		return
	}

	switch {
	case flag.NArg() > 1:
		if *watchFlag {
			fmt.Fprintf(os.Stderr, "Usage: tsparse -watch <file>\n")
			os.Exit(64)
		}
		if !a.runFiles(flag.Args(), *jobsFlag) {
			os.Exit(70)
		}
	case flag.NArg() == 1:
		if *watchFlag {
			if err := a.watch(flag.Arg(0)); err != nil {
				fmt.Fprintf(os.Stderr, "watch: %s\n", err)
				os.Exit(70)
			}
			return
		}
		if !a.runFile(flag.Arg(0)) {
			os.Exit(70)
		}
	default:
		if *watchFlag {
			fmt.Fprintf(os.Stderr, "Usage: tsparse -watch <file>\n")
			os.Exit(64)
		}
		a.repl()
	}
}

func loadConfig(path string) (driver.Config, error) {
	if path == "" {
		if _, err := os.Stat(driver.DefaultConfigFile); err != nil {
			return driver.DefaultConfig(), nil
		}
		path = driver.DefaultConfigFile
	}
	return driver.LoadConfig(path)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (a *app) options(name string) driver.Options {
	return driver.Options{Locations: a.cfg.Locations, SourceName: name, Logger: a.logger}
}

// run parses src, prints the tree or the error, and reports success.
func (a *app) run(src *source.SourceFile) bool {
	prog, err := driver.Parse(src, a.options(src.Name))
	if err != nil {
		a.report(src, err)
		return false
	}
	if err := driver.Encode(a.out, prog, a.cfg.Format, ast.EncodeOptions{OmitSpans: !a.spans}); err != nil {
		fmt.Fprintf(a.errOut, "encode: %s\n", err)
		return false
	}
	return true
}

func (a *app) runFile(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.errOut, "Failed to read file '%s': %s\n", path, err)
		return false
	}
	return a.run(source.FromFile(path, string(content)))
}

// runFiles parses several files concurrently and prints them in argument
// order.
func (a *app) runFiles(paths []string, workers int) bool {
	results, stats := driver.ParseFiles(context.Background(), paths, workers, a.options(""))
	ok := true
	for _, r := range results {
		fmt.Fprintf(a.out, "--- %s ---\n", r.Path)
		if r.Err != nil {
			ok = false
			if r.Source == nil {
				fmt.Fprintf(a.errOut, "%s\n", r.Err)
				continue
			}
			a.report(r.Source, r.Err)
			continue
		}
		if err := driver.Encode(a.out, r.Program, a.cfg.Format, ast.EncodeOptions{OmitSpans: !a.spans}); err != nil {
			fmt.Fprintf(a.errOut, "encode: %s\n", err)
			ok = false
		}
	}
	a.logger.Debug("batch done", zap.Int("workers", stats.Workers), zap.Int("completed", stats.Completed),
		zap.Int("failed", stats.Failed), zap.Duration("total", stats.TotalTime))
	return ok
}

func (a *app) report(src *source.SourceFile, err error) {
	if se, ok := driver.AsSyntaxError(err); ok {
		errors.DisplayErrors(a.errOut, src.Content, []*errors.SyntaxError{se})
		return
	}
	fmt.Fprintf(a.errOut, "%s\n", err)
}

// --- REPL ---

func (a *app) repl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := filepath.Join(os.TempDir(), historyFile)
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f) //nolint:errcheck
		f.Close()
	}

	fmt.Fprintln(a.out, "tsparse (Ctrl+D to exit)")
	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(a.errOut, "Error reading input: %s\n", err)
			}
			fmt.Fprintln(a.out, "\nGoodbye!")
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		a.run(source.NewReplSource(input))
	}

	if f, err := os.Create(histPath); err == nil {
		line.WriteHistory(f) //nolint:errcheck
		f.Close()
	}
}

// --- Watch ---

// watch parses path once and again after every write until the watcher
// fails. The parent directory is watched so that editors that replace the
// file on save are still followed.
func (a *app) watch(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	a.runFile(path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.logger.Debug("file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			fmt.Fprintf(a.out, "--- %s ---\n", path)
			a.runFile(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
