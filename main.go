package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/todomvc/internal/config"
	"github.com/sadopc/todomvc/internal/controller"
	"github.com/sadopc/todomvc/internal/export"
	"github.com/sadopc/todomvc/internal/logging"
	"github.com/sadopc/todomvc/internal/model"
	"github.com/sadopc/todomvc/internal/store"
	"github.com/sadopc/todomvc/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("todomvc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr, fs) }

	cfg, err := config.Load(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	rest := fs.Args()
	if len(rest) > 0 && rest[0] == "help" {
		usage(stdout, fs)
		return 0
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer.Close()

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(stderr, "error opening database: %v\n", err)
		return 1
	}
	defer s.Close()
	logger.Info("database opened", "path", cfg.DBPath, "config_files", cfg.Files)

	if len(rest) > 0 {
		switch rest[0] {
		case "export":
			return runExport(s, export.Options{PDFFont: cfg.PDFFont}, rest[1:], stdout, stderr)
		case "import":
			return runImport(s, logger, rest[1:], stdout, stderr)
		case "clear":
			return runClear(s, stdout, stderr)
		default:
			fmt.Fprintf(stderr, "error: unknown command %q\n", rest[0])
			usage(stderr, fs)
			return 2
		}
	}

	if err := runTUI(cfg, s, logger); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(cfg *config.Config, s *store.Store, logger *log.Logger) error {
	m := model.New(s, logger.WithPrefix("model"))
	bridge := tui.NewBridge(logger.WithPrefix("tui"))
	c := controller.New(m, bridge,
		controller.WithLogger(logger.WithPrefix("controller")),
		controller.WithErrorHandler(bridge.ReportError),
	)

	start := cfg.Route
	if start == "" && cfg.RememberRoute {
		start = s.LastRoute()
	}

	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}

	app := tui.NewApp(s, bridge, c, tui.Options{
		StartRoute:    start,
		RememberRoute: cfg.RememberRoute,
		ExportDir:     exportDir,
		Export:        export.Options{PDFFont: cfg.PDFFont},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p.Send)

	logger.Info("starting", "route", start)
	_, err = p.Run()

	// Let in-flight operations finish before the store closes. Their renders
	// go nowhere once the program has exited.
	m.Wait()
	logger.Info("stopped")
	return err
}

func runExport(s *store.Store, opts export.Options, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "usage: todomvc export csv|json|pdf [path]")
		return 2
	}
	f, err := export.ParseFormat(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	path := export.DefaultPath(".", f, time.Now())
	if len(args) > 1 {
		path = args[1]
	}

	items, err := s.ListItems(store.Query{})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := export.Write(f, items, path, opts); err != nil {
		if !errors.Is(err, export.ErrGlyphsReplaced) {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	fmt.Fprintf(stdout, "Exported %d todos to %s\n", len(items), path)
	return 0
}

func runImport(s *store.Store, logger *log.Logger, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: todomvc import <file.json>")
		return 2
	}
	items, err := export.ReadJSON(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	n, err := s.ImportItems(items)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Info("imported", "path", args[0], "items", n)
	fmt.Fprintf(stdout, "Imported %d todos from %s\n", n, args[0])
	return 0
}

func runClear(s *store.Store, stdout, stderr io.Writer) int {
	n, err := s.DeleteCompleted()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Removed %d completed todos\n", n)
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, `todomvc - a terminal todo list

Usage:
  todomvc [flags]                     open the todo list
  todomvc [flags] export csv|json|pdf [path]
  todomvc [flags] import <file.json>
  todomvc [flags] clear               remove completed todos
  todomvc help

Flags:`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
