// Command evnav plans a walking route through an event map.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"evnav/canvas"
	"evnav/export"
	"evnav/importer"
	"evnav/notice"
	"evnav/planner"
	"evnav/terminal"
)

// config holds the parsed command line.
type config struct {
	layoutFile  string
	inputFormat string
	date        string
	format      string
	outputFile  string
	preview     bool
	colored     bool
	validate    bool
	strict      bool
	tolerance   float64
	lang        string
	localeDir   string
	verbose     bool
}

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("evnav", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.inputFormat, "input-format", "", "Input format: json, text (detected from the file if not specified)")
	fs.StringVar(&cfg.date, "date", "", "Event date to route (default: first date with visit points)")
	fs.StringVar(&cfg.format, "format", "ascii", "Export format: ascii, json, png")
	fs.StringVar(&cfg.outputFile, "o", "", "Output file (default: stdout)")
	fs.BoolVar(&cfg.preview, "preview", false, "Show the route in an interactive terminal preview")
	fs.BoolVar(&cfg.colored, "color", false, "Use ANSI colors in ascii output")
	fs.BoolVar(&cfg.validate, "validate", false, "Report layout problems before routing")
	fs.BoolVar(&cfg.strict, "strict", false, "Also report suspicious definitions when validating")
	fs.Float64Var(&cfg.tolerance, "tolerance", planner.DefaultOptions().Tolerance, "Path simplification tolerance in cells")
	fs.StringVar(&cfg.lang, "lang", "en", "Message language (bundled: en, ja)")
	fs.StringVar(&cfg.localeDir, "locale-dir", "", "Load messages from a gettext directory instead of the bundled ones")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose diagnostics on stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: evnav [options] layout.json\n\n")
		fmt.Fprintf(stderr, "Plans a walking route through the visit points of an event map.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  evnav event.json                          # Text map of the first date\n")
		fmt.Fprintf(stderr, "  evnav -date 2026-11-02 event.json\n")
		fmt.Fprintf(stderr, "  evnav -format png -o route.png event.json\n")
		fmt.Fprintf(stderr, "  evnav -format json event.map              # Hand-drawn text map\n")
		fmt.Fprintf(stderr, "  evnav -preview -lang ja event.json\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: Please provide one layout file\n\n")
		fs.Usage()
		return cfg, errUsage
	}
	cfg.layoutFile = fs.Arg(0)
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cfg.localeDir != "" {
		notice.Configure(cfg.localeDir, cfg.lang)
	} else if err := notice.Use(cfg.lang); err != nil {
		logger.Warn("falling back to English messages", "lang", cfg.lang, "err", err)
	}

	layout, err := loadLayout(cfg.layoutFile, cfg.inputFormat)
	if err != nil {
		return err
	}

	opts := planner.DefaultOptions()
	opts.Tolerance = cfg.tolerance
	opts.Strict = cfg.strict
	p, err := planner.FromLayout(layout, opts)
	if err != nil {
		return err
	}
	logger.Debug("layout loaded",
		"file", cfg.layoutFile,
		"rows", p.Grid().Rows(),
		"cols", p.Grid().Cols(),
		"halls", len(p.Halls()),
		"blocks", len(p.Blocks()),
		"items", len(p.Items()))

	if cfg.validate {
		if problems := p.Validate(); len(problems) > 0 {
			fmt.Fprintln(stderr, notice.Text(notice.InvalidLayout, len(problems)))
			for _, v := range problems {
				fmt.Fprintf(stderr, "  %s\n", v)
			}
		}
	}

	date := cfg.date
	if date == "" {
		if dates := p.Book().Dates(); len(dates) > 0 {
			date = dates[0]
		}
	}

	r := p.Route(date)
	labels := make(map[string]string, len(r.Points))
	for _, pt := range r.Points {
		labels[pt.ID] = pt.Label
	}
	for _, seg := range r.Segments {
		logger.Debug("segment", "from", seg.FromID, "to", seg.ToID, "found", seg.Found, "cost", seg.Cost, "points", len(seg.Simplified))
		if !seg.Found {
			fmt.Fprintln(stderr, notice.Text(notice.NoPath, labelOr(labels, seg.FromID), labelOr(labels, seg.ToID)))
		}
	}
	summary := notice.Text(notice.RouteSummary, len(r.Points), len(r.Segments), r.Cost)

	scene := p.Scene(date)
	if cfg.preview {
		mc, err := canvas.Render(scene, canvas.DefaultCellWidth)
		if err != nil {
			return err
		}
		return terminal.Show(mc, scene.Title, summary)
	}

	if err := writeOutput(cfg, scene, stdout); err != nil {
		return err
	}
	fmt.Fprintln(stderr, summary)

	hits, misses, _, _ := p.Cache().Stats()
	logger.Debug("path cache", "hits", hits, "misses", misses)
	return nil
}

func loadLayout(filename, format string) (*importer.Layout, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	registry := importer.NewImporterRegistry()
	switch {
	case format != "":
		return registry.ImportWithFormat(content, format)
	default:
		if imp, ok := registry.ForFile(filename); ok {
			return imp.Import(content)
		}
		return registry.Import(content)
	}
}

func writeOutput(cfg config, scene canvas.Scene, stdout io.Writer) error {
	format, err := export.ParseFormat(cfg.format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	if ascii, ok := exporter.(*export.ASCIIExporter); ok {
		ascii.Colored = cfg.colored
	}

	w := stdout
	if cfg.outputFile != "" {
		f, err := os.Create(cfg.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := exporter.Export(w, scene); err != nil {
		return fmt.Errorf("failed to export %s: %w", exporter.GetFormatName(), err)
	}
	return nil
}

func labelOr(labels map[string]string, id string) string {
	if l, ok := labels[id]; ok && l != "" {
		return l
	}
	return id
}
