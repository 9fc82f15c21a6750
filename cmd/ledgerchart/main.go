package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/ledgerchart/ledgerchart/internal/chart"
	"github.com/ledgerchart/ledgerchart/internal/export"
	"github.com/ledgerchart/ledgerchart/internal/ingest"
	"github.com/ledgerchart/ledgerchart/internal/ledger"
	"github.com/ledgerchart/ledgerchart/internal/pipeline"
	"github.com/ledgerchart/ledgerchart/pkg/config"
)

var (
	csvPath   = flag.String("csv", "", "Path of the exported transaction CSV to read.")
	output    = flag.String("output", "", "Path of the chart HTML file to write.")
	xlsxPath  = flag.String("xlsx", "", "Optional path of a drill-down XLSX workbook to write.")
	source    = flag.String("source", "", "Export layout to expect: george or patron.")
	since     = flag.String("since", "", "Keep only transactions booked after this date (YYYY-MM-DD).")
	encoding  = flag.String("encoding", "", "Encoding of the CSV file: utf-16, utf-8 or auto.")
	window    = flag.Int("window", 0, "Refund-matching window in days.")
	delimiter = flag.String("delimiter", ",", "CSV field delimiter.")
	palette   = flag.String("palette", "", "Initial chart color palette.")
	title     = flag.String("title", "", "Chart page title.")
	verbose   = flag.Bool("v", false, "Verbose logging.")
)

var failc = color.New(color.FgRed, color.Bold).FprintfFunc()

func main() {
	flag.Parse()

	if err := run(); err != nil {
		failc(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *csvPath == "" {
		flag.Usage()
		return errors.New("-csv is required")
	}
	if len([]rune(*delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", *delimiter)
	}

	src, err := pipeline.SourceByName(cfg.Input.Source)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(*csvPath)
	if err != nil {
		return err
	}
	decoded, err := ingest.Decode(raw, cfg.Input.Encoding)
	if err != nil {
		return fmt.Errorf("decode %s: %w", *csvPath, err)
	}
	rows, err := ingest.Records(decoded, []rune(*delimiter)[0])
	if err != nil {
		return fmt.Errorf("parse %s: %w", *csvPath, err)
	}

	result, err := pipeline.Run(rows, pipeline.Config{
		Source:     src,
		WindowDays: cfg.Engine.RefundWindowDays,
		Since:      cfg.Engine.Since,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// Render into memory first so a failed run leaves no partial artifact
	// on disk.
	var page bytes.Buffer
	err = chart.Render(&page, result.Matrix, result.DrillDown, chart.Options{
		Title:   cfg.Output.ChartTitle,
		Palette: cfg.Output.Palette,
		Opacity: cfg.Output.Opacity,
	})
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if err := os.WriteFile(cfg.Output.ChartPath, page.Bytes(), 0o644); err != nil {
		return err
	}

	if cfg.Output.ExcelPath != "" {
		var book bytes.Buffer
		if err := export.WriteDrillDown(&book, result.DrillDown); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		if err := os.WriteFile(cfg.Output.ExcelPath, book.Bytes(), 0o644); err != nil {
			return err
		}
	}

	okc := color.New(color.FgGreen)
	okc.Printf("✔ %s written", cfg.Output.ChartPath)
	fmt.Printf(" (%d months, %d categories, %d transactions)\n",
		len(result.Matrix.Months), len(result.Categories), len(result.Transactions))
	if cfg.Output.ExcelPath != "" {
		okc.Printf("✔ %s written", cfg.Output.ExcelPath)
		fmt.Printf(" (%d rows)\n", len(result.DrillDown))
	}
	for _, obs := range result.Unmapped {
		warn := color.New(color.FgYellow)
		warn.Printf("! unmapped category %q kept as-is (%d rows", obs.Label, obs.Count)
		if obs.Suggestion != "" {
			fmt.Printf(", closest known: %q", obs.Suggestion)
		}
		fmt.Println(")")
	}
	return nil
}

// applyFlags lets command-line flags override environment configuration.
func applyFlags(cfg *config.Config) error {
	if *source != "" {
		cfg.Input.Source = *source
	}
	if *encoding != "" {
		cfg.Input.Encoding = *encoding
	}
	if *window > 0 {
		cfg.Engine.RefundWindowDays = *window
	}
	if *since != "" {
		t, err := time.Parse("2006-01-02", *since)
		if err != nil {
			return fmt.Errorf("-since: %w", err)
		}
		cfg.Engine.Since = t
	}
	if *output != "" {
		cfg.Output.ChartPath = *output
	}
	if *xlsxPath != "" {
		cfg.Output.ExcelPath = *xlsxPath
	}
	if *palette != "" {
		cfg.Output.Palette = *palette
	}
	if *title != "" {
		cfg.Output.ChartTitle = *title
	}
	return nil
}

// describe renders the structured parse errors with their row and column
// context so a bad export can be fixed by hand.
func describe(err error) string {
	var schemaErr *ledger.SchemaError
	if errors.As(err, &schemaErr) {
		return fmt.Sprintf("source %q: missing column %q in CSV header", schemaErr.Source, schemaErr.Column)
	}
	var amountErr *ledger.MalformedAmountError
	if errors.As(err, &amountErr) {
		return fmt.Sprintf("row %d: cannot parse amount %q", amountErr.Row, amountErr.Value)
	}
	return err.Error()
}
