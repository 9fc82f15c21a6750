// Package pipeline wires the transformation stages into one engine:
// normalize, exclude, classify, match refunds, then aggregate. One call
// consumes one complete in-memory batch and returns one complete result;
// the engine holds no state between runs.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/ledgerchart/ledgerchart/internal/classify"
	"github.com/ledgerchart/ledgerchart/internal/filter"
	"github.com/ledgerchart/ledgerchart/internal/ledger"
	"github.com/ledgerchart/ledgerchart/internal/normalize"
	"github.com/ledgerchart/ledgerchart/internal/refund"
	"github.com/ledgerchart/ledgerchart/internal/report"
)

// Source bundles everything that differs between ledger exports: the column
// schema, the classification taxonomy, the counter-party blocklist, and the
// pinned display categories. It is read-only configuration.
type Source struct {
	Name            string
	Schema          normalize.Schema
	Taxonomy        *classify.Taxonomy
	ExcludeNames    []string
	ExcludePatterns []string
	Pinned          []string
}

// Config is one run's parameters.
type Config struct {
	Source     Source
	WindowDays int       // refund-matching window; 0 means refund.DefaultWindowDays
	Since      time.Time // zero = no date filtering
	Logger     *slog.Logger
}

// Result is the complete output of one run.
type Result struct {
	// Transactions is the cleansed debit-only batch the matrix and
	// drill-down are derived from.
	Transactions []ledger.Transaction
	Categories   []string
	Matrix       *report.Matrix
	DrillDown    []report.DrillDownRecord
	Unmapped     []classify.UnmappedCategory
	Removed      []refund.Pair
}

// Run executes the full pipeline over one batch of header-keyed rows.
// Schema and amount errors abort before any output is assembled; date and
// category anomalies are recovered locally and surfaced in the result.
func Run(rows []map[string]string, cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.WindowDays
	if window <= 0 {
		window = refund.DefaultWindowDays
	}

	txs, err := normalize.Normalize(rows, cfg.Source.Schema, cfg.Source.Name)
	if err != nil {
		return nil, err
	}
	logger.Info("batch normalized", "source", cfg.Source.Name, "rows", len(txs))

	blocklist := filter.New(cfg.Source.ExcludeNames, cfg.Source.ExcludePatterns)
	txs = blocklist.Apply(txs)

	classifier := classify.New(cfg.Source.Taxonomy)
	unmapped := classifier.Classify(txs)
	for _, obs := range unmapped {
		logger.Warn("unmapped category kept as-is",
			"label", obs.Label, "count", obs.Count, "closest", obs.Suggestion)
	}

	txs, removed := refund.Remove(txs, window)
	logger.Info("refund pairs removed", "pairs", len(removed), "window_days", window)

	if !cfg.Since.IsZero() {
		txs = filterSince(txs, cfg.Since)
	}
	txs = debitOnly(txs)

	categories := distinctHighLevel(txs)
	matrix := report.Aggregate(txs, categories, cfg.Source.Pinned)
	drill := report.DrillDown(txs, categories)
	logger.Info("aggregation complete",
		"months", len(matrix.Months), "categories", len(matrix.Categories), "transactions", len(drill))

	return &Result{
		Transactions: txs,
		Categories:   categories,
		Matrix:       matrix,
		DrillDown:    drill,
		Unmapped:     unmapped,
		Removed:      removed,
	}, nil
}

// filterSince keeps rows booked strictly after the cutoff. A row without a
// valid booking date cannot satisfy a date-range filter and is dropped here;
// with no cutoff configured such rows survive the whole pipeline.
func filterSince(txs []ledger.Transaction, since time.Time) []ledger.Transaction {
	kept := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.HasDate() && tx.BookingDate.After(since) {
			kept = append(kept, tx)
		}
	}
	return kept
}

// debitOnly keeps spending legs; credits have served their purpose once
// refund matching has run.
func debitOnly(txs []ledger.Transaction) []ledger.Transaction {
	kept := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Debit.IsPositive() {
			kept = append(kept, tx)
		}
	}
	return kept
}

func distinctHighLevel(txs []ledger.Transaction) []string {
	seen := make(map[string]struct{})
	var categories []string
	for i := range txs {
		cat := txs[i].CategoryHighLevel
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; !ok {
			seen[cat] = struct{}{}
			categories = append(categories, cat)
		}
	}
	return categories
}
