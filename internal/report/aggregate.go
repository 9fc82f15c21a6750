// Package report pivots the cleansed ledger into the month-by-category
// debit matrix consumed by the chart, with a deterministic per-row column
// ordering, and exports the flat drill-down record list.
package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

// Row is one month of the matrix. Values is dense over the matrix's full
// category set; Order is this row's presentation order.
type Row struct {
	Month  string
	Order  []string
	Values map[string]decimal.Decimal
}

// Matrix is the pivoted month-by-category debit aggregation. Months ascend;
// Categories is the full lexicographically sorted category set. Each row
// carries its own column order: pinned categories first, then the remaining
// non-zero categories by descending value, then zero-valued categories.
type Matrix struct {
	Months     []string
	Categories []string
	Rows       []Row
}

// Aggregate pivots the batch, restricted to the given high-level categories,
// into the dense matrix. Category comparison is case-insensitive: both the
// filter list and the transactions' high-level labels are normalized with
// trim+lower. pinned lists the categories given fixed display priority, in
// priority order. Rows without a valid booking date carry no month and are
// left out of the matrix.
func Aggregate(txs []ledger.Transaction, categories, pinned []string) *Matrix {
	wanted := normalizeSet(categories)

	cells := make(map[string]map[string]decimal.Decimal)
	catSet := make(map[string]struct{})
	for i := range txs {
		tx := &txs[i]
		cat := normalizeLabel(tx.CategoryHighLevel)
		if _, ok := wanted[cat]; !ok {
			continue
		}
		month := tx.YearMonth()
		if month == "" {
			continue
		}
		row, ok := cells[month]
		if !ok {
			row = make(map[string]decimal.Decimal)
			cells[month] = row
		}
		row[cat] = row[cat].Add(tx.Debit)
		catSet[cat] = struct{}{}
	}

	m := &Matrix{
		Months:     sortedKeys(cells),
		Categories: setToSorted(catSet),
	}

	normPinned := make([]string, 0, len(pinned))
	for _, p := range pinned {
		normPinned = append(normPinned, normalizeLabel(p))
	}

	for _, month := range m.Months {
		values := make(map[string]decimal.Decimal, len(m.Categories))
		for _, cat := range m.Categories {
			values[cat] = cells[month][cat]
		}
		m.Rows = append(m.Rows, Row{
			Month:  month,
			Order:  orderColumns(values, m.Categories, normPinned),
			Values: values,
		})
	}
	return m
}

// orderColumns computes one row's presentation order: pinned categories with
// a non-zero value first (in pinned order), remaining non-zero categories by
// descending value (ties lexicographic), zero-valued categories last in
// lexicographic order.
func orderColumns(values map[string]decimal.Decimal, categories, pinned []string) []string {
	nonZero := make(map[string]struct{})
	for _, cat := range categories {
		if values[cat].IsPositive() {
			nonZero[cat] = struct{}{}
		}
	}

	order := make([]string, 0, len(categories))
	placed := make(map[string]struct{}, len(categories))

	for _, cat := range pinned {
		if _, ok := nonZero[cat]; ok {
			order = append(order, cat)
			placed[cat] = struct{}{}
		}
	}

	var remaining []string
	for _, cat := range categories {
		if _, ok := nonZero[cat]; !ok {
			continue
		}
		if _, done := placed[cat]; !done {
			remaining = append(remaining, cat)
		}
	}
	// Stable over the lexicographic input order, so equal values stay
	// alphabetical.
	sort.SliceStable(remaining, func(i, j int) bool {
		return values[remaining[i]].GreaterThan(values[remaining[j]])
	})
	for _, cat := range remaining {
		order = append(order, cat)
		placed[cat] = struct{}{}
	}

	for _, cat := range categories {
		if _, done := placed[cat]; !done {
			order = append(order, cat)
		}
	}
	return order
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[normalizeLabel(l)] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
