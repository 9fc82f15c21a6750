// Package ledger defines the canonical transaction model shared by every
// pipeline stage. A batch of Transactions is created once per input file,
// classified in place, and filtered down by the exclusion and refund stages.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized ledger row. OriginIndex preserves the input
// row position and is the only identity used when stages remove rows, so two
// rows with identical field values are never confused with each other.
type Transaction struct {
	OriginIndex int

	// BookingDate is the zero time when the source date did not parse.
	// Such rows survive the pipeline but are never eligible for refund
	// matching or date-range filtering.
	BookingDate time.Time
	RawDate     string

	// Amount is signed: negative = outflow, positive = inflow.
	// Debit and Credit are derived and non-negative; at most one is
	// non-zero unless Amount itself is zero.
	Amount decimal.Decimal
	Debit  decimal.Decimal
	Credit decimal.Decimal

	Currency string

	CounterName    string
	CounterAccount string

	// CategoryRaw is the trimmed, lower-cased label from the source file.
	// Category is the working value after the override chain, and
	// CategoryHighLevel the final bucket after the taxonomy merge.
	CategoryRaw       string
	Category          string
	CategoryHighLevel string
}

// HasDate reports whether the booking date parsed.
func (t *Transaction) HasDate() bool {
	return !t.BookingDate.IsZero()
}

// YearMonth returns the "2006-01" aggregation key, or "" for rows without a
// valid booking date.
func (t *Transaction) YearMonth() string {
	if t.BookingDate.IsZero() {
		return ""
	}
	return t.BookingDate.Format("2006-01")
}
