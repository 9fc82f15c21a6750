// Package normalize maps raw, source-specific CSV rows onto the canonical
// transaction shape: parsed booking date, signed decimal amount with derived
// debit/credit legs, and trimmed counter-party and category fields.
package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

// DateLayout is the booking-date format used by both supported bank exports.
const DateLayout = "02.01.2006"

// Schema names the source file's columns for each canonical field. Distinct
// schemas exist per ledger source; both converge to the same Transaction
// shape.
type Schema struct {
	Date           string
	Amount         string
	Currency       string
	Category       string
	CounterAccount string
	CounterName    string
}

func (s Schema) required() []string {
	return []string{s.Date, s.Amount, s.Currency, s.Category, s.CounterAccount, s.CounterName}
}

// Normalize converts header-keyed rows into canonical transactions.
//
// A required column missing from the header aborts with *ledger.SchemaError
// before any row is processed. An unparseable amount aborts with
// *ledger.MalformedAmountError naming the offending row. An unparseable date
// is not an error: the row keeps a zero BookingDate and survives downstream.
func Normalize(rows []map[string]string, schema Schema, source string) ([]ledger.Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	for _, col := range schema.required() {
		if _, ok := rows[0][col]; !ok {
			return nil, &ledger.SchemaError{Source: source, Column: col}
		}
	}

	txs := make([]ledger.Transaction, 0, len(rows))
	for i, row := range rows {
		// 1-indexed file row, +1 for the header line.
		rowNum := i + 2

		amount, err := ParseAmount(row[schema.Amount])
		if err != nil {
			return nil, &ledger.MalformedAmountError{Row: rowNum, Value: row[schema.Amount], Err: err}
		}

		tx := ledger.Transaction{
			OriginIndex:    i,
			RawDate:        strings.TrimSpace(row[schema.Date]),
			BookingDate:    ParseDate(row[schema.Date]),
			Amount:         amount,
			Currency:       strings.TrimSpace(row[schema.Currency]),
			CounterName:    strings.TrimSpace(row[schema.CounterName]),
			CounterAccount: strings.TrimSpace(row[schema.CounterAccount]),
			CategoryRaw:    strings.ToLower(strings.TrimSpace(row[schema.Category])),
		}
		tx.Debit, tx.Credit = splitAmount(amount)

		txs = append(txs, tx)
	}
	return txs, nil
}

// ParseAmount cleans a locale-formatted amount string and parses it as a
// decimal: non-breaking-space (and plain space) thousands grouping is
// stripped and a comma decimal separator becomes a period.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(s)
}

// ParseDate parses a day.month.year booking date. A value that does not
// parse yields the zero time rather than an error; the sentinel sorts before
// every real date and is excluded from refund matching.
func ParseDate(raw string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}

func splitAmount(amount decimal.Decimal) (debit, credit decimal.Decimal) {
	switch {
	case amount.IsNegative():
		return amount.Neg(), decimal.Zero
	case amount.IsPositive():
		return decimal.Zero, amount
	default:
		return decimal.Zero, decimal.Zero
	}
}
