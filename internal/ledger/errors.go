package ledger

import "fmt"

// SchemaError reports a required column missing from the file header after
// source mapping. It is fatal for the whole batch: no row processing happens.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s: required column %q not found in header", e.Source, e.Column)
}

// MalformedAmountError reports an amount that could not be parsed after
// cleansing. The whole batch fails so no partial aggregation is produced;
// Row is the 1-indexed data file row for operator diagnostics.
type MalformedAmountError struct {
	Row   int
	Value string
	Err   error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("row %d: malformed amount %q: %v", e.Row, e.Value, e.Err)
}

func (e *MalformedAmountError) Unwrap() error {
	return e.Err
}
