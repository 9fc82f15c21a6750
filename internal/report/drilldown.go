package report

import "github.com/ledgerchart/ledgerchart/internal/ledger"

// DrillDownRecord is one transaction flattened for the per-click table.
// Everything except the debit amount is a string so the record serializes
// the same way in JSON, HTML, and Excel.
type DrillDownRecord struct {
	YearMonth         string  `json:"year_month"`
	BookingDate       string  `json:"booking_date"`
	Debit             float64 `json:"debit"`
	CategoryHighLevel string  `json:"category_high_lvl"`
	CounterName       string  `json:"counter_acc_name"`
	CounterAccount    string  `json:"counter_acc"`
	Category          string  `json:"category"`
}

// DrillDown flattens the batch, restricted to the given high-level
// categories, preserving batch order. Rows whose booking date never parsed
// keep the raw date string so the operator still sees what the bank sent.
func DrillDown(txs []ledger.Transaction, categories []string) []DrillDownRecord {
	wanted := normalizeSet(categories)

	records := make([]DrillDownRecord, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		cat := normalizeLabel(tx.CategoryHighLevel)
		if _, ok := wanted[cat]; !ok {
			continue
		}
		date := tx.RawDate
		if tx.HasDate() {
			date = tx.BookingDate.Format("2006-01-02")
		}
		records = append(records, DrillDownRecord{
			YearMonth:         tx.YearMonth(),
			BookingDate:       date,
			Debit:             tx.Debit.InexactFloat64(),
			CategoryHighLevel: cat,
			CounterName:       tx.CounterName,
			CounterAccount:    tx.CounterAccount,
			Category:          tx.Category,
		})
	}
	return records
}
