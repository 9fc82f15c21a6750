// Package export writes the drill-down table as an Excel workbook for
// review outside the chart.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerchart/ledgerchart/internal/report"
)

const sheetName = "Transactions"

var header = []interface{}{
	"Year-Month", "Booking Date", "Debit", "Category", "Counter-party", "Account", "Raw Category",
}

// WriteDrillDown writes one row per transaction, in batch order, preceded
// by a header row.
func WriteDrillDown(w io.Writer, records []report.DrillDownRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []interface{}{
			rec.YearMonth,
			rec.BookingDate,
			rec.Debit,
			rec.CategoryHighLevel,
			rec.CounterName,
			rec.CounterAccount,
			rec.Category,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
