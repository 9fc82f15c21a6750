package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

func tx(origin int, date, category, debit string) ledger.Transaction {
	t := ledger.Transaction{
		OriginIndex:       origin,
		CategoryHighLevel: category,
		Category:          category,
		Debit:             decimal.RequireFromString(debit),
	}
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		t.BookingDate = parsed
	}
	t.Amount = t.Debit.Neg()
	return t
}

func TestAggregate(t *testing.T) {
	t.Run("sums debits per month and category", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "jídlo", "100.00"),
			tx(1, "2024-03-15", "jídlo", "50.00"),
			tx(2, "2024-04-02", "jídlo", "25.00"),
			tx(3, "2024-03-20", "bydlení", "900.00"),
		}, []string{"jídlo", "bydlení"}, nil)

		assert.Equal(t, []string{"2024-03", "2024-04"}, m.Months)
		assert.Equal(t, []string{"bydlení", "jídlo"}, m.Categories)

		require.Len(t, m.Rows, 2)
		assert.True(t, m.Rows[0].Values["jídlo"].Equal(decimal.RequireFromString("150.00")))
		assert.True(t, m.Rows[0].Values["bydlení"].Equal(decimal.RequireFromString("900.00")))
		assert.True(t, m.Rows[1].Values["jídlo"].Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("matrix is dense: missing cells are zero, not absent", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "jídlo", "100.00"),
			tx(1, "2024-04-01", "bydlení", "900.00"),
		}, []string{"jídlo", "bydlení"}, nil)

		require.Len(t, m.Rows, 2)
		v, ok := m.Rows[0].Values["bydlení"]
		require.True(t, ok)
		assert.True(t, v.IsZero())
	})

	t.Run("category filter is case-insensitive", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", " Jídlo ", "10.00"),
		}, []string{"JÍDLO"}, nil)
		require.Len(t, m.Rows, 1)
		assert.True(t, m.Rows[0].Values["jídlo"].Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("categories outside the filter are dropped", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "jídlo", "10.00"),
			tx(1, "2024-03-01", "krypto", "10.00"),
		}, []string{"jídlo"}, nil)
		assert.Equal(t, []string{"jídlo"}, m.Categories)
	})

	t.Run("rows without a booking date are left out", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "", "jídlo", "10.00"),
			tx(1, "2024-03-01", "jídlo", "20.00"),
		}, []string{"jídlo"}, nil)
		require.Len(t, m.Rows, 1)
		assert.True(t, m.Rows[0].Values["jídlo"].Equal(decimal.RequireFromString("20.00")))
	})
}

func TestOrderColumns(t *testing.T) {
	t.Run("pinned first, then descending value, zeros last", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "a", "100.00"),
			tx(1, "2024-03-01", "c", "50.00"),
			tx(2, "2024-03-01", "d", "75.00"),
			tx(3, "2024-04-01", "b", "5.00"),
		}, []string{"a", "b", "c", "d"}, []string{"a", "b"})

		require.Len(t, m.Rows, 2)
		// March: a pinned and present; b pinned but zero; d (75) > c (50).
		assert.Equal(t, []string{"a", "d", "c", "b"}, m.Rows[0].Order)
	})

	t.Run("pinned order is the priority list order", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "x", "10.00"),
			tx(1, "2024-03-01", "y", "999.00"),
		}, []string{"x", "y"}, []string{"x", "y"})
		assert.Equal(t, []string{"x", "y"}, m.Rows[0].Order)
	})

	t.Run("equal values stay alphabetical", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "beta", "10.00"),
			tx(1, "2024-03-01", "alfa", "10.00"),
			tx(2, "2024-03-01", "gama", "10.00"),
		}, []string{"alfa", "beta", "gama"}, nil)
		assert.Equal(t, []string{"alfa", "beta", "gama"}, m.Rows[0].Order)
	})

	t.Run("order is row-specific", func(t *testing.T) {
		m := Aggregate([]ledger.Transaction{
			tx(0, "2024-03-01", "a", "10.00"),
			tx(1, "2024-03-01", "b", "20.00"),
			tx(2, "2024-04-01", "a", "20.00"),
			tx(3, "2024-04-01", "b", "10.00"),
		}, []string{"a", "b"}, nil)
		assert.Equal(t, []string{"b", "a"}, m.Rows[0].Order)
		assert.Equal(t, []string{"a", "b"}, m.Rows[1].Order)
	})
}

func TestDrillDown(t *testing.T) {
	t.Run("flattens in batch order", func(t *testing.T) {
		batch := []ledger.Transaction{
			tx(0, "2024-03-01", "jídlo", "100.00"),
			tx(1, "2024-03-02", "bydlení", "900.00"),
		}
		batch[0].CounterName = "Tesco Stores"
		batch[0].CounterAccount = "123/0800"

		records := DrillDown(batch, []string{"jídlo", "bydlení"})
		require.Len(t, records, 2)
		assert.Equal(t, "2024-03", records[0].YearMonth)
		assert.Equal(t, "2024-03-01", records[0].BookingDate)
		assert.Equal(t, 100.0, records[0].Debit)
		assert.Equal(t, "Tesco Stores", records[0].CounterName)
		assert.Equal(t, "123/0800", records[0].CounterAccount)
	})

	t.Run("unparsed date keeps the raw string", func(t *testing.T) {
		batch := []ledger.Transaction{tx(0, "", "jídlo", "10.00")}
		batch[0].RawDate = "soon"

		records := DrillDown(batch, []string{"jídlo"})
		require.Len(t, records, 1)
		assert.Equal(t, "soon", records[0].BookingDate)
		assert.Equal(t, "", records[0].YearMonth)
	})
}

// Re-aggregating the drill-down list must reproduce the matrix cells.
func TestDrillDownRoundTrip(t *testing.T) {
	batch := []ledger.Transaction{
		tx(0, "2024-03-01", "jídlo", "100.50"),
		tx(1, "2024-03-15", "jídlo", "49.50"),
		tx(2, "2024-03-20", "bydlení", "900.00"),
		tx(3, "2024-04-02", "jídlo", "25.00"),
	}
	categories := []string{"jídlo", "bydlení"}

	m := Aggregate(batch, categories, nil)
	records := DrillDown(batch, categories)

	sums := make(map[string]map[string]float64)
	for _, rec := range records {
		if sums[rec.YearMonth] == nil {
			sums[rec.YearMonth] = make(map[string]float64)
		}
		sums[rec.YearMonth][rec.CategoryHighLevel] += rec.Debit
	}

	for _, row := range m.Rows {
		for cat, want := range row.Values {
			assert.InDelta(t, want.InexactFloat64(), sums[row.Month][cat], 1e-9,
				"month %s category %s", row.Month, cat)
		}
	}
}
