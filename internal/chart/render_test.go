package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerchart/ledgerchart/internal/report"
)

func testMatrix() *report.Matrix {
	return &report.Matrix{
		Months:     []string{"2024-03"},
		Categories: []string{"bydlení", "jídlo"},
		Rows: []report.Row{{
			Month: "2024-03",
			Order: []string{"bydlení", "jídlo"},
			Values: map[string]decimal.Decimal{
				"bydlení": decimal.NewFromInt(1200),
				"jídlo":   decimal.RequireFromString("350.50"),
			},
		}},
	}
}

func TestRender(t *testing.T) {
	records := []report.DrillDownRecord{{
		YearMonth:         "2024-03",
		BookingDate:       "2024-03-05",
		Debit:             1200,
		CategoryHighLevel: "bydlení",
		CounterName:       "Správa domu",
	}}

	var buf bytes.Buffer
	err := Render(&buf, testMatrix(), records, Options{Title: "Výdaje 2024"})
	require.NoError(t, err)
	page := buf.String()

	assert.Contains(t, page, "Výdaje 2024")
	assert.Contains(t, page, `"2024-03"`)
	assert.Contains(t, page, `"bydlení"`)
	assert.Contains(t, page, "Správa domu")
	// All palettes are embedded for the selector.
	for _, name := range PaletteNames(Palettes(1)) {
		assert.Contains(t, page, name)
	}
}

func TestRenderPalette(t *testing.T) {
	t.Run("configured palette drives the selector and first draw", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, testMatrix(), nil, Options{Palette: "forest"})
		require.NoError(t, err)
		page := buf.String()

		assert.Contains(t, page, `<option value="forest" selected>`)
		assert.NotContains(t, page, `<option value="default" selected>`)
		assert.Contains(t, page, `buildDatasets("forest")`)
	})

	t.Run("empty palette falls back to default", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, testMatrix(), nil, Options{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `<option value="default" selected>`)
		assert.Contains(t, buf.String(), `buildDatasets("default")`)
	})

	t.Run("unknown palette is an error", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, testMatrix(), nil, Options{Palette: "mauve"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mauve")
	})
}

func TestRenderEscapesScriptClose(t *testing.T) {
	records := []report.DrillDownRecord{{
		YearMonth:   "2024-03",
		CounterName: "evil</script><script>",
	}}

	var buf bytes.Buffer
	err := Render(&buf, testMatrix(), records, Options{})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "evil</script>")
	assert.Contains(t, buf.String(), `evil<\/script>`)
}

func TestPalettes(t *testing.T) {
	palettes := Palettes(0.5)
	require.NotEmpty(t, palettes)
	assert.Contains(t, palettes, "default")

	for name, colors := range palettes {
		assert.NotEmpty(t, colors, "palette %s", name)
		for _, c := range colors {
			assert.True(t, strings.HasPrefix(c, "rgba("), "palette %s color %s", name, c)
			assert.Contains(t, c, "0.5)")
		}
	}
}

func TestContainerHeight(t *testing.T) {
	assert.Equal(t, 800, containerHeight(3))
	assert.Equal(t, 1500, containerHeight(30))
}
