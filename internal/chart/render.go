package chart

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/ledgerchart/ledgerchart/internal/report"
)

//go:embed templates/chart.html.tmpl
var templateFS embed.FS

// Options tunes the rendered page.
type Options struct {
	Title   string
	Palette string  // initial palette name; "" means "default"
	Opacity float64 // palette alpha; 0 means 0.90
}

type pageData struct {
	Title           string
	ContainerHeight int
	InitialPalette  string
	PaletteNames    []string
	Labels          template.JS
	Rows            template.JS
	Transactions    template.JS
	Palettes        template.JS
}

type rowJSON struct {
	Month  string             `json:"month"`
	Order  []string           `json:"order"`
	Values map[string]float64 `json:"values"`
}

// Render writes the self-contained chart page: one stacked bar per month,
// segments in that month's own column order, with a palette selector and a
// per-click drill-down table.
func Render(w io.Writer, matrix *report.Matrix, records []report.DrillDownRecord, opts Options) error {
	if opts.Opacity == 0 {
		opts.Opacity = 0.90
	}
	if opts.Title == "" {
		opts.Title = "Monthly spending by category"
	}
	if opts.Palette == "" {
		opts.Palette = "default"
	}

	rows := make([]rowJSON, 0, len(matrix.Rows))
	for _, r := range matrix.Rows {
		values := make(map[string]float64, len(r.Values))
		for cat, v := range r.Values {
			values[cat] = v.InexactFloat64()
		}
		rows = append(rows, rowJSON{Month: r.Month, Order: r.Order, Values: values})
	}

	palettes := Palettes(opts.Opacity)
	if _, ok := palettes[opts.Palette]; !ok {
		return fmt.Errorf("unknown palette %q (known: %s)",
			opts.Palette, strings.Join(PaletteNames(palettes), ", "))
	}

	data := pageData{
		Title:           opts.Title,
		ContainerHeight: containerHeight(len(matrix.Months)),
		InitialPalette:  opts.Palette,
		PaletteNames:    PaletteNames(palettes),
	}

	var err error
	if data.Labels, err = toJS(matrix.Months); err != nil {
		return err
	}
	if data.Rows, err = toJS(rows); err != nil {
		return err
	}
	if data.Transactions, err = toJS(records); err != nil {
		return err
	}
	if data.Palettes, err = toJS(palettes); err != nil {
		return err
	}

	tmpl, err := template.ParseFS(templateFS, "templates/chart.html.tmpl")
	if err != nil {
		return fmt.Errorf("parse chart template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func containerHeight(months int) int {
	h := 50 * months
	if h < 800 {
		h = 800
	}
	return h
}

// toJS marshals without HTML escaping; the output lands inside a <script>
// block, so escape the one sequence that could close it early.
func toJS(v any) (template.JS, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode chart data: %w", err)
	}
	s := strings.TrimRight(sb.String(), "\n")
	s = strings.ReplaceAll(s, "</", "<\\/")
	return template.JS(s), nil
}
