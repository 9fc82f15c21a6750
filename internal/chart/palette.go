// Package chart renders the cleansed aggregation as a self-contained
// interactive HTML page. It is pure presentation: nothing here feeds back
// into the engine.
package chart

import (
	"fmt"
	"sort"
	"strconv"
)

// Palettes returns the named color palettes with the given opacity baked
// into each rgba value. Only the presentation layer consumes these.
func Palettes(opacity float64) map[string][]string {
	rgba := func(r, g, b int) string {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b,
			strconv.FormatFloat(opacity, 'g', -1, 64))
	}

	return map[string][]string{
		"default": {
			rgba(54, 162, 235), rgba(255, 99, 132), rgba(255, 206, 86),
			rgba(75, 192, 192), rgba(153, 102, 255), rgba(255, 159, 64),
			rgba(201, 203, 207), rgba(0, 204, 102), rgba(255, 102, 255),
			rgba(102, 255, 255), rgba(0, 0, 0), rgba(240, 100, 100),
			rgba(100, 240, 100), rgba(100, 100, 240),
		},
		"forest": {
			rgba(253, 216, 167), rgba(150, 128, 108), rgba(136, 107, 85),
			rgba(46, 75, 71), rgba(35, 50, 45),
		},
		"pastel": {
			rgba(255, 179, 186), rgba(255, 223, 186), rgba(255, 255, 186),
			rgba(186, 255, 201), rgba(186, 225, 255),
		},
		"autumn_night": {
			rgba(171, 74, 31), rgba(105, 61, 34), rgba(200, 152, 106),
			rgba(57, 89, 78), rgba(11, 61, 62), rgba(48, 11, 28),
			rgba(18, 19, 24),
		},
		"lake_forest": {
			rgba(162, 181, 104), rgba(105, 116, 49), rgba(71, 93, 46),
			rgba(53, 75, 41), rgba(21, 40, 47), rgba(17, 70, 67),
			rgba(3, 99, 92), rgba(6, 129, 118),
		},
		"flavors": {
			rgba(0, 66, 66), rgba(0, 133, 156), rgba(0, 120, 79),
			rgba(159, 141, 50), rgba(133, 82, 160), rgba(239, 71, 130),
			rgba(252, 64, 36), rgba(248, 153, 29), rgba(240, 158, 125),
			rgba(187, 197, 171),
		},
		"ocean_breeze": {
			rgba(28, 52, 100), rgba(3, 69, 105), rgba(35, 91, 121),
			rgba(8, 108, 162), rgba(60, 157, 208), rgba(120, 190, 220),
			rgba(180, 220, 240), rgba(220, 240, 250),
		},
		"forest_canopy": {
			rgba(34, 49, 34), rgba(85, 107, 47), rgba(107, 142, 35),
			rgba(154, 205, 50), rgba(139, 69, 19), rgba(160, 82, 45),
			rgba(210, 180, 140), rgba(245, 222, 179),
		},
		"vibrant_spectrum": {
			rgba(255, 0, 0), rgba(255, 127, 0), rgba(255, 255, 0),
			rgba(0, 255, 0), rgba(0, 0, 255), rgba(75, 0, 130),
			rgba(148, 0, 211), rgba(255, 20, 147),
		},
		"policy_focus": {
			rgba(157, 94, 89), rgba(199, 163, 70), rgba(110, 145, 123),
			rgba(77, 142, 160), rgba(228, 190, 141), rgba(142, 86, 75),
			rgba(176, 129, 50), rgba(89, 118, 107), rgba(62, 91, 110),
		},
		"block_segments": {
			rgba(58, 123, 179), rgba(60, 190, 173), rgba(245, 189, 68),
			rgba(237, 108, 76), rgba(255, 153, 71), rgba(42, 99, 138),
			rgba(82, 180, 175), rgba(255, 203, 92), rgba(242, 132, 90),
		},
		"treemap_blues": {
			rgba(251, 181, 84), rgba(255, 203, 119), rgba(139, 213, 212),
			rgba(97, 186, 199), rgba(52, 144, 172), rgba(26, 102, 145),
			rgba(20, 79, 120), rgba(15, 61, 94), rgba(8, 44, 72),
		},
	}
}

// PaletteNames returns the palette names in stable sorted order so the
// rendered page is byte-identical across runs.
func PaletteNames(palettes map[string][]string) []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
