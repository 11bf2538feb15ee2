package indent

import (
	"github.com/rivo/uniseg"
)

// VisualColumn returns the display column of character column col in
// text, expanding tabs to the next tab stop of width tabWidth and counting
// wide characters as two cells.
func VisualColumn(text string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultWidth
	}
	visual, chars := 0, 0
	g := uniseg.NewGraphemes(text)
	for chars < col && g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += uniseg.StringWidth(cluster)
		}
		chars += len(g.Runes())
	}
	return visual
}

// TabStops returns the display columns of the tab stops up to limit.
func TabStops(tabWidth, limit int) []int {
	if tabWidth <= 0 {
		return nil
	}
	var stops []int
	for c := tabWidth; c <= limit; c += tabWidth {
		stops = append(stops, c)
	}
	return stops
}
