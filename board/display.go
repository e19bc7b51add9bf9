package board

import (
	"fmt"
	"strings"
)

// Painter decorates a single cell glyph, e.g. with terminal colors.
type Painter func(c Color, glyph string) string

func plain(_ Color, glyph string) string { return glyph }

// Glyph is the one-character form of a cell owned by c.
func Glyph(c Color) string {
	switch c {
	case Light:
		return "L"
	case Dark:
		return "D"
	}
	return "."
}

// ToDisplayText renders the four layers side by side, followed by reserve
// counts and the phase. paint may be nil.
func ToDisplayText(e Engine, paint Painter) string {
	if paint == nil {
		paint = plain
	}
	var sb strings.Builder
	// header
	for z := 0; z < NumLayers; z++ {
		fmt.Fprintf(&sb, "%-*s", colWidth(z), fmt.Sprintf("  z=%d", z))
	}
	sb.WriteString("\n")
	for x := 0; x < LayerSize(0); x++ {
		for z := 0; z < NumLayers; z++ {
			n := LayerSize(z)
			if x >= n {
				sb.WriteString(strings.Repeat(" ", colWidth(z)))
				continue
			}
			row := make([]string, n)
			for y := 0; y < n; y++ {
				l, _ := LocationAt(z, x, y)
				id := e.Occupant(l)
				c := NoColor
				if id != NoSphere {
					c = id.Color()
				}
				row[y] = paint(c, Glyph(c))
			}
			cell := fmt.Sprintf("%d %s", x, strings.Join(row, " "))
			sb.WriteString(cell)
			// pad using the unpainted width so escape codes don't skew columns
			sb.WriteString(strings.Repeat(" ", colWidth(z)-(2+2*n-1)))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "reserve light=%d dark=%d  to move: %s  phase: %s\n",
		e.ReserveCount(Light), e.ReserveCount(Dark), e.ColorOnTurn(), e.Phase())
	return sb.String()
}

func colWidth(z int) int {
	// "x " prefix, n glyphs separated by spaces, 4 spaces gutter
	return 2 + 2*LayerSize(z) - 1 + 4
}
