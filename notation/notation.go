// Package notation reads and writes single-line Pylos positions.
//
// A position looks like
//
//	LD2L11/9/4/1 d move
//
// The first field lists the four layers from the base up, separated by
// slashes. Within a layer cells go in index order (row-major); L and D are
// spheres and a number is a run of empty cells. Then comes the side to
// move (l or d) and the phase (move, remove1, remove2, done).
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/domino14/pylos/board"
)

var (
	ErrFieldCount    = errors.New("need 3 space-separated fields")
	ErrLayerCount    = errors.New("need 4 slash-separated layers")
	ErrTooMany       = errors.New("too many spheres of one color")
	ErrUnsupported   = errors.New("sphere without support")
	ErrBadSideToMove = errors.New("side to move must be l or d")
)

// Position is a parsed, validated position. Spheres are identified only by
// color; sphere IDs are assigned by whoever builds an engine from it.
type Position struct {
	Cells  [board.NumLocations]board.Color
	ToMove board.Color
	Phase  board.Phase
}

// Count returns the number of placed spheres of c.
func (p *Position) Count(c board.Color) int {
	n := 0
	for _, cc := range p.Cells {
		if cc == c {
			n++
		}
	}
	return n
}

// Parse reads a position string.
func Parse(s string) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return nil, ErrFieldCount
	}
	layers := strings.Split(fields[0], "/")
	if len(layers) != board.NumLayers {
		return nil, ErrLayerCount
	}
	pos := &Position{}
	idx := 0
	for z, layer := range layers {
		cells, err := layerToColors(layer, board.LayerSize(z)*board.LayerSize(z))
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", z, err)
		}
		for _, c := range cells {
			pos.Cells[idx] = c
			idx++
		}
	}
	switch fields[1] {
	case "l", "L":
		pos.ToMove = board.Light
	case "d", "D":
		pos.ToMove = board.Dark
	default:
		return nil, ErrBadSideToMove
	}
	var err error
	pos.Phase, err = board.ParsePhase(fields[2])
	if err != nil {
		return nil, err
	}
	if pos.Count(board.Light) > board.SpheresPerColor ||
		pos.Count(board.Dark) > board.SpheresPerColor {
		return nil, ErrTooMany
	}
	for _, l := range board.Locations() {
		if pos.Cells[l.Index] == board.NoColor {
			continue
		}
		for _, b := range board.Below(l) {
			if pos.Cells[b] == board.NoColor {
				return nil, fmt.Errorf("%w at %s", ErrUnsupported, l)
			}
		}
	}
	return pos, nil
}

func layerToColors(layer string, size int) ([]board.Color, error) {
	out := make([]board.Color, 0, size)
	run := ""
	flush := func() error {
		if run == "" {
			return nil
		}
		n, err := strconv.Atoi(run)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			out = append(out, board.NoColor)
		}
		run = ""
		return nil
	}
	for _, rn := range layer {
		if unicode.IsDigit(rn) {
			run += string(rn)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		switch rn {
		case 'L':
			out = append(out, board.Light)
		case 'D':
			out = append(out, board.Dark)
		default:
			return nil, fmt.Errorf("unexpected character %q", rn)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("layer has %d cells, want %d", len(out), size)
	}
	return out, nil
}

// Format writes the position held by e.
func Format(e board.Engine) string {
	var sb strings.Builder
	locs := e.Locations()
	for z := 0; z < board.NumLayers; z++ {
		if z > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for _, l := range locs {
			if l.Z != z {
				continue
			}
			id := e.Occupant(l)
			if id == board.NoSphere {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(board.Glyph(id.Color()))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	sb.WriteByte(' ')
	if e.ColorOnTurn() == board.Dark {
		sb.WriteByte('d')
	} else {
		sb.WriteByte('l')
	}
	sb.WriteByte(' ')
	sb.WriteString(e.Phase().String())
	return sb.String()
}
