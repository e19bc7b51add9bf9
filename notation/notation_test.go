package notation

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/pylos/board"
)

func TestLayerToColors(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		layer string
		size  int
		want  []board.Color
	}{
		{"4", 4, []board.Color{board.NoColor, board.NoColor, board.NoColor, board.NoColor}},
		{"L2D", 4, []board.Color{board.Light, board.NoColor, board.NoColor, board.Dark}},
		{"1", 1, []board.Color{board.NoColor}},
		{"10LD4", 16, nil},
	}
	for _, tc := range testcases {
		got, err := layerToColors(tc.layer, tc.size)
		is.NoErr(err)
		if tc.want != nil {
			is.Equal(got, tc.want)
		}
		is.Equal(len(got), tc.size)
	}
	_, err := layerToColors("L2", 4)
	is.True(err != nil)
	_, err = layerToColors("X3", 4)
	is.True(err != nil)
}

func TestParse(t *testing.T) {
	is := is.New(t)
	pos, err := Parse("DL2DL10/L8/4/1 d remove2")
	is.NoErr(err)
	is.Equal(pos.ToMove, board.Dark)
	is.Equal(pos.Phase, board.PhaseRemoveSecond)
	is.Equal(pos.Count(board.Light), 3)
	is.Equal(pos.Count(board.Dark), 2)
	top, _ := board.LocationAt(1, 0, 0)
	is.Equal(pos.Cells[top.Index], board.Light)
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	_, err := Parse("16/9/4/1 l")
	is.True(errors.Is(err, ErrFieldCount))
	_, err = Parse("16/9/4 l move")
	is.True(errors.Is(err, ErrLayerCount))
	_, err = Parse("16/9/4/1 x move")
	is.True(errors.Is(err, ErrBadSideToMove))
	_, err = Parse("16/9/4/1 l sideways")
	is.True(err != nil)
	_, err = Parse("16/L8/4/1 l move")
	is.True(errors.Is(err, ErrUnsupported))
	_, err = Parse("LLLLLLLLLLLLLLLL/9/4/1 d move")
	is.True(errors.Is(err, ErrTooMany))
}
