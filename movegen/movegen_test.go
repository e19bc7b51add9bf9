package movegen

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/game"
	"github.com/domino14/pylos/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func descs(moves []move.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.ShortDescription()
	}
	return out
}

func TestGenerateEmptyBoard(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	moves := Generate(g, board.Light)
	is.Equal(len(moves), 16)
	for i, m := range moves {
		is.Equal(m.Action(), move.MoveTypePlace)
		is.Equal(m.To().Index, i)
	}
}

func TestOrderStableTies(t *testing.T) {
	g := game.NewGame()
	moves := Ordered(g, board.Light)
	// the four centre cells score the same and keep index order, then the
	// eight edge cells, then the corners
	assert.Equal(t, []string{
		"0:1:1", "0:1:2", "0:2:1", "0:2:2",
		"0:0:1", "0:0:2", "0:1:0", "0:1:3", "0:2:0", "0:2:3", "0:3:1", "0:3:2",
		"0:0:0", "0:0:3", "0:3:0", "0:3:3",
	}, descs(moves))
}

func TestCenterBonus(t *testing.T) {
	center, _ := board.LocationAt(0, 1, 1)
	corner, _ := board.LocationAt(0, 0, 0)
	raised, _ := board.LocationAt(1, 0, 0)
	assert.InDelta(t, 0.4, CenterBonus(center), 1e-9)
	assert.InDelta(t, -2.5, CenterBonus(corner), 1e-9)
	assert.InDelta(t, -1.45, CenterBonus(raised), 1e-9)
}

func TestLiftsAndRaisedPlacementsFirst(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("DL2DL9L/9/4/1 l move")
	is.NoErr(err)
	moves := Ordered(g, board.Light)
	is.Equal(len(moves), 13)
	is.Equal(moves[0].String(), "lift L2 1:0:0")
	is.Equal(moves[1].ShortDescription(), "1:0:0")
	is.Equal(moves[2].ShortDescription(), "0:1:2")
	is.Equal(g.String(), "DL2DL9L/9/4/1 l move")
}

func TestSquareCompletingMoveFirst(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("LLDDL1D9/9/4/1 l move")
	is.NoErr(err)
	moves := Ordered(g, board.Light)
	is.Equal(moves[0].ShortDescription(), "0:1:1")
	is.True(Score(g, moves[0]) > SquareProbeBonus)
	// probing leaves the position alone
	is.Equal(g.Phase(), board.PhaseMove)
	is.Equal(g.ColorOnTurn(), board.Light)
}

func TestRemovalsHighestFirst(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("LL2LL9L/L8/4/1 l remove1")
	is.NoErr(err)
	rm := Removals(g, board.Light)
	is.Equal(descs(rm), []string{"remove L5", "remove L4"})
	is.Equal(len(Removals(g, board.Dark)), 0)
}

func TestMobility(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("DL2DL9L/9/4/1 l move")
	is.NoErr(err)
	lifter := g.Occupant(board.LocationByIndex(15))
	is.Equal(Mobility(g, board.Light, board.NoSphere), 1)
	is.Equal(Mobility(g, board.Light, lifter), 0)
	is.Equal(Mobility(g, board.Dark, board.NoSphere), 0)
}
