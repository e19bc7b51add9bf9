package eval

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/game"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
)

func TestEmptyBoard(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	ev := NewEvaluator(board.Light)
	is.Equal(ev.Breakdown(g), Breakdown{})
	is.Equal(ev.SignedEval(g, board.Light), DefaultContempt)
	is.Equal(ev.SignedEval(g, board.Dark), -DefaultContempt)
}

func TestThreatCounted(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("LLD1L11/9/4/1 l move")
	is.NoErr(err)
	ev := NewEvaluator(board.Light)
	is.Equal(ev.Breakdown(g), Breakdown{Reserve: 2, Threats: 1})
	assert.InDelta(t, 13.0, ev.Evaluate(g), 1e-9)

	// filling the hole with an enemy sphere kills the threat
	g, err = game.NewFromNotation("LLD1LD10/9/4/1 l move")
	is.NoErr(err)
	is.Equal(ev.Breakdown(g).Threats, 0)
}

func TestSquareCounted(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("LL2LL10/9/4/1 d move")
	is.NoErr(err)
	ev := NewEvaluator(board.Light)
	is.Equal(ev.Breakdown(g), Breakdown{Reserve: 4, Squares: 1})
	assert.InDelta(t, 26.0, ev.Evaluate(g), 1e-9)

	dark := NewEvaluator(board.Dark)
	assert.InDelta(t, -26.0, dark.Evaluate(g), 1e-9)

	classic := &Evaluator{Self: board.Light, Weights: Weights{Reserve: -16, Squares: 14}}
	assert.InDelta(t, -50.0, classic.Evaluate(g), 1e-9)
}

func TestHeightAndMobility(t *testing.T) {
	is := is.New(t)
	g, err := game.NewFromNotation("DL2DL10/L8/4/1 d move")
	is.NoErr(err)
	b := NewEvaluator(board.Light).Breakdown(g)
	is.Equal(b.Height, 1)
	is.Equal(b.Reserve, 1)
}

// SignedEval must flip sign exactly between the two sides, in every
// position, for negamax to be correct.
func TestSignedEvalSymmetry(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	ev := NewEvaluator(board.Dark)
	for i := 0; i < 20; i++ {
		g := game.NewGame()
		for ply := 0; ply < 40 && g.Playing(); ply++ {
			a := ev.SignedEval(g, board.Light)
			b := ev.SignedEval(g, board.Dark)
			assert.Equal(t, a, -b)

			var moves []move.Move
			if g.Phase() == board.PhaseMove {
				moves = movegen.Generate(g, g.ColorOnTurn())
			} else {
				moves = append(movegen.Removals(g, g.ColorOnTurn()), move.NewPass())
				if g.Phase() == board.PhaseRemoveFirst {
					moves = moves[:len(moves)-1]
				}
			}
			if len(moves) == 0 {
				break
			}
			move.Apply(g, moves[rng.Intn(len(moves))])
		}
	}
}
