package player

import (
	"lukechampine.com/frand"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
)

// RandomPlayer plays any legal move. It always declines the optional
// second removal.
type RandomPlayer struct {
	name string
	rng  *frand.RNG
}

// NewRandomPlayer uses rng, or a freshly seeded generator if rng is nil.
func NewRandomPlayer(name string, rng *frand.RNG) *RandomPlayer {
	if rng == nil {
		rng = frand.New()
	}
	if name == "" {
		name = "random"
	}
	return &RandomPlayer{name: name, rng: rng}
}

func (p *RandomPlayer) Name() string { return p.name }

func (p *RandomPlayer) pick(moves []move.Move) move.Move {
	if len(moves) == 0 {
		return move.None
	}
	return moves[p.rng.Intn(len(moves))]
}

func (p *RandomPlayer) ChooseMove(e board.Engine) move.Move {
	return p.pick(movegen.Generate(e, e.ColorOnTurn()))
}

func (p *RandomPlayer) ChooseRemoval(e board.Engine) move.Move {
	m := p.pick(movegen.Removals(e, e.ColorOnTurn()))
	if m.IsNone() {
		return move.NewPass()
	}
	return m
}

func (p *RandomPlayer) ChooseRemovalOrPass(board.Engine) move.Move {
	return move.NewPass()
}
