// Package player is an automatic player of Pylos. A player makes the
// three decisions a turn can ask for: a move, a first removal, and a
// second removal or pass.
package player

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/config"
	"github.com/domino14/pylos/game"
	"github.com/domino14/pylos/move"
)

// AIPlayer describes an artificial player. Each decision returns move.None
// when there is nothing it can do.
type AIPlayer interface {
	Name() string
	// ChooseMove picks a placement or lift for the side on turn.
	ChooseMove(e board.Engine) move.Move
	// ChooseRemoval picks the mandatory first removal after a square.
	ChooseRemoval(e board.Engine) move.Move
	// ChooseRemovalOrPass picks the optional second removal, or a pass.
	ChooseRemovalOrPass(e board.Engine) move.Move
}

var ErrNothingToDo = errors.New("player has nothing to do in this phase")

// New builds the player a preset describes. rng only matters for random
// presets; nil seeds a fresh generator.
func New(p config.Preset, ttSizePower int, rng *frand.RNG) AIPlayer {
	if p.Random {
		return NewRandomPlayer(p.Name, rng)
	}
	return NewSearchPlayer(p, ttSizePower)
}

// Decide asks p for the decision the current phase of e needs.
func Decide(e board.Engine, p AIPlayer) move.Move {
	switch e.Phase() {
	case board.PhaseMove:
		return p.ChooseMove(e)
	case board.PhaseRemoveFirst:
		return p.ChooseRemoval(e)
	case board.PhaseRemoveSecond:
		return p.ChooseRemovalOrPass(e)
	}
	return move.None
}

// Act lets p make one decision in g and plays it.
func Act(g *game.Game, p AIPlayer) (move.Move, error) {
	if !g.Playing() {
		return move.None, game.ErrGameOver
	}
	m := Decide(g, p)
	if m.IsNone() {
		return m, fmt.Errorf("%w: %s during %s", ErrNothingToDo, p.Name(), g.Phase())
	}
	if err := g.PlayMove(m); err != nil {
		return m, fmt.Errorf("%s chose %s: %w", p.Name(), m, err)
	}
	log.Debug().Str("player", p.Name()).Str("move", m.String()).
		Str("phase", g.Phase().String()).Msg("player-acted")
	return m, nil
}

// firstPlacement is the fallback when a search finds nothing: the first
// reserve placement in location order.
func firstPlacement(e board.Engine) move.Move {
	r, ok := e.Reserve(e.ColorOnTurn())
	if !ok {
		return move.None
	}
	for _, l := range e.Locations() {
		if e.CanMoveTo(r, l) {
			return move.NewPlace(r, l)
		}
	}
	return move.None
}
