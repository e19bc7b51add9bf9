package game

import (
	"errors"
	"fmt"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/move"
)

var (
	ErrGameOver           = errors.New("cannot play a move on a game that is over")
	ErrWrongPhase         = errors.New("move not allowed in this phase")
	ErrNotYourSphere      = errors.New("sphere does not belong to the side on turn")
	ErrIllegalDestination = errors.New("sphere cannot move there")
	ErrNotRemovable       = errors.New("sphere cannot be removed")
	ErrCannotPass         = errors.New("passing is only allowed instead of a second removal")
	ErrNoAction           = errors.New("no action given")
)

// ValidateMove checks m against the current position without changing it.
func (g *Game) ValidateMove(m move.Move) error {
	if g.phase == board.PhaseCompleted {
		return ErrGameOver
	}
	switch m.Action() {
	case move.MoveTypeNone:
		return ErrNoAction
	case move.MoveTypePass:
		if g.phase != board.PhaseRemoveSecond {
			return ErrCannotPass
		}
		return nil
	}
	id := m.Sphere()
	if id.Color() != g.onturn {
		return fmt.Errorf("%w: %s", ErrNotYourSphere, id)
	}
	switch m.Action() {
	case move.MoveTypePlace, move.MoveTypeLift:
		if g.phase != board.PhaseMove {
			return fmt.Errorf("%w: %s during %s", ErrWrongPhase, m.Action(), g.phase)
		}
		if m.Action() == move.MoveTypePlace && !g.InReserve(id) {
			return fmt.Errorf("%w: %s is not in reserve", ErrIllegalDestination, id)
		}
		if m.Action() == move.MoveTypeLift && g.InReserve(id) {
			return fmt.Errorf("%w: %s is not on the board", ErrIllegalDestination, id)
		}
		if !g.CanMoveTo(id, m.To()) {
			return fmt.Errorf("%w: %s to %s", ErrIllegalDestination, id, m.To())
		}
	case move.MoveTypeRemove:
		if g.phase != board.PhaseRemoveFirst && g.phase != board.PhaseRemoveSecond {
			return fmt.Errorf("%w: remove during %s", ErrWrongPhase, g.phase)
		}
		if !g.CanRemove(id) {
			return fmt.Errorf("%w: %s", ErrNotRemovable, id)
		}
	}
	return nil
}

// PlayMove validates m, applies it and records it so it can be unplayed.
func (g *Game) PlayMove(m move.Move) error {
	if err := g.ValidateMove(m); err != nil {
		return err
	}
	u := move.Apply(g, m)
	g.record(u)
	return nil
}

// UnplayLastMove reverts the most recent PlayMove.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return errors.New("no moves to unplay")
	}
	g.forgetCurrent()
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	last.undo.Revert(g)
	g.turnnum--
	return nil
}

// LastMove returns the most recently played move, or move.None.
func (g *Game) LastMove() move.Move {
	if len(g.history) == 0 {
		return move.None
	}
	return g.history[len(g.history)-1].undo.Move()
}

// Moves returns the recorded moves in play order.
func (g *Game) Moves() []move.Move {
	out := make([]move.Move, len(g.history))
	for i, h := range g.history {
		out[i] = h.undo.Move()
	}
	return out
}
