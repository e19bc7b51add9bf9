package move

import "github.com/domino14/pylos/board"

// Undo captures everything needed to revert one applied move: the sphere's
// prior location and the phase and side before the forward call. Undo
// tokens must be reverted in strict LIFO order.
type Undo struct {
	m         Move
	from      board.Location
	wasPlaced bool
	prevPhase board.Phase
	prevColor board.Color
}

// Apply performs m on e and returns the token that reverts it. The engine
// is trusted; Apply does not validate.
func Apply(e board.Engine, m Move) Undo {
	u := Undo{m: m, prevPhase: e.Phase(), prevColor: e.ColorOnTurn()}
	switch m.action {
	case MoveTypePlace, MoveTypeLift:
		if !e.InReserve(m.sphere) {
			u.from, u.wasPlaced = e.LocationOf(m.sphere)
		}
		e.MoveSphere(m.sphere, m.to)
	case MoveTypeRemove:
		u.from, u.wasPlaced = e.LocationOf(m.sphere)
		e.RemoveSphere(m.sphere)
	case MoveTypePass:
		e.Pass()
	}
	return u
}

// Revert restores e to the state before Apply. The inverse is picked from
// the captured phase, so a removal made as the first of a pair is undone
// differently from the optional second one.
func (u Undo) Revert(e board.Engine) {
	switch u.m.action {
	case MoveTypePlace, MoveTypeLift:
		if u.wasPlaced {
			e.UndoMoveSphere(u.m.sphere, u.from, u.prevPhase, u.prevColor)
		} else {
			e.UndoAddSphere(u.m.sphere, u.prevPhase, u.prevColor)
		}
	case MoveTypeRemove:
		if u.prevPhase == board.PhaseRemoveFirst {
			e.UndoRemoveFirstSphere(u.m.sphere, u.from, u.prevPhase, u.prevColor)
		} else {
			e.UndoRemoveSecondSphere(u.m.sphere, u.from, u.prevPhase, u.prevColor)
		}
	case MoveTypePass:
		e.UndoPass(u.prevPhase, u.prevColor)
	}
}

func (u Undo) Move() Move { return u.m }

func (u Undo) PrevPhase() board.Phase { return u.prevPhase }

func (u Undo) PrevColor() board.Color { return u.prevColor }
