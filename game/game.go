// Package game encapsulates the rules of Pylos. A Game owns the positions
// of all 30 spheres, both reserves, the side on turn and the phase; it is
// the only thing allowed to move a game forward.
//
// Note: a Game doesn't care how it is played. Searchers drive it through
// the board.Engine mutators and their inverses; humans and the arena go
// through PlayMove, which validates first.
package game

import (
	"fmt"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/notation"
)

// Game implements board.Engine.
type Game struct {
	cells [board.NumLocations]board.SphereID
	// where[id] is the location index of a placed sphere, or -1 in reserve.
	where   [board.NumSpheres]int8
	reserve [2]int

	phase  board.Phase
	onturn board.Color

	turnnum int
	history []historyEntry
	seen    map[uint64]int
}

var _ board.Engine = (*Game)(nil)

// NewGame returns an empty pyramid with Light to move.
func NewGame() *Game {
	g := &Game{}
	g.clear()
	g.phase = board.PhaseMove
	g.onturn = board.Light
	g.resetHistory()
	return g
}

// NewFromNotation builds a game from a notation string. Sphere IDs are
// handed out in location order, lowest ID first.
func NewFromNotation(s string) (*Game, error) {
	pos, err := notation.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}
	return NewFromPosition(pos), nil
}

func NewFromPosition(pos *notation.Position) *Game {
	g := &Game{}
	g.clear()
	next := [2]board.SphereID{0, board.SpheresPerColor}
	for _, l := range board.Locations() {
		c := pos.Cells[l.Index]
		if c == board.NoColor {
			continue
		}
		id := next[c]
		next[c]++
		g.cells[l.Index] = id
		g.where[id] = int8(l.Index)
		g.reserve[c]--
	}
	g.phase = pos.Phase
	g.onturn = pos.ToMove
	if g.phase == board.PhaseMove && g.reserve[g.onturn] == 0 {
		g.phase = board.PhaseCompleted
	}
	g.resetHistory()
	return g
}

func (g *Game) clear() {
	for i := range g.cells {
		g.cells[i] = board.NoSphere
	}
	for i := range g.where {
		g.where[i] = -1
	}
	g.reserve = [2]int{board.SpheresPerColor, board.SpheresPerColor}
}

func (g *Game) Locations() []board.Location { return board.Locations() }
func (g *Game) Phase() board.Phase           { return g.phase }
func (g *Game) ColorOnTurn() board.Color     { return g.onturn }

// Turn is the number of moves recorded through PlayMove.
func (g *Game) Turn() int { return g.turnnum }

func (g *Game) Playing() bool { return g.phase != board.PhaseCompleted }

// Winner returns the winning color once the game is complete. The side
// left on turn with an empty reserve is the loser.
func (g *Game) Winner() board.Color {
	if g.phase != board.PhaseCompleted {
		return board.NoColor
	}
	return g.onturn.Other()
}

func (g *Game) Occupant(l board.Location) board.SphereID {
	return g.cells[l.Index]
}

func (g *Game) InReserve(id board.SphereID) bool {
	return g.where[id] < 0
}

func (g *Game) LocationOf(id board.SphereID) (board.Location, bool) {
	w := g.where[id]
	if w < 0 {
		return board.Location{}, false
	}
	return board.LocationByIndex(int(w)), true
}

// Reserve returns the lowest-numbered reserve sphere of c.
func (g *Game) Reserve(c board.Color) (board.SphereID, bool) {
	for _, id := range board.SpheresOf(c) {
		if g.where[id] < 0 {
			return id, true
		}
	}
	return board.NoSphere, false
}

func (g *Game) ReserveCount(c board.Color) int {
	if c != board.Light && c != board.Dark {
		return 0
	}
	return g.reserve[c]
}

func (g *Game) supported(l board.Location) bool {
	for _, b := range board.Below(l) {
		if g.cells[b] == board.NoSphere {
			return false
		}
	}
	return true
}

// free reports whether nothing rests on l.
func (g *Game) free(l board.Location) bool {
	for _, a := range board.Above(l) {
		if g.cells[a] != board.NoSphere {
			return false
		}
	}
	return true
}

// CanMoveTo reports whether id may be placed (from reserve) or lifted (from
// the board) onto l.
func (g *Game) CanMoveTo(id board.SphereID, l board.Location) bool {
	if g.cells[l.Index] != board.NoSphere || !g.supported(l) {
		return false
	}
	w := g.where[id]
	if w < 0 {
		return true
	}
	from := board.LocationByIndex(int(w))
	if l.Z <= from.Z || !g.free(from) {
		return false
	}
	return !board.Supports(from, l)
}

func (g *Game) CanRemove(id board.SphereID) bool {
	w := g.where[id]
	if w < 0 {
		return false
	}
	return g.free(board.LocationByIndex(int(w)))
}

func (g *Game) completesSquare(l board.Location, c board.Color) bool {
	for _, s := range board.SquaresContaining(l) {
		full := true
		for _, cell := range board.Square(s) {
			id := g.cells[cell]
			if id == board.NoSphere || id.Color() != c {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

func (g *Game) hasRemovable(c board.Color) bool {
	for _, id := range board.SpheresOf(c) {
		if g.CanRemove(id) {
			return true
		}
	}
	return false
}

// endTurn hands the move to the other side, or ends the game if that side
// has nothing left to place.
func (g *Game) endTurn() {
	g.onturn = g.onturn.Other()
	g.phase = board.PhaseMove
	if g.reserve[g.onturn] == 0 {
		g.phase = board.PhaseCompleted
	}
}

func (g *Game) put(id board.SphereID, idx int) {
	g.cells[idx] = id
	g.where[id] = int8(idx)
}

func (g *Game) take(id board.SphereID) int {
	idx := int(g.where[id])
	g.cells[idx] = board.NoSphere
	g.where[id] = -1
	return idx
}

// MoveSphere places a reserve sphere or lifts a placed one onto to.
func (g *Game) MoveSphere(id board.SphereID, to board.Location) {
	c := id.Color()
	if g.where[id] < 0 {
		g.reserve[c]--
	} else {
		g.take(id)
	}
	g.put(id, to.Index)
	if g.completesSquare(to, c) && g.hasRemovable(c) {
		g.phase = board.PhaseRemoveFirst
		return
	}
	g.endTurn()
}

func (g *Game) UndoAddSphere(id board.SphereID, prevPhase board.Phase, prevColor board.Color) {
	g.take(id)
	g.reserve[id.Color()]++
	g.phase, g.onturn = prevPhase, prevColor
}

func (g *Game) UndoMoveSphere(id board.SphereID, from board.Location, prevPhase board.Phase, prevColor board.Color) {
	g.take(id)
	g.put(id, from.Index)
	g.phase, g.onturn = prevPhase, prevColor
}

// RemoveSphere returns a placed sphere to its owner's reserve.
func (g *Game) RemoveSphere(id board.SphereID) {
	g.take(id)
	g.reserve[id.Color()]++
	switch g.phase {
	case board.PhaseRemoveFirst:
		g.phase = board.PhaseRemoveSecond
	case board.PhaseRemoveSecond:
		g.endTurn()
	default:
		panic(fmt.Sprintf("remove in phase %s", g.phase))
	}
}

func (g *Game) UndoRemoveFirstSphere(id board.SphereID, from board.Location, prevPhase board.Phase, prevColor board.Color) {
	if prevPhase != board.PhaseRemoveFirst {
		panic(fmt.Sprintf("undo of first removal with phase %s", prevPhase))
	}
	g.unremove(id, from, prevPhase, prevColor)
}

func (g *Game) UndoRemoveSecondSphere(id board.SphereID, from board.Location, prevPhase board.Phase, prevColor board.Color) {
	if prevPhase != board.PhaseRemoveSecond {
		panic(fmt.Sprintf("undo of second removal with phase %s", prevPhase))
	}
	g.unremove(id, from, prevPhase, prevColor)
}

func (g *Game) unremove(id board.SphereID, from board.Location, prevPhase board.Phase, prevColor board.Color) {
	g.reserve[id.Color()]--
	g.put(id, from.Index)
	g.phase, g.onturn = prevPhase, prevColor
}

// Pass declines the optional second removal.
func (g *Game) Pass() {
	if g.phase != board.PhaseRemoveSecond {
		panic(fmt.Sprintf("pass in phase %s", g.phase))
	}
	g.endTurn()
}

func (g *Game) UndoPass(prevPhase board.Phase, prevColor board.Color) {
	g.phase, g.onturn = prevPhase, prevColor
}

// ToDisplayText renders the pyramid without color.
func (g *Game) ToDisplayText() string {
	return board.ToDisplayText(g, nil)
}

func (g *Game) String() string {
	return notation.Format(g)
}
