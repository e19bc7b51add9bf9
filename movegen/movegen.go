// Package movegen enumerates the moves of one side and orders them for the
// searcher. It trusts the engine's CanMoveTo/CanRemove answers and never
// validates anything itself.
package movegen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/move"
)

const (
	LiftBonus        = 6.0
	RaisedPlaceBonus = 4.0
	SquareProbeBonus = 200.2
)

// Generate returns reserve placements for one reserve sphere of c followed
// by every lift of c's placed spheres. Within each group destinations come
// in location index order.
func Generate(e board.Engine, c board.Color) []move.Move {
	locs := e.Locations()
	moves := make([]move.Move, 0, 32)
	if r, ok := e.Reserve(c); ok {
		for _, l := range locs {
			if e.CanMoveTo(r, l) {
				moves = append(moves, move.NewPlace(r, l))
			}
		}
	}
	for _, id := range board.SpheresOf(c) {
		if e.InReserve(id) {
			continue
		}
		for _, l := range locs {
			if e.CanMoveTo(id, l) {
				moves = append(moves, move.NewLift(id, l))
			}
		}
	}
	return moves
}

// CenterBonus prefers central, inner cells; base-layer cells get a little
// more than raised ones.
func CenterBonus(l board.Location) float64 {
	n := board.LayerSize(l.Z)
	c := float64(n-1) / 2
	dx, dy := float64(l.X)-c, float64(l.Y)-c
	bonus := -0.6 * (dx*dx + dy*dy)
	if l.X == 0 || l.Y == 0 || l.X == n-1 || l.Y == n-1 {
		bonus -= 0.5
	}
	if l.Z == 0 {
		return bonus + 0.7
	}
	return bonus + 0.25
}

// Score is the ordering score of one move. It probes the engine by
// applying and reverting the move to see whether it completes a square.
func Score(e board.Engine, m move.Move) float64 {
	score := 0.0
	if from, placed := e.LocationOf(m.Sphere()); placed {
		if m.To().Z > from.Z {
			score += LiftBonus
		}
	} else if m.To().Z > 0 {
		score += RaisedPlaceBonus
	}
	score += CenterBonus(m.To())

	u := move.Apply(e, m)
	if e.Phase() == board.PhaseRemoveFirst {
		score += SquareProbeBonus
	}
	u.Revert(e)
	return score
}

type scoredMove struct {
	m     move.Move
	score float64
}

// Order sorts moves by descending Score, in place. Ties keep their
// generation order.
func Order(e board.Engine, moves []move.Move) {
	scored := lo.Map(moves, func(m move.Move, _ int) scoredMove {
		return scoredMove{m: m, score: Score(e, m)}
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i := range scored {
		moves[i] = scored[i].m
	}
}

// Ordered is Generate followed by Order.
func Ordered(e board.Engine, c board.Color) []move.Move {
	moves := Generate(e, c)
	Order(e, moves)
	return moves
}

// Removals returns a removal for every sphere of c the engine lets go,
// highest layer first.
func Removals(e board.Engine, c board.Color) []move.Move {
	ids := lo.Filter(board.SpheresOf(c), func(id board.SphereID, _ int) bool {
		return e.CanRemove(id)
	})
	z := func(id board.SphereID) int {
		l, _ := e.LocationOf(id)
		return l.Z
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return z(ids[i]) > z(ids[j])
	})
	return lo.Map(ids, func(id board.SphereID, _ int) move.Move {
		return move.NewRemove(id)
	})
}

// Mobility counts the legal destinations of all of c's placed spheres.
// skip, if not board.NoSphere, is left out of the count as though it had
// been removed.
func Mobility(e board.Engine, c board.Color, skip board.SphereID) int {
	locs := e.Locations()
	n := 0
	for _, id := range board.SpheresOf(c) {
		if id == skip || e.InReserve(id) {
			continue
		}
		n += lo.CountBy(locs, func(l board.Location) bool {
			return e.CanMoveTo(id, l)
		})
	}
	return n
}
