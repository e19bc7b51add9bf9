// Package search implements the negamax alpha-beta searcher for Pylos,
// with a transposition table and heuristic move ordering.
package search

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/eval"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
	"github.com/domino14/pylos/zobrist"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

// DefaultDepth is the search depth used when none is configured.
const DefaultDepth = 4

// MaxVariantLength bounds the principal variation walked out of the table.
const MaxVariantLength = 16

var inf = math.Inf(1)

// PVLine is the principal variation found by the last search.
type PVLine struct {
	Moves []move.Move
	score float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m move.Move, newPVLine PVLine, score float64) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

func (pvLine PVLine) Score() float64 { return pvLine.score }

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.3f\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, m.ShortDescription())
	}
	return sb.String()
}

// NLBString is String without line breaks.
func (pvLine PVLine) NLBString() string {
	return strings.TrimSuffix(strings.ReplaceAll(pvLine.String(), "\n", "; "), "; ")
}

// Solver searches the engine it is given in place. Every move it applies
// is reverted before it returns, so the engine is left exactly as found.
type Solver struct {
	game board.Engine
	eval *eval.Evaluator

	transpositionTableOptim bool
	pruning                 bool
	ttable                  *TranspositionTable

	principalVariation PVLine
	nodes              atomic.Uint64
}

// NewSolver returns a solver with pruning and a default-sized table.
func NewSolver(e board.Engine, ev *eval.Evaluator) *Solver {
	return &Solver{
		game:                    e,
		eval:                    ev,
		transpositionTableOptim: true,
		pruning:                 true,
		ttable:                  NewTranspositionTable(DefaultSizePowerOf2),
	}
}

// SetGame points the solver at another engine. The table is kept.
func (s *Solver) SetGame(e board.Engine) { s.game = e }

// SetEvaluator swaps the evaluator. Stored values depend on it, so the
// table is cleared.
func (s *Solver) SetEvaluator(ev *eval.Evaluator) {
	s.eval = ev
	s.ttable.Reset(s.ttable.SizePowerOf2())
}

func (s *Solver) Evaluator() *eval.Evaluator { return s.eval }

func (s *Solver) SetTranspositionTableOptim(b bool) { s.transpositionTableOptim = b }

// SetPruning turns alpha-beta cutoffs on or off. With pruning off every
// node is searched full-width, which is only useful for verification.
func (s *Solver) SetPruning(b bool) { s.pruning = b }

func (s *Solver) SetTranspositionTable(t *TranspositionTable) { s.ttable = t }

func (s *Solver) TranspositionTable() *TranspositionTable { return s.ttable }

func (s *Solver) Nodes() uint64 { return s.nodes.Load() }

func (s *Solver) PrincipalVariation() PVLine { return s.principalVariation }

// candidates returns the actions available to the side on turn in the
// current phase. The second bool is false for phases nothing can be done
// in.
func (s *Solver) candidates(stm board.Color) ([]move.Move, bool) {
	switch s.game.Phase() {
	case board.PhaseMove:
		return movegen.Ordered(s.game, stm), true
	case board.PhaseRemoveFirst:
		return movegen.Removals(s.game, stm), true
	case board.PhaseRemoveSecond:
		return append(movegen.Removals(s.game, stm), move.NewPass()), true
	}
	return nil, false
}

// pvFirst moves the table's best move to the front of moves, if it is
// among them. A stale move is simply not found.
func pvFirst(moves []move.Move, pv move.Move) {
	for i, m := range moves {
		if m.Equals(pv) {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}

// child applies m, searches the resulting position and reverts m. When
// the same side moves again (removal sub-phases) the child's value is
// already from our point of view and the window is passed unchanged;
// otherwise the usual negamax negation applies.
//
// A move that completes a square is credited with the evaluator's square
// weight, since the removal it forces breaks the square up again.
func (s *Solver) child(m move.Move, depth int, α, β float64, stm board.Color) float64 {
	u := move.Apply(s.game, m)
	defer u.Revert(s.game)

	next := depth - 1
	credit := 0.0
	if (m.Action() == move.MoveTypePlace || m.Action() == move.MoveTypeLift) &&
		s.game.Phase() == board.PhaseRemoveFirst {
		// the removals belong to the same turn
		next++
		credit = s.eval.SquareCredit()
	}
	α, β = α-credit, β-credit
	if s.game.ColorOnTurn() == stm {
		return s.negamax(next, α, β) + credit
	}
	return -s.negamax(next, -β, -α) + credit
}

func (s *Solver) negamax(depth int, α, β float64) float64 {
	s.nodes.Add(1)
	stm := s.game.ColorOnTurn()
	if depth <= 0 || s.game.Phase() == board.PhaseCompleted {
		return s.eval.SignedEval(s.game, stm)
	}
	alphaOrig := α
	var key uint64
	if s.transpositionTableOptim {
		key = zobrist.Hash(s.game)
		if v, ok := s.ttable.Probe(key, depth, α, β); ok {
			return v
		}
	}
	moves, ok := s.candidates(stm)
	if !ok || len(moves) == 0 {
		return s.eval.SignedEval(s.game, stm)
	}
	if s.transpositionTableOptim {
		if pv, ok := s.ttable.BestMove(key); ok {
			pvFirst(moves, pv)
		}
	}

	best := -inf
	bestMove := move.None
	for _, m := range moves {
		v := s.child(m, depth, α, β, stm)
		if v > best {
			best = v
			bestMove = m
		}
		if !s.pruning {
			continue
		}
		if v > α {
			α = v
		}
		if α >= β {
			break
		}
	}
	if s.transpositionTableOptim {
		s.ttable.Store(key, depth, best, alphaOrig, β, bestMove)
	}
	return best
}

// Search picks the best move for the side on turn, which must be in the
// move phase. found is false if there is no legal move at all.
func (s *Solver) Search(depth int) (best move.Move, value float64, found bool) {
	if s.game.Phase() != board.PhaseMove {
		return move.None, 0, false
	}
	return s.searchRoot(depth)
}

// SearchRemoval picks a removal, or a pass where one is allowed, for the
// side on turn in a removal phase.
func (s *Solver) SearchRemoval(depth int) (best move.Move, value float64, found bool) {
	p := s.game.Phase()
	if p != board.PhaseRemoveFirst && p != board.PhaseRemoveSecond {
		return move.None, 0, false
	}
	return s.searchRoot(depth)
}

func (s *Solver) searchRoot(depth int) (move.Move, float64, bool) {
	ts := time.Now()
	s.nodes.Store(0)
	s.principalVariation.Clear()

	stm := s.game.ColorOnTurn()
	moves, _ := s.candidates(stm)
	var key uint64
	if s.transpositionTableOptim {
		key = zobrist.Hash(s.game)
		if pv, ok := s.ttable.BestMove(key); ok {
			pvFirst(moves, pv)
		}
	}

	α, β := -inf, inf
	bestVal := -inf
	best := move.None
	for _, m := range moves {
		v := s.child(m, depth, α, β, stm)
		if v > bestVal {
			bestVal = v
			best = m
		}
		if s.pruning && v > α {
			α = v
		}
	}
	found := !best.IsNone()
	if !found {
		bestVal = 0
	} else if s.transpositionTableOptim {
		s.ttable.Store(key, depth, bestVal, -inf, inf, best)
	}
	s.principalVariation = s.walkPV(best, bestVal)

	tstats := s.ttable.Stats()
	log.Debug().
		Str("side", stm.String()).
		Int("depth", depth).
		Str("best", best.String()).
		Float64("value", bestVal).
		Int("candidates", len(moves)).
		Uint64("nodes", s.nodes.Load()).
		Uint64("ttable-created", tstats.Created).
		Uint64("ttable-lookups", tstats.Lookups).
		Uint64("ttable-hits", tstats.Hits).
		Uint64("ttable-t2collisions", tstats.T2Collisions).
		Dur("elapsed", time.Since(ts)).
		Str("pv", s.principalVariation.NLBString()).
		Msg("search-returning")
	return best, bestVal, found
}

// walkPV follows table best moves from the root. Each step is checked
// against freshly generated candidates and reverted on the way back out.
func (s *Solver) walkPV(first move.Move, score float64) PVLine {
	pv := PVLine{score: score}
	if first.IsNone() {
		return pv
	}
	var rest PVLine
	if s.transpositionTableOptim {
		rest = s.pvTail(first, map[uint64]bool{}, 1)
	}
	pv.Update(first, rest, score)
	return pv
}

// pvTail applies m and returns the line of table moves that follows it.
func (s *Solver) pvTail(m move.Move, seen map[uint64]bool, length int) PVLine {
	u := move.Apply(s.game, m)
	defer u.Revert(s.game)

	var line PVLine
	if length >= MaxVariantLength || s.game.Phase() == board.PhaseCompleted {
		return line
	}
	key := zobrist.Hash(s.game)
	if seen[key] {
		return line
	}
	seen[key] = true
	next, ok := s.ttable.BestMove(key)
	if !ok {
		return line
	}
	moves, _ := s.candidates(s.game.ColorOnTurn())
	if !lo.ContainsBy(moves, func(c move.Move) bool { return c.Equals(next) }) {
		return line
	}
	line.Update(next, s.pvTail(next, seen, length+1), 0)
	return line
}
