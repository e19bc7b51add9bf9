package search

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/eval"
	"github.com/domino14/pylos/game"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newSolver(t *testing.T, pos string, ev *eval.Evaluator) (*game.Game, *Solver) {
	t.Helper()
	g, err := game.NewFromNotation(pos)
	require.NoError(t, err)
	if ev == nil {
		ev = eval.NewEvaluator(g.ColorOnTurn())
	}
	s := NewSolver(g, ev)
	s.SetTranspositionTable(NewTranspositionTable(16))
	return g, s
}

func classic(self board.Color) *eval.Evaluator {
	return &eval.Evaluator{
		Self: self,
		Weights: eval.Weights{
			Reserve: -16, Squares: 14, Threats: 7, Height: 1.2, Mobility: 0.15,
		},
		Contempt: eval.DefaultContempt,
	}
}

func TestEmptyBoardDepthOne(t *testing.T) {
	is := is.New(t)
	g, s := newSolver(t, "16/9/4/1 l move", nil)
	m, v, found := s.Search(1)
	is.True(found)
	is.Equal(m.Action(), move.MoveTypePlace)
	// every first placement is worth the same, so ordering decides
	is.Equal(m.ShortDescription(), "0:1:1")
	assert.InDelta(t, 3+eval.DefaultContempt, v, 1e-9)
	is.Equal(g.String(), "16/9/4/1 l move")
	is.Equal(s.Nodes(), uint64(16))
}

func TestSearchLeavesEngineUntouched(t *testing.T) {
	is := is.New(t)
	pos := "LLDDL1D9/9/4/1 l move"
	g, s := newSolver(t, pos, nil)
	_, _, found := s.Search(3)
	is.True(found)
	is.Equal(g.String(), pos)
	is.Equal(g.ReserveCount(board.Light), 12)
	is.Equal(g.ReserveCount(board.Dark), 12)
}

func TestAlphaBetaMatchesExhaustive(t *testing.T) {
	for _, tc := range []struct {
		pos   string
		depth int
	}{
		{"16/9/4/1 l move", 3},
		{"LLDDL1D9/9/4/1 l move", 2},
		{"LLDDL1D9/9/4/1 l move", 3},
		{"DL2DL9L/9/4/1 d move", 3},
		{"LL2LL9L/L8/4/1 l remove1", 2},
	} {
		for _, ev := range []func(board.Color) *eval.Evaluator{eval.NewEvaluator, classic} {
			_, pruned := newSolver(t, tc.pos, nil)
			g, full := newSolver(t, tc.pos, nil)
			pruned.SetEvaluator(ev(g.ColorOnTurn()))
			full.SetEvaluator(ev(g.ColorOnTurn()))
			pruned.SetTranspositionTableOptim(false)
			full.SetTranspositionTableOptim(false)
			full.SetPruning(false)

			search := func(s *Solver) (move.Move, float64, bool) {
				if g.Phase() == board.PhaseMove {
					return s.Search(tc.depth)
				}
				return s.SearchRemoval(tc.depth)
			}
			m1, v1, f1 := search(pruned)
			m2, v2, f2 := search(full)
			require.True(t, f1 && f2, tc.pos)
			assert.InDelta(t, v2, v1, 1e-9, tc.pos)
			assert.Equal(t, m2.String(), m1.String(), tc.pos)
			assert.True(t, pruned.Nodes() <= full.Nodes(), tc.pos)
		}
	}
}

// randomPosition plays up to plies random legal actions from the empty
// board and returns the first position reached with the side on turn in
// the move phase.
func randomPosition(rng *frand.RNG, plies int) string {
	g := game.NewGame()
	for i := 0; i < plies && g.Playing(); i++ {
		var moves []move.Move
		switch g.Phase() {
		case board.PhaseMove:
			moves = movegen.Generate(g, g.ColorOnTurn())
		case board.PhaseRemoveFirst:
			moves = movegen.Removals(g, g.ColorOnTurn())
		case board.PhaseRemoveSecond:
			moves = append(movegen.Removals(g, g.ColorOnTurn()), move.NewPass())
		}
		move.Apply(g, moves[rng.Intn(len(moves))])
	}
	for g.Playing() && g.Phase() != board.PhaseMove {
		if g.Phase() == board.PhaseRemoveSecond {
			move.Apply(g, move.NewPass())
			continue
		}
		move.Apply(g, movegen.Removals(g, g.ColorOnTurn())[0])
	}
	return g.String()
}

func TestTranspositionTableSameRootValue(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	var hits uint64
	searched := 0
	for i := 0; i < 30; i++ {
		pos := randomPosition(rng, 4+rng.Intn(24))
		g, with := newSolver(t, pos, nil)
		if !g.Playing() {
			continue
		}
		_, without := newSolver(t, pos, nil)
		without.SetTranspositionTableOptim(false)
		_, full := newSolver(t, pos, nil)
		full.SetTranspositionTableOptim(false)
		full.SetPruning(false)

		depth := 3
		if i%3 == 0 {
			depth = 4
		}
		_, v1, f1 := with.Search(depth)
		_, v2, f2 := without.Search(depth)
		require.True(t, f1 && f2, pos)
		assert.InDelta(t, v2, v1, 1e-9, pos)
		if depth == 3 {
			_, v3, _ := full.Search(depth)
			assert.InDelta(t, v3, v2, 1e-9, pos)
		}
		assert.Equal(t, pos, g.String())
		hits += with.TranspositionTable().Stats().Hits
		searched++
	}
	assert.True(t, searched > 20)
	assert.True(t, hits > 0)
}

// Light's only square is at 0:1:1; Dark has no threat to answer.
func TestSquareCompletingMoveSelected(t *testing.T) {
	pos := "LL2L3D2DD3/9/4/1 l move"
	for _, ev := range []func(board.Color) *eval.Evaluator{eval.NewEvaluator, classic} {
		for depth := 1; depth <= 4; depth++ {
			g, s := newSolver(t, pos, ev(board.Light))
			m, _, found := s.Search(depth)
			require.True(t, found)
			assert.Equal(t, "place L3 0:1:1", m.String(), "depth %d", depth)
			assert.Equal(t, pos, g.String())
		}
	}

	// one solver across depths keeps its table between searches
	_, s := newSolver(t, pos, nil)
	for depth := 1; depth <= 4; depth++ {
		m, _, _ := s.Search(depth)
		assert.Equal(t, "place L3 0:1:1", m.String(), "depth %d", depth)
	}
}

func TestSquareCredit(t *testing.T) {
	is := is.New(t)
	_, s := newSolver(t, "LL2L3D2DD3/9/4/1 l move", nil)
	is.Equal(s.Evaluator().SquareCredit(), eval.DefaultWeights.Squares)
	// after the square and its removal Light keeps a threat: 7, plus the
	// square credit and contempt
	_, v, _ := s.Search(1)
	assert.InDelta(t, 7+14+eval.DefaultContempt, v, 1e-9)
}

func TestRemoveSecondPrefersPass(t *testing.T) {
	is := is.New(t)
	g, s := newSolver(t, "DD1LDD4DDL1DD/9/4/1 l remove2", nil)
	m, _, found := s.SearchRemoval(1)
	is.True(found)
	is.Equal(m.Action(), move.MoveTypePass)
	is.Equal(g.Phase(), board.PhaseRemoveSecond)

	// there is nothing to search in the move phase
	_, _, found = s.Search(1)
	is.True(!found)
}

func TestRemoveFirstNeverPasses(t *testing.T) {
	is := is.New(t)
	_, s := newSolver(t, "LL2LL9L/L8/4/1 l remove1", nil)
	m, _, found := s.SearchRemoval(2)
	is.True(found)
	is.Equal(m.Action(), move.MoveTypeRemove)
}

func TestNoMovesWhenGameOver(t *testing.T) {
	is := is.New(t)
	g, s := newSolver(t, "DDDDDDDDDDDDDDD1/9/4/1 d move", nil)
	is.Equal(g.Phase(), board.PhaseCompleted)
	m, _, found := s.Search(2)
	is.True(!found)
	is.True(m.IsNone())
}

func TestPrincipalVariation(t *testing.T) {
	is := is.New(t)
	g, s := newSolver(t, "16/9/4/1 l move", nil)
	m, v, _ := s.Search(3)
	pv := s.PrincipalVariation()
	is.True(len(pv.Moves) >= 1)
	is.True(pv.Moves[0].Equals(m))
	is.Equal(pv.Score(), v)
	is.Equal(g.String(), "16/9/4/1 l move")

	// the PV of a search without a table is just the best move
	s.SetTranspositionTableOptim(false)
	s.Search(2)
	is.Equal(len(s.PrincipalVariation().Moves), 1)
}

func TestPVLineUpdate(t *testing.T) {
	is := is.New(t)
	l, _ := board.LocationAt(0, 1, 1)
	child := PVLine{Moves: []move.Move{move.NewPass()}}
	var pv PVLine
	pv.Update(move.NewPlace(0, l), child, 2.5)
	is.Equal(len(pv.Moves), 2)
	is.Equal(pv.NLBString(), "PV; val 2.500; 1: 0:1:1; 2: pass")
}
