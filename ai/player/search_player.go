package player

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/config"
	"github.com/domino14/pylos/eval"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
	"github.com/domino14/pylos/search"
)

const (
	// HeightPenalty is subtracted per layer from a removal's mobility score.
	HeightPenalty = 0.2
	// PassThreshold is the mobility gain a second removal must beat to be
	// preferred over passing.
	PassThreshold = -0.1
)

// SearchPlayer chooses moves with an alpha-beta search. Removals use the
// mobility heuristics unless the preset asks for them to be searched too.
type SearchPlayer struct {
	preset config.Preset
	solver *search.Solver
}

func NewSearchPlayer(p config.Preset, ttSizePower int) *SearchPlayer {
	ev := &eval.Evaluator{Self: board.Light, Weights: p.Weights, Contempt: p.Contempt}
	solver := search.NewSolver(nil, ev)
	if p.TT {
		solver.SetTranspositionTable(search.NewTranspositionTable(ttSizePower))
	} else {
		solver.SetTranspositionTableOptim(false)
		solver.SetTranspositionTable(search.NewTranspositionTable(0))
	}
	return &SearchPlayer{preset: p, solver: solver}
}

func (p *SearchPlayer) Name() string { return p.preset.Name }

func (p *SearchPlayer) Preset() config.Preset { return p.preset }

func (p *SearchPlayer) Solver() *search.Solver { return p.solver }

// prepare points the solver at e and evaluates for the side on turn. The
// table only survives while the player keeps playing the same side.
func (p *SearchPlayer) prepare(e board.Engine) {
	p.solver.SetGame(e)
	if p.solver.Evaluator().Self != e.ColorOnTurn() {
		ev := *p.solver.Evaluator()
		ev.Self = e.ColorOnTurn()
		p.solver.SetEvaluator(&ev)
	}
}

func (p *SearchPlayer) ChooseMove(e board.Engine) move.Move {
	p.prepare(e)
	m, v, found := p.solver.Search(p.preset.Depth)
	if found {
		return m
	}
	log.Debug().Str("player", p.Name()).Float64("value", v).Msg("no-search-move-falling-back")
	return firstPlacement(e)
}

func (p *SearchPlayer) ChooseRemoval(e board.Engine) move.Move {
	if p.preset.Removal == config.RemovalSearch {
		return p.searchRemoval(e)
	}
	return MobilityRemoval(e)
}

func (p *SearchPlayer) ChooseRemovalOrPass(e board.Engine) move.Move {
	if p.preset.Removal == config.RemovalSearch {
		return p.searchRemoval(e)
	}
	return MobilityRemovalOrPass(e)
}

func (p *SearchPlayer) searchRemoval(e board.Engine) move.Move {
	p.prepare(e)
	m, _, found := p.solver.SearchRemoval(p.preset.Depth)
	if !found {
		return move.NewPass()
	}
	return m
}

func removalScore(e board.Engine, m move.Move) float64 {
	stm := e.ColorOnTurn()
	l, _ := e.LocationOf(m.Sphere())
	return float64(movegen.Mobility(e, stm, m.Sphere())) - HeightPenalty*float64(l.Z)
}

// MobilityRemoval removes the sphere that leaves the most mobility behind,
// with a small penalty for height. It passes if nothing can be removed.
func MobilityRemoval(e board.Engine) move.Move {
	best := move.NewPass()
	bestScore := math.Inf(-1)
	for _, m := range movegen.Removals(e, e.ColorOnTurn()) {
		if s := removalScore(e, m); s > bestScore {
			best, bestScore = m, s
		}
	}
	return best
}

// MobilityRemovalOrPass only takes a second sphere back if doing so costs
// (almost) no mobility.
func MobilityRemovalOrPass(e board.Engine) move.Move {
	base := float64(movegen.Mobility(e, e.ColorOnTurn(), board.NoSphere))
	best := move.NewPass()
	bestGain := PassThreshold
	for _, m := range movegen.Removals(e, e.ColorOnTurn()) {
		if gain := removalScore(e, m) - base; gain > bestGain {
			best, bestGain = m, gain
		}
	}
	return best
}
