// Package eval scores Pylos positions for the searcher.
package eval

import (
	"fmt"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/movegen"
)

// Weights are the coefficients of the evaluation terms. Squares and
// Threats should dominate the rest; forming squares is the only way to
// take material back.
type Weights struct {
	// Reserve multiplies (opponent reserve - own reserve): having placed
	// more spheres counts as board control.
	Reserve  float64 `yaml:"reserve"`
	Squares  float64 `yaml:"squares"`
	Threats  float64 `yaml:"threats"`
	Height   float64 `yaml:"height"`
	Mobility float64 `yaml:"mobility"`
}

var DefaultWeights = Weights{
	Reserve:  3,
	Squares:  14,
	Threats:  7,
	Height:   1.2,
	Mobility: 0.15,
}

const DefaultContempt = 0.25

// Evaluator scores positions from Self's point of view.
type Evaluator struct {
	Self     board.Color
	Weights  Weights
	Contempt float64
}

func NewEvaluator(self board.Color) *Evaluator {
	return &Evaluator{Self: self, Weights: DefaultWeights, Contempt: DefaultContempt}
}

// Breakdown holds the raw differentials (Self minus opponent, except
// Reserve which is opponent minus Self) behind an evaluation.
type Breakdown struct {
	Reserve  int
	Squares  int
	Threats  int
	Height   int
	Mobility int
}

func (b Breakdown) Score(w Weights) float64 {
	return w.Reserve*float64(b.Reserve) +
		w.Squares*float64(b.Squares) +
		w.Threats*float64(b.Threats) +
		w.Height*float64(b.Height) +
		w.Mobility*float64(b.Mobility)
}

func (b Breakdown) String() string {
	return fmt.Sprintf("reserve %+d, squares %+d, threats %+d, height %+d, mobility %+d",
		b.Reserve, b.Squares, b.Threats, b.Height, b.Mobility)
}

type sideCounts struct {
	reserve, squares, threats, height, mobility int
}

func count(e board.Engine, c board.Color, mine, occupied *[board.NumLocations]bool) sideCounts {
	sc := sideCounts{
		reserve:  e.ReserveCount(c),
		mobility: movegen.Mobility(e, c, board.NoSphere),
	}
	for _, id := range board.SpheresOf(c) {
		if l, ok := e.LocationOf(id); ok {
			sc.height += l.Z
		}
	}
	for s := 0; s < board.NumSquares; s++ {
		n, hole := 0, -1
		for _, cell := range board.Square(s) {
			if mine[cell] {
				n++
			} else {
				hole = cell
			}
		}
		switch {
		case n == 4:
			sc.squares++
		case n == 3 && !occupied[hole]:
			sc.threats++
		}
	}
	return sc
}

// Breakdown computes the per-term differentials.
func (ev *Evaluator) Breakdown(e board.Engine) Breakdown {
	var mine, theirs, occupied [board.NumLocations]bool
	board.Occupancy(e, ev.Self, &mine, &theirs)
	for i := range occupied {
		occupied[i] = mine[i] || theirs[i]
	}
	me := count(e, ev.Self, &mine, &occupied)
	op := count(e, ev.Self.Other(), &theirs, &occupied)
	return Breakdown{
		Reserve:  op.reserve - me.reserve,
		Squares:  me.squares - op.squares,
		Threats:  me.threats - op.threats,
		Height:   me.height - op.height,
		Mobility: me.mobility - op.mobility,
	}
}

// SquareCredit is the value of completing a square during a turn. The
// forced removal that follows takes the square off the board, so Evaluate
// alone never sees it.
func (ev *Evaluator) SquareCredit() float64 {
	return ev.Weights.Squares
}

// Evaluate returns the weighted score from Self's perspective.
func (ev *Evaluator) Evaluate(e board.Engine) float64 {
	return ev.Breakdown(e).Score(ev.Weights)
}

// SignedEval is Evaluate from the point of view of stm, with contempt
// added for Self. The two perspectives are exact negations of each other.
func (ev *Evaluator) SignedEval(e board.Engine, stm board.Color) float64 {
	v := ev.Evaluate(e)
	if stm == ev.Self {
		return v + ev.Contempt
	}
	return -v - ev.Contempt
}
