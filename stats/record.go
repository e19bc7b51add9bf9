package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Record tallies match results from one player's point of view.
type Record struct {
	Wins   int
	Losses int
	Draws  int
}

func (r Record) Games() int { return r.Wins + r.Losses + r.Draws }

// Score counts a draw as half a win.
func (r Record) Score() float64 {
	if r.Games() == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Draws)) / float64(r.Games())
}

// ScoreInterval is the normal-approximation interval of Score, clamped to
// [0, 1].
func (r Record) ScoreInterval(confidenceInterval float64) (float64, float64) {
	n := float64(r.Games())
	if n == 0 {
		return 0, 1
	}
	p := r.Score()
	half := ZVal(confidenceInterval) * math.Sqrt(p*(1-p)/n)
	return math.Max(0, p-half), math.Min(1, p+half)
}

// EloDiff converts Score to a rating difference. It is infinite for a
// clean sweep either way.
func (r Record) EloDiff() float64 {
	p := r.Score()
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}
	return -400 * math.Log10(1/p-1)
}

func (r Record) String() string {
	return fmt.Sprintf("+%d -%d =%d", r.Wins, r.Losses, r.Draws)
}

// Median returns the empirical (lower) median of vals without reordering
// the caller's slice.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
