package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/stats"
)

const confidence = 95.0

// Report summarises finished arena games.
type Report struct {
	Player1 string
	Player2 string
	Results []Result
}

// NewReport keeps only the games that finished.
func NewReport(player1, player2 string, results []Result) *Report {
	r := &Report{Player1: player1, Player2: player2}
	for _, res := range results {
		if res.Finished() {
			r.Results = append(r.Results, res)
		}
	}
	return r
}

// Record is from the first player's point of view.
func (r *Report) Record() stats.Record {
	var rec stats.Record
	for _, res := range r.Results {
		switch {
		case res.Draw():
			rec.Draws++
		case res.Player1Won():
			rec.Wins++
		default:
			rec.Losses++
		}
	}
	return rec
}

// LightRecord is from the point of view of whoever moved first.
func (r *Report) LightRecord() stats.Record {
	var rec stats.Record
	for _, res := range r.Results {
		switch res.Winner {
		case board.Light:
			rec.Wins++
		case board.Dark:
			rec.Losses++
		default:
			rec.Draws++
		}
	}
	return rec
}

func (r *Report) drawsBy(reason string) int {
	n := 0
	for _, res := range r.Results {
		if res.Draw() && res.Reason == reason {
			n++
		}
	}
	return n
}

// Lengths returns the number of actions of every game.
func (r *Report) Lengths() []float64 {
	out := make([]float64, len(r.Results))
	for i, res := range r.Results {
		out[i] = float64(res.Turns)
	}
	return out
}

func (r *Report) String() string {
	var sb strings.Builder
	rec := r.Record()
	fmt.Fprintf(&sb, "Games played: %d\n", rec.Games())
	if rec.Games() == 0 {
		return sb.String()
	}
	lo, hi := rec.ScoreInterval(confidence)
	fmt.Fprintf(&sb, "%s vs %s: %s\n", r.Player1, r.Player2, rec)
	fmt.Fprintf(&sb, "%s score: %.3f (%.0f%% interval %.3f - %.3f), Elo difference %+.1f\n",
		r.Player1, rec.Score(), confidence, lo, hi, rec.EloDiff())
	fmt.Fprintf(&sb, "Light (first mover) score: %.3f\n", r.LightRecord().Score())
	fmt.Fprintf(&sb, "Draws by turn cap: %d, by repetition: %d\n",
		r.drawsBy(ReasonTurnCap), r.drawsBy(ReasonRepetition))

	lengths := r.Lengths()
	var st stats.Statistic
	for _, l := range lengths {
		st.Push(l)
	}
	fmt.Fprintf(&sb, "Game length: mean %.2f stdev %.2f median %.1f min %.0f max %.0f\n",
		st.Mean(), st.Stdev(), stats.Median(lengths), st.Min(), st.Max())
	if st.Max() > st.Min() {
		hist := histogram.Hist(10, lengths)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			fmt.Fprintf(&sb, "histogram: %v\n", err)
		}
	}
	return sb.String()
}

func parseResultField(s string) (board.Color, string, error) {
	switch s {
	case board.Light.String():
		return board.Light, ReasonReserve, nil
	case board.Dark.String():
		return board.Dark, ReasonReserve, nil
	case "draw-" + ReasonTurnCap:
		return board.NoColor, ReasonTurnCap, nil
	case "draw-" + ReasonRepetition:
		return board.NoColor, ReasonRepetition, nil
	}
	return board.NoColor, "", fmt.Errorf("unknown result %q", s)
}

// AnalyzeLogFile rebuilds the arena report from a turn log written by
// PlayArena. Player 1 has Light in even-numbered games.
func AnalyzeLogFile(filepath string) (*Report, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)
	r.FieldsPerRecord = len(LogHeader)

	rep := &Report{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == LogHeader[0] {
			continue
		}
		gameID, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, err
		}
		player1Light := gameID%2 == 0
		if record[9] == "" {
			// an action row; learn the player names from it
			isPlayer1 := (record[3] == board.Light.String()) == player1Light
			if isPlayer1 && rep.Player1 == "" {
				rep.Player1 = record[2]
			} else if !isPlayer1 && rep.Player2 == "" {
				rep.Player2 = record[2]
			}
			continue
		}
		turns, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		winner, reason, err := parseResultField(record[9])
		if err != nil {
			return nil, err
		}
		rep.Results = append(rep.Results, Result{
			GameID:       gameID,
			Player1Light: player1Light,
			Winner:       winner,
			Reason:       reason,
			Turns:        turns,
		})
	}
	return rep, nil
}
