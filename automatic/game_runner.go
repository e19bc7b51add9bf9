// Package automatic plays computer-vs-computer Pylos games, logs every
// action and summarises the results.
package automatic

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/pylos/ai/player"
	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/config"
	"github.com/domino14/pylos/game"
)

const (
	ReasonReserve    = "reserve-exhausted"
	ReasonTurnCap    = "turn-cap"
	ReasonRepetition = "repetition"
)

// RepetitionLimit is how often a position may occur before the game is
// drawn.
const RepetitionLimit = 3

// LogHeader names the columns of the turn log.
var LogHeader = []string{
	"gameID", "turn", "player", "side", "phase", "move",
	"lightReserve", "darkReserve", "position", "result",
}

// Result is the outcome of one arena game.
type Result struct {
	GameID       int
	Player1Light bool
	Winner       board.Color
	Reason       string
	Turns        int
}

func (r Result) Finished() bool { return r.Reason != "" }

func (r Result) Draw() bool { return r.Winner == board.NoColor }

// Player1Won reports whether the first arena player won; it is false for a
// draw.
func (r Result) Player1Won() bool {
	if r.Draw() {
		return false
	}
	return (r.Winner == board.Light) == r.Player1Light
}

// resultField is the result column of the final log row of a game.
func (r Result) resultField() string {
	if r.Draw() {
		return "draw-" + r.Reason
	}
	return r.Winner.String()
}

// GameRunner is the master struct here for the automatic game logic. It
// owns one game and the two players of that game.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan []string

	presets   [2]config.Preset
	aiplayers [2]player.AIPlayer
	opener    *player.RandomPlayer
	gameID    int
	// player 2 has Light
	swapped bool

	maxTurns       int
	randomOpenings int
}

// NewGameRunner just instantiates a game runner. Init must be called
// before a game is started.
func NewGameRunner(logchan chan []string, cfg *config.Config) *GameRunner {
	return &GameRunner{logchan: logchan, config: cfg}
}

// Init looks up the players' presets by name.
func (r *GameRunner) Init(player1, player2 string) error {
	for idx, name := range []string{player1, player2} {
		p, err := r.config.Preset(name)
		if err != nil {
			return err
		}
		r.presets[idx] = p
	}
	r.maxTurns = r.config.GetInt(config.ConfigArenaMaxTurns)
	r.randomOpenings = r.config.GetInt(config.ConfigArenaRandomOpenings)
	return nil
}

// StartGame sets up a fresh game with fresh players. Players alternate
// colours by game ID, and the seed drives every random choice, so a game
// can be replayed from its seed.
func (r *GameRunner) StartGame(gameID int, seed [32]byte) {
	r.game = game.NewGame()
	r.gameID = gameID
	r.swapped = gameID%2 == 1
	rng := frand.NewCustom(seed[:], 1024, 12)
	ttPower := r.config.GetInt(config.ConfigTTSizePower)
	for idx, p := range r.presets {
		r.aiplayers[idx] = player.New(p, ttPower, rng)
	}
	r.opener = player.NewRandomPlayer("opening", rng)
}

func (r *GameRunner) Game() *game.Game { return r.game }

func (r *GameRunner) playerFor(c board.Color) player.AIPlayer {
	idx := int(c)
	if r.swapped {
		idx = 1 - idx
	}
	return r.aiplayers[idx]
}

// PlayTurn lets the side on turn make one decision.
func (r *GameRunner) PlayTurn() error {
	g := r.game
	p := r.playerFor(g.ColorOnTurn())
	var actor player.AIPlayer = p
	if g.Turn() < r.randomOpenings {
		actor = r.opener
	}
	turn, side, phase := g.Turn(), g.ColorOnTurn(), g.Phase()
	m, err := player.Act(g, actor)
	if err != nil {
		return err
	}
	r.logRow(turn, p.Name(), side.String(), phase.String(), m.String(), "")
	return nil
}

func (r *GameRunner) logRow(turn int, name, side, phase, mv, result string) {
	if r.logchan == nil {
		return
	}
	r.logchan <- []string{
		strconv.Itoa(r.gameID),
		strconv.Itoa(turn),
		name,
		side,
		phase,
		mv,
		strconv.Itoa(r.game.ReserveCount(board.Light)),
		strconv.Itoa(r.game.ReserveCount(board.Dark)),
		r.game.String(),
		result,
	}
}

// PlayGame plays the started game until it ends or is adjudicated drawn.
func (r *GameRunner) PlayGame(ctx context.Context) (Result, error) {
	res := Result{GameID: r.gameID, Player1Light: !r.swapped, Winner: board.NoColor}
	g := r.game
	for g.Playing() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if g.Turn() >= r.maxTurns {
			res.Reason = ReasonTurnCap
			break
		}
		if g.Repetitions() >= RepetitionLimit {
			res.Reason = ReasonRepetition
			break
		}
		if err := r.PlayTurn(); err != nil {
			return Result{}, err
		}
	}
	if !g.Playing() {
		res.Reason = ReasonReserve
		res.Winner = g.Winner()
	}
	res.Turns = g.Turn()
	winnerName := ""
	if !res.Draw() {
		winnerName = r.playerFor(res.Winner).Name()
	}
	r.logRow(res.Turns, winnerName, "", g.Phase().String(), "", res.resultField())
	log.Debug().Int("game-id", r.gameID).Str("result", res.resultField()).
		Int("turns", res.Turns).Msg("game-over")
	return res, nil
}
