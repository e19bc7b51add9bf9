package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/pylos/ai/player"
	"github.com/domino14/pylos/automatic"
	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/config"
	"github.com/domino14/pylos/eval"
	"github.com/domino14/pylos/game"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
	"github.com/domino14/pylos/search"
)

var errNeedMove = errors.New("usage: play <move>, e.g. play 0:1:1 or play lift L2 1:0:0")

func status(g *game.Game) string {
	c := g.ColorOnTurn()
	switch g.Phase() {
	case board.PhaseMove:
		return fmt.Sprintf("%s to move", c)
	case board.PhaseRemoveFirst:
		return fmt.Sprintf("%s completed a square and removes a sphere", c)
	case board.PhaseRemoveSecond:
		return fmt.Sprintf("%s may remove another sphere or pass", c)
	}
	return fmt.Sprintf("game over, %s wins", g.Winner())
}

func (sc *ShellController) displayText() string {
	return board.ToDisplayText(sc.game, sc.painter) +
		"position: " + sc.game.String() + "\n" + status(sc.game)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame()
	return msg(sc.displayText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <position>, e.g. load 16/9/4/1 l move")
	}
	g, err := game.NewFromNotation(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(sc.displayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.displayText()), nil
}

// evaluator scores for the side on turn with the current preset.
func (sc *ShellController) evaluator() *eval.Evaluator {
	return &eval.Evaluator{
		Self:     sc.game.ColorOnTurn(),
		Weights:  sc.preset.Weights,
		Contempt: sc.preset.Contempt,
	}
}

func (sc *ShellController) evaluate(cmd *shellcmd) (*Response, error) {
	ev := sc.evaluator()
	b := ev.Breakdown(sc.game)
	return msg(fmt.Sprintf("%s\nevaluation for %s: %.3f (with contempt %.3f)",
		b, ev.Self, ev.Evaluate(sc.game), ev.SignedEval(sc.game, ev.Self))), nil
}

func moveTableRow(idx int, m move.Move, score string) string {
	return fmt.Sprintf("%3d: %-22s%s", idx+1, m.String(), score)
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	g := sc.game
	stm := g.ColorOnTurn()
	var rows []string
	switch g.Phase() {
	case board.PhaseMove:
		rows = lo.Map(movegen.Ordered(g, stm), func(m move.Move, i int) string {
			return moveTableRow(i, m, fmt.Sprintf("%8.2f", movegen.Score(g, m)))
		})
	case board.PhaseRemoveFirst, board.PhaseRemoveSecond:
		moves := movegen.Removals(g, stm)
		if g.Phase() == board.PhaseRemoveSecond {
			moves = append(moves, move.NewPass())
		}
		rows = lo.Map(moves, func(m move.Move, i int) string {
			return moveTableRow(i, m, "")
		})
	default:
		return nil, game.ErrGameOver
	}
	if len(rows) == 0 {
		return msg("no moves"), nil
	}
	return msg("     Move                     Order\n" + strings.Join(rows, "\n")), nil
}

func (sc *ShellController) searcher() *search.Solver {
	if sc.solver == nil {
		sc.solver = search.NewSolver(sc.game, sc.evaluator())
		sc.solver.SetTranspositionTable(
			search.NewTranspositionTable(sc.config.GetInt(config.ConfigTTSizePower)))
	}
	sc.solver.SetGame(sc.game)
	sc.solver.SetEvaluator(sc.evaluator())
	sc.solver.SetTranspositionTableOptim(sc.preset.TT)
	return sc.solver
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.preset.Random {
		return nil, errors.New("the random preset does not search; pick another preset")
	}
	depth := sc.preset.Depth
	if len(cmd.args) > 0 {
		d, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if d < 1 {
			return nil, errors.New("depth must be at least 1")
		}
		depth = d
	}
	s := sc.searcher()
	ts := time.Now()
	var (
		m     move.Move
		v     float64
		found bool
	)
	switch sc.game.Phase() {
	case board.PhaseMove:
		m, v, found = s.Search(depth)
	case board.PhaseRemoveFirst, board.PhaseRemoveSecond:
		m, v, found = s.SearchRemoval(depth)
	default:
		return nil, game.ErrGameOver
	}
	if !found {
		return msg("no move found"), nil
	}
	return msg(sc.printer.Sprintf("best: %s  value %.3f  depth %d  nodes %d  (%.2fs)\n%s",
		m, v, depth, s.Nodes(), time.Since(ts).Seconds(),
		strings.TrimSuffix(s.PrincipalVariation().String(), "\n"))), nil
}

func (sc *ShellController) commit(m move.Move) (*Response, error) {
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg("played " + m.String() + "\n" + sc.displayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errNeedMove
	}
	m, err := move.FromString(sc.game, strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	return sc.commit(m)
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	return msg(sc.displayText()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	m, err := player.Act(sc.game, sc.aiplayer)
	if err != nil {
		return nil, err
	}
	return msg(sc.aiplayer.Name() + " played " + m.String() + "\n" + sc.displayText()), nil
}

func (sc *ShellController) usePreset(name string) error {
	p, err := sc.config.Preset(name)
	if err != nil {
		return err
	}
	sc.preset = p
	sc.aiplayer = player.New(p, sc.config.GetInt(config.ConfigTTSizePower), nil)
	return nil
}

func (sc *ShellController) presetCmd(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		names := lo.Map(sc.config.PresetNames(), func(n string, _ int) string {
			if n == sc.preset.Name {
				return "* " + n
			}
			return "  " + n
		})
		return msg(strings.Join(names, "\n")), nil
	}
	if err := sc.usePreset(cmd.args[0]); err != nil {
		return nil, err
	}
	p := sc.preset
	if p.Random {
		return msg("preset " + p.Name + ": random moves"), nil
	}
	return msg(fmt.Sprintf("preset %s: depth %d, contempt %.2f, tt %v, removal %s",
		p.Name, p.Depth, p.Contempt, p.TT, p.Removal)), nil
}

// autoplay runs an arena between two presets: autoplay <p1> <p2> [games]
// with optional -threads, -output, -maxturns and -seeds.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: autoplay <preset1> <preset2> [games]")
	}
	sc.config.Set(config.ConfigPlayer1, cmd.args[0])
	sc.config.Set(config.ConfigPlayer2, cmd.args[1])
	if len(cmd.args) > 2 {
		n, err := strconv.Atoi(cmd.args[2])
		if err != nil {
			return nil, err
		}
		sc.config.Set(config.ConfigArenaGames, n)
	}
	for opt, key := range map[string]string{
		"threads":  config.ConfigArenaThreads,
		"maxturns": config.ConfigArenaMaxTurns,
	} {
		if v, ok := cmd.options[opt]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("-%s: %w", opt, err)
			}
			sc.config.Set(key, n)
		}
	}
	if v, ok := cmd.options["output"]; ok {
		sc.config.Set(config.ConfigArenaOutput, v)
	}
	if v, ok := cmd.options["seeds"]; ok {
		sc.config.Set(config.ConfigArenaSeeds, v)
	}
	rep, err := automatic.PlayArena(context.Background(), sc.config)
	if err != nil {
		return nil, err
	}
	return msg(rep.String()), nil
}
