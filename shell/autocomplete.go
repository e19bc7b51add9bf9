package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/pylos/board"
	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/movegen"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

var commandNames = []string{
	"new", "load", "show", "eval", "gen", "best", "play", "undo", "ai",
	"preset", "autoplay", "script", "help", "exit",
}

var autoplayOptions = []string{"-threads", "-maxturns", "-output", "-seeds"}

var helpTopics = []string{"play", "autoplay", "script"}

// argCompletions lists what may follow cmdName.
func (c *ShellCompleter) argCompletions(cmdName, prefix string) []string {
	switch cmdName {
	case "preset":
		return c.sc.config.PresetNames()
	case "autoplay":
		if strings.HasPrefix(prefix, "-") {
			return autoplayOptions
		}
		return c.sc.config.PresetNames()
	case "help":
		return helpTopics
	case "play":
		g := c.sc.game
		var moves []move.Move
		switch g.Phase() {
		case board.PhaseMove:
			moves = movegen.Generate(g, g.ColorOnTurn())
		case board.PhaseRemoveFirst:
			moves = movegen.Removals(g, g.ColorOnTurn())
		case board.PhaseRemoveSecond:
			moves = append(movegen.Removals(g, g.ColorOnTurn()), move.NewPass())
		}
		return lo.Uniq(lo.Map(moves, func(m move.Move, _ int) string {
			return m.ShortDescription()
		}))
	}
	return nil
}

// Do implements the readline.AutoCompleter interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unbalanced quotes; fall back to simple space splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		completions = c.argCompletions(fields[0], prefix)
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
