package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/domino14/pylos/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestController(t *testing.T) *ShellController {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTSizePower, 16)
	sc, err := newController(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func run(t *testing.T, sc *ShellController, line string) string {
	t.Helper()
	r, err := sc.handle(line)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return r.message
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -output /path/to/log.csv",
			&shellcmd{"autoplay", nil, map[string]string{"output": "/path/to/log.csv"}},
			nil},
		{"best 3",
			&shellcmd{"best", []string{"3"}, map[string]string{}},
			nil},
		{"autoplay deep fast 10 -threads 4 ",
			&shellcmd{"autoplay",
				[]string{"deep", "fast", "10"},
				map[string]string{"threads": "4"}},
			nil,
		},
		{`load "16/9/4/1 l move"`,
			&shellcmd{"load", []string{"16/9/4/1 l move"}, map[string]string{}},
			nil},
		{"autoplay deep fast -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestLoadAndShow(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out := run(t, sc, "load LD2L11/9/4/1 d move")
	is.True(strings.Contains(out, "position: LD2L11/9/4/1 d move"))
	is.True(strings.Contains(out, "dark to move"))
	// quoted and unquoted positions load the same
	is.Equal(run(t, sc, `load "LD2L11/9/4/1 d move"`), out)
	is.Equal(run(t, sc, "show"), out)

	_, err := sc.handle("load 17/9/4/1 l move")
	is.True(err != nil)
}

func TestPlayAndUndo(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out := run(t, sc, "play 0:1:1")
	is.True(strings.HasPrefix(out, "played place L0 0:1:1\n"))
	is.Equal(sc.game.String(), "5L10/9/4/1 d move")

	_, err := sc.handle("play 0:1:1")
	is.True(err != nil)
	_, err = sc.handle("play")
	is.Equal(err, errNeedMove)

	run(t, sc, "undo")
	is.Equal(sc.game.String(), "16/9/4/1 l move")
	_, err = sc.handle("undo")
	is.True(err != nil)
}

func TestGenAndEval(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out := run(t, sc, "gen")
	is.True(strings.Contains(out, "  1: place L0 0:1:1"))
	is.Equal(strings.Count(out, "\n"), 16)

	out = run(t, sc, "eval")
	is.True(strings.Contains(out, "evaluation for light: 0.000 (with contempt 0.250)"))

	run(t, sc, "load LL2LL9L/L8/4/1 l remove2")
	out = run(t, sc, "gen")
	is.True(strings.Contains(out, "  1: remove L5"))
	is.True(strings.Contains(out, "  3: pass"))
}

func TestBest(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out := run(t, sc, "best 1")
	is.True(strings.HasPrefix(out, "best: place L0 0:1:1  value 3.250  depth 1  nodes 16"))
	is.Equal(sc.game.String(), "16/9/4/1 l move")

	run(t, sc, "preset random")
	_, err := sc.handle("best")
	is.True(err != nil)
}

func TestPresetsAndAI(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out := run(t, sc, "preset")
	is.True(strings.Contains(out, "* default"))
	is.True(strings.Contains(out, "  random"))

	out = run(t, sc, "preset fast")
	is.Equal(out, "preset fast: depth 2, contempt 0.25, tt true, removal mobility")
	out = run(t, sc, "ai")
	is.True(strings.HasPrefix(out, "fast played place L0 "))
	is.Equal(sc.game.Turn(), 1)

	_, err := sc.handle("preset nosuchpreset")
	is.True(err != nil)
	is.Equal(sc.preset.Name, "fast")
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	is.True(strings.Contains(run(t, sc, "help"), "autoplay <p1> <p2> [n]"))
	is.True(strings.HasPrefix(run(t, sc, "help play"), "play <move>"))
	is.Equal(run(t, sc, "help nothing"), "There is no help text for the topic nothing")
	_, err := sc.handle("frobnicate")
	is.True(err != nil)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	sc.config.Set(config.ConfigSearchDepth, 1)
	out := run(t, sc, "autoplay fast random 2 -maxturns 6 -threads 1")
	is.True(strings.HasPrefix(out, "Games played: 2\n"))
	is.True(strings.Contains(out, "fast vs random"))
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	path := filepath.Join(t.TempDir(), "test.lua")
	is.NoErr(os.WriteFile(path, []byte(`
local json = require("json")
pylos_play("0:1:1")
pylos_play("0:0:0")
local bad = pylos_play("9:9:9")
result = json.encode({shown = string.find(pylos_show(), "position: ") ~= nil,
                      bad = string.sub(bad, 1, 5)})
`), 0o644))

	L := lua.NewState()
	defer L.Close()
	is.NoErr(sc.runScript(L, path))
	is.Equal(sc.game.Turn(), 2)
	is.Equal(L.GetGlobal("result").String(), `{"bad":"ERROR","shown":true}`)

	_, err := sc.handle("script " + filepath.Join(t.TempDir(), "missing.lua"))
	is.True(err != nil)
}
