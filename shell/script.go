package shell

import (
	"errors"
	"net/http"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("pylos_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand exposes a shell command to Lua. The first Lua argument, if
// any, is appended to the command line.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		r, err := sc.handle(line)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

var scriptCommands = []string{
	"new", "load", "show", "eval", "gen", "best", "play", "undo", "ai", "preset",
}

func (sc *ShellController) runScript(L *lua.LState, filepath string) error {
	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("pylos_shell", lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("pylos_"+name, L.NewFunction(luaCommand(name)))
	}
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: 30 * time.Second}).Loader)
	return L.DoFile(filepath)
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	L := lua.NewState()
	defer L.Close()
	if err := sc.runScript(L, cmd.args[0]); err != nil {
		log.Err(err).Msg("script-error")
		return nil, err
	}
	return msg("script finished: " + cmd.args[0]), nil
}
