package shell

import (
	"embed"
	"errors"
	"io"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage(w io.Writer) {
	dat, err := helptext.ReadFile("helptext/usage.txt")
	if err != nil {
		io.WriteString(w, "Error loading helptext: "+err.Error())
		return
	}
	w.Write(dat)
}

func usageTopic(w io.Writer, topic string) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	w.Write(dat)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	switch len(cmd.args) {
	case 0:
		usage(&sb)
	case 1:
		usageTopic(&sb, cmd.args[0])
	default:
		return nil, errors.New("usage: help [topic]")
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}
