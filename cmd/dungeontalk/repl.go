/*
File    : dungeontalk/cmd/dungeontalk/repl.go
*/
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dungeontalk/dungeontalk/interp"
	"github.com/fatih/color"
)

var (
	blueColorRepl   = color.New(color.FgBlue)
	greenColorRepl  = color.New(color.FgGreen)
	yellowColorRepl = color.New(color.FgYellow)
	redColorRepl    = color.New(color.FgRed)
	cyanColorRepl   = color.New(color.FgCyan)
)

// repl is one interactive session: a single long-lived Interpreter fed
// one line at a time via Feed, so variables, procedures, and defs bound
// on one line stay visible to every line after it.
type repl struct {
	banner  string
	version string
	license string
	line    string
	prompt  string
}

func newRepl(banner, version, license, line, prompt string) *repl {
	return &repl{banner: banner, version: version, license: license, line: line, prompt: prompt}
}

func (r *repl) printBanner(w io.Writer) {
	blueColorRepl.Fprintf(w, "%s\n", r.line)
	greenColorRepl.Fprintf(w, "%s\n", r.banner)
	blueColorRepl.Fprintf(w, "%s\n", r.line)
	yellowColorRepl.Fprintf(w, "Version: %s | License: %s\n", r.version, r.license)
	blueColorRepl.Fprintf(w, "%s\n", r.line)
	cyanColorRepl.Fprintln(w, "Type DungeonTalk source and press enter.")
	cyanColorRepl.Fprintln(w, "Type '.exit' to quit, '.scope' to inspect bound variables.")
	blueColorRepl.Fprintf(w, "%s\n", r.line)
}

func (r *repl) start(in io.Reader, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.New(r.prompt)
	if err != nil {
		redColorRepl.Fprintf(out, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	session, err := interp.New("")
	if err != nil {
		redColorRepl.Fprintf(out, "[REPL ERROR] %v\n", err)
		return
	}
	session.Out = out

	for {
		line, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			out.Write([]byte("Good bye!\n"))
			return
		}
		if line == ".scope" {
			printScope(out, session)
			continue
		}

		rl.SaveHistory(line)
		r.execute(out, line, session)
	}
}

// execute feeds one line into the running session, reporting a parse or
// runtime error without tearing the session down — unlike file mode, a
// REPL keeps going after a mistake so the user can retype it.
func (r *repl) execute(out io.Writer, line string, session *interp.Interpreter) {
	result, err := session.Feed(line + "\n")
	if err != nil {
		redColorRepl.Fprintf(out, "%v\n", err)
		return
	}
	if result != nil {
		yellowColorRepl.Fprintf(out, "%v\n", result)
	}
}

func printScope(out io.Writer, session *interp.Interpreter) {
	snap := session.Snapshot()
	names := make([]string, 0, len(snap.Scope))
	for name := range snap.Scope {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "%s = %v\n", name, snap.Scope[name])
	}
}
