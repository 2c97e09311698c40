/*
File    : dungeontalk/cmd/dungeontalk/main.go
*/

// Command dungeontalk is the thin entry point around package interp: a
// file-mode runner and an interactive REPL, neither of which is part of
// the interpreter's own specified surface (spec.md leaves the process
// entry point and terminal loop unspecified — only the stepping contract
// matters). It exists so the interpreter has somewhere to run from.
package main

import (
	"os"

	"github.com/dungeontalk/dungeontalk/interp"
	"github.com/fatih/color"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

var (
	VERSION = "v0.1.0"
	LICENSE = "MIT"
	PROMPT  = "dungeontalk >>> "
	LINE    = "----------------------------------------------------------------"
	BANNER  = `
  ___                                 _____     _ _
 |   \ _  _ _ _  __ _ ___ ___ _ _    |_   _|_ _| | |__
 | |) | || | ' \/ _' / -_) _ \ ' \     | |/ _' | | / /
 |___/ \_,_|_||_\__, \___\___/_||_|    |_|\__,_|_|_\_\
                |___/
`
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
		case "--version", "-v":
			showVersion()
		default:
			runFile(arg)
		}
		return
	}
	newRepl(BANNER, VERSION, LICENSE, LINE, PROMPT).start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("DungeonTalk - a tabletop-scenario scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  dungeontalk                 Start interactive REPL mode")
	yellowColor.Println("  dungeontalk <path-to-file>   Run a DungeonTalk script")
	yellowColor.Println("  dungeontalk --help           Display this help message")
	yellowColor.Println("  dungeontalk --version        Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                        Exit the REPL")
	yellowColor.Println("  .scope                       Show current scope bindings")
}

func showVersion() {
	cyanColor.Printf("DungeonTalk %s (%s licensed)\n", VERSION, LICENSE)
}

// runFile reads and runs a whole script in one pass, exiting non-zero on
// any read, parse, or runtime error.
func runFile(path string) {
	in, err := interp.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", err)
		os.Exit(1)
	}
	if _, err := in.Run(); err != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", err)
		os.Exit(1)
	}
}
