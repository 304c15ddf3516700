// logview prints a game log in readable form.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/wordwheel/wheel/history"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	showPhrase := pflag.Bool("show-phrase", false, "print the secret phrase too")
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: logview [--show-phrase] <log_YYYYMMDDHHMMSS.json>")
		os.Exit(2)
	}

	hl, err := history.ReadLog(pflag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Str("path", pflag.Arg(0)).Msg("could not read log")
	}

	render(os.Stdout, hl, *showPhrase)
}

func render(w io.Writer, hl *history.Log, showPhrase bool) {
	fmt.Fprintf(w, "Category: %v\n", hl.Header.Category)
	if showPhrase {
		fmt.Fprintf(w, "Phrase:   %v\n", hl.Header.Phrase)
	}
	fmt.Fprintln(w)
	for i, e := range hl.Events {
		fmt.Fprintf(w, "%3d: %-25s %-10s %-9s %6d\n", i+1, e.Player, e.Action, e.Result, e.Score)
	}
	if hl.Scores == "" {
		fmt.Fprintln(w, "\nThis game did not finish.")
		return
	}
	fmt.Fprint(w, "\nFinal scores:\n"+hl.Scores)
}
