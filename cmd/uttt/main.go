package main

/*

Picks a move for an ultimate tic tac toe position.

	uttt [flags] <depth> <state>

The state is the JSON form of a position (see uttt.State), or with -notation
its compact notation ("startpos" for the empty board). The chosen move is
printed on stdout as

	[RESULT] [<super slot>, <local slot>]

or "[RESULT] null" if the game is already over.

*/

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("uttt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	movetime := fs.Int("movetime", -1, "stop the search after this many milliseconds")
	notation := fs.Bool("notation", false, "read the state in compact notation instead of JSON")
	board := fs.Bool("board", false, "print the board on stderr")
	verbose := fs.Bool("v", false, "log every completed search depth")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: uttt [flags] <depth> <state>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	setupLogger(stderr, *verbose)

	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	depth, err := strconv.Atoi(fs.Arg(0))
	if err != nil || depth < 1 {
		log.Error().Str("depth", fs.Arg(0)).Msg("depth must be a positive integer")
		return 1
	}

	var state uttt.State
	if *notation {
		state, err = uttt.FromNotation(fs.Arg(1))
	} else {
		state, err = uttt.ParseState([]byte(fs.Arg(1)))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read the state")
		return 1
	}
	log.Debug().Str("notation", state.Notation()).Msg("state loaded")

	if *board {
		fmt.Fprintln(stderr, state.Format(painter(termenv.NewOutput(stderr))))
	}

	limits := search.DefaultLimits().SetDepth(depth)
	if *movetime > 0 {
		limits.SetMovetime(*movetime)
	}
	searcher := uttt.NewSearcher()
	searcher.SetLimits(limits)

	result, err := searcher.Search(state)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return 1
	}

	out := []byte("null")
	if result.Found {
		if out, err = json.Marshal(result.Move); err != nil {
			log.Error().Err(err).Msg("failed to serialize the move")
			return 1
		}
		log.Info().Msg(result.String())
	} else {
		log.Info().Stringer("outcome", state.Outcome()).Msg("game is over, no move to make")
	}

	fmt.Fprintf(stdout, "[RESULT] %s\n", out)
	return 0
}

func setupLogger(w io.Writer, verbose bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// Colours the marks when the output supports it
func painter(out *termenv.Output) uttt.Painter {
	return func(mark grid.Mark, text string) string {
		switch mark {
		case grid.X:
			return out.String(text).Foreground(out.Color("1")).Bold().String()
		case grid.O:
			return out.String(text).Foreground(out.Color("4")).Bold().String()
		}
		return out.String(text).Faint().String()
	}
}
