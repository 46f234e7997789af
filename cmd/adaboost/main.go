package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/DhanusML/oneDAL-dhanus/adaboost"
)

func newCommand(stdout io.Writer, stderr io.Writer) *commander.Command {
	return &commander.Command{
		UsageLine: "adaboost <command> [options]",
		Short:     "train and apply AdaBoost classifiers",
		Flag:      *flag.NewFlagSet("adaboost", flag.ContinueOnError),
		Subcommands: []*commander.Command{
			newTrainCommand(stdout, stderr),
			newPredictCommand(stdout, stderr),
		},
	}
}

// setupLogging routes the package log to stderr, or discards it in quiet
// mode.
func setupLogging(stderr io.Writer, quiet bool) {
	if quiet {
		adaboost.SetLogger(zerolog.Nop())
		return
	}
	adaboost.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger())
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "adaboost: %v\n", err)
		os.Exit(1)
	}
}
