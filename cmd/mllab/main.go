// Command mllab runs the interactive machine-learning labs from the terminal.
//
//	$ mllab linear -epochs 500 -plot linear.png
//	$ mllab logistic -seed 1 -explain
//	$ mllab tree -max-depth 10
//	$ mllab quiz
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

func newRootCmd() *commander.Command {
	return &commander.Command{
		UsageLine: "mllab",
		Short:     "interactive machine learning labs",
		Subcommands: []*commander.Command{
			linearCmd(),
			logisticCmd(),
			treeCmd(),
			quizCmd(),
			explainCmd(),
			datasetsCmd(),
		},
	}
}

func main() {
	if err := newRootCmd().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
