package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/mllab/explain"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/quiz"
)

func quizCmd() *commander.Command {
	var common commonFlags
	cmd := &commander.Command{
		UsageLine: "quiz [options]",
		Short:     "answer the machine learning quiz",
		Long: `
ask the built-in questions one by one. Answer with the option number.
With -explain, wrong answers are sent to the explanation service.

	$ mllab quiz
`,
		Flag: *flag.NewFlagSet("quiz", flag.ExitOnError),
	}
	common.register(&cmd.Flag)

	cmd.Run = guard("quiz", func(_ []string) error {
		if err := common.setup(); err != nil {
			return err
		}
		return runQuiz(quiz.NewSession(), bufio.NewScanner(stdin), &common)
	})
	return cmd
}

func runQuiz(s *quiz.Session, in *bufio.Scanner, common *commonFlags) error {
	for {
		i, q := s.Current()
		fmt.Fprintf(stdout, "\nQuestion %d of %d: %s\n", i+1, s.Len(), q.Question)
		for k, opt := range q.Options {
			fmt.Fprintf(stdout, "  %d) %s\n", k+1, opt)
		}

		option, err := readOption(in, len(q.Options))
		if errors.Is(err, errInputClosed) {
			return errors.Newf("quiz: input closed after %d of %d questions", i, s.Len())
		}
		if err != nil {
			return err
		}
		ok, err := s.Answer(i, option)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(stdout, "Correct!")
		} else {
			fmt.Fprintf(stdout, "Incorrect. The answer is: %s\n", q.CorrectAnswer())
		}
		fmt.Fprintln(stdout, q.Explanation)

		if !ok {
			if err := common.explainPrompt(explain.QuizPrompt(q.Question, q.Options[option], q.CorrectAnswer())); err != nil {
				return err
			}
		}
		if !s.Next() {
			break
		}
	}
	correct, total := s.Score()
	fmt.Fprintf(stdout, "\nScore: %d / %d\n", correct, total)
	return nil
}

var errInputClosed = errors.New("input closed")

// readOption reads 1-based option numbers until a valid one is entered.
func readOption(in *bufio.Scanner, n int) (int, error) {
	for {
		fmt.Fprintf(stdout, "Your answer [1-%d]: ", n)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, errors.Wrap(err, "read answer")
			}
			return 0, errInputClosed
		}
		v, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		fmt.Fprintf(stdout, "please enter a number between 1 and %d\n", n)
	}
}
