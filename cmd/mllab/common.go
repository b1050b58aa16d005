package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/mllab/explain"
	"github.com/YuminosukeSato/mllab/lab"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

const explainTimeout = 90 * time.Second

// commonFlags are shared by every lab subcommand.
type commonFlags struct {
	seed     int64
	logLevel string
	explain  bool
	service  string
	model    string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.Int64Var(&c.seed, "seed", -1, "random seed for the train/test split (negative: unseeded)")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&c.explain, "explain", false, "ask the explanation service about the result")
	fs.StringVar(&c.service, "service", "", "explanation service: gemini or openrouter (default from "+explain.EnvService+")")
	fs.StringVar(&c.model, "model", "", "OpenRouter model (default from "+explain.EnvOpenRouterModel+")")
}

func (c *commonFlags) setup() error {
	return log.SetupLogger(os.Stderr, c.logLevel)
}

func (c *commonFlags) labOptions() []lab.Option {
	if c.seed < 0 {
		return nil
	}
	return []lab.Option{lab.WithSeed(c.seed)}
}

func (c *commonFlags) settings() (explain.Settings, error) {
	s, err := explain.SettingsFromEnv(os.Getenv)
	if err != nil {
		return s, err
	}
	if c.service != "" {
		if s.Service, err = explain.ParseService(c.service); err != nil {
			return s, err
		}
	}
	if c.model != "" {
		s.OpenRouterModel = c.model
	}
	return s, nil
}

// explainPrompt sends prompt to the configured service and prints the answer.
// It does nothing unless -explain was given.
func (c *commonFlags) explainPrompt(prompt string) error {
	if !c.explain {
		return nil
	}
	settings, err := c.settings()
	if err != nil {
		return err
	}
	ex, err := explain.New(settings)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), explainTimeout)
	defer cancel()

	fmt.Fprintln(stdout, "\nExplanation:")
	text, err := ex.Explain(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}

// guard runs a command body under errors.SafeExecute so a panic is reported as
// an error instead of crashing the process.
func guard(op string, body func(args []string) error) func(*commander.Command, []string) error {
	return func(_ *commander.Command, args []string) error {
		return errors.SafeExecute(op, func() error { return body(args) })
	}
}
