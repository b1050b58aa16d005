package main

import (
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func explainCmd() *commander.Command {
	var common commonFlags
	cmd := &commander.Command{
		UsageLine: "explain [options] <question>",
		Short:     "ask the explanation service a free-form question",
		Long: `
send a question to the configured explanation service (Gemini or OpenRouter).
API keys are read from GEMINI_API_KEY and OPENROUTER_API_KEY.

	$ mllab explain -service openrouter "what is entropy in a decision tree?"
`,
		Flag: *flag.NewFlagSet("explain", flag.ExitOnError),
	}
	common.register(&cmd.Flag)

	cmd.Run = guard("explain", func(args []string) error {
		if err := common.setup(); err != nil {
			return err
		}
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			return errors.NewValueError("explain", "missing question")
		}
		common.explain = true
		return common.explainPrompt(prompt)
	})
	return cmd
}
