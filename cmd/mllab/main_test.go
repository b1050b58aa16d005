package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	oldOut, oldIn := stdout, stdin
	stdout, stdin = &out, strings.NewReader(input)
	defer func() { stdout, stdin = oldOut, oldIn }()

	err := newRootCmd().Dispatch(args)
	return out.String(), err
}

func TestDatasetsCommand(t *testing.T) {
	out, err := run(t, "", "datasets")
	require.NoError(t, err)
	assert.Contains(t, out, "iris")
	assert.Contains(t, out, "playtennis")

	out, err = run(t, "", "datasets", "-show", "playtennis")
	require.NoError(t, err)
	assert.Contains(t, out, "Outlook")
	assert.Contains(t, out, "Sunny")

	_, err = run(t, "", "datasets", "-show", "mnist")
	assert.Error(t, err)
}

func TestLinearCommand(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "linear.png")
	out, err := run(t, "", "linear", "-seed", "1", "-plot", plot)
	require.NoError(t, err)
	assert.Contains(t, out, "Slope:")
	assert.Contains(t, out, "Test MSE:")

	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLogisticCommand(t *testing.T) {
	out, err := run(t, "", "logistic", "-seed", "1", "-scale")
	require.NoError(t, err)
	assert.Contains(t, out, "Accuracy:")
	assert.Contains(t, out, "Confusion matrix:")
}

func TestLogisticCommandRejectsBadTestSize(t *testing.T) {
	_, err := run(t, "", "logistic", "-test-size", "1.5")
	assert.Error(t, err)
}

func TestTreeCommand(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "tree.json")
	out, err := run(t, "", "tree", "-max-depth", "1", "-json", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Outlook: 0 Sunny")
	assert.Contains(t, out, "├── True: Leaf: Play = ")
	assert.Contains(t, out, "Depth 1, 2 leaves")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var node map[string]any
	require.NoError(t, json.Unmarshal(data, &node))
	assert.Equal(t, "split", node["type"])
}

func TestQuizCommand(t *testing.T) {
	// All correct, with one invalid entry that is asked again.
	out, err := run(t, "3\nfive\n2\n4\n3\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "please enter a number between 1 and 4")
	assert.Equal(t, 4, strings.Count(out, "Correct!"))
	assert.Contains(t, out, "Score: 4 / 4")

	out, err = run(t, "1\n2\n4\n3\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Incorrect. The answer is: Classification")
	assert.Contains(t, out, "Score: 3 / 4")
}

func TestQuizCommandInputClosed(t *testing.T) {
	_, err := run(t, "3\n", "quiz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input closed after 1 of 4 questions")
}

func TestGuardConvertsPanic(t *testing.T) {
	cmdRun := guard("boom", func([]string) error { panic("index out of range") })
	err := cmdRun(nil, nil)

	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "boom", panicErr.Operation)

	args := []string{"a", "b"}
	var got []string
	require.NoError(t, guard("ok", func(a []string) error { got = a; return nil })(nil, args))
	assert.Equal(t, args, got)
}

func TestExplainCommandNeedsQuestion(t *testing.T) {
	_, err := run(t, "", "explain")
	assert.Error(t, err)
}

func TestExplainCommandMissingKey(t *testing.T) {
	t.Setenv("MLLAB_SERVICE", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	_, err := run(t, "", "explain", "what is entropy?")
	assert.Error(t, err)
}
