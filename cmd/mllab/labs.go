package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/YuminosukeSato/mllab/lab"
	"github.com/YuminosukeSato/mllab/model_selection"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/tree"
	"github.com/YuminosukeSato/mllab/visualize"
)

func linearCmd() *commander.Command {
	var (
		common   commonFlags
		lr       float64
		epochs   int
		testSize float64
		plotPath string
	)
	cmd := &commander.Command{
		UsageLine: "linear [options]",
		Short:     "fit a line by gradient descent",
		Long: `
fit slope and intercept on the built-in linear dataset by batch gradient
descent and report the MSE on the held-out rows.

	$ mllab linear -lr 0.01 -epochs 100 -plot linear.png
`,
		Flag: *flag.NewFlagSet("linear", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.Float64Var(&lr, "lr", lab.LinearLearningRate, "learning rate")
	cmd.Flag.IntVar(&epochs, "epochs", lab.DefaultEpochs, "number of epochs")
	cmd.Flag.Float64Var(&testSize, "test-size", model_selection.DefaultTestSize, "held-out fraction in (0, 1)")
	cmd.Flag.StringVar(&plotPath, "plot", "", "write a chart of the data and the fitted line (png, svg, pdf)")

	cmd.Run = guard("linear", func(_ []string) error {
		if err := common.setup(); err != nil {
			return err
		}
		opts := append(common.labOptions(), lab.WithLearningRate(lr), lab.WithEpochs(epochs), lab.WithTestSize(testSize))
		res, err := lab.RunLinear(opts...)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "Slope:     %.4f\n", res.Params.Slope)
		fmt.Fprintf(stdout, "Intercept: %.4f\n", res.Params.Intercept)
		fmt.Fprintf(stdout, "Test MSE:  %.4f (%d train / %d test rows)\n", res.MSE, len(res.Split.XTrain), len(res.Split.XTest))
		if res.Reference != nil {
			fmt.Fprintf(stdout, "Least squares on the training rows: slope %.4f, intercept %.4f\n",
				res.Reference.Slope, res.Reference.Intercept)
		}

		if plotPath != "" {
			p, err := visualize.RegressionPlot(res.Dataset.Features, res.Dataset.Labels, res.Params, res.Dataset.FeatureNames[0])
			if err != nil {
				return err
			}
			if err := visualize.Save(p, plotPath); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Saved chart to %s\n", plotPath)
		}
		return common.explainPrompt(res.Prompt())
	})
	return cmd
}

func logisticCmd() *commander.Command {
	var (
		common   commonFlags
		lr       float64
		epochs   int
		testSize float64
		scale    bool
		plotPath string
	)
	cmd := &commander.Command{
		UsageLine: "logistic [options]",
		Short:     "train a binary logistic regression on the Iris sample",
		Long: `
train a logistic regression by batch gradient descent and report the test
accuracy and confusion matrix.

	$ mllab logistic -epochs 200 -seed 1
`,
		Flag: *flag.NewFlagSet("logistic", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.Float64Var(&lr, "lr", lab.LogisticLearningRate, "learning rate")
	cmd.Flag.IntVar(&epochs, "epochs", lab.DefaultEpochs, "number of epochs")
	cmd.Flag.Float64Var(&testSize, "test-size", model_selection.DefaultTestSize, "held-out fraction in (0, 1)")
	cmd.Flag.BoolVar(&scale, "scale", false, "standardize features before training")
	cmd.Flag.StringVar(&plotPath, "plot", "", "write a chart of the classes and the decision boundary")

	cmd.Run = guard("logistic", func(_ []string) error {
		if err := common.setup(); err != nil {
			return err
		}
		opts := append(common.labOptions(),
			lab.WithLearningRate(lr), lab.WithEpochs(epochs), lab.WithTestSize(testSize), lab.WithScaling(scale))
		res, err := lab.RunLogistic(opts...)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "Accuracy: %.2f%% on %d test rows\n", res.AccuracyPercent, len(res.Split.XTest))
		fmt.Fprintf(stdout, "Weights:  %.4f, bias %.4f\n", res.Params.Weights, res.Params.Bias)
		fmt.Fprintf(stdout, "Confusion matrix:\n%s\n", res.Confusion)

		if plotPath != "" {
			X := res.Dataset.Features
			if res.Scaler != nil {
				if X, err = res.Scaler.Transform(X); err != nil {
					return err
				}
			}
			p, err := visualize.ClassificationPlot(X, res.Dataset.Labels, res.Params, res.Dataset.FeatureNames)
			if err != nil {
				return err
			}
			if err := visualize.Save(p, plotPath); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Saved chart to %s\n", plotPath)
		}
		return common.explainPrompt(res.Prompt())
	})
	return cmd
}

func treeCmd() *commander.Command {
	var (
		common   commonFlags
		maxDepth int
		jsonOut  string
	)
	cmd := &commander.Command{
		UsageLine: "tree [options]",
		Short:     "grow a decision tree on the play-tennis data",
		Long: `
grow an entropy-based decision tree on the whole play-tennis dataset and
print it. Deeper trees fit the training rows better and overfit sooner.

	$ mllab tree -max-depth 3 -json tree.json
`,
		Flag: *flag.NewFlagSet("tree", flag.ExitOnError),
	}
	common.register(&cmd.Flag)
	cmd.Flag.IntVar(&maxDepth, "max-depth", lab.DefaultTreeDepth, "maximum tree depth")
	cmd.Flag.StringVar(&jsonOut, "json", "", "also write the tree as JSON to this file")

	cmd.Run = guard("tree", func(_ []string) error {
		if err := common.setup(); err != nil {
			return err
		}
		res, err := lab.RunTree(lab.WithMaxDepth(maxDepth))
		if err != nil {
			return err
		}

		d := res.Dataset
		for j, names := range d.Categories {
			fmt.Fprintf(stdout, "%s:", d.FeatureNames[j])
			for v, name := range names {
				fmt.Fprintf(stdout, " %d %s", v, name)
			}
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout)
		if err := tree.Format(stdout, res.Root, tree.FormatOptions{
			FeatureNames: d.FeatureNames,
			ClassNames:   []string{"No", "Yes"},
			Target:       "Play",
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nDepth %d, %d leaves, training accuracy %.2f%%\n",
			tree.Depth(res.Root), tree.NumLeaves(res.Root), res.TrainAccuracyPercent)

		if jsonOut != "" {
			data, err := tree.MarshalJSON(res.Root, d.FeatureNames)
			if err != nil {
				return err
			}
			if err := os.WriteFile(jsonOut, data, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", jsonOut)
			}
		}
		return common.explainPrompt(res.Prompt())
	})
	return cmd
}
