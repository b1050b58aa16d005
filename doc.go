// Package mllab is a small machine learning teaching library for Go.
//
// mllab implements the classic first models from scratch so each step can be
// inspected: a train/test split, linear and logistic regression trained by
// batch gradient descent, an entropy-based decision tree and the metrics used
// to judge them. Data is plain [][]float64 rows and []float64 labels.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mllab/dataset"
//	    "github.com/YuminosukeSato/mllab/linear"
//	    "github.com/YuminosukeSato/mllab/metrics"
//	    "github.com/YuminosukeSato/mllab/model_selection"
//	)
//
//	func main() {
//	    d := dataset.Iris()
//	    split, err := model_selection.TrainTestSplit(d.Features, d.Labels, 0.3,
//	        model_selection.WithRandomState(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := linear.NewLogisticRegression(linear.WithEpochs(200))
//	    if err := model.Fit(split.XTrain, split.YTrain); err != nil {
//	        log.Fatal(err)
//	    }
//	    pred, err := model.PredictBatch(split.XTest)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("accuracy: %.2f%%\n", metrics.AccuracyPercent(split.YTest, pred))
//	    fmt.Println(metrics.NewConfusionMatrix(split.YTest, pred))
//	}
//
// # Packages
//
//   - dataset: built-in Iris, linear and play-tennis tables
//   - model_selection: TrainTestSplit
//   - linear: gradient-descent line fit, logistic regression, least squares
//   - tree: entropy decision tree, text and JSON rendering
//   - metrics: accuracy, confusion matrix, regression errors
//   - preprocessing: StandardScaler
//   - visualize: gonum/plot charts of fits and decision boundaries
//   - explain: Gemini and OpenRouter clients for tutor-style explanations
//   - quiz: the multiple-choice quiz
//   - lab: end-to-end runs with the interactive defaults
//   - core/model, core/parallel: estimator lifecycle and batch prediction
//   - pkg/errors, pkg/log: structured errors, warnings and logging
//
// The mllab command in cmd/mllab wraps the labs, the quiz and the explanation
// service as subcommands.
//
// # Error Handling
//
// Invalid inputs return typed errors that can be matched with errors.As:
// DimensionError, ValidationError, NotFittedError and ValueError, or the
// sentinels ErrEmptyData and ErrRaggedRows via errors.Is. A gradient-descent
// run that diverges is not an error; it emits a ConvergenceWarning through
// errors.Warn.
//
// # License
//
// mllab is released under the MIT License.
package mllab
