package lab

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/dataset"
	"github.com/YuminosukeSato/mllab/metrics"
	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/tree"
)

func TestRunLinear(t *testing.T) {
	res, err := RunLinear(WithSeed(1))
	require.NoError(t, err)

	assert.Len(t, res.Split.XTrain, 7)
	assert.Len(t, res.Split.XTest, 3)
	assert.Len(t, res.Predictions, 3)

	mse, err := metrics.MSE(res.Split.YTest, res.Predictions)
	require.NoError(t, err)
	assert.Equal(t, mse, res.MSE)

	// 100 epochs at 0.01 get close to, but not onto, the least-squares line.
	require.NotNil(t, res.Reference)
	assert.InDelta(t, res.Reference.Slope, res.Params.Slope, 0.3)
	assert.Contains(t, res.Prompt(), "Mean Squared Error")

	again, err := RunLinear(WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, res.Params, again.Params)
	assert.Equal(t, res.Split.YTest, again.Split.YTest)
}

func TestRunLogistic(t *testing.T) {
	res, err := RunLogistic(WithRand(rand.New(rand.NewSource(3))), WithEpochs(200))
	require.NoError(t, err)

	assert.Len(t, res.Split.YTest, 3)
	assert.Equal(t, 3, res.Confusion.Total())
	assert.GreaterOrEqual(t, res.AccuracyPercent, 0.0)
	assert.LessOrEqual(t, res.AccuracyPercent, 100.0)
	assert.InDelta(t, res.Confusion.Accuracy()*100, res.AccuracyPercent, 1e-9)
	assert.Nil(t, res.Scaler)
	assert.Contains(t, res.Prompt(), "Confusion Matrix")
}

func TestRunLogisticScaled(t *testing.T) {
	res, err := RunLogistic(WithSeed(5), WithScaling(true), WithLearningRate(0.5), WithEpochs(500))
	require.NoError(t, err)
	require.NotNil(t, res.Scaler)
	require.Len(t, res.Scaler.Mean, 2)

	// The scaler is fit on the training rows only.
	var sum float64
	for _, row := range res.Split.XTrain {
		sum += row[0]
	}
	assert.InDelta(t, sum/float64(len(res.Split.XTrain)), res.Scaler.Mean[0], 1e-12)
	assert.Len(t, res.Predictions, 3)
}

func TestRunTree(t *testing.T) {
	res, err := RunTree()
	require.NoError(t, err)
	assert.Equal(t, DefaultTreeDepth, res.MaxDepth)
	assert.Equal(t, 3, tree.Depth(res.Root))
	assert.Equal(t, 6, tree.NumLeaves(res.Root))
	// One leaf holds a 1/1 tie, so one training row is misclassified.
	assert.InDelta(t, 100*13.0/14.0, res.TrainAccuracyPercent, 1e-9)
	assert.Contains(t, res.Prompt(), "max depth of 3")

	deep, err := RunTree(WithMaxDepth(10))
	require.NoError(t, err)
	assert.Equal(t, 100.0, deep.TrainAccuracyPercent)
}

func TestRunErrors(t *testing.T) {
	_, err := RunLinear(WithTestSize(1.5))
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	// One row leaves the training partition empty.
	tiny := &dataset.Dataset{Features: [][]float64{{1}}, Labels: []float64{2}, FeatureNames: []string{"x"}}
	_, err = RunLinear(WithDataset(tiny))
	var vErr *errors.ValueError
	assert.True(t, errors.As(err, &vErr))

	_, err = RunTree(WithDataset(&dataset.Dataset{}))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = RunLogistic(WithLearningRate(-1), WithSeed(1))
	assert.True(t, errors.As(err, &valErr))
}
