package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func lineData(start, stop, step float64) ([][]float64, []float64) {
	var X [][]float64
	var y []float64
	for x := start; x <= stop+1e-9; x += step {
		X = append(X, []float64{x})
		y = append(y, 2*x+1)
	}
	return X, y
}

func TestFitLineConverges(t *testing.T) {
	tests := []struct {
		name          string
		start, stop   float64
		step          float64
		wantSlope     float64
		wantIntercept float64
	}{
		{"x=0..5 step 0.5", 0, 5, 0.5, 2.0006, 0.998},
		{"x=1..10", 1, 10, 1, 2.0015, 0.9896},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X, y := lineData(tt.start, tt.stop, tt.step)
			p, err := FitLine(X, y, GDConfig{LearningRate: 0.01, Epochs: 1000})
			require.NoError(t, err)
			assert.InDelta(t, 2, p.Slope, 0.3)
			assert.InDelta(t, 1, p.Intercept, 0.3)
			assert.InDelta(t, tt.wantSlope, p.Slope, 1e-3)
			assert.InDelta(t, tt.wantIntercept, p.Intercept, 1e-3)
		})
	}
}

func TestFitLineSingleStep(t *testing.T) {
	// One epoch from (0,0): dSlope = -2/n Σ x*y, dIntercept = -2/n Σ y.
	X := [][]float64{{1}, {2}}
	y := []float64{3, 5}
	p, err := FitLine(X, y, GDConfig{LearningRate: 0.1, Epochs: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.1*(1*3+2*5), p.Slope, 1e-12)
	assert.InDelta(t, 0.1*(3+5), p.Intercept, 1e-12)
}

func TestFitLineIgnoresExtraColumns(t *testing.T) {
	X, y := lineData(0, 5, 0.5)
	wide := make([][]float64, len(X))
	for i, row := range X {
		wide[i] = []float64{row[0], 1000 * float64(i), -3}
	}
	cfg := GDConfig{LearningRate: 0.01, Epochs: 200}
	a, err := FitLine(X, y, cfg)
	require.NoError(t, err)
	b, err := FitLine(wide, y, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFitLineZeroEpochs(t *testing.T) {
	X, y := lineData(1, 10, 1)
	p, err := FitLine(X, y, GDConfig{LearningRate: 0.01, Epochs: 0})
	require.NoError(t, err)
	assert.Equal(t, LineParams{}, p)
}

func TestFitLineValidation(t *testing.T) {
	X, y := lineData(1, 3, 1)
	cfg := GDConfig{LearningRate: 0.01, Epochs: 10}

	_, err := FitLine(nil, nil, cfg)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = FitLine(X, y[:2], cfg)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = FitLine([][]float64{{1}, {}}, []float64{1, 2}, cfg)
	assert.True(t, errors.As(err, &dimErr))

	var valErr *errors.ValidationError
	for _, bad := range []GDConfig{
		{LearningRate: 0, Epochs: 10},
		{LearningRate: -0.1, Epochs: 10},
		{LearningRate: math.NaN(), Epochs: 10},
		{LearningRate: math.Inf(1), Epochs: 10},
		{LearningRate: 0.01, Epochs: -1},
	} {
		_, err = FitLine(X, y, bad)
		assert.True(t, errors.As(err, &valErr), "%+v", bad)
	}
}

func TestFitLineDivergenceWarns(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	X, y := lineData(1, 10, 1)
	p, err := FitLine(X, y, GDConfig{LearningRate: 10, Epochs: 1000})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(p.Slope) || math.IsInf(p.Slope, 0))

	require.Len(t, warnings, 1)
	var cw *errors.ConvergenceWarning
	require.True(t, errors.As(warnings[0], &cw))
	assert.Equal(t, "GradientDescentRegressor", cw.Algorithm)
	assert.Equal(t, 1000, cw.Iterations)
	// 最初に発散したエポックが報告され、最終エポックではない
	assert.Contains(t, cw.Message, "_update at iteration ")
	assert.NotContains(t, cw.Message, "at iteration 1000.")
}

func TestFitLineStableRunDoesNotWarn(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	X, y := lineData(1, 10, 1)
	_, err := FitLine(X, y, GDConfig{LearningRate: 0.01, Epochs: 1000})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestGradientDescentRegressor(t *testing.T) {
	r := NewGradientDescentRegressor()
	assert.Equal(t, GDConfig{LearningRate: 0.01, Epochs: 100}, r.Config())

	// Untrained: zero parameters, zero predictions.
	assert.False(t, r.IsFitted())
	assert.Equal(t, 0.0, r.Predict(42))
	_, err := r.PredictBatch([][]float64{{1}})
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	X := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}}
	y := []float64{2.5, 3.5, 4.0, 5.1, 6.2, 6.8, 8.1, 8.5, 9.7, 10.2}
	require.NoError(t, r.Fit(X, y))
	assert.True(t, r.IsFitted())

	p := r.Params()
	assert.InDelta(t, 1.0168, p.Slope, 1e-3)
	assert.InDelta(t, 0.6638, p.Intercept, 1e-3)
	assert.InDelta(t, p.Slope*3+p.Intercept, r.Predict(3), 1e-12)

	preds, err := r.PredictBatch(X)
	require.NoError(t, err)
	for i, row := range X {
		assert.InDelta(t, p.Predict(row[0]), preds[i], 1e-12)
	}

	// Retraining replaces the parameters wholesale.
	require.NoError(t, r.Train(X, y, 0.01, 0))
	assert.Equal(t, LineParams{}, r.Params())

	// A failed training keeps the previous state.
	require.NoError(t, r.Fit(X, y))
	assert.Error(t, r.Train(nil, nil, 0.01, 10))
	assert.Equal(t, p, r.Params())
}

func TestGradientDescentRegressorIdempotent(t *testing.T) {
	X, y := lineData(1, 10, 1)
	r := NewGradientDescentRegressor(WithLearningRate(0.02), WithEpochs(300))
	require.NoError(t, r.Fit(X, y))
	first := r.Params()
	require.NoError(t, r.Fit(X, y))
	assert.Equal(t, first, r.Params())
}
