package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{"perfect", []float64{0, 1, 1, 0}, []float64{0, 1, 1, 0}, 100},
		{"80 percent", []float64{0, 1, 2, 1, 0}, []float64{0, 1, 1, 1, 0}, 80},
		{"none", []float64{0, 0, 0}, []float64{1, 1, 1}, 0},
		{"one third", []float64{1, 0, 1}, []float64{1, 1, 0}, 100.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AccuracyPercent(tt.yTrue, tt.yPred), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(AccuracyPercent(nil, nil)))
	assert.True(t, math.IsNaN(AccuracyPercent([]float64{1, 0}, []float64{1})))
}

func TestAccuracyPercentOfSelfIsHundred(t *testing.T) {
	for _, y := range [][]float64{{0}, {1, 1, 0}, {3.5, -2, 7}} {
		assert.Equal(t, 100.0, AccuracyPercent(y, y))
	}
}

func TestAccuracy(t *testing.T) {
	got, err := Accuracy([]float64{0, 1, 2, 1, 0}, []float64{0, 1, 1, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got, 1e-12)

	_, err = Accuracy(nil, nil)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = Accuracy([]float64{1}, []float64{1, 0})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []float64{0, 0, 0, 1, 1, 1, 1}
	yPred := []float64{0, 1, 0, 1, 0, 1, 1}
	cm := NewConfusionMatrix(yTrue, yPred)

	assert.Equal(t, ConfusionMatrix{{2, 1}, {1, 3}}, cm)
	assert.Equal(t, 2, cm.TN())
	assert.Equal(t, 1, cm.FP())
	assert.Equal(t, 1, cm.FN())
	assert.Equal(t, 3, cm.TP())
	assert.Equal(t, len(yTrue), cm.Total())
	assert.InDelta(t, AccuracyPercent(yTrue, yPred)/100, cm.Accuracy(), 1e-12)
	assert.InDelta(t, 0.75, cm.Precision(), 1e-12)
	assert.InDelta(t, 0.75, cm.Recall(), 1e-12)
	assert.InDelta(t, 0.75, cm.F1(), 1e-12)
	assert.Contains(t, cm.String(), "Actual 1")
}

func TestConfusionMatrixSkipsNonBinaryLabels(t *testing.T) {
	cm := NewConfusionMatrix([]float64{0, 2, 1, 1, 0.5}, []float64{0, 0, 1, 3, 0})
	assert.Equal(t, ConfusionMatrix{{1, 0}, {0, 1}}, cm)
	assert.Equal(t, 2, cm.Total())

	// Missing predictions are not counted either.
	cm = NewConfusionMatrix([]float64{1, 1, 0}, []float64{1})
	assert.Equal(t, 1, cm.Total())

	assert.Equal(t, ConfusionMatrix{}, NewConfusionMatrix(nil, nil))
	assert.True(t, math.IsNaN(ConfusionMatrix{}.Accuracy()))
}

func TestConfusionMatrixUndefinedMetrics(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	cm := NewConfusionMatrix([]float64{0, 0}, []float64{0, 0})
	assert.Equal(t, 0.0, cm.Precision())
	assert.Equal(t, 0.0, cm.Recall())
	assert.Equal(t, 0.0, cm.F1())

	require.NotEmpty(t, warnings)
	var umw *errors.UndefinedMetricWarning
	require.True(t, errors.As(warnings[0], &umw))
	assert.Equal(t, "precision", umw.Metric)
}
