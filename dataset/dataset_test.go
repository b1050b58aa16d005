package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func TestBuiltinsAreValid(t *testing.T) {
	tests := []struct {
		name     string
		samples  int
		features int
	}{
		{"iris", 10, 2},
		{"linear", 10, 1},
		{"playtennis", 14, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load(tt.name)
			require.NoError(t, err)
			require.NoError(t, d.Validate())
			assert.Equal(t, tt.samples, d.NumSamples())
			assert.Equal(t, tt.features, d.NumFeatures())
			assert.Equal(t, tt.name, d.Name)
		})
	}
	assert.Equal(t, []string{"iris", "linear", "playtennis"}, Names())

	_, err := Load("mnist")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestBuiltinsReturnFreshCopies(t *testing.T) {
	a := Iris()
	a.Features[0][0] = 100
	a.Labels[0] = 7
	b := Iris()
	assert.Equal(t, 5.1, b.Features[0][0])
	assert.Equal(t, 0.0, b.Labels[0])
}

func TestValidateDistinctErrors(t *testing.T) {
	empty := &Dataset{}
	assert.True(t, errors.Is(empty.Validate(), errors.ErrEmptyData))

	mismatch := &Dataset{Features: [][]float64{{1}, {2}}, Labels: []float64{1}, FeatureNames: []string{"x"}}
	var dimErr *errors.DimensionError
	require.True(t, errors.As(mismatch.Validate(), &dimErr))
	assert.Equal(t, 0, dimErr.Axis)

	ragged := &Dataset{Features: [][]float64{{1, 2}, {3}}, Labels: []float64{0, 1}, FeatureNames: []string{"a", "b"}}
	assert.True(t, errors.Is(ragged.Validate(), errors.ErrRaggedRows))

	names := &Dataset{Features: [][]float64{{1, 2}}, Labels: []float64{0}, FeatureNames: []string{"a"}}
	require.True(t, errors.As(names.Validate(), &dimErr))
	assert.Equal(t, 1, dimErr.Axis)
}

func TestColumnMatrixAndCategories(t *testing.T) {
	d := PlayTennis()
	assert.Equal(t, []float64{0, 0, 1, 2, 2, 2, 1, 0, 0, 2, 0, 1, 1, 2}, d.Column(0))

	m, err := d.Matrix()
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 14, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 2.0, m.At(3, 0))

	assert.Equal(t, "Overcast", d.CategoryName(0, 1))
	assert.Equal(t, "Normal", d.CategoryName(2, 1))
	assert.Equal(t, "", d.CategoryName(2, 5))
	assert.Equal(t, "", d.CategoryName(0, 0.5))
	assert.Equal(t, "", Iris().CategoryName(0, 1))

	_, err = (&Dataset{}).Matrix()
	assert.Error(t, err)
}
