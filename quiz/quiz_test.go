package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func TestBuiltinQuestions(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 4)
	assert.Equal(t, "Classification", qs[0].CorrectAnswer())
	assert.Equal(t, "Overfitting", qs[2].CorrectAnswer())
	for _, q := range qs {
		assert.Len(t, q.Options, 4)
		assert.NotEmpty(t, q.Explanation)
	}

	qs[0].Options[2] = "changed"
	assert.Equal(t, "Classification", Questions()[0].CorrectAnswer())
}

func TestSessionFlow(t *testing.T) {
	s := NewSession()
	assert.Equal(t, 4, s.Len())
	assert.False(t, s.Done())

	answers := []int{2, 0, 3, 2}
	want := []bool{true, false, true, true}
	for i := range answers {
		idx, _ := s.Current()
		assert.Equal(t, i, idx)
		ok, err := s.Answer(idx, answers[i])
		require.NoError(t, err)
		assert.Equal(t, want[i], ok)
		assert.Equal(t, i < 3, s.Next())
	}
	assert.True(t, s.Done())

	correct, total := s.Score()
	assert.Equal(t, 3, correct)
	assert.Equal(t, 4, total)

	opt, ok := s.Answered(1)
	assert.True(t, ok)
	assert.Equal(t, 0, opt)

	s.Reset()
	idx, _ := s.Current()
	assert.Equal(t, 0, idx)
	correct, _ = s.Score()
	assert.Equal(t, 0, correct)
	_, ok = s.Answered(1)
	assert.False(t, ok)
}

func TestSessionErrors(t *testing.T) {
	s := NewSession(Question{Question: "q", Options: []string{"a", "b"}, CorrectAnswerIndex: 1})

	var valErr *errors.ValidationError
	_, err := s.Answer(1, 0)
	assert.True(t, errors.As(err, &valErr))
	_, err = s.Answer(0, 2)
	assert.True(t, errors.As(err, &valErr))

	ok, err := s.Answer(0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Answer(0, 0)
	var vErr *errors.ValueError
	assert.True(t, errors.As(err, &vErr))
	assert.False(t, s.Next())
}
