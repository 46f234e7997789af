package adaboost

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossValidation(t *testing.T) {
	_, param := newTestParameter(t)
	prob := separableProblem()

	for _, nrFold := range []int{2, 5, 10} {
		target, err := CrossValidation(prob, param, nrFold, 1)
		require.NoError(t, err)
		require.Len(t, target, prob.L)
		assert.Equal(t, 1.0, Accuracy(prob.Y, target), "folds %d", nrFold)
	}
}

func TestCrossValidationIsSeeded(t *testing.T) {
	_, param := newTestParameter(t)
	require.NoError(t, param.SetMaxIterations(3))
	prob := threeClassProblem()

	a, err := CrossValidation(prob, param, 3, 42)
	require.NoError(t, err)
	b, err := CrossValidation(prob, param, 3, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCrossValidationFolds(t *testing.T) {
	_, param := newTestParameter(t)

	_, err := CrossValidation(separableProblem(), param, 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	// More folds than instances falls back to leave-one-out.
	target, err := CrossValidation(separableProblem(), param, 100, 0)
	require.NoError(t, err)
	assert.Len(t, target, 20)
}

func TestCrossValidationStratifies(t *testing.T) {
	_, param := newTestParameter(t)

	// Two rare instances must land in different folds for every seed.
	prob := lineProblem(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 20, 21},
		[]float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
	)

	for seed := int64(0); seed < 20; seed++ {
		target, err := CrossValidation(prob, param, 2, seed)
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, 1.0, Accuracy(prob.Y, target), "seed %d", seed)
	}
}

func TestStratifiedFolds(t *testing.T) {
	g := groupClasses(threeClassProblem())
	perm, foldStart := stratifiedFolds(g, 3, rand.New(rand.NewSource(7)))

	assert.Equal(t, []int{0, 3, 6, 9}, foldStart)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, perm)
	for i := 0; i < 3; i++ {
		var classes []int
		for _, j := range perm[foldStart[i]:foldStart[i+1]] {
			classes = append(classes, g.index[j])
		}
		assert.ElementsMatch(t, []int{0, 1, 2}, classes, "fold %d", i)
	}
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 0.5, Accuracy([]float64{1, 2, 3, 4}, []float64{1, 0, 3, 0}))
}
