package adaboost

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusterProblem() *Problem {
	points := [][2]float64{
		{2, 0}, {3, 0}, {2.5, 0.5},
		{0, 2}, {0, 3}, {0.5, 2.5},
		{-2, -2}, {-3, -3}, {-2.5, -2},
	}
	labels := []float64{5, 5, 5, 6, 6, 6, 7, 7, 7}

	x := make([][]Feature, len(points))
	for i, p := range points {
		x[i] = []Feature{NewFeatureNode(1, p[0]), NewFeatureNode(2, p[1])}
	}
	return NewProblem(len(points), 2, labels, x)
}

func TestNewLogisticTraining(t *testing.T) {
	_, err := NewLogisticTraining(1, 0.01, 10)
	require.NoError(t, err)

	for _, tc := range []struct {
		c, eps float64
		iters  int
	}{
		{0, 0.01, 10},
		{-1, 0.01, 10},
		{math.Inf(1), 0.01, 10},
		{math.NaN(), 0.01, 10},
		{1, 0, 10},
		{1, 0.01, 0},
	} {
		_, err := NewLogisticTraining(tc.c, tc.eps, tc.iters)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "%+v", tc)
	}
}

func TestLogisticBinary(t *testing.T) {
	prob := lineProblem([]float64{-2, -1, 1, 2}, []float64{-1, -1, 1, 1})
	trainer, err := NewLogisticTraining(10, 0.001, 100)
	require.NoError(t, err)

	weak, err := trainer.Train(prob, uniform(prob.L))
	require.NoError(t, err)

	m := weak.(*LogisticModel)
	assert.Equal(t, []int{1, -1}, m.Labels)
	assert.Len(t, m.W, 1)
	assert.Len(t, m.W[0], 2)
	assert.Greater(t, m.W[0][0], 0.0)

	for i, x := range prob.X {
		label, err := NewLogisticPrediction().Predict(weak, x)
		require.NoError(t, err)
		assert.Equal(t, int(prob.Y[i]), label)
	}
}

func TestLogisticMultiClass(t *testing.T) {
	prob := clusterProblem()
	trainer, err := NewLogisticTraining(10, 0.001, 200)
	require.NoError(t, err)

	weak, err := trainer.Train(prob, uniform(prob.L))
	require.NoError(t, err)

	m := weak.(*LogisticModel)
	assert.Equal(t, []int{5, 6, 7}, m.Labels)
	assert.Len(t, m.W, 3)

	for i, x := range prob.X {
		label, err := NewLogisticPrediction().Predict(weak, x)
		require.NoError(t, err)
		assert.Equal(t, int(prob.Y[i]), label, "instance %d", i)
	}

	// Features unseen during training are ignored.
	label, err := NewLogisticPrediction().Predict(weak, []Feature{NewFeatureNode(1, 3), NewFeatureNode(9, 100)})
	require.NoError(t, err)
	assert.Equal(t, 5, label)
}

func TestLogisticText(t *testing.T) {
	prob := clusterProblem()
	trainer, err := NewLogisticTraining(1, 0.01, 50)
	require.NoError(t, err)

	weak, err := trainer.Train(prob, uniform(prob.L))
	require.NoError(t, err)

	text, err := weak.MarshalText()
	require.NoError(t, err)

	decoded, err := decodeLogistic(text)
	require.NoError(t, err)
	assert.Equal(t, weak, decoded)

	for _, bad := range []string{"", "1 5 2 1 0 0 0", "2 5 6 1 1 0", "2 5 6 1 3 0 0 0 0 0 0", "2 5 6 1 1 0 0 9", "2 5 6 1 1 x 0"} {
		_, err := decodeLogistic([]byte(bad))
		assert.True(t, errors.Is(err, ErrModelFormat), "input %q", bad)
	}
}

func TestTronMinimizesQuadraticLoss(t *testing.T) {
	prob := lineProblem([]float64{-1, 1}, []float64{-1, 1})
	w := make([]float64, 1)

	newTron(newL2RLRFunc(prob, []float64{1, 1}), 1e-6, 100, 0.1).minimize(w)

	// The optimum of w^2/2 + 2 log(1+exp(-w)) satisfies w = 2/(1+exp(w)).
	assert.InDelta(t, w[0], 2/(1+math.Exp(w[0])), 1e-4)
}

func TestEuclideanNorm(t *testing.T) {
	assert.Equal(t, 0.0, euclideanNorm(nil))
	assert.Equal(t, 3.0, euclideanNorm([]float64{-3}))
	assert.InDelta(t, 5.0, euclideanNorm([]float64{3, 0, 4}), 1e-12)
	assert.InDelta(t, 5e200, euclideanNorm([]float64{3e200, 4e200}), 1e188)
}
