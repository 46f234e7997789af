package adaboost

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsRegister(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	for _, c := range Collectors() {
		require.NoError(t, reg.Register(c))
	}
}

func TestTrainingMetrics(t *testing.T) {
	_, param := newTestParameter(t)
	require.NoError(t, param.SetMaxIterations(2))

	rounds := testutil.ToFloat64(roundsTotal)
	ok := testutil.ToFloat64(trainingsTotal.WithLabelValues("ok"))
	failed := testutil.ToFloat64(trainingsTotal.WithLabelValues("error"))
	predictions := testutil.ToFloat64(predictionsTotal)

	model, err := Train(threeClassProblem(), param)
	require.NoError(t, err)
	_, err = Train(lineProblem([]float64{1}, []float64{0}), param)
	require.Error(t, err)

	_, err = Predict(model, param, threeClassProblem().X[0])
	require.NoError(t, err)

	assert.Equal(t, rounds+2, testutil.ToFloat64(roundsTotal))
	assert.Equal(t, ok+1, testutil.ToFloat64(trainingsTotal.WithLabelValues("ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(trainingsTotal.WithLabelValues("error")))
	assert.Equal(t, predictions+1, testutil.ToFloat64(predictionsTotal))
	assert.InDelta(t, 3.0/9, testutil.ToFloat64(trainingError), 1e-12)
}
