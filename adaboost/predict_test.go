package adaboost

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictScores(t *testing.T) {
	_, param := newTestParameter(t)
	model := trainedModel(t)

	for i, x := range threeClassProblem().X {
		label, scores, err := PredictScores(model, param, x)
		require.NoError(t, err)
		require.Len(t, scores, 3)

		var sum float64
		for _, s := range scores {
			sum += s
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
		assert.Equal(t, float64(model.Labels[argmax(scores)]), label, "instance %d", i)
	}
}

func TestPredictInvalidModel(t *testing.T) {
	_, param := newTestParameter(t)

	_, err := Predict(&Model{Labels: []int{0, 1}}, param, nil)
	assert.True(t, errors.Is(err, ErrModelFormat))

	_, _, err = PredictScores(nil, param, nil)
	assert.True(t, errors.Is(err, ErrModelFormat))
}

func TestPredictionBatch(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	batch, err := NewPredictionBatch(ctx)
	require.NoError(t, err)

	model := trainedModel(t)
	prob := threeClassProblem()

	for _, workers := range []int{0, 1, 2, 4, 100} {
		batch.Workers = workers
		out, err := batch.Compute(context.Background(), model, prob.X)
		require.NoError(t, err)
		assert.Equal(t, prob.Y, out, "workers %d", workers)
	}

	out, err := batch.Compute(context.Background(), model, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPredictionBatchCancelled(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	batch, err := NewPredictionBatch(ctx)
	require.NoError(t, err)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = batch.Compute(cctx, trainedModel(t), threeClassProblem().X)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPredictionBatchWrongPredictor(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	batch, err := NewPredictionBatch(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.Parameter.SetWeakLearnerPrediction(NewLogisticPrediction()))

	_, err = batch.Compute(context.Background(), trainedModel(t), threeClassProblem().X)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
