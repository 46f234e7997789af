package adaboost

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Predict returns the label the ensemble votes for.
func Predict(model *Model, param *Parameter, x []Feature) (float64, error) {
	s, err := param.snapshot()
	if err != nil {
		return 0, err
	}
	if err := model.validate(); err != nil {
		return 0, err
	}

	scores := make([]float64, model.NumClass())
	label, err := predictScores(model, s.weakPrediction, x, scores)
	if err != nil {
		return 0, err
	}
	predictionsTotal.Inc()

	return float64(label), nil
}

// PredictScores returns the predicted label and, per entry of model.Labels,
// the share of the ensemble's total vote weight cast for that label.
func PredictScores(model *Model, param *Parameter, x []Feature) (float64, []float64, error) {
	s, err := param.snapshot()
	if err != nil {
		return 0, nil, err
	}
	if err := model.validate(); err != nil {
		return 0, nil, err
	}

	scores := make([]float64, model.NumClass())
	label, err := predictScores(model, s.weakPrediction, x, scores)
	if err != nil {
		return 0, nil, err
	}
	predictionsTotal.Inc()

	var sum float64
	for _, v := range scores {
		sum += v
	}
	if sum > 0 {
		for k := range scores {
			scores[k] /= sum
		}
	}

	return float64(label), scores, nil
}

// predictScores fills scores with the summed learner weights per class and
// returns the winning label. Ties go to the class listed first.
func predictScores(model *Model, predictor WeakPredictor, x []Feature, scores []float64) (int, error) {
	for k := range scores {
		scores[k] = 0
	}

	for t, learner := range model.Learners {
		label, err := predictor.Predict(learner, x)
		if err != nil {
			return 0, fmt.Errorf("learner %d: %w", t, err)
		}
		for k, l := range model.Labels {
			if l == label {
				scores[k] += model.Alpha[t]
				break
			}
		}
	}

	return model.Labels[argmax(scores)], nil
}

// PredictionBatch classifies many instances concurrently.
type PredictionBatch struct {
	Parameter *Parameter
	// Workers bounds the number of goroutines; 0 means GOMAXPROCS.
	Workers int
}

// NewPredictionBatch returns a PredictionBatch with default parameters
func NewPredictionBatch(ctx *Context) (*PredictionBatch, error) {
	param, err := NewParameter(ctx)
	if err != nil {
		return nil, err
	}
	return &PredictionBatch{Parameter: param}, nil
}

// Compute predicts a label for every row of xs. It stops early when ctx is
// cancelled or a prediction fails.
func (b *PredictionBatch) Compute(ctx context.Context, model *Model, xs [][]Feature) ([]float64, error) {
	s, err := b.Parameter.snapshot()
	if err != nil {
		return nil, err
	}
	if err := model.validate(); err != nil {
		return nil, err
	}

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (len(xs) + workers - 1) / workers

	out := make([]float64, len(xs))
	g, ctx := errgroup.WithContext(ctx)

	for lo := 0; lo < len(xs); lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > len(xs) {
			hi = len(xs)
		}

		g.Go(func() error {
			scores := make([]float64, model.NumClass())
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				label, err := predictScores(model, s.weakPrediction, xs[i], scores)
				if err != nil {
					return fmt.Errorf("instance %d: %w", i, err)
				}
				out[i] = float64(label)
			}
			predictionsTotal.Add(float64(hi - lo))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
