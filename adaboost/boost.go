// Package adaboost implements AdaBoost classification on sparse features.
package adaboost

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// minError bounds the weighted error used for a learner's weight so that a
// perfect learner gets a large but finite vote.
const minError = 1e-10

// TrainingBatch trains AdaBoost models. Its Parameter is allocated in the
// Context the batch was created from.
type TrainingBatch struct {
	Parameter *Parameter
}

// NewTrainingBatch returns a TrainingBatch with default parameters
func NewTrainingBatch(ctx *Context) (*TrainingBatch, error) {
	param, err := NewParameter(ctx)
	if err != nil {
		return nil, err
	}
	return &TrainingBatch{Parameter: param}, nil
}

// Compute trains a model on prob with the batch parameters.
func (b *TrainingBatch) Compute(prob *Problem) (*Model, error) {
	return Train(prob, b.Parameter)
}

// Train boosts weak learners on prob with the SAMME rule. Boosting stops
// after MaxIterations rounds, once the ensemble's training error falls below
// AccuracyThreshold, when a weak learner is perfect, or when a weak learner
// does no better than chance.
func Train(prob *Problem, param *Parameter) (*Model, error) {
	s, err := param.snapshot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	model, err := train(prob, &s)
	trainingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		trainingsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	trainingsTotal.WithLabelValues("ok").Inc()

	return model, nil
}

func train(prob *Problem, s *parameterState) (*Model, error) {
	if err := prob.validate(); err != nil {
		return nil, err
	}

	groups := groupClasses(prob)
	nrClass := groups.nrClass()
	if nrClass < 2 {
		return nil, fmt.Errorf("need at least two classes, got %d: %w", nrClass, ErrInvalidProblem)
	}

	l := prob.L
	weights := make([]float64, l)
	for i := range weights {
		weights[i] = 1.0 / float64(l)
	}

	pred := make([]int, l)
	scores := make([][]float64, l)
	for i := range scores {
		scores[i] = make([]float64, nrClass)
	}

	model := &Model{
		ID:          uuid.New(),
		Labels:      append([]int(nil), groups.label...),
		NumFeatures: prob.N,
	}

	chance := 1 - 1/float64(nrClass)
	trainErr := 1.0

	for round := 1; round <= s.maxIterations; round++ {
		weak, err := s.weakTraining.Train(prob, weights)
		if err != nil {
			return nil, fmt.Errorf("round %d: train weak learner: %w", round, err)
		}

		var e float64
		for i, x := range prob.X {
			if pred[i], err = s.weakPrediction.Predict(weak, x); err != nil {
				return nil, fmt.Errorf("round %d: predict weak learner: %w", round, err)
			}
			if pred[i] != int(prob.Y[i]) {
				e += weights[i]
			}
		}

		if e >= chance {
			if len(model.Learners) == 0 {
				return nil, fmt.Errorf("weighted error %g with %d classes: %w", e, nrClass, ErrWeakLearner)
			}
			logger.Debug().Int("round", round).Float64("error", e).Msg("weak learner no better than chance, stopping")
			break
		}

		alpha := s.learningRate * (math.Log((1-e)/math.Max(e, minError)) + math.Log(float64(nrClass)-1))
		model.Alpha = append(model.Alpha, alpha)
		model.Learners = append(model.Learners, weak)
		roundsTotal.Inc()

		wrong := 0
		for i := range scores {
			if k := groups.classOf(pred[i]); k >= 0 {
				scores[i][k] += alpha
			}
			if argmax(scores[i]) != groups.index[i] {
				wrong++
			}
		}
		trainErr = float64(wrong) / float64(l)

		logger.Debug().
			Int("round", round).
			Float64("weak_error", e).
			Float64("alpha", alpha).
			Float64("train_error", trainErr).
			Msg("boosting round")

		if e == 0 || trainErr < s.accuracyThreshold {
			break
		}

		var sum float64
		for i := range weights {
			if pred[i] != int(prob.Y[i]) {
				weights[i] *= math.Exp(alpha)
			}
			sum += weights[i]
		}
		for i := range weights {
			weights[i] /= sum
		}
	}

	trainingError.Set(trainErr)
	logger.Info().
		Str("model", model.ID.String()).
		Int("learners", len(model.Learners)).
		Int("classes", nrClass).
		Float64("train_error", trainErr).
		Msg("training finished")

	return model, nil
}
