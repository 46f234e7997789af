package adaboost

import (
	"fmt"
	"math"
)

const (
	defaultAccuracyThreshold = 0.0
	defaultMaxIterations     = 100
	defaultLearningRate      = 1.0
)

// parameterState is the authoritative copy of the AdaBoost parameters. It is
// only reachable through the Context that owns it.
type parameterState struct {
	accuracyThreshold float64
	maxIterations     int
	learningRate      float64
	weakTraining      WeakTrainer
	weakPrediction    WeakPredictor
}

func newParameterState() *parameterState {
	return &parameterState{
		accuracyThreshold: defaultAccuracyThreshold,
		maxIterations:     defaultMaxIterations,
		learningRate:      defaultLearningRate,
		weakTraining:      NewStumpTraining(),
		weakPrediction:    NewStumpPrediction(),
	}
}

func (s *parameterState) setAccuracyThreshold(v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return fmt.Errorf("accuracy threshold %g not in [0, 1): %w", v, ErrInvalidParameter)
	}
	s.accuracyThreshold = v
	return nil
}

func (s *parameterState) setMaxIterations(v int) error {
	if v <= 0 {
		return fmt.Errorf("max iterations %d must be positive: %w", v, ErrInvalidParameter)
	}
	s.maxIterations = v
	return nil
}

func (s *parameterState) setLearningRate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("learning rate %g must be positive and finite: %w", v, ErrInvalidParameter)
	}
	s.learningRate = v
	return nil
}

// Parameter contains the AdaBoost training and prediction settings. The
// values are held by the Context the Parameter was created from; a Parameter
// only carries the handle to them.
type Parameter struct {
	ctx    *Context
	handle Handle
}

// NewParameter allocates parameters with default values in ctx.
func NewParameter(ctx *Context) (*Parameter, error) {
	h, err := ctx.register(newParameterState())
	if err != nil {
		return nil, err
	}

	return &Parameter{ctx: ctx, handle: h}, nil
}

// Handle returns the handle of the underlying parameter state.
func (p *Parameter) Handle() Handle {
	return p.handle
}

func (p *Parameter) update(fn func(s *parameterState) error) error {
	return p.ctx.with(p.handle, func(obj interface{}) error {
		s, ok := obj.(*parameterState)
		if !ok {
			return fmt.Errorf("handle %d is not a parameter: %w", p.handle, ErrInvalidHandle)
		}
		return fn(s)
	})
}

// read panics when the handle is no longer valid.
func (p *Parameter) read(fn func(s *parameterState)) {
	err := p.update(func(s *parameterState) error {
		fn(s)
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// snapshot copies the current values so that long running computations do not
// hold the context lock.
func (p *Parameter) snapshot() (parameterState, error) {
	var s parameterState
	err := p.update(func(cur *parameterState) error {
		s = *cur
		return nil
	})
	return s, err
}

// SetWeakLearnerTraining sets the algorithm used to train each weak learner.
func (p *Parameter) SetWeakLearnerTraining(t WeakTrainer) error {
	if t == nil {
		return ErrNilAlgorithm
	}
	return p.update(func(s *parameterState) error {
		s.weakTraining = t
		return nil
	})
}

// WeakLearnerTraining returns the weak learner training algorithm.
func (p *Parameter) WeakLearnerTraining() WeakTrainer {
	var t WeakTrainer
	p.read(func(s *parameterState) { t = s.weakTraining })
	return t
}

// SetWeakLearnerPrediction sets the algorithm used to predict with a weak
// learner model.
func (p *Parameter) SetWeakLearnerPrediction(pr WeakPredictor) error {
	if pr == nil {
		return ErrNilAlgorithm
	}
	return p.update(func(s *parameterState) error {
		s.weakPrediction = pr
		return nil
	})
}

// WeakLearnerPrediction returns the weak learner prediction algorithm.
func (p *Parameter) WeakLearnerPrediction() WeakPredictor {
	var pr WeakPredictor
	p.read(func(s *parameterState) { pr = s.weakPrediction })
	return pr
}

// SetAccuracyThreshold sets the training error below which boosting stops.
func (p *Parameter) SetAccuracyThreshold(v float64) error {
	return p.update(func(s *parameterState) error { return s.setAccuracyThreshold(v) })
}

// AccuracyThreshold does just that
func (p *Parameter) AccuracyThreshold() float64 {
	var v float64
	p.read(func(s *parameterState) { v = s.accuracyThreshold })
	return v
}

// SetMaxIterations sets the maximal number of boosting rounds.
func (p *Parameter) SetMaxIterations(v int) error {
	return p.update(func(s *parameterState) error { return s.setMaxIterations(v) })
}

// MaxIterations does just that
func (p *Parameter) MaxIterations() int {
	var v int
	p.read(func(s *parameterState) { v = s.maxIterations })
	return v
}

// SetLearningRate sets the multiplier applied to every learner's weight.
func (p *Parameter) SetLearningRate(v float64) error {
	return p.update(func(s *parameterState) error { return s.setLearningRate(v) })
}

// LearningRate does just that
func (p *Parameter) LearningRate() float64 {
	var v float64
	p.read(func(s *parameterState) { v = s.learningRate })
	return v
}
