package adaboost

import (
	"encoding"
	"fmt"
	"sync"
)

// WeakModel is a trained weak learner. Its text form must fit on one line so
// that it can be stored in a model file; decoders are looked up by Kind.
type WeakModel interface {
	Kind() string
	encoding.TextMarshaler
}

// WeakTrainer trains a weak learner on a problem whose instances carry the
// given weights. The weights are non-negative and sum to one.
type WeakTrainer interface {
	Train(prob *Problem, weights []float64) (WeakModel, error)
}

// WeakPredictor predicts the class label of x with a weak learner model.
type WeakPredictor interface {
	Predict(model WeakModel, x []Feature) (int, error)
}

// WeakModelDecoder rebuilds a weak model from its text form.
type WeakModelDecoder func(text []byte) (WeakModel, error)

var (
	decodersMu sync.RWMutex
	decoders   = map[string]WeakModelDecoder{}
)

// RegisterWeakModel makes a weak model kind loadable from model files. It
// panics if kind is registered twice.
func RegisterWeakModel(kind string, decode WeakModelDecoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()

	if _, dup := decoders[kind]; dup {
		panic("adaboost: weak model kind registered twice: " + kind)
	}
	decoders[kind] = decode
}

func decodeWeakModel(kind string, text []byte) (WeakModel, error) {
	decodersMu.RLock()
	decode, ok := decoders[kind]
	decodersMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown weak model kind %q: %w", kind, ErrModelFormat)
	}

	return decode(text)
}

func checkWeights(prob *Problem, weights []float64) error {
	if err := prob.validate(); err != nil {
		return err
	}
	if len(weights) != prob.L {
		return fmt.Errorf("%d weights for %d instances: %w", len(weights), prob.L, ErrInvalidParameter)
	}
	return nil
}
