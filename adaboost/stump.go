package adaboost

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// StumpKind names decision stumps in model files.
const StumpKind = "stump"

func init() {
	RegisterWeakModel(StumpKind, decodeStump)
}

// StumpModel is a one-level decision tree: instances whose Feature value is
// at most Threshold get the Left label, the others the Right label.
type StumpModel struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
}

// Kind implements WeakModel
func (m *StumpModel) Kind() string {
	return StumpKind
}

// MarshalText implements encoding.TextMarshaler
func (m *StumpModel) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d %.17g %d %d", m.Feature, m.Threshold, m.Left, m.Right)), nil
}

func (m *StumpModel) predict(x []Feature) int {
	if featureValue(x, m.Feature) <= m.Threshold {
		return m.Left
	}
	return m.Right
}

func decodeStump(text []byte) (WeakModel, error) {
	fields := strings.Fields(string(text))
	if len(fields) != 4 {
		return nil, fmt.Errorf("stump needs 4 fields, got %d: %w", len(fields), ErrModelFormat)
	}

	var m StumpModel
	var err error
	if m.Feature, err = strconv.Atoi(fields[0]); err != nil || m.Feature <= 0 {
		return nil, fmt.Errorf("stump feature %q: %w", fields[0], ErrModelFormat)
	}
	if m.Threshold, err = strconv.ParseFloat(fields[1], 64); err != nil || math.IsNaN(m.Threshold) {
		return nil, fmt.Errorf("stump threshold %q: %w", fields[1], ErrModelFormat)
	}
	if m.Left, err = strconv.Atoi(fields[2]); err != nil {
		return nil, fmt.Errorf("stump left label %q: %w", fields[2], ErrModelFormat)
	}
	if m.Right, err = strconv.Atoi(fields[3]); err != nil {
		return nil, fmt.Errorf("stump right label %q: %w", fields[3], ErrModelFormat)
	}

	return &m, nil
}

// StumpTraining trains decision stumps that minimise the weighted
// classification error.
type StumpTraining struct{}

// NewStumpTraining returns the default weak learner training algorithm.
func NewStumpTraining() *StumpTraining {
	return &StumpTraining{}
}

// Train implements WeakTrainer
func (st *StumpTraining) Train(prob *Problem, weights []float64) (WeakModel, error) {
	if err := checkWeights(prob, weights); err != nil {
		return nil, err
	}

	groups := groupClasses(prob)
	nrClass := groups.nrClass()

	total := make([]float64, nrClass)
	var sum float64
	for i, w := range weights {
		total[groups.index[i]] += w
		sum += w
	}

	// The constant stump predicts the heaviest class everywhere.
	k := argmax(total)
	best := &StumpModel{Feature: 1, Threshold: math.Inf(1), Left: groups.label[k], Right: groups.label[k]}
	bestErr := sum - total[k]

	values := make([]float64, prob.L)
	order := make([]int, prob.L)
	left := make([]float64, nrClass)
	right := make([]float64, nrClass)

	for j := 1; j <= prob.N; j++ {
		for i := range order {
			order[i] = i
			values[i] = featureValue(prob.X[i], j)
		}
		sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

		for c := range left {
			left[c] = 0
		}

		for p := 0; p < prob.L-1; p++ {
			i := order[p]
			left[groups.index[i]] += weights[i]

			lo, hi := values[i], values[order[p+1]]
			if lo == hi {
				continue
			}

			for c := range right {
				right[c] = total[c] - left[c]
			}
			lk, rk := argmax(left), argmax(right)

			if e := sum - left[lk] - right[rk]; e < bestErr {
				bestErr = e
				best = &StumpModel{
					Feature:   j,
					Threshold: lo + (hi-lo)/2,
					Left:      groups.label[lk],
					Right:     groups.label[rk],
				}
			}
		}
	}

	return best, nil
}

// StumpPrediction predicts with StumpModel weak learners.
type StumpPrediction struct{}

// NewStumpPrediction returns the default weak learner prediction algorithm.
func NewStumpPrediction() *StumpPrediction {
	return &StumpPrediction{}
}

// Predict implements WeakPredictor
func (sp *StumpPrediction) Predict(model WeakModel, x []Feature) (int, error) {
	m, ok := model.(*StumpModel)
	if !ok {
		return 0, fmt.Errorf("stump prediction cannot use %T: %w", model, ErrInvalidParameter)
	}
	return m.predict(x), nil
}

// argmax returns the first index of the largest value.
func argmax(values []float64) int {
	var k int
	for i := 1; i < len(values); i++ {
		if values[i] > values[k] {
			k = i
		}
	}
	return k
}
