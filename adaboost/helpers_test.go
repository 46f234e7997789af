package adaboost

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	SetLogger(zerolog.Nop())
}

// lineProblem puts one instance per value on feature 1.
func lineProblem(values []float64, labels []float64) *Problem {
	x := make([][]Feature, len(values))
	for i, v := range values {
		x[i] = []Feature{NewFeatureNode(1, v)}
	}
	return NewProblem(len(values), 1, labels, x)
}

// threeClassProblem has three classes in consecutive runs along feature 1.
func threeClassProblem() *Problem {
	return lineProblem(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		[]float64{0, 0, 0, 1, 1, 1, 2, 2, 2},
	)
}

// separableProblem has labels -1 for values 1..10 and +1 for 21..30.
func separableProblem() *Problem {
	var values, labels []float64
	for v := 1; v <= 10; v++ {
		values = append(values, float64(v), float64(v+20))
		labels = append(labels, -1, 1)
	}
	return lineProblem(values, labels)
}

func newTestParameter(t *testing.T) (*Context, *Parameter) {
	t.Helper()

	ctx := NewContext()
	t.Cleanup(ctx.Dispose)

	param, err := NewParameter(ctx)
	require.NoError(t, err)

	return ctx, param
}
