package adaboost

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xh3b4sd/tracer"
)

// Problem is a labelled training set. L is the number of instances and N the
// number of features; feature indices run from 1 to N.
type Problem struct {
	L int
	N int
	X [][]Feature
	Y []float64
}

// NewProblem constructs a Problem
func NewProblem(l int, n int, y []float64, x [][]Feature) *Problem {
	return &Problem{
		L: l,
		N: n,
		X: x,
		Y: y,
	}
}

func (prob *Problem) validate() error {
	if prob == nil || prob.L == 0 {
		return fmt.Errorf("empty problem: %w", ErrInvalidProblem)
	}

	if len(prob.X) != prob.L || len(prob.Y) != prob.L {
		return fmt.Errorf("problem has %d instances but %d rows and %d labels: %w", prob.L, len(prob.X), len(prob.Y), ErrInvalidProblem)
	}

	for i, nodes := range prob.X {
		if y := prob.Y[i]; y != math.Trunc(y) || math.IsInf(y, 0) {
			return fmt.Errorf("instance %d has non-integral label %g: %w", i, y, ErrInvalidProblem)
		}

		indexBefore := 0
		for _, n := range nodes {
			if n.GetIndex() <= indexBefore {
				return fmt.Errorf("instance %d: feature nodes must be sorted by index in ascending order: %w", i, ErrInvalidProblem)
			}
			if n.GetIndex() > prob.N {
				return fmt.Errorf("instance %d: feature index %d exceeds %d: %w", i, n.GetIndex(), prob.N, ErrInvalidProblem)
			}
			if v := n.GetValue(); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("instance %d: feature %d has non-finite value %g: %w", i, n.GetIndex(), v, ErrInvalidProblem)
			}
			indexBefore = n.GetIndex()
		}
	}

	return nil
}

// subset returns the problem restricted to the given instances.
func (prob *Problem) subset(idx []int) *Problem {
	sub := NewProblem(len(idx), prob.N, make([]float64, len(idx)), make([][]Feature, len(idx)))
	for k, i := range idx {
		sub.X[k] = prob.X[i]
		sub.Y[k] = prob.Y[i]
	}
	return sub
}

// ReadProblem parses data in the libsvm format, one instance per line:
//
//	<label> <index>:<value> <index>:<value> ...
//
// Feature values must be finite. Empty lines are skipped.
func ReadProblem(r io.Reader) (*Problem, error) {
	var vy []float64
	var vx [][]Feature
	maxIndex := 0
	lineNr := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNr++

		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		y, x, err := parseRow(tokens)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNr, err)
		}
		if m := len(x); m > 0 && x[m-1].GetIndex() > maxIndex {
			maxIndex = x[m-1].GetIndex()
		}

		vy = append(vy, y)
		vx = append(vx, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, tracer.Mask(err)
	}

	return NewProblem(len(vy), maxIndex, vy, vx), nil
}

// parseRow parses a label followed by index:value tokens.
func parseRow(tokens []string) (float64, []Feature, error) {
	y, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid label %q: %w", tokens[0], ErrInvalidProblem)
	}

	x, err := ParseFeatures(tokens[1:])
	if err != nil {
		return 0, nil, err
	}

	return y, x, nil
}

// ParseFeatures parses index:value tokens into a sorted feature row.
func ParseFeatures(tokens []string) ([]Feature, error) {
	x := make([]Feature, 0, len(tokens))
	indexBefore := 0

	for _, t := range tokens {
		keyVal := strings.SplitN(t, ":", 2)
		if len(keyVal) != 2 {
			return nil, fmt.Errorf("token %q is not index:value: %w", t, ErrInvalidProblem)
		}

		key, err := strconv.ParseInt(keyVal[0], 10, 32)
		if err != nil || key <= 0 {
			return nil, fmt.Errorf("invalid feature index %q: %w", keyVal[0], ErrInvalidProblem)
		}
		if int(key) <= indexBefore {
			return nil, fmt.Errorf("feature index %d is not ascending: %w", key, ErrInvalidProblem)
		}

		val, err := strconv.ParseFloat(keyVal[1], 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("invalid feature value %q: %w", keyVal[1], ErrInvalidProblem)
		}

		x = append(x, NewFeatureNode(int(key), val))
		indexBefore = int(key)
	}

	return x, nil
}
