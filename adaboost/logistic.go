package adaboost

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LogisticKind names logistic regression weak learners in model files.
const LogisticKind = "logistic"

func init() {
	RegisterWeakModel(LogisticKind, decodeLogistic)
}

// LogisticModel holds one-vs-rest weight vectors. Each vector has NumFeatures
// weights followed by a bias. Two-class models keep a single vector that
// scores Labels[0] against Labels[1].
type LogisticModel struct {
	Labels      []int
	NumFeatures int
	W           [][]float64
}

// Kind implements WeakModel
func (m *LogisticModel) Kind() string {
	return LogisticKind
}

// MarshalText writes nr_class, the labels, nr_feature and the weights on one
// line.
func (m *LogisticModel) MarshalText() ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d", len(m.Labels))
	for _, l := range m.Labels {
		fmt.Fprintf(&sb, " %d", l)
	}
	fmt.Fprintf(&sb, " %d %d", m.NumFeatures, len(m.W))
	for _, w := range m.W {
		for _, v := range w {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(v, 'g', 17, 64))
		}
	}

	return []byte(sb.String()), nil
}

func (m *LogisticModel) decision(w []float64, x []Feature) float64 {
	return sparseDot(w[:m.NumFeatures], x) + w[m.NumFeatures]
}

func (m *LogisticModel) predict(x []Feature) int {
	if len(m.W) == 1 {
		if m.decision(m.W[0], x) > 0 {
			return m.Labels[0]
		}
		return m.Labels[1]
	}

	best, bestVal := 0, math.Inf(-1)
	for k, w := range m.W {
		if v := m.decision(w, x); v > bestVal {
			best, bestVal = k, v
		}
	}
	return m.Labels[best]
}

func decodeLogistic(text []byte) (WeakModel, error) {
	fields := strings.Fields(string(text))
	next := func() (string, error) {
		if len(fields) == 0 {
			return "", fmt.Errorf("logistic model truncated: %w", ErrModelFormat)
		}
		f := fields[0]
		fields = fields[1:]
		return f, nil
	}
	nextInt := func() (int, error) {
		f, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("logistic model field %q: %w", f, ErrModelFormat)
		}
		return v, nil
	}

	nrClass, err := nextInt()
	if err != nil {
		return nil, err
	}
	if nrClass < 2 {
		return nil, fmt.Errorf("logistic model with %d classes: %w", nrClass, ErrModelFormat)
	}

	m := &LogisticModel{Labels: make([]int, nrClass)}
	for k := range m.Labels {
		if m.Labels[k], err = nextInt(); err != nil {
			return nil, err
		}
	}
	if m.NumFeatures, err = nextInt(); err != nil {
		return nil, err
	}
	nrW, err := nextInt()
	if err != nil {
		return nil, err
	}
	if m.NumFeatures < 0 || (nrW != 1 && nrW != nrClass) || (nrW == 1 && nrClass != 2) {
		return nil, fmt.Errorf("logistic model shape %d x %d: %w", nrW, m.NumFeatures, ErrModelFormat)
	}

	m.W = make([][]float64, nrW)
	for k := range m.W {
		m.W[k] = make([]float64, m.NumFeatures+1)
		for j := range m.W[k] {
			f, err := next()
			if err != nil {
				return nil, err
			}
			if m.W[k][j], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, fmt.Errorf("logistic weight %q: %w", f, ErrModelFormat)
			}
		}
	}
	if len(fields) != 0 {
		return nil, fmt.Errorf("logistic model has %d trailing fields: %w", len(fields), ErrModelFormat)
	}

	return m, nil
}

// LogisticTraining trains L2-regularized logistic regression on weighted
// instances, one-vs-rest for more than two classes. Instance i is charged a
// cost of C * weight[i] * L so that uniform weights reproduce plain C.
type LogisticTraining struct {
	C        float64
	Eps      float64 // Stopping criteria
	MaxIters int
}

// NewLogisticTraining validates and returns a LogisticTraining
func NewLogisticTraining(c float64, eps float64, maxIters int) (*LogisticTraining, error) {
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, fmt.Errorf("C %g must be positive: %w", c, ErrInvalidParameter)
	}
	if !(eps > 0) {
		return nil, fmt.Errorf("eps %g must be positive: %w", eps, ErrInvalidParameter)
	}
	if maxIters <= 0 {
		return nil, fmt.Errorf("max iterations %d must be positive: %w", maxIters, ErrInvalidParameter)
	}

	return &LogisticTraining{C: c, Eps: eps, MaxIters: maxIters}, nil
}

// Train implements WeakTrainer
func (lt *LogisticTraining) Train(prob *Problem, weights []float64) (WeakModel, error) {
	if lt == nil {
		return nil, ErrNilAlgorithm
	}
	if err := checkWeights(prob, weights); err != nil {
		return nil, err
	}

	groups := groupClasses(prob)
	nrClass := groups.nrClass()
	if nrClass < 2 {
		return nil, fmt.Errorf("logistic regression needs two classes, got %d: %w", nrClass, ErrInvalidProblem)
	}

	// The bias is an extra feature that is always 1.
	n := prob.N + 1
	x := make([][]Feature, prob.L)
	for i, row := range prob.X {
		x[i] = make([]Feature, len(row), len(row)+1)
		copy(x[i], row)
		x[i] = append(x[i], NewFeatureNode(n, 1))
	}

	c := make([]float64, prob.L)
	for i, w := range weights {
		c[i] = lt.C * w * float64(prob.L)
	}

	nrW := nrClass
	if nrClass == 2 {
		nrW = 1
	}

	m := &LogisticModel{
		Labels:      append([]int(nil), groups.label...),
		NumFeatures: prob.N,
		W:           make([][]float64, nrW),
	}

	for k := 0; k < nrW; k++ {
		y := make([]float64, prob.L)
		pos := 0
		for i := range y {
			if groups.index[i] == k {
				y[i] = 1
				pos++
			} else {
				y[i] = -1
			}
		}

		sub := NewProblem(prob.L, n, y, x)
		neg := prob.L - pos
		tol := lt.Eps * math.Max(math.Min(float64(pos), float64(neg)), 1) / float64(prob.L)

		m.W[k] = make([]float64, n)
		newTron(newL2RLRFunc(sub, c), tol, lt.MaxIters, 0.1).minimize(m.W[k])
	}

	return m, nil
}

// LogisticPrediction predicts with LogisticModel weak learners.
type LogisticPrediction struct{}

// NewLogisticPrediction returns a LogisticPrediction
func NewLogisticPrediction() *LogisticPrediction {
	return &LogisticPrediction{}
}

// Predict implements WeakPredictor
func (lp *LogisticPrediction) Predict(model WeakModel, x []Feature) (int, error) {
	m, ok := model.(*LogisticModel)
	if !ok {
		return 0, fmt.Errorf("logistic prediction cannot use %T: %w", model, ErrInvalidParameter)
	}
	return m.predict(x), nil
}

// l2rLRFunc is the primal L2-regularized logistic loss with per-instance
// costs.
type l2rLRFunc struct {
	c    []float64
	z    []float64
	d    []float64
	prob *Problem
}

func newL2RLRFunc(prob *Problem, c []float64) *l2rLRFunc {
	return &l2rLRFunc{
		prob: prob,
		c:    c,
		z:    make([]float64, prob.L),
		d:    make([]float64, prob.L),
	}
}

func (fn *l2rLRFunc) fun(w []float64) float64 {
	var f float64
	y := fn.prob.Y

	fn.xv(w, fn.z)

	for _, v := range w {
		f += v * v
	}
	f /= 2.0

	for i := 0; i < fn.prob.L; i++ {
		yz := y[i] * fn.z[i]
		if yz >= 0 {
			f += fn.c[i] * math.Log(1+math.Exp(-yz))
		} else {
			f += fn.c[i] * (-yz + math.Log(1+math.Exp(yz)))
		}
	}

	return f
}

func (fn *l2rLRFunc) grad(w []float64, g []float64) {
	y := fn.prob.Y

	for i := 0; i < fn.prob.L; i++ {
		fn.z[i] = 1 / (1 + math.Exp(-y[i]*fn.z[i]))
		fn.d[i] = fn.z[i] * (1 - fn.z[i])
		fn.z[i] = fn.c[i] * (fn.z[i] - 1) * y[i]
	}

	fn.xTv(fn.z, g)

	for i := range g {
		g[i] += w[i]
	}
}

func (fn *l2rLRFunc) xv(v []float64, xv []float64) {
	for i, xi := range fn.prob.X {
		xv[i] = sparseDot(v, xi)
	}
}

func (fn *l2rLRFunc) xTv(v []float64, xTv []float64) {
	for i := range xTv {
		xTv[i] = 0
	}

	for i, xi := range fn.prob.X {
		sparseAxpy(v[i], xi, xTv)
	}
}

func (fn *l2rLRFunc) hv(s []float64, hs []float64) {
	for i := range hs {
		hs[i] = 0
	}

	for i, xi := range fn.prob.X {
		xTs := fn.c[i] * fn.d[i] * sparseDot(s, xi)
		sparseAxpy(xTs, xi, hs)
	}

	for i := range hs {
		hs[i] += s[i]
	}
}

func (fn *l2rLRFunc) nrVariable() int {
	return fn.prob.N
}
