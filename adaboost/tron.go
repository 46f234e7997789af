package adaboost

import (
	"math"

	"github.com/tevino/abool"
)

// objective is a twice differentiable function minimised by tron.
type objective interface {
	fun(w []float64) float64

	grad(w []float64, g []float64)

	hv(s []float64, hs []float64)

	nrVariable() int
}

// tron is the trust region Newton method
type tron struct {
	funObj  objective
	eps     float64
	maxIter int
	epsCg   float64
}

func newTron(funObj objective, eps float64, maxIter int, epsCg float64) *tron {
	return &tron{
		funObj:  funObj,
		eps:     eps,
		maxIter: maxIter,
		epsCg:   epsCg,
	}
}

func (tr *tron) minimize(w []float64) {
	// Parameters for updating the iterates.
	const eta0, eta1, eta2 = 1e-4, 0.25, 0.75

	// Parameters for updating the trust region size delta.
	const sigma1, sigma2, sigma3 = 0.25, 0.5, 4.0

	n := tr.funObj.nrVariable()
	s, r, g := make([]float64, n), make([]float64, n), make([]float64, n)

	w0 := make([]float64, n)
	tr.funObj.fun(w0)
	tr.funObj.grad(w0, g)
	gnorm0 := euclideanNorm(g)

	f := tr.funObj.fun(w)
	tr.funObj.grad(w, g)
	delta := euclideanNorm(g)
	gnorm := delta

	if gnorm <= tr.eps*gnorm0 {
		return
	}

	wNew := make([]float64, n)
	reachBoundary := abool.New()

	for iter := 1; iter <= tr.maxIter; {
		reachBoundary.UnSet()
		cgIter := tr.trcg(delta, g, s, r, reachBoundary)

		copy(wNew, w)
		daxpy(1, s, wNew)

		gs := dot(g, s)
		prered := -0.5 * (gs - dot(s, r))
		fnew := tr.funObj.fun(wNew)

		// Compute the actual reduction.
		actred := f - fnew

		// On the first iteration, adjust the initial step bound.
		snorm := euclideanNorm(s)
		if iter == 1 {
			delta = math.Min(delta, snorm)
		}

		// Compute prediction alpha*snorm of the step.
		var alpha float64
		if fnew-f-gs <= 0 {
			alpha = sigma3
		} else {
			alpha = math.Max(sigma1, -0.5*(gs/(fnew-f-gs)))
		}

		// Update the trust region bound according to the ratio of actual to
		// predicted reduction.
		switch {
		case actred < eta0*prered:
			delta = math.Min(math.Max(alpha, sigma1)*snorm, sigma2*delta)
		case actred < eta1*prered:
			delta = math.Max(sigma1*delta, math.Min(alpha*snorm, sigma2*delta))
		case actred < eta2*prered:
			delta = math.Max(sigma1*delta, math.Min(alpha*snorm, sigma3*delta))
		case reachBoundary.IsSet():
			delta = sigma3 * delta
		default:
			delta = math.Max(delta, math.Min(alpha*snorm, sigma3*delta))
		}

		logger.Trace().
			Int("iter", iter).
			Float64("act", actred).
			Float64("pre", prered).
			Float64("delta", delta).
			Float64("f", f).
			Float64("gnorm", gnorm).
			Int("cg", cgIter).
			Msg("tron")

		if actred > eta0*prered {
			iter++
			copy(w, wNew)
			f = fnew
			tr.funObj.grad(w, g)
			gnorm = euclideanNorm(g)
			if gnorm <= tr.eps*gnorm0 {
				break
			}
		}

		if f < -1.0e+32 {
			logger.Warn().Msg("tron: f < -1.0e+32")
			break
		}

		if prered <= 0 {
			logger.Debug().Msg("tron: prered <= 0")
			break
		}

		if math.Abs(actred) <= 1.0e-12*math.Abs(f) && math.Abs(prered) <= 1.0e-12*math.Abs(f) {
			logger.Debug().Msg("tron: actred and prered too small")
			break
		}
	}
}

// trcg solves the trust region subproblem with conjugate gradients.
func (tr *tron) trcg(delta float64, g []float64, s []float64, r []float64, reachBoundary *abool.AtomicBool) int {
	n := tr.funObj.nrVariable()

	d := make([]float64, n)
	hd := make([]float64, n)

	for i := 0; i < n; i++ {
		s[i] = 0
		r[i] = -g[i]
		d[i] = r[i]
	}

	cgTol := tr.epsCg * euclideanNorm(g)

	cgIter := 0
	rTr := dot(r, r)

	for euclideanNorm(r) > cgTol {
		cgIter++

		tr.funObj.hv(d, hd)

		alpha := rTr / dot(d, hd)
		daxpy(alpha, d, s)

		if euclideanNorm(s) > delta {
			reachBoundary.Set()
			daxpy(-alpha, d, s)

			std := dot(s, d)
			sts := dot(s, s)
			dtd := dot(d, d)
			dsq := delta * delta
			rad := math.Sqrt(std*std + dtd*(dsq-sts))

			if std >= 0 {
				alpha = (dsq - sts) / (std + rad)
			} else {
				alpha = (rad - std) / dtd
			}

			daxpy(alpha, d, s)
			daxpy(-alpha, hd, r)
			break
		}

		daxpy(-alpha, hd, r)
		rNewTrNew := dot(r, r)
		beta := rNewTrNew / rTr
		scale(beta, d)
		daxpy(1, r, d)
		rTr = rNewTrNew
	}

	return cgIter
}

// constant times a vector plus a vector
func daxpy(constant float64, vector1 []float64, vector2 []float64) {
	if constant == 0 {
		return
	}

	for i := range vector1 {
		vector2[i] += constant * vector1[i]
	}
}

func dot(vector1 []float64, vector2 []float64) float64 {
	var product float64
	for i := range vector1 {
		product += vector1[i] * vector2[i]
	}
	return product
}

// euclideanNorm factors out the largest magnitude while summing squares,
// which avoids overflow for large components.
func euclideanNorm(vector []float64) float64 {
	switch len(vector) {
	case 0:
		return 0
	case 1:
		return math.Abs(vector[0])
	}

	var scale float64
	sum := 1.0
	for _, v := range vector {
		if v == 0 {
			continue
		}
		abs := math.Abs(v)
		if scale < abs {
			t := scale / abs
			sum = 1 + sum*(t*t)
			scale = abs
		} else {
			t := abs / scale
			sum += t * t
		}
	}

	return scale * math.Sqrt(sum)
}

func scale(constant float64, vector []float64) {
	if constant == 1.0 {
		return
	}

	for i := range vector {
		vector[i] *= constant
	}
}
