package adaboost

import (
	"fmt"
	"math/rand"
)

// CrossValidation splits prob into nrFold folds and trains on all but one fold
// to predict the held out one. Folds are stratified: the instances of every
// class are shuffled with seed and dealt out evenly across the folds. It
// returns the out-of-fold prediction of every instance. A class with fewer
// instances than needed to appear in every training part can still leave a
// fold with a single training class, which fails with ErrInvalidProblem.
func CrossValidation(prob *Problem, param *Parameter, nrFold int, seed int64) ([]float64, error) {
	if nrFold < 2 {
		return nil, fmt.Errorf("n-fold cross validation: n must be >= 2, got %d: %w", nrFold, ErrInvalidParameter)
	}
	if err := prob.validate(); err != nil {
		return nil, err
	}

	s, err := param.snapshot()
	if err != nil {
		return nil, err
	}

	l := prob.L
	if nrFold > l {
		nrFold = l
		logger.Warn().Int("folds", nrFold).Msg("# folds > # data, using leave-one-out cross validation")
	}

	perm, foldStart := stratifiedFolds(groupClasses(prob), nrFold, rand.New(rand.NewSource(seed)))
	target := make([]float64, l)

	for i := 0; i < nrFold; i++ {
		begin := foldStart[i]
		end := foldStart[i+1]
		if begin == end {
			continue
		}

		trainIdx := make([]int, 0, l-(end-begin))
		trainIdx = append(trainIdx, perm[:begin]...)
		trainIdx = append(trainIdx, perm[end:]...)

		subModel, err := train(prob.subset(trainIdx), &s)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i, err)
		}

		scores := make([]float64, subModel.NumClass())
		for _, j := range perm[begin:end] {
			label, err := predictScores(subModel, s.weakPrediction, prob.X[j], scores)
			if err != nil {
				return nil, fmt.Errorf("fold %d: %w", i, err)
			}
			target[j] = float64(label)
		}
	}

	return target, nil
}

// stratifiedFolds returns a permutation of the instances in which fold i
// occupies perm[foldStart[i]:foldStart[i+1]].
func stratifiedFolds(g *classGroups, nrFold int, rng *rand.Rand) ([]int, []int) {
	nrClass := g.nrClass()

	// Instances of class c, shuffled.
	members := make([][]int, nrClass)
	for i, c := range g.index {
		members[c] = append(members[c], i)
	}
	for _, m := range members {
		rng.Shuffle(len(m), func(a, b int) { m[a], m[b] = m[b], m[a] })
	}

	perm := make([]int, 0, len(g.index))
	foldStart := make([]int, nrFold+1)
	for i := 0; i < nrFold; i++ {
		for c := 0; c < nrClass; c++ {
			count := g.count[c]
			perm = append(perm, members[c][i*count/nrFold:(i+1)*count/nrFold]...)
		}
		foldStart[i+1] = len(perm)
	}

	return perm, foldStart
}

// Accuracy returns the fraction of predictions equal to the labels.
func Accuracy(labels []float64, predictions []float64) float64 {
	if len(labels) == 0 {
		return 0
	}

	correct := 0
	for i, y := range labels {
		if predictions[i] == y {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}
