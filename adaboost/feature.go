package adaboost

// Feature contains a 1-based index and a value
type Feature interface {
	GetIndex() int
	GetValue() float64
}

// FeatureNode implements a Feature
type FeatureNode struct {
	index int
	value float64
}

// NewFeatureNode returns a new FeatureNode
func NewFeatureNode(index int, value float64) *FeatureNode {
	return &FeatureNode{
		index: index,
		value: value,
	}
}

// GetIndex does just that
func (f *FeatureNode) GetIndex() int {
	return f.index
}

// GetValue does just that
func (f *FeatureNode) GetValue() float64 {
	return f.value
}

// featureValue returns the value stored at index in the sorted row x, or 0
// when the row does not carry that index.
func featureValue(x []Feature, index int) float64 {
	lo, hi := 0, len(x)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if x[mid].GetIndex() < index {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(x) && x[lo].GetIndex() == index {
		return x[lo].GetValue()
	}
	return 0
}

// sparseDot ignores indices beyond len(s).
func sparseDot(s []float64, x []Feature) float64 {
	var ret float64
	for _, feature := range x {
		if idx := feature.GetIndex(); idx <= len(s) {
			ret += s[idx-1] * feature.GetValue()
		}
	}
	return ret
}

func sparseAxpy(a float64, x []Feature, y []float64) {
	for _, feature := range x {
		y[feature.GetIndex()-1] += a * feature.GetValue()
	}
}
