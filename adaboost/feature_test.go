package adaboost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorHappy(t *testing.T) {
	fn := NewFeatureNode(25, 27.39)
	assert.Equal(t, 25, fn.GetIndex())
	assert.Equal(t, 27.39, fn.GetValue())

	fn = NewFeatureNode(1, -0.22222)
	assert.Equal(t, 1, fn.GetIndex())
	assert.Equal(t, -0.22222, fn.GetValue())
}

func TestFeatureValue(t *testing.T) {
	x := []Feature{NewFeatureNode(1, 0.5), NewFeatureNode(3, -2), NewFeatureNode(7, 4)}

	assert.Equal(t, 0.5, featureValue(x, 1))
	assert.Equal(t, 0.0, featureValue(x, 2))
	assert.Equal(t, -2.0, featureValue(x, 3))
	assert.Equal(t, 4.0, featureValue(x, 7))
	assert.Equal(t, 0.0, featureValue(x, 8))
	assert.Equal(t, 0.0, featureValue(nil, 1))
}

func TestSparseDotIgnoresUnknownIndices(t *testing.T) {
	x := []Feature{NewFeatureNode(1, 2), NewFeatureNode(2, 3), NewFeatureNode(5, 100)}
	assert.Equal(t, 2*1.0+3*2.0, sparseDot([]float64{1, 2}, x))

	y := make([]float64, 5)
	sparseAxpy(2, x, y)
	assert.Equal(t, []float64{4, 6, 0, 0, 200}, y)
}
