package lanegeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolynomialValue(t *testing.T) {
	poly := NewPolynomial(10, 1, 2, 3, 4)
	assert.InDelta(t, 1.0, poly.Value(10), 1e-12)
	assert.InDelta(t, 49.0, poly.Value(12), 1e-12)
	assert.InDelta(t, 62.0, poly.Derivative(12), 1e-12)
	assert.InDelta(t, 2.0, poly.Derivative(10), 1e-12)

	constant := ConstantPolynomial(5, 3.5)
	for _, s := range []float64{-10, 0, 5, 100} {
		assert.Equal(t, 3.5, constant.Value(s))
		assert.Equal(t, 0.0, constant.Derivative(s))
	}
}

func TestPolynomialRebase(t *testing.T) {
	poly := NewPolynomial(2, 3.0, 0.1, -0.02, 0.001)
	rebased := poly.Rebase(7, 0)
	assert.Equal(t, 0.0, rebased.S)
	for _, x := range []float64{0, 0.5, 1.5, 4, 10} {
		assert.InDelta(t, poly.Value(7+x), rebased.Value(x), 1e-9, "x=%f", x)
		assert.InDelta(t, poly.Derivative(7+x), rebased.Derivative(x), 1e-9, "x=%f", x)
	}
}

func TestHermite(t *testing.T) {
	poly := Hermite(0, 3.6, 0, 50, 3.0, 0)
	assert.InDelta(t, 3.6, poly.Value(0), 1e-12)
	assert.InDelta(t, 3.0, poly.Value(50), 1e-12)
	assert.InDelta(t, 0.0, poly.Derivative(0), 1e-12)
	assert.InDelta(t, 0.0, poly.Derivative(50), 1e-12)
	assert.InDelta(t, 3.3, poly.Value(25), 1e-12)

	sloped := Hermite(10, 1, 0.5, 20, 2, -0.25)
	assert.InDelta(t, 1.0, sloped.Value(10), 1e-12)
	assert.InDelta(t, 2.0, sloped.Value(20), 1e-12)
	assert.InDelta(t, 0.5, sloped.Derivative(10), 1e-12)
	assert.InDelta(t, -0.25, sloped.Derivative(20), 1e-12)

	assert.Equal(t, ConstantPolynomial(5, 2), Hermite(5, 2, 1, 5, 9, 0))
}
