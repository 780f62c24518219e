package lanegeom

import "fmt"

// Polynomial is a cubic polynomial valid from local breakpoint S onward:
// value(s) = A + B*ds + C*ds^2 + D*ds^3, where ds = s - S
type Polynomial struct {
	S float64
	A float64
	B float64
	C float64
	D float64
}

// NewPolynomial returns polynomial with given breakpoint and coefficients
func NewPolynomial(s, a, b, c, d float64) Polynomial {
	return Polynomial{S: s, A: a, B: b, C: c, D: d}
}

// ConstantPolynomial returns polynomial which evaluates to a everywhere
func ConstantPolynomial(s, a float64) Polynomial {
	return Polynomial{S: s, A: a}
}

// String returns pretty printed value for Polynomial
func (poly Polynomial) String() string {
	return fmt.Sprintf("s=%f: %f + %f*ds + %f*ds^2 + %f*ds^3", poly.S, poly.A, poly.B, poly.C, poly.D)
}

// Value evaluates polynomial at s
func (poly Polynomial) Value(s float64) float64 {
	ds := s - poly.S
	return poly.A + ds*(poly.B+ds*(poly.C+ds*poly.D))
}

// Derivative evaluates first derivative at s
func (poly Polynomial) Derivative(s float64) float64 {
	ds := s - poly.S
	return poly.B + ds*(2*poly.C+ds*3*poly.D)
}

// Rebase re-expresses the same curve with the breakpoint moved to s and then shifted to newS.
// The returned polynomial evaluated at newS+x equals the source evaluated at s+x.
func (poly Polynomial) Rebase(s, newS float64) Polynomial {
	ds := s - poly.S
	return Polynomial{
		S: newS,
		A: poly.Value(s),
		B: poly.Derivative(s),
		C: poly.C + 3*poly.D*ds,
		D: poly.D,
	}
}

// Hermite returns the cubic starting at s0 that passes through (s0, v0) with slope d0
// and through (s1, v1) with slope d1. Degenerate spans (s1 <= s0) give a constant v0
func Hermite(s0, v0, d0, s1, v1, d1 float64) Polynomial {
	h := s1 - s0
	if h <= 0 {
		return ConstantPolynomial(s0, v0)
	}
	c := (3*(v1-v0)/h - 2*d0 - d1) / h
	d := (2*(v0-v1)/h + d0 + d1) / (h * h)
	return Polynomial{S: s0, A: v0, B: d0, C: c, D: d}
}

// Start returns breakpoint of the polynomial
func (poly *Polynomial) Start() float64 {
	return poly.S
}

func (poly *Polynomial) overwrite(other *Polynomial) {
	poly.A, poly.B, poly.C, poly.D = other.A, other.B, other.C, other.D
}

func (poly *Polynomial) copy() *Polynomial {
	cp := *poly
	return &cp
}
