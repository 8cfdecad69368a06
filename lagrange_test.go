// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLagrangeReproducesPolynomial(t *testing.T) {
	assert := assert.New(t)
	f := func(x float64) float64 { return 2*x*x*x - x + 1 }
	df := func(x float64) float64 { return 6*x*x - 1 }
	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	for _, x := range []float64{-0.5, 0.25, 2.5, 3.9, 4.0} {
		assert.InDelta(f(x), Lagrange(xs, ys, x), 1e-9)
		y, dy := LagrangeDeriv(xs, ys, x)
		assert.InDelta(f(x), y, 1e-9)
		assert.InDelta(df(x), dy, 1e-9)
	}
}

func TestLagrangeAtNodes(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{0, 900, 1800, 2700, 3600, 4500}
	ys := []float64{3, -1, 4, 1, -5, 9}
	for i := range xs {
		assert.Equal(ys[i], Lagrange(xs, ys, xs[i]))
	}
}

func TestLagrangeDerivSine(t *testing.T) {
	assert := assert.New(t)
	xs := make([]float64, 10)
	ys := make([]float64, 10)
	for i := range xs {
		xs[i] = 0.1 * float64(i)
		ys[i] = math.Sin(xs[i])
	}
	y, dy := LagrangeDeriv(xs, ys, 0.45)
	assert.InDelta(math.Sin(0.45), y, 1e-10)
	assert.InDelta(math.Cos(0.45), dy, 1e-8)
}
