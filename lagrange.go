// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

// Lagrange evaluates the polynomial passing through (xs[i], ys[i]) at x.
// xs must be distinct; len(xs) == len(ys).
func Lagrange(xs, ys []float64, x float64) float64 {
	y := 0.0
	for i := range xs {
		l := 1.0
		for j := range xs {
			if j != i {
				l *= (x - xs[j]) / (xs[i] - xs[j])
			}
		}
		y += l * ys[i]
	}
	return y
}

// LagrangeDeriv evaluates the interpolating polynomial and its first derivative at x
func LagrangeDeriv(xs, ys []float64, x float64) (y, dy float64) {
	n := len(xs)
	for i := 0; i < n; i++ {
		// Basis polynomial l_i(x) and its derivative
		l := 1.0
		dl := 0.0
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			l *= (x - xs[k]) / (xs[i] - xs[k])
			p := 1.0 / (xs[i] - xs[k])
			for j := 0; j < n; j++ {
				if j != i && j != k {
					p *= (x - xs[j]) / (xs[i] - xs[j])
				}
			}
			dl += p
		}
		y += l * ys[i]
		dy += dl * ys[i]
	}
	return y, dy
}
