// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gomm/tsr"
)

// ConeCoefs computes the coefficients of a Drucker-Prager cone matched to
// the Mohr-Coulomb strength given by the friction angle φ (radians) and the
// fitting parameter β:
//  β = -1 : extension cone (inner)
//  β = +1 : compression cone (outer)
// The yield function then reads ‖dev‖ + B·p - A·c
func ConeCoefs(φ, β float64) (A, B float64, err error) {
	si := math.Sin(φ)
	co := math.Cos(φ)
	den := 3.0 + β*si
	if den < 1e-10 {
		return 0, 0, newFail(FailYieldParam, "cone denominator 3+β·sin(φ)=%g must be positive", den)
	}
	if co < 1e-10 {
		return 0, 0, newFail(FailYieldParam, "cos(φ)=%g must be positive", co)
	}
	ξ := 2.0 * math.Sqrt(6.0) / den
	A = ξ * co
	B = ξ * si
	return
}

// RefPressure returns the pressure-like invariant of a reference stress
// measure S with metric C:
//   p = (S:C)/3
func RefPressure(S, C [][]float64) (p float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p += S[i][j] * C[i][j]
		}
	}
	p /= 3.0
	return
}

// RefDev computes the deviatoric part of a reference stress measure:
//   dev = S - p·C⁻¹
func RefDev(dev, S, Ci [][]float64, p float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dev[i][j] = S[i][j] - p*Ci[i][j]
		}
	}
}

// NormFrob returns the Frobenius norm of a 3x3 tensor
func NormFrob(A [][]float64) (res float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res += A[i][j] * A[i][j]
		}
	}
	return math.Sqrt(res)
}

// Slice27 extracts the 3x3 slice with fixed trailing index K from a packed
// third-order tensor: S[i][j] = v[(i,(j,K))]
func Slice27(S [][]float64, v []float64, K int) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S[i][j] = v[9*i+tsr.Vmap[j][K]]
		}
	}
}
