// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testvals returns a deterministic sequence of values in [-0.5, 0.5)
func testvals(n int, shift float64) (v []float64) {
	v = make([]float64, n)
	s := shift
	for i := 0; i < n; i++ {
		s = math.Mod(s*997.0+0.37, 1.0)
		v[i] = s - 0.5
	}
	return
}

// sampleKinem returns a kinematic configuration with all components nonzero,
// scaled by m
func sampleKinem(m float64) (kin *Kinem) {
	kin = NewKinem()
	gu := []float64{0.020, 0.050, -0.010, 0.040, -0.030, 0.020, -0.020, 0.010, 0.030}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			kin.GradU[i][j] = m * gu[3*i+j]
		}
	}
	phi := []float64{0.010, -0.020, 0.030, 0.015, -0.025, 0.035, -0.015, 0.025, -0.035}
	for a := 0; a < 9; a++ {
		kin.Phi[a] = m * phi[a]
	}
	v := testvals(27, 0.45)
	for p := 0; p < 9; p++ {
		for x := 0; x < 3; x++ {
			kin.GradPhi[p][x] = 0.1 * m * v[3*p+x]
		}
	}
	return
}

// elastPrms returns the reference parameter set of the elastic operators
func elastPrms() (λ, μ, η, τ, κ, ν, σ float64, τs []float64, τd, σd float64) {
	λ, μ = 696.47, 65.84
	η, τ, κ, ν, σ = -7.69, -51.92, 38.61, -27.31, 5.13
	τs = []float64{1.85, -0.19, -1.08, -1.57, 2.29, -0.61, 5.97, -2.02, 2.38, -0.32, -3.25}
	τd, σd = -51.92, 5.13
	return
}

// refPrms returns the full parameter set of the reference problem
func refPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "c0mac", V: 2.4e2}, &fun.Prm{N: "Hmac", V: 1.5e1},
		&fun.Prm{N: "c0mic", V: 1.4e2}, &fun.Prm{N: "Hmic", V: 2.0e1},
		&fun.Prm{N: "c0grd", V: 2.0e0}, &fun.Prm{N: "Hgrd", V: 2.7e1},
		&fun.Prm{N: "phiFmac", V: 0.56}, &fun.Prm{N: "betFmac", V: 0.2},
		&fun.Prm{N: "phiFmic", V: 0.15}, &fun.Prm{N: "betFmic", V: -0.2},
		&fun.Prm{N: "phiFgrd", V: 0.82}, &fun.Prm{N: "betFgrd", V: 0.1},
		&fun.Prm{N: "phiYmac", V: 0.70}, &fun.Prm{N: "betYmac", V: 0.3},
		&fun.Prm{N: "phiYmic", V: 0.40}, &fun.Prm{N: "betYmic", V: -0.3},
		&fun.Prm{N: "phiYgrd", V: 0.52}, &fun.Prm{N: "betYgrd", V: 0.4},
		&fun.Prm{N: "lam", V: 696.47}, &fun.Prm{N: "mu", V: 65.84},
		&fun.Prm{N: "eta", V: -7.69}, &fun.Prm{N: "tau", V: -51.92},
		&fun.Prm{N: "kap", V: 38.61}, &fun.Prm{N: "nu", V: -27.31},
		&fun.Prm{N: "sig", V: 5.13},
		&fun.Prm{N: "tau1", V: 1.85}, &fun.Prm{N: "tau2", V: -0.19},
		&fun.Prm{N: "tau3", V: -1.08}, &fun.Prm{N: "tau4", V: -1.57},
		&fun.Prm{N: "tau5", V: 2.29}, &fun.Prm{N: "tau6", V: -0.61},
		&fun.Prm{N: "tau7", V: 5.97}, &fun.Prm{N: "tau8", V: -2.02},
		&fun.Prm{N: "tau9", V: 2.38}, &fun.Prm{N: "tau10", V: -0.32},
		&fun.Prm{N: "tau11", V: -3.25},
		&fun.Prm{N: "tauD", V: -51.92}, &fun.Prm{N: "sigD", V: 5.13},
		&fun.Prm{N: "alpMac", V: 0.4}, &fun.Prm{N: "alpMic", V: 0.3},
		&fun.Prm{N: "alpGrd", V: 0.35},
		&fun.Prm{N: "rtol", V: 1e-8}, &fun.Prm{N: "atol", V: 1e-8},
	}
}

// stiffPrms returns a parameter set with closed cones and strong hardening,
// convenient for loading path tests
func stiffPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "c0mac", V: 1e3}, &fun.Prm{N: "Hmac", V: 1e2},
		&fun.Prm{N: "c0mic", V: 7e2}, &fun.Prm{N: "Hmic", V: 1e4},
		&fun.Prm{N: "c0grd", V: 1e3}, &fun.Prm{N: "Hgrd", V: 1e4},
		&fun.Prm{N: "lam", V: 29480}, &fun.Prm{N: "mu", V: 25480},
		&fun.Prm{N: "eta", V: 1000}, &fun.Prm{N: "tau", V: 400},
		&fun.Prm{N: "kap", V: -1500}, &fun.Prm{N: "nu", V: -1400},
		&fun.Prm{N: "sig", V: -3000},
		&fun.Prm{N: "tau7", V: 1e6},
		&fun.Prm{N: "tauD", V: 400}, &fun.Prm{N: "sigD", V: -3000},
		&fun.Prm{N: "alpMac", V: 0.5}, &fun.Prm{N: "alpMic", V: 0.5},
		&fun.Prm{N: "alpGrd", V: 0.5},
		&fun.Prm{N: "rtol", V: 1e-9}, &fun.Prm{N: "atol", V: 1e-9},
	}
}
