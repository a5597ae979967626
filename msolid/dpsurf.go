// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gomm/tsr"
)

// surface kinds
const (
	KindMacro = iota // second Piola-Kirchhoff stress
	KindMicro        // symmetric micro-stress
	KindGrad         // couple stress slice with fixed trailing index
)

// surface holds one Drucker-Prager yield surface with its non-associative
// flow cone and linear cohesion hardening. Yield and flow read
//   F = ‖dev(S)‖ + By·p - Ay·c(z)    c(z) = c0 + H·z
//   N = n - (n:C⁻¹)/3·C + Bf/3·C     n = dev(S)/‖dev(S)‖
// where p = (S:C)/3 and dev(S) = S - p·C⁻¹ use the right Cauchy-Green
// tensor as metric. The hardening variable evolves as ż = γ̇·Af
type surface struct {
	name   string  // tag for diagnostics
	kind   int     // stress measure the surface acts on
	kslice int     // trailing index for KindGrad
	Ay, By float64 // yield cone coefficients
	Af, Bf float64 // flow cone coefficients
	c0     float64 // initial cohesion
	H      float64 // hardening modulus
	α      float64 // generalised midpoint weight
	fcoef  float64 // scaling of the yield residual
	idx    [9]int  // components of the surface stress within the 45-vector
}

// newSurface builds a surface from friction angles (radians) and cone
// fitting parameters; φy,βy define the yield cone and φf,βf the flow cone
func newSurface(name string, kind, kslice int, φy, βy, φf, βf, c0, H, α float64) (o surface, err error) {
	o.name = name
	o.kind = kind
	o.kslice = kslice
	o.Ay, o.By, err = ConeCoefs(φy, βy)
	if err != nil {
		return
	}
	o.Af, o.Bf, err = ConeCoefs(φf, βf)
	if err != nil {
		return
	}
	if c0 <= 0 {
		err = newFail(FailYieldParam, "%s surface: cohesion c0=%g must be positive", name, c0)
		return
	}
	if H < 0 {
		err = newFail(FailYieldParam, "%s surface: hardening modulus H=%g cannot be negative", name, H)
		return
	}
	if α < 0 || α > 1 {
		err = newFail(FailYieldParam, "%s surface: midpoint weight α=%g must be within [0,1]", name, α)
		return
	}
	o.c0 = c0
	o.H = H
	o.α = α
	o.fcoef = o.Ay * c0
	if o.fcoef < 1 {
		o.fcoef = 1
	}
	for a := 0; a < 9; a++ {
		I, J := tsr.Pairs[a][0], tsr.Pairs[a][1]
		switch kind {
		case KindMacro:
			o.idx[a] = a
		case KindMicro:
			o.idx[a] = 9 + a
		case KindGrad:
			o.idx[a] = 18 + 9*I + tsr.Vmap[J][kslice]
		}
	}
	return
}

// gather extracts the surface stress tensor from a 45-vector laid out as
// [PK2 | Sig | M]
func (o *surface) gather(S [][]float64, x []float64) {
	for a := 0; a < 9; a++ {
		S[tsr.Pairs[a][0]][tsr.Pairs[a][1]] = x[o.idx[a]]
	}
}

// cohesion returns c(z)
func (o *surface) cohesion(z float64) float64 {
	return o.c0 + o.H*z
}

// yieldF computes the yield function value
func (o *surface) yieldF(S, C, Ci [][]float64, z float64) float64 {
	p := RefPressure(S, C)
	dev := la.MatAlloc(3, 3)
	RefDev(dev, S, Ci, p)
	return NormFrob(dev) + o.By*p - o.Ay*o.cohesion(z)
}

// cone computes the cone direction with coefficient B:
//   out = n - (n:C⁻¹)/3·C + B/3·C
// With B=Bf this is the flow direction; with B=By it is dF/dS
func (o *surface) cone(out, S, C, Ci [][]float64, B float64) {
	p := RefPressure(S, C)
	dev := la.MatAlloc(3, 3)
	RefDev(dev, S, Ci, p)
	nn := NormFrob(dev)
	trn := 0.0
	n := la.MatAlloc(3, 3)
	if nn > 0 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				n[i][j] = dev[i][j] / nn
				trn += n[i][j] * Ci[i][j]
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = n[i][j] + (B-trn)/3.0*C[i][j]
		}
	}
}

// dConeDS computes the 9x9 derivative of the cone direction with respect to
// the surface stress. Rows and columns follow the Voigt enumeration of the
// surface tensor. At the apex (zero deviator) the derivative is set to zero
func (o *surface) dConeDS(d [][]float64, S, C, Ci [][]float64) {
	p := RefPressure(S, C)
	dev := la.MatAlloc(3, 3)
	RefDev(dev, S, Ci, p)
	nn := NormFrob(dev)
	if nn <= 0 {
		la.MatFill(d, 0)
		return
	}
	n := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n[i][j] = dev[i][j] / nn
		}
	}

	// dn[(I,J)][(A,B)] = (ddev[(I,J)][(A,B)] - n[I][J]·Σ n:ddev[·][(A,B)])/‖dev‖
	// with ddev[(I,J)][(A,B)] = δ[I][A]δ[J][B] - C[A][B]·C⁻¹[I][J]/3
	dn := la.MatAlloc(9, 9)
	for c := 0; c < 9; c++ {
		A, B := tsr.Pairs[c][0], tsr.Pairs[c][1]
		ndd := 0.0
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			dd := -C[A][B] * Ci[I][J] / 3.0
			if I == A && J == B {
				dd += 1.0
			}
			dn[r][c] = dd
			ndd += n[I][J] * dd
		}
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			dn[r][c] = (dn[r][c] - n[I][J]*ndd) / nn
		}
	}

	// d = dn - C⊗(C⁻¹:dn)/3
	for c := 0; c < 9; c++ {
		cidn := 0.0
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			cidn += Ci[I][J] * dn[r][c]
		}
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			d[r][c] = dn[r][c] - C[I][J]*cidn/3.0
		}
	}
}

// dYieldDS computes the 9-component derivative of the yield function with
// respect to the surface stress:
//   dF/dS = n - (n:C⁻¹)/3·C + By/3·C
func (o *surface) dYieldDS(d []float64, S, C, Ci [][]float64) {
	out := la.MatAlloc(3, 3)
	o.cone(out, S, C, Ci, o.By)
	tsr.Ten2Vec(d, out)
}

// dYieldDC computes the 9-component derivative of the yield function with
// respect to the metric at fixed surface stress
func (o *surface) dYieldDC(d []float64, S, C, Ci [][]float64) {
	p := RefPressure(S, C)
	dev := la.MatAlloc(3, 3)
	RefDev(dev, S, Ci, p)
	nn := NormFrob(dev)
	n := la.MatAlloc(3, 3)
	if nn > 0 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				n[i][j] = dev[i][j] / nn
			}
		}
	}
	dCi := la.MatAlloc(9, 9)
	tsr.DerivInvDA(dCi, Ci)
	for c := 0; c < 9; c++ {
		O, P := tsr.Pairs[c][0], tsr.Pairs[c][1]
		dp := S[O][P] / 3.0
		dnorm := 0.0
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			ddev := -dp*Ci[I][J] - p*dCi[r][c]
			dnorm += n[I][J] * ddev
		}
		d[c] = dnorm + o.By*dp
	}
}

// dConeDC computes the 9x9 derivative of the cone direction (coefficient B)
// with respect to the metric at fixed surface stress
func (o *surface) dConeDC(d [][]float64, S, C, Ci [][]float64, B float64) {
	p := RefPressure(S, C)
	dev := la.MatAlloc(3, 3)
	RefDev(dev, S, Ci, p)
	nn := NormFrob(dev)
	n := la.MatAlloc(3, 3)
	trn := 0.0
	if nn > 0 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				n[i][j] = dev[i][j] / nn
				trn += n[i][j] * Ci[i][j]
			}
		}
	}
	dCi := la.MatAlloc(9, 9)
	tsr.DerivInvDA(dCi, Ci)
	dn := la.MatAlloc(9, 9)
	for c := 0; c < 9; c++ {
		O, P := tsr.Pairs[c][0], tsr.Pairs[c][1]
		dp := S[O][P] / 3.0

		// dn at fixed stress
		dnorm := 0.0
		if nn > 0 {
			for r := 0; r < 9; r++ {
				I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
				ddev := -dp*Ci[I][J] - p*dCi[r][c]
				dn[r][c] = ddev
				dnorm += n[I][J] * ddev
			}
			for r := 0; r < 9; r++ {
				I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
				dn[r][c] = (dn[r][c] - n[I][J]*dnorm) / nn
			}
		}

		// chain rule on (n:C⁻¹) and on the metric factors
		dtrn := 0.0
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			dtrn += dn[r][c]*Ci[I][J] + n[I][J]*dCi[r][c]
		}
		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			d[r][c] = dn[r][c] - dtrn/3.0*C[I][J]
			if I == O && J == P {
				d[r][c] += (B - trn) / 3.0
			}
		}
	}
}
