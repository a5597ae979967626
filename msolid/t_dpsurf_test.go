// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gomm/tsr"
)

func Test_dpsurf01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dpsurf01. cone coefficients and layout")

	// von Mises limit
	A, B, err := ConeCoefs(0, 0)
	if err != nil {
		tst.Errorf("ConeCoefs failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "A(0,0)", 1e-15, A, 2.0*math.Sqrt(6.0)/3.0)
	chk.Scalar(tst, "B(0,0)", 1e-15, B, 0)

	// the coefficient ratio recovers the friction angle
	A, B, err = ConeCoefs(0.15, -0.2)
	if err != nil {
		tst.Errorf("ConeCoefs failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "B/A", 1e-15, B/A, math.Tan(0.15))

	// invalid angles
	_, _, err = ConeCoefs(math.Pi/2.0, 0)
	if err == nil {
		tst.Errorf("ConeCoefs must fail with φ=π/2\n")
		return
	}
	code, _ := ErrCode(err)
	chk.IntAssert(code, FailYieldParam)
	_, _, err = ConeCoefs(0.5, -3.0/math.Sin(0.5))
	if err == nil {
		tst.Errorf("ConeCoefs must fail with a vanishing denominator\n")
		return
	}
	code, _ = ErrCode(err)
	chk.IntAssert(code, FailYieldParam)

	// surface validation
	if _, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 0, 15, 0.4); err == nil {
		tst.Errorf("newSurface must reject c0=0\n")
		return
	}
	if _, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 240, -1, 0.4); err == nil {
		tst.Errorf("newSurface must reject H<0\n")
		return
	}
	if _, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 240, 15, 1.5); err == nil {
		tst.Errorf("newSurface must reject α>1\n")
		return
	}

	// residual scaling stays away from zero
	s, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 240, 15, 0.4)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "fcoef", 1e-12, s.fcoef, s.Ay*240)
	chk.Scalar(tst, "cohesion", 1e-12, s.cohesion(0.5), 240+15*0.5)
	stiny, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 1e-3, 15, 0.4)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "fcoef tiny", 1e-15, stiny.fcoef, 1)

	// stress gathering from the 45-vector
	v45 := make([]float64, 45)
	for i := range v45 {
		v45[i] = float64(i)
	}
	T := la.MatAlloc(3, 3)
	s.gather(T, v45)
	for a := 0; a < 9; a++ {
		I, J := tsr.Pairs[a][0], tsr.Pairs[a][1]
		chk.Scalar(tst, io.Sf("mac T[%d][%d]", I, J), 1e-15, T[I][J], float64(a))
	}
	smic, err := newSurface("micro", KindMicro, 0, 0.4, -0.3, 0.15, -0.2, 140, 20, 0.3)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}
	smic.gather(T, v45)
	for a := 0; a < 9; a++ {
		I, J := tsr.Pairs[a][0], tsr.Pairs[a][1]
		chk.Scalar(tst, io.Sf("mic T[%d][%d]", I, J), 1e-15, T[I][J], float64(9+a))
	}
	sgrd, err := newSurface("grad2", KindGrad, 1, 0.52, 0.4, 0.82, 0.1, 2, 27, 0.35)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}
	sgrd.gather(T, v45)
	for I := 0; I < 3; I++ {
		for J := 0; J < 3; J++ {
			chk.Scalar(tst, io.Sf("grd T[%d][%d]", I, J), 1e-15, T[I][J], float64(18+9*I+tsr.Vmap[J][1]))
		}
	}
}

func Test_dpsurf02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dpsurf02. yield invariants with a deformed metric")

	ms := NewMeasures()
	err := ms.Calc(sampleKinem(1.0))
	if err != nil {
		tst.Errorf("measures failed: %v\n", err)
		return
	}
	s, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 1.5, 0.4, 0.5)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}

	// pressure via an independent contraction
	S := la.MatAlloc(3, 3)
	vs := testvals(9, 0.64)
	for a := 0; a < 9; a++ {
		S[tsr.Pairs[a][0]][tsr.Pairs[a][1]] = vs[a]
	}
	pc := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			pc += S[i][j] * ms.C[i][j]
		}
	}
	pc /= 3.0
	chk.Scalar(tst, "p", 1e-14, RefPressure(S, ms.C), pc)

	// a stress proportional to C⁻¹ has no deviator
	sph := 2.5
	z := 0.2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S[i][j] = sph * ms.Ci[i][j]
		}
	}
	f := s.yieldF(S, ms.C, ms.Ci, z)
	chk.Scalar(tst, "F spherical", 1e-13, f, s.By*sph-s.Ay*s.cohesion(z))

	// apex
	la.MatFill(S, 0)
	f = s.yieldF(S, ms.C, ms.Ci, z)
	chk.Scalar(tst, "F apex", 1e-13, f, -s.Ay*s.cohesion(z))

	// flow direction: the metric trace equals Bf for any stress
	for a := 0; a < 9; a++ {
		S[tsr.Pairs[a][0]][tsr.Pairs[a][1]] = vs[a]
	}
	N := la.MatAlloc(3, 3)
	s.cone(N, S, ms.C, ms.Ci, s.Bf)
	trn := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			trn += N[i][j] * ms.Ci[i][j]
		}
	}
	chk.Scalar(tst, "N:C⁻¹", 1e-13, trn, s.Bf)

	// at the apex the flow direction is purely spherical
	la.MatFill(S, 0)
	s.cone(N, S, ms.C, ms.Ci, s.Bf)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, io.Sf("N apex [%d][%d]", i, j), 1e-14, N[i][j], s.Bf/3.0*ms.C[i][j])
		}
	}
}

func Test_dpsurf03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dpsurf03. surface derivatives")

	ms := NewMeasures()
	err := ms.Calc(sampleKinem(1.0))
	if err != nil {
		tst.Errorf("measures failed: %v\n", err)
		return
	}
	s, err := newSurface("macro", KindMacro, 0, 0.7, 0.3, 0.56, 0.2, 1.5, 0.4, 0.5)
	if err != nil {
		tst.Errorf("newSurface failed: %v\n", err)
		return
	}
	S := la.MatAlloc(3, 3)
	vs := testvals(9, 0.64)
	for a := 0; a < 9; a++ {
		S[tsr.Pairs[a][0]][tsr.Pairs[a][1]] = vs[a]
	}
	z := 0.3
	h := 1e-6
	tol := 1e-6

	// dF/dS
	dF := make([]float64, 9)
	s.dYieldDS(dF, S, ms.C, ms.Ci)
	ST := la.MatAlloc(3, 3)
	for c := 0; c < 9; c++ {
		O, P := tsr.Pairs[c][0], tsr.Pairs[c][1]
		dnum, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
			la.MatCopy(ST, 1, S)
			ST[O][P] = t
			return s.yieldF(ST, ms.C, ms.Ci, z)
		}, S[O][P], h)
		chk.AnaNum(tst, io.Sf("dYieldDS[%d]", c), tol, dF[c], dnum, chk.Verbose)
	}

	// dN/dS
	dN := la.MatAlloc(9, 9)
	s.dConeDS(dN, S, ms.C, ms.Ci)
	for r := 0; r < 9; r++ {
		I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
		for c := 0; c < 9; c++ {
			O, P := tsr.Pairs[c][0], tsr.Pairs[c][1]
			dnum, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
				la.MatCopy(ST, 1, S)
				ST[O][P] = t
				N := la.MatAlloc(3, 3)
				s.cone(N, ST, ms.C, ms.Ci, s.Bf)
				return N[I][J]
			}, S[O][P], h)
			chk.AnaNum(tst, io.Sf("dConeDS[%d][%d]", r, c), tol, dN[r][c], dnum, chk.Verbose)
		}
	}

	// dF/dC and dN/dC with the inverse chain
	dFc := make([]float64, 9)
	s.dYieldDC(dFc, S, ms.C, ms.Ci)
	dNc := la.MatAlloc(9, 9)
	s.dConeDC(dNc, S, ms.C, ms.Ci, s.Bf)
	CT := la.MatAlloc(3, 3)
	CiT := la.MatAlloc(3, 3)
	for c := 0; c < 9; c++ {
		O, P := tsr.Pairs[c][0], tsr.Pairs[c][1]
		dnum, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
			la.MatCopy(CT, 1, ms.C)
			CT[O][P] = t
			la.MatInv(CiT, CT, 1e-14)
			return s.yieldF(S, CT, CiT, z)
		}, ms.C[O][P], h)
		chk.AnaNum(tst, io.Sf("dYieldDC[%d]", c), tol, dFc[c], dnum, chk.Verbose)

		for r := 0; r < 9; r++ {
			I, J := tsr.Pairs[r][0], tsr.Pairs[r][1]
			dnum, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
				la.MatCopy(CT, 1, ms.C)
				CT[O][P] = t
				la.MatInv(CiT, CT, 1e-14)
				N := la.MatAlloc(3, 3)
				s.cone(N, S, CT, CiT, s.Bf)
				return N[I][J]
			}, ms.C[O][P], h)
			chk.AnaNum(tst, io.Sf("dConeDC[%d][%d]", r, c), tol, dNc[r][c], dnum, chk.Verbose)
		}
	}
}
