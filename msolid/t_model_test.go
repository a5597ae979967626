// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gomm/tsr"
)

// refKinem returns the deformed configuration of the reference problem
func refKinem() (cur *Kinem) {
	cur = NewKinem()
	gu := [][]float64{
		{0.200, 0.100, 0.000},
		{0.100, 0.001, 0.000},
		{0.000, 0.000, 0.000},
	}
	for i := 0; i < 3; i++ {
		copy(cur.GradU[i], gu[i])
	}
	cur.Phi[0] = 0.1
	gphi := [][]float64{
		{0.13890017, -0.35986020, -0.08048856},
		{-0.18572739, 0.06847269, 0.22931628},
		{-0.01829735, -0.48731265, -0.25277529},
		{0.26626212, 0.48446460, -0.31965177},
		{0.49197846, 0.19051656, -0.03653490},
		{-0.06607774, -0.33526875, -0.15803078},
		{0.09738707, -0.49482218, -0.39584868},
		{-0.45599864, 0.08585038, -0.09432794},
		{0.23055539, 0.07564162, 0.24051469},
	}
	for p := 0; p < 9; p++ {
		copy(cur.GradPhi[p], gphi[p])
	}
	return
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. registry and initialisation")

	reg := NewRegistry()
	io.Pforan("models = %v\n", reg.Models())
	mdl, err := reg.New("dp")
	if err != nil {
		tst.Errorf("allocation failed: %v\n", err)
		return
	}
	if _, err := reg.New("banana"); err == nil {
		tst.Errorf("allocation of an unknown model must fail\n")
		return
	}
	if err := reg.Register("dp2", func() Model { return new(ElastoPlastic) }); err != nil {
		tst.Errorf("registration failed: %v\n", err)
		return
	}
	if _, err := reg.New("dp2"); err != nil {
		tst.Errorf("allocation of a registered model failed: %v\n", err)
		return
	}
	if err := reg.Register("dp", nil); err == nil {
		tst.Errorf("duplicate registration must fail\n")
		return
	}

	err = mdl.Init(refPrms())
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}
	chk.IntAssert(mdl.Nsdv(), NsdvDP)
	chk.IntAssert(len(mdl.GetPrms()), len(refPrms()))

	// unknown parameter names are rejected
	bad := append(refPrms(), &fun.Prm{N: "gamma", V: 1})
	if err := new(ElastoPlastic).Init(bad); err == nil {
		tst.Errorf("initialisation with an unknown parameter must fail\n")
		return
	}

	// non-positive tolerances are rejected
	wrong := append(refPrms(), &fun.Prm{N: "atol", V: -1})
	err = new(ElastoPlastic).Init(wrong)
	if err == nil {
		tst.Errorf("initialisation with atol<0 must fail\n")
		return
	}
	code, _ := ErrCode(err)
	chk.IntAssert(code, FailYieldParam)
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. elastic response")

	var mdl ElastoPlastic
	err := mdl.Init(stiffPrms())
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}

	// zero motion gives zero stresses
	res := NewStresses()
	sdv := make([]float64, NsdvDP)
	err = mdl.Evaluate(res, nil, 0, 1, NewKinem(), NewKinem(), sdv)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Vector(tst, "pk2 zero", 1e-12, res.PK2, make([]float64, 9))
	chk.Vector(tst, "sig zero", 1e-12, res.Sig, make([]float64, 9))
	chk.Vector(tst, "m zero", 1e-12, res.M, make([]float64, 27))

	// small strains stay elastic and leave the state untouched
	kin := sampleKinem(0.001)
	jac := NewJacobians()
	err = mdl.Evaluate(res, jac, 0, 1, kin, kin, sdv)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Vector(tst, "sdv elastic", 1e-17, sdv, make([]float64, NsdvDP))
	if math.Abs(jac.DPk2DGradU[0][0]) < 1.0 {
		tst.Errorf("tangent DPk2DGradU[0][0]=%g is too small\n", jac.DPk2DGradU[0][0])
	}

	// repeated evaluations are deterministic
	res2 := NewStresses()
	err = mdl.Evaluate(res2, nil, 0, 1, kin, kin, sdv)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Vector(tst, "pk2 repeat", 1e-17, res2.PK2, res.PK2)
	chk.Vector(tst, "sig repeat", 1e-17, res2.Sig, res.Sig)
	chk.Vector(tst, "m repeat", 1e-17, res2.M, res.M)
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. reference plastic loading")

	var mdl ElastoPlastic
	err := mdl.Init(refPrms())
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}

	cur := refKinem()
	prev := NewKinem()
	sdv := make([]float64, NsdvDP)
	res := NewStresses()
	Δt := 2.5
	err = mdl.Evaluate(res, nil, 10, Δt, cur, prev, sdv)
	if err != nil && !IsWarning(err) {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	substepped := err != nil

	// reference stresses of this configuration for comparison
	pk2Ref := []float64{
		1.72376777e+02, 1.53544528e+01, -9.15741771e-01,
		1.34630203e+01, 1.42759980e+02, -1.96846892e-02,
		-1.76311980e+00, 1.77646249e+00, 1.41003818e+02,
	}
	io.Pf("pk2 (row major) = ")
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			io.Pf("%13.6e ", res.PK2[tsr.Vmap[i][j]])
		}
	}
	io.Pf("\npk2 reference   = ")
	for a := 0; a < 9; a++ {
		io.Pf("%13.6e ", pk2Ref[a])
	}
	io.Pf("\n")

	// plastic flow must have occurred
	sta := NewState()
	sta.Unpack(sdv)
	nact := 0
	for i := 0; i < Nsurf; i++ {
		if sta.Z[i] > 1e-12 {
			nact++
		}
		if sta.Z[i] < -1e-14 {
			tst.Errorf("hardening variable %d is negative: %g\n", i, sta.Z[i])
		}
	}
	if nact == 0 {
		tst.Errorf("no surface yielded\n")
		return
	}
	io.Pforan("z    = %v\n", sta.Z)
	io.Pforan("gdot = %v\n", sta.Gdot)

	// without sub-incrementation the hardening variables and multiplier
	// rates are tied through ż = γ̇·Af
	if !substepped {
		afs := []float64{0, 0, 0, 0, 0}
		afs[0], _, err = ConeCoefs(0.56, 0.2)
		if err != nil {
			tst.Errorf("ConeCoefs failed: %v\n", err)
			return
		}
		afs[1], _, err = ConeCoefs(0.15, -0.2)
		if err != nil {
			tst.Errorf("ConeCoefs failed: %v\n", err)
			return
		}
		for k := 2; k < 5; k++ {
			afs[k], _, err = ConeCoefs(0.82, 0.1)
			if err != nil {
				tst.Errorf("ConeCoefs failed: %v\n", err)
				return
			}
		}
		for i := 0; i < Nsurf; i++ {
			chk.Scalar(tst, io.Sf("z-γ̇ tie %d", i), 1e-7, sta.Z[i], Δt*sta.Gdot[i]*afs[i])
		}
	}

	// the converged stresses are admissible for every surface
	ms := NewMeasures()
	err = ms.Calc(cur)
	if err != nil {
		tst.Errorf("measures failed: %v\n", err)
		return
	}
	S45 := make([]float64, 45)
	copy(S45[:9], res.PK2)
	copy(S45[9:18], res.Sig)
	copy(S45[18:], res.M)
	fs := mdl.YieldFuncs(S45, ms, sta.Z)
	io.Pforan("f    = %v\n", fs)
	for i, f := range fs {
		if f > 1e-2 {
			tst.Errorf("surface %d is violated at the solution: f=%g\n", i, f)
		}
	}
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. failure codes and rollback")

	var mdl ElastoPlastic
	err := mdl.Init(refPrms())
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}

	// a singular deformation gradient is reported and leaves the state
	// untouched
	cur := NewKinem()
	for i := 0; i < 3; i++ {
		cur.GradU[i][i] = 1.0
	}
	sdv := make([]float64, NsdvDP)
	res := NewStresses()
	err = mdl.Evaluate(res, nil, 0, 1, cur, NewKinem(), sdv)
	if err == nil {
		tst.Errorf("evaluation with singular kinematics must fail\n")
		return
	}
	code, msg := ErrCode(err)
	io.Pforan("code=%d msg=%q\n", code, msg)
	chk.IntAssert(code, FailSingular)
	chk.Vector(tst, "sdv rollback", 1e-17, sdv, make([]float64, NsdvDP))

	// wrong state vector length
	err = mdl.Evaluate(res, nil, 0, 1, NewKinem(), NewKinem(), make([]float64, 7))
	if err == nil {
		tst.Errorf("evaluation with a short state vector must fail\n")
		return
	}
	code, _ = ErrCode(err)
	chk.IntAssert(code, FailInput)

	// uninitialised model
	err = new(ElastoPlastic).Evaluate(res, nil, 0, 1, NewKinem(), NewKinem(), sdv)
	if err == nil {
		tst.Errorf("evaluation without initialisation must fail\n")
		return
	}
	code, _ = ErrCode(err)
	chk.IntAssert(code, FailInput)
}

func Test_model05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model05. uniaxial stretch history")

	var mdl ElastoPlastic
	err := mdl.Init(stiffPrms())
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}

	// ramp grad_u[0][0] in four increments
	sdv := make([]float64, NsdvDP)
	res := NewStresses()
	prev := NewKinem()
	cur := NewKinem()
	Δt := 0.05
	zprev := 0.0
	for k := 0; k < 4; k++ {
		cur.Set(prev)
		cur.GradU[0][0] += 0.025
		err = mdl.Evaluate(res, nil, float64(k+1)*Δt, Δt, cur, prev, sdv)
		if err != nil && !IsWarning(err) {
			tst.Errorf("step %d failed: %v\n", k, err)
			return
		}
		sta := NewState()
		sta.Unpack(sdv)
		if sta.Z[0] < zprev-1e-14 {
			tst.Errorf("step %d: hardening variable decreased from %g to %g\n", k, zprev, sta.Z[0])
			return
		}
		zprev = sta.Z[0]
		io.Pforan("step %d: pk2_11=%g z=%v\n", k, res.PK2[0], sta.Z[:2])
		prev.Set(cur)
	}

	// the macro and micro surfaces harden; the couple stress never yields
	sta := NewState()
	sta.Unpack(sdv)
	if sta.Z[0] <= 0 {
		tst.Errorf("macro surface did not yield: z=%v\n", sta.Z)
		return
	}
	if sta.Z[1] <= 0 {
		tst.Errorf("micro surface did not yield: z=%v\n", sta.Z)
		return
	}
	chk.Vector(tst, "z grad", 1e-17, sta.Z[2:], []float64{0, 0, 0})
	plasticPK2 := res.PK2[0]

	// holding the configuration unloads elastically and clears the rates
	err = mdl.Evaluate(res, nil, 0.25, Δt, cur, cur, sdv)
	if err != nil && !IsWarning(err) {
		tst.Errorf("holding step failed: %v\n", err)
		return
	}
	sta.Unpack(sdv)
	chk.Vector(tst, "rates cleared", 1e-17, sta.Gdot, make([]float64, Nsurf))

	// the same stretch without yielding carries a higher stress
	elast := stiffPrms()
	for _, p := range elast {
		switch p.N {
		case "c0mac", "c0mic", "c0grd":
			p.V = 1e9
		}
	}
	var big ElastoPlastic
	err = big.Init(elast)
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}
	sdvE := make([]float64, NsdvDP)
	resE := NewStresses()
	err = big.Evaluate(resE, nil, 0, 1, cur, NewKinem(), sdvE)
	if err != nil {
		tst.Errorf("elastic evaluation failed: %v\n", err)
		return
	}
	io.Pforan("plastic pk2_11=%g elastic pk2_11=%g\n", plasticPK2, resE.PK2[0])
	if plasticPK2 >= resE.PK2[0] {
		tst.Errorf("plastic stress %g must stay below the elastic one %g\n", plasticPK2, resE.PK2[0])
	}
}
