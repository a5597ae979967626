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

// ElastoPlastic implements multi-surface Drucker-Prager plasticity for
// micromorphic solids. Five cones act on the stress measures: one on the
// second Piola-Kirchhoff stress, one on the symmetric micro-stress and one
// per trailing index of the couple stress. The model is registered under the
// name "dp"
type ElastoPlastic struct {

	// parameters
	prms fun.Prms // input parameters

	// operators and surfaces
	mod    *Moduli        // elastic stiffness operators
	surfs  [Nsurf]surface // yield surfaces
	atol   float64        // absolute tolerance of the stress update
	rtol   float64        // relative tolerance of the stress update
	sscale float64        // stress residual normalisation

	// constants
	NmaxIt   int     // maximum iterations of the coupled solver
	NmaxPass int     // maximum active set passes
	NmaxSub  int     // maximum sub-increment halvings
	Bandfac  float64 // residual acceptance band relative to atol
}

// Init initialises model
func (o *ElastoPlastic) Init(prms fun.Prms) (err error) {

	// constants
	o.NmaxIt = 50
	o.NmaxPass = 8
	o.NmaxSub = 5
	o.Bandfac = 1e3

	// default values
	o.atol, o.rtol = 1e-8, 1e-8
	αmac, αmic, αgrd := 1.0, 1.0, 1.0

	// parse parameters
	var c0mac, Hmac, c0mic, Hmic, c0grd, Hgrd float64
	var φfmac, βfmac, φfmic, βfmic, φfgrd, βfgrd float64
	var φymac, βymac, φymic, βymic, φygrd, βygrd float64
	var λ, μ, η, τ, κ, ν, σ, τd, σd float64
	τs := make([]float64, 11)
	for _, p := range prms {
		switch p.N {
		case "c0mac":
			c0mac = p.V
		case "Hmac":
			Hmac = p.V
		case "c0mic":
			c0mic = p.V
		case "Hmic":
			Hmic = p.V
		case "c0grd":
			c0grd = p.V
		case "Hgrd":
			Hgrd = p.V
		case "phiFmac":
			φfmac = p.V
		case "betFmac":
			βfmac = p.V
		case "phiFmic":
			φfmic = p.V
		case "betFmic":
			βfmic = p.V
		case "phiFgrd":
			φfgrd = p.V
		case "betFgrd":
			βfgrd = p.V
		case "phiYmac":
			φymac = p.V
		case "betYmac":
			βymac = p.V
		case "phiYmic":
			φymic = p.V
		case "betYmic":
			βymic = p.V
		case "phiYgrd":
			φygrd = p.V
		case "betYgrd":
			βygrd = p.V
		case "lam":
			λ = p.V
		case "mu":
			μ = p.V
		case "eta":
			η = p.V
		case "tau":
			τ = p.V
		case "kap":
			κ = p.V
		case "nu":
			ν = p.V
		case "sig":
			σ = p.V
		case "tau1":
			τs[0] = p.V
		case "tau2":
			τs[1] = p.V
		case "tau3":
			τs[2] = p.V
		case "tau4":
			τs[3] = p.V
		case "tau5":
			τs[4] = p.V
		case "tau6":
			τs[5] = p.V
		case "tau7":
			τs[6] = p.V
		case "tau8":
			τs[7] = p.V
		case "tau9":
			τs[8] = p.V
		case "tau10":
			τs[9] = p.V
		case "tau11":
			τs[10] = p.V
		case "tauD":
			τd = p.V
		case "sigD":
			σd = p.V
		case "alpMac":
			αmac = p.V
		case "alpMic":
			αmic = p.V
		case "alpGrd":
			αgrd = p.V
		case "rtol":
			o.rtol = p.V
		case "atol":
			o.atol = p.V
		default:
			return chk.Err("dp: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.atol <= 0 || o.rtol <= 0 {
		return newFail(FailYieldParam, "dp: tolerances atol=%g and rtol=%g must be positive", o.atol, o.rtol)
	}

	// stiffness operators
	o.mod = NewModuli(λ, μ, η, τ, κ, ν, σ, τs, τd, σd)
	o.sscale = math.Abs(o.mod.A[0][0])
	if o.sscale < 1 {
		o.sscale = 1
	}

	// surfaces
	o.surfs[0], err = newSurface("macro", KindMacro, 0, φymac, βymac, φfmac, βfmac, c0mac, Hmac, αmac)
	if err != nil {
		return
	}
	o.surfs[1], err = newSurface("micro", KindMicro, 0, φymic, βymic, φfmic, βfmic, c0mic, Hmic, αmic)
	if err != nil {
		return
	}
	for k := 0; k < 3; k++ {
		o.surfs[2+k], err = newSurface(io.Sf("grad%d", k+1), KindGrad, k, φygrd, βygrd, φfgrd, βfgrd, c0grd, Hgrd, αgrd)
		if err != nil {
			return
		}
	}

	// keep parameters
	o.prms = prms
	return
}

// GetPrms gets the parameters
func (o ElastoPlastic) GetPrms() fun.Prms {
	return o.prms
}

// Nsdv returns the number of state variables
func (o ElastoPlastic) Nsdv() int {
	return NsdvDP
}

// YieldFuncs computes the yield function values at the stresses held in the
// 45-vector S, with metric and hardening variables as given
func (o *ElastoPlastic) YieldFuncs(S []float64, ms *Measures, z []float64) (fs []float64) {
	fs = make([]float64, Nsurf)
	Sm := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		Sm[i] = make([]float64, 3)
	}
	for si := 0; si < Nsurf; si++ {
		s := &o.surfs[si]
		s.gather(Sm, S)
		fs[si] = s.yieldF(Sm, ms.C, ms.Ci, z[si])
	}
	return
}

// Evaluate integrates the response from prev to cur. See the Model interface
// for the contract. The response is rate independent; Δt only converts the
// stored multiplier rates into increments for the midpoint rule
func (o *ElastoPlastic) Evaluate(res *Stresses, jac *Jacobians, t, Δt float64, cur, prev *Kinem, sdv []float64) (err error) {

	// check
	if o.mod == nil {
		return newFail(FailInput, "dp: model was not initialised")
	}
	if res == nil || cur == nil || prev == nil {
		return newFail(FailInput, "dp: nil input data")
	}
	if len(sdv) != NsdvDP {
		return newFail(FailInput, "dp: len(sdv)=%d must be %d", len(sdv), NsdvDP)
	}

	// state at the beginning of the increment
	sta := NewState()
	sta.Unpack(sdv)

	// integrate
	hyd := newHydra(o)
	nsub := 0
	err = o.integrate(hyd, sta, cur, prev, Δt, 0, &nsub)
	if err != nil {
		return
	}

	// results
	copy(res.PK2, hyd.out[:9])
	copy(res.Sig, hyd.out[9:18])
	copy(res.M, hyd.out[18:])
	if jac != nil {
		err = hyd.tangent(jac)
		if err != nil {
			return
		}
	}
	sta.Pack(sdv)

	// classify soft outcomes
	if nsub > 0 {
		return newFail(WarnSubsteps, "dp: converged with %d sub-increment halvings", nsub)
	}
	if hyd.fmax > o.atol {
		return newFail(WarnAccuracy, "dp: converged with residual %g above tolerance %g", hyd.fmax, o.atol)
	}
	return
}

// integrate attempts a full step and recursively halves the kinematic
// increment on convergence failures
func (o *ElastoPlastic) integrate(hyd *hydra, sta *State, cur, prev *Kinem, Δt float64, depth int, nsub *int) (err error) {
	err = hyd.step(sta, cur, prev, Δt)
	if err == nil {
		return
	}
	if f, ok := err.(*Fail); !ok || f.Kind != FailConvergence || depth >= o.NmaxSub {
		return
	}
	mid := NewKinem()
	mid.Blend(prev, cur, 0.5)
	*nsub++
	err = o.integrate(hyd, sta, mid, prev, Δt/2, depth+1, nsub)
	if err != nil {
		return
	}
	return o.integrate(hyd, sta, cur, mid, Δt/2, depth+1, nsub)
}
