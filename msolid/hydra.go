// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gomm/tsr"
)

// nstress is the total number of stress components [PK2 | Sig | M]
const nstress = 45

// hydra implements the coupled stress update of all surfaces at once. The
// unknowns are the 45 stress components, the hardening variables of the
// active surfaces and their multiplier increments
type hydra struct {

	// model
	mdl *ElastoPlastic // parameters, moduli and surfaces

	// measures
	ms  *Measures // measures of the target configuration
	msn *Measures // measures of the previous configuration

	// state at the beginning of the step
	sta *State        // state; committed on success only
	epn []float64     // plastic strains at the beginning [45]
	epb []float64     // epn plus the explicit part of the midpoint rule [45]
	sn  []float64     // stresses of the previous configuration [45]
	str []float64     // trial stresses [45]
	Nn  [][][]float64 // previous flow directions [Nsurf][3][3]

	// active set
	act []int // indices of active surfaces
	na  int   // number of active surfaces
	neq int   // 45 + 2·na

	// unknowns and results
	x    []float64 // {S, z_act, Δγ_act}
	out  []float64 // converged stresses [45]
	fmax float64   // residual norm at the solution

	// scratch
	ep   []float64    // plastic strains at x [45]
	Ee   []float64    // elastic Green-Lagrange strain [9]
	εe   []float64    // elastic micro-strain [9]
	Γe   []float64    // elastic higher-order strain [27]
	sf   []float64    // stress function values [45]
	fx   []float64    // residual workspace
	ed   *ElastDerivs // elastic derivative blocks
	K    [][]float64  // 45x45 stress/strain operator
	depS [][]float64  // 45x45 dep/dS
	KdS  [][]float64  // 45x45 K·depS
	bv   []float64    // α-weighted flow direction [45]
	Kb   []float64    // K·bv [45]
	Scur [][]float64  // gathered surface stress [3][3]
	Ncur [][]float64  // current flow direction [3][3]
	dN   [][]float64  // 9x9 flow direction derivative
	dF9  []float64    // 9 yield derivative
	J    [][]float64  // Jacobian [neq][neq]
	Ji   [][]float64  // inverse of J

	// nonlinear solver
	nls num.NlSolver // solver for the coupled system
}

// newHydra allocates a stress updater for one evaluation
func newHydra(mdl *ElastoPlastic) (o *hydra) {
	o = new(hydra)
	o.mdl = mdl
	o.ms = NewMeasures()
	o.msn = NewMeasures()
	o.epn = make([]float64, nstress)
	o.epb = make([]float64, nstress)
	o.sn = make([]float64, nstress)
	o.str = make([]float64, nstress)
	o.Nn = make([][][]float64, Nsurf)
	for i := 0; i < Nsurf; i++ {
		o.Nn[i] = la.MatAlloc(3, 3)
	}
	o.act = make([]int, 0, Nsurf)
	o.out = make([]float64, nstress)
	o.ep = make([]float64, nstress)
	o.Ee = make([]float64, 9)
	o.εe = make([]float64, 9)
	o.Γe = make([]float64, 27)
	o.sf = make([]float64, nstress)
	o.ed = NewElastDerivs()
	o.K = la.MatAlloc(nstress, nstress)
	o.depS = la.MatAlloc(nstress, nstress)
	o.KdS = la.MatAlloc(nstress, nstress)
	o.bv = make([]float64, nstress)
	o.Kb = make([]float64, nstress)
	o.Scur = la.MatAlloc(3, 3)
	o.Ncur = la.MatAlloc(3, 3)
	o.dN = la.MatAlloc(9, 9)
	o.dF9 = make([]float64, 9)
	return
}

// plasticStrains computes the plastic and elastic strains for the unknowns x
// using the generalised midpoint rule
//   ep = epn + Δt·Σ(1-α_s)·γ̇n_s·Nn_s + Σ Δγ_s·α_s·N_s(S)
// The explicit sum runs over all surfaces with the multiplier rates of the
// previous increment and is folded into epb by step
func (o *hydra) plasticStrains(x []float64) {
	copy(o.ep, o.epb)
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		Δγ := x[nstress+o.na+i]
		s.gather(o.Scur, x)
		s.cone(o.Ncur, o.Scur, o.ms.C, o.ms.Ci, s.Bf)
		for a := 0; a < 9; a++ {
			I, J := tsr.Pairs[a][0], tsr.Pairs[a][1]
			o.ep[s.idx[a]] += Δγ * s.α * o.Ncur[I][J]
		}
	}
	for a := 0; a < 9; a++ {
		o.Ee[a] = o.ms.Ev[a] - o.ep[a]
		o.εe[a] = o.ms.Epsv[a] - o.ep[9+a]
	}
	for a := 0; a < 27; a++ {
		o.Γe[a] = o.ms.Gamv[a] - o.ep[18+a]
	}
}

// ffcn is the residual of the coupled system
func (o *hydra) ffcn(fx, x []float64) error {
	o.plasticStrains(x)
	StressRef(o.sf[:9], o.sf[9:18], o.sf[18:], o.mdl.mod, o.ms, o.Ee, o.εe, o.Γe)
	for r := 0; r < nstress; r++ {
		fx[r] = (x[r] - o.sf[r]) / o.mdl.sscale
	}
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		z := x[nstress+i]
		Δγ := x[nstress+o.na+i]
		fx[nstress+i] = z - o.sta.Z[si] - Δγ*s.Af
		s.gather(o.Scur, x)
		fx[nstress+o.na+i] = s.yieldF(o.Scur, o.ms.C, o.ms.Ci, z) / s.fcoef
	}
	return nil
}

// JfcnD is the analytical Jacobian of the coupled system
func (o *hydra) JfcnD(J [][]float64, x []float64) (err error) {
	o.plasticStrains(x)
	o.ed.Calc(o.mdl.mod, o.ms, o.Ee, o.εe, o.Γe)
	o.ed.Mstiff(o.K)

	// dep/dS
	la.MatFill(o.depS, 0)
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		Δγ := x[nstress+o.na+i]
		s.gather(o.Scur, x)
		s.dConeDS(o.dN, o.Scur, o.ms.C, o.ms.Ci)
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				o.depS[s.idx[r]][s.idx[c]] += Δγ * s.α * o.dN[r][c]
			}
		}
	}
	la.MatMul(o.KdS, 1, o.K, o.depS)

	// stress rows
	la.MatFill(J, 0)
	for r := 0; r < nstress; r++ {
		for c := 0; c < nstress; c++ {
			J[r][c] = o.KdS[r][c] / o.mdl.sscale
		}
		J[r][r] += 1.0 / o.mdl.sscale
	}
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		s.gather(o.Scur, x)
		s.cone(o.Ncur, o.Scur, o.ms.C, o.ms.Ci, s.Bf)
		la.VecFill(o.bv, 0)
		for a := 0; a < 9; a++ {
			I, Jt := tsr.Pairs[a][0], tsr.Pairs[a][1]
			o.bv[s.idx[a]] = s.α * o.Ncur[I][Jt]
		}
		la.MatVecMul(o.Kb, 1, o.K, o.bv)
		for r := 0; r < nstress; r++ {
			J[r][nstress+o.na+i] = o.Kb[r] / o.mdl.sscale
		}
	}

	// hardening and yield rows
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		J[nstress+i][nstress+i] = 1.0
		J[nstress+i][nstress+o.na+i] = -s.Af
		s.gather(o.Scur, x)
		s.dYieldDS(o.dF9, o.Scur, o.ms.C, o.ms.Ci)
		for a := 0; a < 9; a++ {
			J[nstress+o.na+i][s.idx[a]] = o.dF9[a] / s.fcoef
		}
		J[nstress+o.na+i][nstress+i] = -s.Ay * s.H / s.fcoef
	}
	return
}

// prevStress computes the converged stresses and flow directions of the
// previous configuration from the stored plastic strains
func (o *hydra) prevStress() {
	for a := 0; a < 9; a++ {
		o.Ee[a] = o.msn.Ev[a] - o.epn[a]
		o.εe[a] = o.msn.Epsv[a] - o.epn[9+a]
	}
	for a := 0; a < 27; a++ {
		o.Γe[a] = o.msn.Gamv[a] - o.epn[18+a]
	}
	StressRef(o.sn[:9], o.sn[9:18], o.sn[18:], o.mdl.mod, o.msn, o.Ee, o.εe, o.Γe)
	for si := 0; si < Nsurf; si++ {
		s := &o.mdl.surfs[si]
		s.gather(o.Scur, o.sn)
		s.cone(o.Nn[si], o.Scur, o.msn.C, o.msn.Ci, s.Bf)
	}
}

// trial computes the trial stresses (frozen multipliers) and returns the
// surfaces violating their activation threshold
func (o *hydra) trial() (active []int) {
	copy(o.ep, o.epb)
	for a := 0; a < 9; a++ {
		o.Ee[a] = o.ms.Ev[a] - o.ep[a]
		o.εe[a] = o.ms.Epsv[a] - o.ep[9+a]
	}
	for a := 0; a < 27; a++ {
		o.Γe[a] = o.ms.Gamv[a] - o.ep[18+a]
	}
	StressRef(o.sf[:9], o.sf[9:18], o.sf[18:], o.mdl.mod, o.ms, o.Ee, o.εe, o.Γe)
	copy(o.str, o.sf)
	for si := 0; si < Nsurf; si++ {
		if o.violated(si, o.sf) {
			active = append(active, si)
		}
	}
	return
}

// violated tells whether surface si exceeds its activation threshold at the
// stresses held in the 45-vector S
func (o *hydra) violated(si int, S []float64) bool {
	s := &o.mdl.surfs[si]
	s.gather(o.Scur, S)
	f := s.yieldF(o.Scur, o.ms.C, o.ms.Ci, o.sta.Z[si])
	return f > o.mdl.atol+o.mdl.rtol*s.Ay*s.cohesion(o.sta.Z[si])
}

// solveActive solves the coupled system for the current active set starting
// from the trial stresses
func (o *hydra) solveActive() (err error) {
	o.na = len(o.act)
	o.neq = nstress + 2*o.na
	o.x = make([]float64, o.neq)
	o.fx = make([]float64, o.neq)
	o.J = la.MatAlloc(o.neq, o.neq)
	o.Ji = la.MatAlloc(o.neq, o.neq)
	copy(o.x[:nstress], o.str)
	for i, si := range o.act {
		o.x[nstress+i] = o.sta.Z[si]
		o.x[nstress+o.na+i] = 0
	}
	useDn, numJ := true, false
	o.nls.Init(o.neq, o.ffcn, nil, o.JfcnD, useDn, numJ, map[string]float64{
		"atol":  o.mdl.atol,
		"rtol":  o.mdl.rtol,
		"ftol":  o.mdl.atol,
		"maxIt": float64(o.mdl.NmaxIt),
	})
	o.nls.ChkConv = false
	silent := true
	err = o.nls.Solve(o.x, silent)
	if err != nil {
		return
	}

	// residual at the solution
	o.ffcn(o.fx, o.x)
	o.fmax = 0
	for _, v := range o.fx {
		if math.Abs(v) > o.fmax {
			o.fmax = math.Abs(v)
		}
	}
	if o.fmax > o.mdl.atol*o.mdl.Bandfac {
		return newFail(FailConvergence, "stress update stalled with residual %g", o.fmax)
	}
	return
}

// step integrates from prev to cur over Δt and commits the new state on
// success
func (o *hydra) step(sta *State, cur, prev *Kinem, Δt float64) (err error) {

	// measures
	o.sta = sta
	err = o.msn.Calc(prev)
	if err != nil {
		return
	}
	err = o.ms.Calc(cur)
	if err != nil {
		return
	}

	// previous stresses and flow directions
	copy(o.epn[:9], sta.Ep)
	copy(o.epn[9:18], sta.Epm)
	copy(o.epn[18:], sta.Gp)
	o.prevStress()

	// explicit part of the midpoint rule, driven by the rates of the
	// previous increment
	copy(o.epb, o.epn)
	for si := 0; si < Nsurf; si++ {
		s := &o.mdl.surfs[si]
		if sta.Gdot[si] == 0 {
			continue
		}
		for a := 0; a < 9; a++ {
			I, J := tsr.Pairs[a][0], tsr.Pairs[a][1]
			o.epb[s.idx[a]] += Δt * (1.0 - s.α) * sta.Gdot[si] * o.Nn[si][I][J]
		}
	}

	// trial state
	o.act = o.trial()
	if len(o.act) == 0 {
		o.na = 0
		copy(o.out, o.sf)
		copy(sta.Ep, o.ep[:9])
		copy(sta.Epm, o.ep[9:18])
		copy(sta.Gp, o.ep[18:])
		la.VecFill(sta.Gdot, 0)
		la.VecFill(sta.Dgam, 0)
		sta.Loading = false
		return
	}

	// active set iterations
	for pass := 0; pass < o.mdl.NmaxPass; pass++ {
		err = o.solveActive()
		if err != nil {
			return
		}

		// drop surfaces with negative multipliers
		kept := o.act[:0]
		for i, si := range o.act {
			if o.x[nstress+o.na+i] >= 0 {
				kept = append(kept, si)
			}
		}
		if len(kept) != len(o.act) {
			o.act = kept
			if len(o.act) == 0 {
				o.act = nil
				o.na = 0
				o.trial()
				copy(o.out, o.sf)
				copy(sta.Ep, o.ep[:9])
				copy(sta.Epm, o.ep[9:18])
				copy(sta.Gp, o.ep[18:])
				la.VecFill(sta.Gdot, 0)
				la.VecFill(sta.Dgam, 0)
				sta.Loading = false
				return
			}
			continue
		}

		// admit surfaces violated at the solution
		grown := false
		for si := 0; si < Nsurf; si++ {
			in := false
			for _, sj := range o.act {
				if sj == si {
					in = true
					break
				}
			}
			if !in && o.violated(si, o.x[:nstress]) {
				o.act = append(o.act, si)
				grown = true
			}
		}
		if grown {
			continue
		}

		// commit
		o.plasticStrains(o.x)
		copy(sta.Ep, o.ep[:9])
		copy(sta.Epm, o.ep[9:18])
		copy(sta.Gp, o.ep[18:])
		la.VecFill(sta.Gdot, 0)
		la.VecFill(sta.Dgam, 0)
		for i, si := range o.act {
			Δγ := o.x[nstress+o.na+i]
			sta.Z[si] = o.x[nstress+i]
			sta.Dgam[si] = Δγ
			if Δt > 0 {
				sta.Gdot[si] = Δγ / Δt
			}
		}
		sta.Loading = true
		copy(o.out, o.x[:nstress])
		return
	}
	return newFail(FailConvergence, "active set did not settle in %d passes", o.mdl.NmaxPass)
}

// tangent computes the consistent tangents of the last converged step by
// implicit differentiation of the residual with respect to the deformation
// measures, then chains them to the kinematic inputs
func (o *hydra) tangent(jac *Jacobians) (err error) {

	// Jacobian at the solution
	neq := nstress + 2*o.na
	var x []float64
	if o.na > 0 {
		x = o.x
	} else {
		x = make([]float64, nstress)
		copy(x, o.out)
		o.J = la.MatAlloc(neq, neq)
		o.Ji = la.MatAlloc(neq, neq)
	}
	err = o.JfcnD(o.J, x)
	if err != nil {
		return
	}
	err = la.MatInvG(o.Ji, o.J, 1e-10)
	if err != nil {
		return newFail(FailConvergence, "cannot invert Jacobian for consistent tangent: %v", err)
	}

	// ∂R/∂m for m = [C | Ψ | Γ]; stress rows carry the strain chain, the
	// geometry blocks and the metric sensitivity of the plastic flow
	B := la.MatAlloc(neq, nstress)
	epC := la.MatAlloc(nstress, 9)
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		Δγ := x[nstress+o.na+i]
		s.gather(o.Scur, x)
		s.dConeDC(o.dN, o.Scur, o.ms.C, o.ms.Ci, s.Bf)
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				epC[s.idx[r]][c] += Δγ * s.α * o.dN[r][c]
			}
		}
	}
	for r := 0; r < nstress; r++ {
		for c := 0; c < 9; c++ {

			// dSF/dC: strain chain, geometry and plastic metric terms
			v := 0.5 * o.K[r][c]
			if r < 9 {
				v += o.ed.DpDCg[r][c]
			} else if r < 18 {
				v += o.ed.DsDCg[r-9][c]
			}
			for k := 0; k < nstress; k++ {
				v -= o.K[r][k] * epC[k][c]
			}
			B[r][c] = -v / o.mdl.sscale

			// dSF/dΨ
			v = o.K[r][9+c]
			if r < 9 {
				v += o.ed.DpDPsig[r][c]
			} else if r < 18 {
				v += o.ed.DsDPsig[r-9][c]
			}
			B[r][9+c] = -v / o.mdl.sscale
		}
		for c := 0; c < 27; c++ {

			// dSF/dΓ
			v := o.K[r][18+c]
			if r < 9 {
				v += o.ed.DpDGamg[r][c]
			} else if r < 18 {
				v += o.ed.DsDGamg[r-9][c]
			}
			B[r][18+c] = -v / o.mdl.sscale
		}
	}
	for i, si := range o.act {
		s := &o.mdl.surfs[si]
		s.gather(o.Scur, x)
		s.dYieldDC(o.dF9, o.Scur, o.ms.C, o.ms.Ci)
		for c := 0; c < 9; c++ {
			B[nstress+o.na+i][c] = o.dF9[c] / s.fcoef
		}
	}

	// dx/dm = -J⁻¹·∂R/∂m; only the stress rows are needed
	dxdm := la.MatAlloc(nstress, nstress)
	for r := 0; r < nstress; r++ {
		for c := 0; c < nstress; c++ {
			for k := 0; k < neq; k++ {
				dxdm[r][c] -= o.Ji[r][k] * B[k][c]
			}
		}
	}

	// kinematic chains of the target configuration
	dCdF := la.MatAlloc(9, 9)
	dFdgu := la.MatAlloc(9, 9)
	dCdgu := la.MatAlloc(9, 9)
	dΨdF := la.MatAlloc(9, 9)
	dΨdgu := la.MatAlloc(9, 9)
	dΨdφ := la.MatAlloc(9, 9)
	dΓdF := la.MatAlloc(27, 9)
	dΓdgu := la.MatAlloc(27, 9)
	dΓdgχ := la.MatAlloc(27, 27)
	dgχdgφ := la.MatAlloc(27, 27)
	dΓdgφ := la.MatAlloc(27, 27)
	tsr.DerivCdF(dCdF, o.ms.F)
	tsr.DerivFdGradU(dFdgu, o.ms.F)
	tsr.DerivPsiDF(dΨdF, o.ms.Chi)
	tsr.DerivPsiDChi(dΨdφ, o.ms.F)
	tsr.DerivGammaDF(dΓdF, o.ms.Gchi)
	tsr.DerivGammaDGchi(dΓdgχ, o.ms.F)
	tsr.DerivGchiDGradPhi(dgχdgφ)
	la.MatMul(dCdgu, 1, dCdF, dFdgu)
	la.MatMul(dΨdgu, 1, dΨdF, dFdgu)
	la.MatMul(dΓdgu, 1, dΓdF, dFdgu)
	la.MatMul(dΓdgφ, 1, dΓdgχ, dgχdgφ)

	// assemble the published blocks
	for r := 0; r < nstress; r++ {
		for c := 0; c < 9; c++ {
			vu := 0.0
			vφ := 0.0
			for k := 0; k < 9; k++ {
				vu += dxdm[r][k]*dCdgu[k][c] + dxdm[r][9+k]*dΨdgu[k][c]
				vφ += dxdm[r][9+k] * dΨdφ[k][c]
			}
			for k := 0; k < 27; k++ {
				vu += dxdm[r][18+k] * dΓdgu[k][c]
			}
			switch {
			case r < 9:
				jac.DPk2DGradU[r][c] = vu
				jac.DPk2DPhi[r][c] = vφ
			case r < 18:
				jac.DSigDGradU[r-9][c] = vu
				jac.DSigDPhi[r-9][c] = vφ
			default:
				jac.DMDGradU[r-18][c] = vu
				jac.DMDPhi[r-18][c] = vφ
			}
		}
		for c := 0; c < 27; c++ {
			vg := 0.0
			for k := 0; k < 27; k++ {
				vg += dxdm[r][18+k] * dΓdgφ[k][c]
			}
			switch {
			case r < 9:
				jac.DPk2DGradPhi[r][c] = vg
			case r < 18:
				jac.DSigDGradPhi[r-9][c] = vg
			default:
				jac.DMDGradPhi[r-18][c] = vg
			}
		}
	}
	return
}
