// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gomm/tsr"
)

// Moduli holds the elastic stiffness operators in Voigt form. A maps the
// Green-Lagrange strain to stress, B the micro-strain, D couples the two and
// C maps the higher-order deformation measure to the couple stress
type Moduli struct {
	A [][]float64 // 9x9 macro stiffness
	B [][]float64 // 9x9 micro stiffness
	C [][]float64 // 27x27 higher-order stiffness
	D [][]float64 // 9x9 coupling stiffness
}

// NewModuli computes the stiffness operators from the material constants.
// τs must have 11 entries
func NewModuli(λ, μ, η, τ, κ, ν, σ float64, τs []float64, τd, σd float64) (o *Moduli) {
	chk.IntAssert(len(τs), 11)
	o = new(Moduli)
	o.A = la.MatAlloc(9, 9)
	o.B = la.MatAlloc(9, 9)
	o.C = la.MatAlloc(27, 27)
	o.D = la.MatAlloc(9, 9)
	dlt := tsr.It
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			for m := 0; m < 3; m++ {
				for n := 0; n < 3; n++ {
					r, c := tsr.Vmap[k][l], tsr.Vmap[m][n]
					o.A[r][c] = λ*dlt[k][l]*dlt[m][n] + μ*(dlt[k][m]*dlt[l][n]+dlt[k][n]*dlt[l][m])
					o.B[r][c] = (η-τ)*dlt[k][l]*dlt[m][n] + κ*dlt[k][m]*dlt[l][n] + ν*dlt[k][n]*dlt[l][m] -
						σ*(dlt[k][m]*dlt[l][n]+dlt[k][n]*dlt[l][m])
					o.D[r][c] = τd*dlt[k][l]*dlt[m][n] + σd*(dlt[k][m]*dlt[l][n]+dlt[k][n]*dlt[l][m])
				}
			}
		}
	}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			for m := 0; m < 3; m++ {
				r := 9*k + tsr.Vmap[l][m]
				for n := 0; n < 3; n++ {
					for p := 0; p < 3; p++ {
						for q := 0; q < 3; q++ {
							c := 9*n + tsr.Vmap[p][q]
							o.C[r][c] = τs[0]*(dlt[k][l]*dlt[m][n]*dlt[p][q]+dlt[k][q]*dlt[l][m]*dlt[n][p]) +
								τs[1]*(dlt[k][l]*dlt[m][p]*dlt[n][q]+dlt[k][m]*dlt[l][q]*dlt[n][p]) +
								τs[2]*dlt[k][l]*dlt[m][q]*dlt[n][p] +
								τs[3]*dlt[k][n]*dlt[l][m]*dlt[p][q] +
								τs[4]*(dlt[k][m]*dlt[l][n]*dlt[p][q]+dlt[k][p]*dlt[l][m]*dlt[n][q]) +
								τs[5]*dlt[k][m]*dlt[l][p]*dlt[n][q] +
								τs[6]*dlt[k][n]*dlt[l][p]*dlt[m][q] +
								τs[7]*(dlt[k][p]*dlt[l][q]*dlt[m][n]+dlt[k][q]*dlt[l][n]*dlt[m][p]) +
								τs[8]*dlt[k][n]*dlt[l][q]*dlt[m][p] +
								τs[9]*dlt[k][p]*dlt[l][n]*dlt[m][q] +
								τs[10]*dlt[k][q]*dlt[l][p]*dlt[m][n]
						}
					}
				}
			}
		}
	}
	return
}

// Measures holds the deformation measures of one configuration
type Measures struct {
	F    [][]float64 // 3x3 deformation gradient
	Chi  [][]float64 // 3x3 micro-deformation tensor
	Gchi [][]float64 // 3x9 gradient of micro-deformation
	C    [][]float64 // 3x3 right Cauchy-Green tensor
	Ci   [][]float64 // 3x3 inverse of C
	Psi  [][]float64 // 3x3 micro-deformation measure Fᵀ·χ
	Gam  [][]float64 // 3x9 higher-order measure Fᵀ·gradχ
	Ev   []float64   // 9 packed Green-Lagrange strain
	Epsv []float64   // 9 packed micro-strain
	Gamv []float64   // 27 packed higher-order measure
}

// NewMeasures allocates a set of deformation measures
func NewMeasures() (o *Measures) {
	o = new(Measures)
	o.F = la.MatAlloc(3, 3)
	o.Chi = la.MatAlloc(3, 3)
	o.Gchi = la.MatAlloc(3, 9)
	o.C = la.MatAlloc(3, 3)
	o.Ci = la.MatAlloc(3, 3)
	o.Psi = la.MatAlloc(3, 3)
	o.Gam = la.MatAlloc(3, 9)
	o.Ev = make([]float64, 9)
	o.Epsv = make([]float64, 9)
	o.Gamv = make([]float64, 27)
	return
}

// Calc computes all measures for a kinematic configuration
func (o *Measures) Calc(kin *Kinem) (err error) {
	err = tsr.DefGrad(o.F, kin.GradU)
	if err != nil {
		return newFail(FailSingular, "%v", err)
	}
	tsr.AsmChi(o.Chi, kin.Phi)
	tsr.AsmGradChi(o.Gchi, kin.GradPhi)
	tsr.RightCG(o.C, o.F)
	_, err = la.MatInv(o.Ci, o.C, tsr.MINDET)
	if err != nil {
		return newFail(FailSingular, "cannot invert right Cauchy-Green tensor: %v", err)
	}
	tsr.PsiTen(o.Psi, o.F, o.Chi)
	tsr.GammaTen(o.Gam, o.F, o.Gchi)
	tsr.GreenStrain(o.Ev, o.C)
	tsr.MicroStrain(o.Epsv, o.Psi)
	tsr.Mat2Vec27(o.Gamv, o.Gam)
	return nil
}

// StressRef computes the reference configuration stress measures from the
// elastic strains Ee, εe and Γe. The geometric factors (C⁻¹, Ψ and Γ) come
// from the total measures in ms
//   PK2  = A·Ee + D·εe + t1·xᵀ + (C·Γe)·yᵀ
//   Sig  = symmetric part of the same terms (cross terms doubled)
//   M    = cyclic permutation of C·Γe
// with t1 = B·εe + D·Ee, x = C⁻¹·Ψ and y = C⁻¹·Γ
func StressRef(pk2, sig, m []float64, mod *Moduli, ms *Measures, Ee, εe, Γe []float64) {

	// t1 = B·εe + D·Ee
	t1v := make([]float64, 9)
	tmp := make([]float64, 9)
	la.MatVecMul(t1v, 1, mod.B, εe)
	la.MatVecMul(tmp, 1, mod.D, Ee)
	la.VecAdd(t1v, 1, tmp)
	T1 := la.MatAlloc(3, 3)
	tsr.Vec2Ten(T1, t1v)

	// geometric factors
	X := la.MatAlloc(3, 3)
	Y := la.MatAlloc(3, 9)
	la.MatMul(X, 1, ms.Ci, ms.Psi)
	la.MatMul(Y, 1, ms.Ci, ms.Gam)

	// cg = C·Γe
	cg := make([]float64, 27)
	la.MatVecMul(cg, 1, mod.C, Γe)

	// core = A·Ee + D·εe
	core := make([]float64, 9)
	la.MatVecMul(core, 1, mod.A, Ee)
	la.MatVecMul(tmp, 1, mod.D, εe)
	la.VecAdd(core, 1, tmp)

	// cross[i][j] = t1[i][b]·x[j][b] + cg[(i,(b,c))]·y[j][(b,c)]
	cross := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for b := 0; b < 3; b++ {
				cross[i][j] += T1[i][b] * X[j][b]
			}
			for bc := 0; bc < 9; bc++ {
				cross[i][j] += cg[9*i+bc] * Y[j][bc]
			}
		}
	}

	// assemble
	for a := 0; a < 9; a++ {
		i, j := tsr.Pairs[a][0], tsr.Pairs[a][1]
		pk2[a] = core[a] + cross[i][j]
		sig[a] = core[a] + cross[i][j] + cross[j][i]
	}
	tsr.PermCyc27(m, cg)
}

// ElastDerivs holds the derivatives of the stress measures with respect to
// the elastic strains (strain blocks) and with respect to the total measures
// at fixed elastic strains (geometry blocks)
type ElastDerivs struct {

	// strain blocks
	DpDE   [][]float64 // 9x9   dPK2/dEe
	DpDEps [][]float64 // 9x9   dPK2/dεe
	DpDGam [][]float64 // 9x27  dPK2/dΓe
	DsDE   [][]float64 // 9x9   dSig/dEe
	DsDEps [][]float64 // 9x9   dSig/dεe
	DsDGam [][]float64 // 9x27  dSig/dΓe
	DmDGam [][]float64 // 27x27 dM/dΓe

	// geometry blocks
	DpDCg   [][]float64 // 9x9   dPK2/dC at fixed strains
	DpDPsig [][]float64 // 9x9   dPK2/dΨ at fixed strains
	DpDGamg [][]float64 // 9x27  dPK2/dΓ at fixed strains
	DsDCg   [][]float64 // 9x9
	DsDPsig [][]float64 // 9x9
	DsDGamg [][]float64 // 9x27

	// auxiliary
	t1v  []float64   // B·εe + D·Ee
	cg   []float64   // C·Γe
	tmp  []float64   // workspace
	T1   [][]float64 // unpacked t1
	X    [][]float64 // C⁻¹·Ψ
	Y    [][]float64 // C⁻¹·Γ
	W    [][]float64 // t1·Ψᵀ + (C·Γe)·Γᵀ
	dCi  [][]float64 // 9x9 dC⁻¹/dC
	scr9 [][]float64 // 9x9 workspace
	scrG [][]float64 // 9x27 workspace
}

// NewElastDerivs allocates the derivative blocks
func NewElastDerivs() (o *ElastDerivs) {
	o = new(ElastDerivs)
	o.DpDE = la.MatAlloc(9, 9)
	o.DpDEps = la.MatAlloc(9, 9)
	o.DpDGam = la.MatAlloc(9, 27)
	o.DsDE = la.MatAlloc(9, 9)
	o.DsDEps = la.MatAlloc(9, 9)
	o.DsDGam = la.MatAlloc(9, 27)
	o.DmDGam = la.MatAlloc(27, 27)
	o.DpDCg = la.MatAlloc(9, 9)
	o.DpDPsig = la.MatAlloc(9, 9)
	o.DpDGamg = la.MatAlloc(9, 27)
	o.DsDCg = la.MatAlloc(9, 9)
	o.DsDPsig = la.MatAlloc(9, 9)
	o.DsDGamg = la.MatAlloc(9, 27)
	o.t1v = make([]float64, 9)
	o.cg = make([]float64, 27)
	o.tmp = make([]float64, 9)
	o.T1 = la.MatAlloc(3, 3)
	o.X = la.MatAlloc(3, 3)
	o.Y = la.MatAlloc(3, 9)
	o.W = la.MatAlloc(3, 3)
	o.dCi = la.MatAlloc(9, 9)
	o.scr9 = la.MatAlloc(9, 9)
	o.scrG = la.MatAlloc(9, 27)
	return
}

// Calc computes all derivative blocks at the given elastic strains and total
// measures
func (o *ElastDerivs) Calc(mod *Moduli, ms *Measures, Ee, εe, Γe []float64) {

	// auxiliary quantities
	la.MatVecMul(o.t1v, 1, mod.B, εe)
	la.MatVecMul(o.tmp, 1, mod.D, Ee)
	la.VecAdd(o.t1v, 1, o.tmp)
	tsr.Vec2Ten(o.T1, o.t1v)
	la.MatMul(o.X, 1, ms.Ci, ms.Psi)
	la.MatMul(o.Y, 1, ms.Ci, ms.Gam)
	la.MatVecMul(o.cg, 1, mod.C, Γe)
	tsr.DerivInvDA(o.dCi, ms.Ci)

	// strain blocks
	tsr.DotLeading(o.scr9, o.X, mod.D)
	tsr.SymRows(o.DsDE, o.scr9)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			o.DpDE[r][c] = mod.A[r][c] + o.scr9[r][c]
			o.DsDE[r][c] += mod.A[r][c]
		}
	}
	tsr.DotLeading(o.scr9, o.X, mod.B)
	tsr.SymRows(o.DsDEps, o.scr9)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			o.DpDEps[r][c] = mod.D[r][c] + o.scr9[r][c]
			o.DsDEps[r][c] += mod.D[r][c]
		}
	}
	tsr.DotLeading27(o.DpDGam, o.Y, mod.C)
	tsr.SymRows(o.DsDGam, o.DpDGam)
	for r := 0; r < 27; r++ {
		copy(o.DmDGam[r], mod.C[tsr.Cperm[r]])
	}

	// geometry blocks
	for i := 0; i < 3; i++ {
		for r := 0; r < 3; r++ {
			o.W[i][r] = 0
			for b := 0; b < 3; b++ {
				o.W[i][r] += o.T1[i][b] * ms.Psi[r][b]
			}
			for bc := 0; bc < 9; bc++ {
				o.W[i][r] += o.cg[9*i+bc] * ms.Gam[r][bc]
			}
		}
	}
	tsr.DotTrailing(o.DpDCg, o.W, o.dCi)
	tsr.SymRows(o.DsDCg, o.DpDCg)
	tsr.OuterRight(o.DpDPsig, o.T1, ms.Ci)
	tsr.SymRows(o.DsDPsig, o.DpDPsig)
	tsr.OuterRight27(o.DpDGamg, o.cg, ms.Ci)
	tsr.SymRows(o.DsDGamg, o.DpDGamg)
}

// Mstiff fills the 45x45 matrix of stress derivatives with respect to the
// elastic strains. Rows and columns follow the order PK2/E, Sig/ε, M/Γ
func (o *ElastDerivs) Mstiff(K [][]float64) {
	la.MatFill(K, 0)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			K[r][c] = o.DpDE[r][c]
			K[r][9+c] = o.DpDEps[r][c]
			K[9+r][c] = o.DsDE[r][c]
			K[9+r][9+c] = o.DsDEps[r][c]
		}
		for c := 0; c < 27; c++ {
			K[r][18+c] = o.DpDGam[r][c]
			K[9+r][18+c] = o.DsDGam[r][c]
		}
	}
	for r := 0; r < 27; r++ {
		for c := 0; c < 27; c++ {
			K[18+r][18+c] = o.DmDGam[r][c]
		}
	}
}
