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
	"gonum.org/v1/gonum/mat"
)

// Ramp expands via-points into a path with nsteps[k] linear increments
// between via[k] and via[k+1]. The returned path starts at via[0]
func Ramp(via []*Kinem, nsteps []int) (path []*Kinem) {
	if len(nsteps) != len(via)-1 {
		chk.Panic("driver: %d via-points need %d step counts, not %d", len(via), len(via)-1, len(nsteps))
	}
	path = []*Kinem{via[0]}
	for k := 0; k+1 < len(via); k++ {
		for i := 1; i <= nsteps[k]; i++ {
			p := NewKinem()
			p.Blend(via[k], via[k+1], float64(i)/float64(nsteps[k]))
			path = append(path, p)
		}
	}
	return
}

// Driver runs a model over a prescribed kinematic path
type Driver struct {

	// input
	Reg     *Registry // model registry
	Name    string    // model name
	FParams []float64 // flat parameter array

	// settings
	Silent bool    // do not show error messages
	TolJ   float64 // tolerance to check consistent tangents
	HJ     float64 // perturbation size for the numeric tangents
	VerJ   bool    // verbose check of consistent tangents

	// check consistent tangents
	TstJ *testing.T // if != nil, check the tangents against central differences

	// results
	Res   []*Stresses // stresses along the path
	Sdv   [][]float64 // state variables along the path
	Codes []int       // warning code per step, zero if clean
}

// Init initialises driver
func (o *Driver) Init(reg *Registry, name string, fparams []float64) (err error) {
	o.Reg = reg
	o.Name = name
	o.FParams = fparams
	o.TolJ = 1e-4
	o.HJ = 1e-6
	o.VerJ = chk.Verbose
	mdl, err := reg.New(name)
	if err != nil {
		return
	}
	prms, err := ParseFParams(fparams)
	if err != nil {
		return
	}
	return mdl.Init(prms)
}

// Run integrates the response along path, a sequence of kinematic
// configurations starting at the reference state. Stresses and state
// variables after each increment are stored in Res and Sdv. Warning codes
// are recorded in Codes and do not stop the run; failures do
func (o *Driver) Run(t0, Δt float64, path []*Kinem) (err error) {

	// allocate results arrays
	np := len(path)
	mdl, err := o.Reg.New(o.Name)
	if err != nil {
		return
	}
	nsdv := mdl.Nsdv()
	o.Res = make([]*Stresses, np)
	o.Sdv = make([][]float64, np)
	o.Codes = make([]int, np)
	o.Res[0] = NewStresses()
	o.Sdv[0] = make([]float64, nsdv)

	// update states
	sdv := make([]float64, nsdv)
	jac := NewJacobians()
	t := t0
	for i := 1; i < np; i++ {
		t += Δt
		copy(sdv, o.Sdv[i-1])
		res := NewStresses()
		code, msg := EvaluateModel(o.Reg, o.Name, []float64{t, Δt}, o.FParams,
			path[i].GradU, path[i].Phi, path[i].GradPhi,
			path[i-1].GradU, path[i-1].Phi, path[i-1].GradPhi,
			sdv, nil, nil, res.PK2, res.Sig, res.M, jac)
		if code > 0 {
			if !o.Silent {
				io.Pfred("driver: step %d failed with code %d: %s\n", i, code, msg)
			}
			return newFail(code, "driver: step %d failed: %s", i, msg)
		}
		o.Res[i] = res
		o.Sdv[i] = make([]float64, nsdv)
		copy(o.Sdv[i], sdv)
		o.Codes[i] = code

		// check consistent tangents
		if o.TstJ != nil {
			o.checkJ(i, t, Δt, path[i], path[i-1], jac)
		}
	}
	return
}

// checkJ compares the analytic tangents of step i against central differences
func (o *Driver) checkJ(i int, t, Δt float64, cur, prev *Kinem, jac *Jacobians) {

	// numeric tangents
	num := mat.NewDense(45, 45, nil)
	code, msg := NumGradients(num, o.Reg, o.Name, []float64{t, Δt}, o.FParams,
		cur.GradU, cur.Phi, cur.GradPhi,
		prev.GradU, prev.Phi, prev.GradPhi,
		o.Sdv[i-1], o.HJ)
	if code > 0 {
		o.TstJ.Errorf("driver: numeric tangents at step %d failed with code %d: %s\n", i, code, msg)
		return
	}

	// assemble analytic matrix
	ana := la.MatAlloc(45, 45)
	blocks := [][][]float64{
		jac.DPk2DGradU, jac.DPk2DPhi, jac.DPk2DGradPhi,
		jac.DSigDGradU, jac.DSigDPhi, jac.DSigDGradPhi,
		jac.DMDGradU, jac.DMDPhi, jac.DMDGradPhi,
	}
	rowoff := []int{0, 0, 0, 9, 9, 9, 18, 18, 18}
	coloff := []int{0, 9, 18, 0, 9, 18, 0, 9, 18}
	for b, blk := range blocks {
		for r := 0; r < len(blk); r++ {
			for c := 0; c < len(blk[r]); c++ {
				ana[rowoff[b]+r][coloff[b]+c] = blk[r][c]
			}
		}
	}

	// compare with a combined absolute and relative tolerance
	var maxdiff float64
	var rworst, cworst int
	for r := 0; r < 45; r++ {
		for c := 0; c < 45; c++ {
			diff := math.Abs(ana[r][c]-num.At(r, c)) / (1.0 + math.Abs(ana[r][c]))
			if diff > maxdiff {
				maxdiff, rworst, cworst = diff, r, c
			}
		}
	}
	if o.VerJ {
		io.Pf("step %2d: maxdiff = %v @ (%d,%d): ana=%v num=%v\n", i, maxdiff, rworst, cworst, ana[rworst][cworst], num.At(rworst, cworst))
	}
	if maxdiff > o.TolJ {
		o.TstJ.Errorf("driver: tangent check at step %d failed: maxdiff = %v @ (%d,%d)\n", i, maxdiff, rworst, cworst)
	}
}
