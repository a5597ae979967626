// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// fparamBlocks lists the counted blocks of the flat parameter array, in
// order. Each block is preceded by its own length
var fparamBlocks = [][]string{
	{"c0mac", "Hmac"},
	{"c0mic", "Hmic"},
	{"c0grd", "Hgrd"},
	{"phiFmac", "betFmac"},
	{"phiFmic", "betFmic"},
	{"phiFgrd", "betFgrd"},
	{"phiYmac", "betYmac"},
	{"phiYmic", "betYmic"},
	{"phiYgrd", "betYgrd"},
	{"lam", "mu"},
	{"eta", "tau", "kap", "nu", "sig"},
	{"tau1", "tau2", "tau3", "tau4", "tau5", "tau6", "tau7", "tau8", "tau9", "tau10", "tau11"},
	{"tauD", "sigD"},
}

// fparamTail lists the bare values following the counted blocks
var fparamTail = []string{"alpMac", "alpMic", "alpGrd", "rtol", "atol"}

// ParseFParams converts the flat self-describing parameter array of the host
// solver into named parameters. The array holds 13 counted blocks, each
// preceded by its own length, followed by 5 bare values
func ParseFParams(fparams []float64) (prms fun.Prms, err error) {
	pos := 0
	for k, names := range fparamBlocks {
		if pos >= len(fparams) {
			return nil, newFail(FailInput, "fparams: block %d is missing", k)
		}
		n := int(fparams[pos])
		if n != len(names) {
			return nil, newFail(FailInput, "fparams: block %d holds %d values, expected %d", k, n, len(names))
		}
		pos++
		if pos+n > len(fparams) {
			return nil, newFail(FailInput, "fparams: block %d is truncated", k)
		}
		for i, name := range names {
			prms = append(prms, &fun.Prm{N: name, V: fparams[pos+i]})
		}
		pos += n
	}
	if len(fparams)-pos != len(fparamTail) {
		return nil, newFail(FailInput, "fparams: %d values after the counted blocks, expected %d", len(fparams)-pos, len(fparamTail))
	}
	for i, name := range fparamTail {
		prms = append(prms, &fun.Prm{N: name, V: fparams[pos+i]})
	}
	return
}

// checkDims returns true if m is a rows by cols matrix
func checkDims(m [][]float64, rows, cols int) bool {
	if len(m) != rows {
		return false
	}
	for _, row := range m {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// EvaluateModel is the flat entry point for host solvers. It allocates the
// model named name from reg, initialises it from the flat parameter array and
// integrates the response over one increment, filling pk2 (9), sig (9) and
// m (27). jac may be nil. time holds the current time and the increment.
// curXdof and prevXdof carry additional degrees of freedom for extended
// models and are ignored here. sdv is updated in place on success. The
// returned code is zero on success, negative on success with a warning and
// positive on failure; msg carries the failure or warning text
func EvaluateModel(reg *Registry, name string, time, fparams []float64,
	curGradU [][]float64, curPhi []float64, curGradPhi [][]float64,
	prevGradU [][]float64, prevPhi []float64, prevGradPhi [][]float64,
	sdv, curXdof, prevXdof []float64,
	pk2, sig, m []float64, jac *Jacobians) (code int, msg string) {

	// model
	mdl, err := reg.New(name)
	if err != nil {
		return ErrCode(err), err.Error()
	}
	prms, err := ParseFParams(fparams)
	if err != nil {
		return ErrCode(err), err.Error()
	}
	err = mdl.Init(prms)
	if err != nil {
		return ErrCode(err), err.Error()
	}

	// check dimensions
	switch {
	case len(time) != 2:
		return FailInput, "time must hold the current time and the increment"
	case !checkDims(curGradU, 3, 3) || !checkDims(prevGradU, 3, 3):
		return FailInput, "grad_u must be a 3 by 3 matrix"
	case len(curPhi) != 9 || len(prevPhi) != 9:
		return FailInput, "phi must hold 9 components"
	case !checkDims(curGradPhi, 9, 3) || !checkDims(prevGradPhi, 9, 3):
		return FailInput, "grad_phi must be a 9 by 3 matrix"
	case len(sdv) != mdl.Nsdv():
		return FailInput, "sdv must hold the state variables of the model"
	case len(pk2) != 9 || len(sig) != 9 || len(m) != 27:
		return FailInput, "outputs must hold 9, 9 and 27 components"
	}

	// kinematics
	cur, prev := NewKinem(), NewKinem()
	la.MatCopy(cur.GradU, 1, curGradU)
	copy(cur.Phi, curPhi)
	la.MatCopy(cur.GradPhi, 1, curGradPhi)
	la.MatCopy(prev.GradU, 1, prevGradU)
	copy(prev.Phi, prevPhi)
	la.MatCopy(prev.GradPhi, 1, prevGradPhi)

	// evaluate
	res := NewStresses()
	err = mdl.Evaluate(res, jac, time[0], time[1], cur, prev, sdv)
	code = ErrCode(err)
	if code > 0 {
		return code, err.Error()
	}
	copy(pk2, res.PK2)
	copy(sig, res.Sig)
	copy(m, res.M)
	if err != nil {
		msg = err.Error()
	}
	return
}

// NumGradients computes the Jacobian of the stress measures with respect to
// the kinematic inputs by central differences of EvaluateModel, for checking
// the analytic tangents. dst must be a 45 by 45 dense matrix; rows follow the
// packing pk2, sig, m and columns the flattening grad_u (3a+b), phi,
// grad_phi (3p+x). h is the perturbation size. Each probe starts from a
// pristine copy of sdv
func NumGradients(dst *mat.Dense, reg *Registry, name string, time, fparams []float64,
	curGradU [][]float64, curPhi []float64, curGradPhi [][]float64,
	prevGradU [][]float64, prevPhi []float64, prevGradPhi [][]float64,
	sdv []float64, h float64) (code int, msg string) {

	// check
	if dst == nil {
		return FailInput, "dst must be a 45 by 45 matrix"
	}
	if r, c := dst.Dims(); r != 45 || c != 45 {
		return FailInput, "dst must be a 45 by 45 matrix"
	}
	if !checkDims(curGradU, 3, 3) || len(curPhi) != 9 || !checkDims(curGradPhi, 9, 3) {
		return FailInput, "current kinematics have wrong dimensions"
	}

	// base point
	x := make([]float64, 45)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			x[3*a+b] = curGradU[a][b]
		}
	}
	copy(x[9:18], curPhi)
	for p := 0; p < 9; p++ {
		for q := 0; q < 3; q++ {
			x[18+3*p+q] = curGradPhi[p][q]
		}
	}

	// probe function
	gu := la.MatAlloc(3, 3)
	phi := make([]float64, 9)
	gphi := la.MatAlloc(9, 3)
	svec := make([]float64, len(sdv))
	probe := func(y, x []float64) {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				gu[a][b] = x[3*a+b]
			}
		}
		copy(phi, x[9:18])
		for p := 0; p < 9; p++ {
			for q := 0; q < 3; q++ {
				gphi[p][q] = x[18+3*p+q]
			}
		}
		copy(svec, sdv)
		c, s := EvaluateModel(reg, name, time, fparams, gu, phi, gphi,
			prevGradU, prevPhi, prevGradPhi, svec, nil, nil,
			y[:9], y[9:18], y[18:], nil)
		if c > 0 {
			la.VecFill(y, 0)
			if code == 0 {
				code, msg = c, s
			}
		}
	}

	// differentiate
	fd.Jacobian(dst, probe, x, &fd.JacobianSettings{Formula: fd.Central, Step: h})
	return
}
