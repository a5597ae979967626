// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msolid implements constitutive models for micromorphic solids.
// Stress measures (second Piola-Kirchhoff stress, symmetric micro-stress and
// higher-order couple stress) are computed in the reference configuration
// from the displacement gradient, the micro-displacement and its gradient.
// Second-order quantities are packed into 9-component vectors and
// third-order quantities into 27-component vectors following the ordering
// defined in the tsr package
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// Kinem holds the kinematic configuration of a material point
type Kinem struct {
	GradU   [][]float64 // 3x3 displacement gradient w.r.t current coordinates
	Phi     []float64   // 9-component packed micro-displacement
	GradPhi [][]float64 // 9x3 gradient of packed micro-displacement
}

// NewKinem allocates a zeroed kinematic configuration
func NewKinem() (o *Kinem) {
	o = new(Kinem)
	o.GradU = la.MatAlloc(3, 3)
	o.Phi = make([]float64, 9)
	o.GradPhi = la.MatAlloc(9, 3)
	return
}

// Set copies another configuration into this one
func (o *Kinem) Set(other *Kinem) {
	la.MatCopy(o.GradU, 1, other.GradU)
	copy(o.Phi, other.Phi)
	la.MatCopy(o.GradPhi, 1, other.GradPhi)
}

// GetCopy returns a copy of this configuration
func (o *Kinem) GetCopy() (p *Kinem) {
	p = NewKinem()
	p.Set(o)
	return
}

// Blend sets this configuration to (1-w)·a + w·b
func (o *Kinem) Blend(a, b *Kinem, w float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.GradU[i][j] = (1.0-w)*a.GradU[i][j] + w*b.GradU[i][j]
		}
	}
	for p := 0; p < 9; p++ {
		o.Phi[p] = (1.0-w)*a.Phi[p] + w*b.Phi[p]
		for x := 0; x < 3; x++ {
			o.GradPhi[p][x] = (1.0-w)*a.GradPhi[p][x] + w*b.GradPhi[p][x]
		}
	}
}

// Stresses holds the stress measures in the reference configuration
type Stresses struct {
	PK2 []float64 // 9-component second Piola-Kirchhoff stress
	Sig []float64 // 9-component symmetric micro-stress
	M   []float64 // 27-component higher-order couple stress
}

// NewStresses allocates zeroed stress measures
func NewStresses() (o *Stresses) {
	o = new(Stresses)
	o.PK2 = make([]float64, 9)
	o.Sig = make([]float64, 9)
	o.M = make([]float64, 27)
	return
}

// Set copies another set of stress measures into this one
func (o *Stresses) Set(other *Stresses) {
	copy(o.PK2, other.PK2)
	copy(o.Sig, other.Sig)
	copy(o.M, other.M)
}

// GetCopy returns a copy of these stress measures
func (o *Stresses) GetCopy() (p *Stresses) {
	p = NewStresses()
	p.Set(o)
	return
}

// Jacobians holds the derivatives of the stress measures with respect to the
// kinematic inputs. Rows follow the packing of the stress measures. Columns
// follow: the row-major flattening 3a+b of grad_u, the packing of phi, and
// the row-major flattening 3p+x of grad_phi
type Jacobians struct {
	DPk2DGradU   [][]float64 // 9x9
	DPk2DPhi     [][]float64 // 9x9
	DPk2DGradPhi [][]float64 // 9x27
	DSigDGradU   [][]float64 // 9x9
	DSigDPhi     [][]float64 // 9x9
	DSigDGradPhi [][]float64 // 9x27
	DMDGradU     [][]float64 // 27x9
	DMDPhi       [][]float64 // 27x9
	DMDGradPhi   [][]float64 // 27x27
}

// NewJacobians allocates zeroed Jacobians
func NewJacobians() (o *Jacobians) {
	o = new(Jacobians)
	o.DPk2DGradU = la.MatAlloc(9, 9)
	o.DPk2DPhi = la.MatAlloc(9, 9)
	o.DPk2DGradPhi = la.MatAlloc(9, 27)
	o.DSigDGradU = la.MatAlloc(9, 9)
	o.DSigDPhi = la.MatAlloc(9, 9)
	o.DSigDGradPhi = la.MatAlloc(9, 27)
	o.DMDGradU = la.MatAlloc(27, 9)
	o.DMDPhi = la.MatAlloc(27, 9)
	o.DMDGradPhi = la.MatAlloc(27, 27)
	return
}

// Model defines the interface for micromorphic material models
type Model interface {

	// Init initialises the model with parameters
	Init(prms fun.Prms) error

	// GetPrms gets the parameters
	GetPrms() fun.Prms

	// Nsdv returns the number of state variables
	Nsdv() int

	// Evaluate integrates the response from the previous to the current
	// configuration and fills res. jac may be nil, in which case the
	// consistent tangents are not computed. sdv holds the state variables
	// and is updated in place on success. t is the current time and Δt the
	// increment from the previous configuration. A nil error or a warning
	// (see IsWarning) means res, jac and sdv are valid
	Evaluate(res *Stresses, jac *Jacobians, t, Δt float64, cur, prev *Kinem, sdv []float64) error
}

// Registry holds the available material models; name => allocator
type Registry struct {
	allocators map[string]func() Model
}

// NewRegistry returns a registry with the built-in models
func NewRegistry() (o *Registry) {
	o = new(Registry)
	o.allocators = map[string]func() Model{
		"dp": func() Model { return new(ElastoPlastic) },
	}
	return
}

// Register adds a model allocator to the registry
func (o *Registry) Register(name string, alloc func() Model) error {
	if _, ok := o.allocators[name]; ok {
		return newFail(FailInput, "model %q is already registered", name)
	}
	o.allocators[name] = alloc
	return nil
}

// New allocates a model by name
func (o *Registry) New(name string) (Model, error) {
	alloc, ok := o.allocators[name]
	if !ok {
		return nil, newFail(FailInput, "cannot find model named %q", name)
	}
	return alloc(), nil
}

// Models returns the sorted names of the registered models
func (o *Registry) Models() (names []string) {
	for name := range o.allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
