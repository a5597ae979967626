// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// Nsurf is the number of yield surfaces: one for the macro stress, one for
// the micro-stress and one per trailing index of the couple stress
const Nsurf = 5

// NsdvDP is the number of scalar state variables of the elasto-plastic model
const NsdvDP = 9 + 9 + 27 + Nsurf + Nsurf

// State holds the plastic state of a material point, including ephemeral
// data from the latest update
type State struct {

	// persistent
	Ep   []float64 // plastic Green-Lagrange strain [9]
	Epm  []float64 // plastic micro-strain [9]
	Gp   []float64 // plastic higher-order strain [27]
	Gdot []float64 // plastic multiplier rates of the last increment [Nsurf]
	Z    []float64 // hardening variables [Nsurf]

	// ephemeral
	Dgam    []float64 // Δγ: multiplier increments of the latest update [Nsurf]
	Loading bool      // plastic loading occurred in the latest update
}

// NewState allocates a zeroed state
func NewState() (o *State) {
	o = new(State)
	o.Ep = make([]float64, 9)
	o.Epm = make([]float64, 9)
	o.Gp = make([]float64, 27)
	o.Gdot = make([]float64, Nsurf)
	o.Z = make([]float64, Nsurf)
	o.Dgam = make([]float64, Nsurf)
	return
}

// Set copies another state into this one
//  Note: both states must have been pre-allocated; no checks are performed
func (o *State) Set(other *State) {
	copy(o.Ep, other.Ep)
	copy(o.Epm, other.Epm)
	copy(o.Gp, other.Gp)
	copy(o.Gdot, other.Gdot)
	copy(o.Z, other.Z)
	copy(o.Dgam, other.Dgam)
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() (other *State) {
	other = NewState()
	other.Set(o)
	return
}

// Unpack reads the persistent variables from a flat array laid out as
// [Ep | Epm | Gp | Gdot | Z]
func (o *State) Unpack(sdv []float64) {
	copy(o.Ep, sdv[:9])
	copy(o.Epm, sdv[9:18])
	copy(o.Gp, sdv[18:45])
	copy(o.Gdot, sdv[45:50])
	copy(o.Z, sdv[50:55])
}

// Pack writes the persistent variables into a flat array
func (o *State) Pack(sdv []float64) {
	copy(sdv[:9], o.Ep)
	copy(sdv[9:18], o.Epm)
	copy(sdv[18:45], o.Gp)
	copy(sdv[45:50], o.Gdot)
	copy(sdv[50:55], o.Z)
}
