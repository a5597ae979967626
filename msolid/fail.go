// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/io"

// failure kinds. The values double as the codes reported to host solvers
const (
	FailInput       = 1 // invalid input data or parameters
	FailSingular    = 2 // non-invertible kinematics
	FailYieldParam  = 3 // yield surface parameters out of range
	FailConvergence = 4 // stress update did not converge
)

// warning kinds. Negative values indicate a converged update that the host
// may want to flag
const (
	WarnSubsteps = -1 // converged, but sub-incrementation was required
	WarnAccuracy = -2 // converged outside the preferred residual band
)

// Fail is a classified failure or warning of a model evaluation
type Fail struct {
	Kind int    // failure or warning kind
	Msg  string // details
}

// Error returns the message
func (o *Fail) Error() string {
	return o.Msg
}

// newFail returns a classified failure
func newFail(kind int, msg string, prm ...interface{}) *Fail {
	return &Fail{kind, io.Sf(msg, prm...)}
}

// IsWarning tells whether err is a warning; i.e. the evaluation converged
// and its results are valid
func IsWarning(err error) bool {
	if f, ok := err.(*Fail); ok {
		return f.Kind < 0
	}
	return false
}

// ErrCode translates an error into the code and message reported to host
// solvers. nil maps to 0. Unclassified errors map to FailConvergence
func ErrCode(err error) (code int, msg string) {
	if err == nil {
		return
	}
	if f, ok := err.(*Fail); ok {
		return f.Kind, f.Msg
	}
	return FailConvergence, err.Error()
}
