// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testvals returns a deterministic sequence of values in [-0.5, 0.5)
func testvals(n int, shift float64) (v []float64) {
	v = make([]float64, n)
	s := shift
	for i := 0; i < n; i++ {
		s = math.Mod(s*997.0+0.37, 1.0)
		v[i] = s - 0.5
	}
	return
}

// testmat returns a deterministic m x n matrix
func testmat(m, n int, shift float64) (a [][]float64) {
	v := testvals(m*n, shift)
	a = make([][]float64, m)
	for i := 0; i < m; i++ {
		a[i] = v[i*n : (i+1)*n]
	}
	return
}
