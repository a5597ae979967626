// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsr implements tensor operations and Voigt-notation packing for
// micromorphic continuum mechanics. General (non-symmetric) second-order
// tensors are packed into 9-component vectors and third-order tensors into
// 27-component vectors, both with the fixed ordering
//   11, 22, 33, 23, 13, 12, 32, 31, 21
// which is load-bearing for compatibility with host solvers.
package tsr

// Pairs maps the Voigt index of a second-order tensor component to its
// (row,column) indices, following the ordering 11,22,33,23,13,12,32,31,21
var Pairs = [9][2]int{{0, 0}, {1, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {2, 1}, {2, 0}, {1, 0}}

// Vmap maps (row,column) indices of a second-order tensor to its Voigt index
var Vmap = [3][3]int{{0, 5, 4}, {8, 1, 3}, {7, 6, 2}}

// Tperm maps the Voigt index of component (i,j) to the Voigt index of (j,i)
var Tperm = [9]int{0, 1, 2, 6, 7, 8, 3, 4, 5}

// Cperm implements the right positive cyclic permutation for 27-component
// vectors: out[(i,(j,k))] = in[(j,(k,i))]. Computed in init
var Cperm [27]int

func init() {
	for r := 0; r < 27; r++ {
		i := r / 9
		j, k := Pairs[r%9][0], Pairs[r%9][1]
		Cperm[r] = 9*j + Vmap[k][i]
	}
}

// I27 returns the index within a 27-component vector of component (i,(jk))
// where jk is the Voigt index of the trailing index pair
func I27(i, jk int) int {
	return 9*i + jk
}

// Ten2Vec packs a 3x3 tensor into a 9-component vector
func Ten2Vec(v []float64, T [][]float64) {
	for a := 0; a < 9; a++ {
		v[a] = T[Pairs[a][0]][Pairs[a][1]]
	}
}

// Vec2Ten unpacks a 9-component vector into a 3x3 tensor
func Vec2Ten(T [][]float64, v []float64) {
	for a := 0; a < 9; a++ {
		T[Pairs[a][0]][Pairs[a][1]] = v[a]
	}
}

// Mat2Vec27 packs a 3x9 matrix (rows: leading index, columns: Voigt index of
// the trailing pair) into a 27-component vector
func Mat2Vec27(v []float64, A [][]float64) {
	for i := 0; i < 3; i++ {
		for c := 0; c < 9; c++ {
			v[9*i+c] = A[i][c]
		}
	}
}

// Vec2Mat27 unpacks a 27-component vector into a 3x9 matrix
func Vec2Mat27(A [][]float64, v []float64) {
	for i := 0; i < 3; i++ {
		for c := 0; c < 9; c++ {
			A[i][c] = v[9*i+c]
		}
	}
}

// Ten2Vec27 packs a 3x3x3 tensor into a 27-component vector
func Ten2Vec27(v []float64, T [][][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				v[9*i+Vmap[j][k]] = T[i][j][k]
			}
		}
	}
}

// Vec2Ten27 unpacks a 27-component vector into a 3x3x3 tensor
func Vec2Ten27(T [][][]float64, v []float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				T[i][j][k] = v[9*i+Vmap[j][k]]
			}
		}
	}
}

// TranspVec sets vt to the packed transpose of v: vt[(i,j)] = v[(j,i)]
func TranspVec(vt, v []float64) {
	for a := 0; a < 9; a++ {
		vt[a] = v[Tperm[a]]
	}
}

// PermCyc27 applies the right positive cyclic permutation to a packed
// third-order tensor: w[(i,(j,k))] = v[(j,(k,i))]
func PermCyc27(w, v []float64) {
	for r := 0; r < 27; r++ {
		w[r] = v[Cperm[r]]
	}
}

// DotLeading computes the contraction of a 3x3 tensor X with a 9x9 operator
// K over the trailing index of the leading pair:
//   out[(I,J),(O,P)] = Σ_B X[J][B] * K[(I,B),(O,P)]
func DotLeading(out, X, K [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			out[r][c] = 0
			for b := 0; b < 3; b++ {
				out[r][c] += X[J][b] * K[Vmap[I][b]][c]
			}
		}
	}
}

// DotLeading27 computes the contraction of a 3x9 matrix X with a 27x27
// operator C over the trailing pair of the leading triple:
//   out[(I,J),(N,(P,Q))] = Σ_(L,M) X[J][(L,M)] * C[(I,(L,M)),(N,(P,Q))]
func DotLeading27(out, X, C [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 27; c++ {
			out[r][c] = 0
			for lm := 0; lm < 9; lm++ {
				out[r][c] += X[J][lm] * C[9*I+lm][c]
			}
		}
	}
}

// DotTrailing computes the contraction of a 3x3 tensor Y with a 9x9 operator
// G over the trailing index of G's leading pair:
//   out[(I,J),(O,P)] = Σ_R Y[I][R] * G[(J,R),(O,P)]
func DotTrailing(out, Y, G [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			out[r][c] = 0
			for b := 0; b < 3; b++ {
				out[r][c] += Y[I][b] * G[Vmap[J][b]][c]
			}
		}
	}
}

// OuterRight computes the fourth-order outer product
//   out[(I,J),(O,P)] = T[I][P] * X[J][O]
func OuterRight(out, T, X [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			O, P := Pairs[c][0], Pairs[c][1]
			out[r][c] = T[I][P] * X[J][O]
		}
	}
}

// OuterRight27 computes the fifth-order outer product of a 27-component
// vector V with a 3x3 tensor X:
//   out[(I,J),(N,(P,Q))] = V[(I,(P,Q))] * X[J][N]
func OuterRight27(out [][]float64, V []float64, X [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 27; c++ {
			n := c / 9
			pq := c % 9
			out[r][c] = V[9*I+pq] * X[J][n]
		}
	}
}

// SymRows adds to each row of a 9xN matrix the row of the transposed leading
// pair: out[(I,J)] = K[(I,J)] + K[(J,I)]. out and K must be distinct
func SymRows(out, K [][]float64) {
	ncol := len(K[0])
	for r := 0; r < 9; r++ {
		for c := 0; c < ncol; c++ {
			out[r][c] = K[r][c] + K[Tperm[r]][c]
		}
	}
}
