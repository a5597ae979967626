// Copyright 2017 The Gomm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// MINDET is the smallest allowed determinant of (I - grad_u) when computing
// the deformation gradient
const MINDET = 1e-12

// It is the 3x3 identity
var It = [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// DefGrad computes the deformation gradient from the displacement gradient
// with respect to current coordinates:
//   F = (I - grad_u)⁻¹
func DefGrad(F, gradU [][]float64) (err error) {
	a := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = It[i][j] - gradU[i][j]
		}
	}
	det, err := la.MatInv(F, a, MINDET)
	if err != nil {
		return chk.Err("cannot compute deformation gradient: det(I-gradU) = %g", det)
	}
	return
}

// AsmChi assembles the micro-deformation tensor from the packed
// micro-displacement vector:
//   χ = I + unpack(phi)
func AsmChi(χ [][]float64, phi []float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			χ[i][j] = It[i][j] + phi[Vmap[i][j]]
		}
	}
}

// AsmGradChi assembles the 3x9 gradient of the micro-deformation tensor from
// the 9x3 gradient of the packed micro-displacement (rows: Voigt components
// of phi, columns: spatial directions):
//   gradχ[i][(j,k)] = gradPhi[(i,j)][k]
func AsmGradChi(gχ, gradPhi [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				gχ[i][Vmap[j][k]] = gradPhi[Vmap[i][j]][k]
			}
		}
	}
}

// RightCG computes the right Cauchy-Green deformation tensor C = Fᵀ·F
func RightCG(C, F [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = 0
			for a := 0; a < 3; a++ {
				C[i][j] += F[a][i] * F[a][j]
			}
		}
	}
}

// PsiTen computes the micro-deformation measure Ψ = Fᵀ·χ
func PsiTen(Ψ, F, χ [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Ψ[i][j] = 0
			for a := 0; a < 3; a++ {
				Ψ[i][j] += F[a][i] * χ[a][j]
			}
		}
	}
}

// GammaTen computes the 3x9 higher-order deformation measure
//   Γ[I][(J,K)] = Σ_a F[a][I] * gradχ[a][(J,K)]
func GammaTen(Γ, F, gχ [][]float64) {
	for i := 0; i < 3; i++ {
		for c := 0; c < 9; c++ {
			Γ[i][c] = 0
			for a := 0; a < 3; a++ {
				Γ[i][c] += F[a][i] * gχ[a][c]
			}
		}
	}
}

// GreenStrain packs the Green-Lagrange strain E = (C - I)/2
func GreenStrain(E []float64, C [][]float64) {
	for a := 0; a < 9; a++ {
		i, j := Pairs[a][0], Pairs[a][1]
		E[a] = (C[i][j] - It[i][j]) / 2.0
	}
}

// MicroStrain packs the micro-strain Ɛ = Ψ - I
func MicroStrain(ε []float64, Ψ [][]float64) {
	for a := 0; a < 9; a++ {
		i, j := Pairs[a][0], Pairs[a][1]
		ε[a] = Ψ[i][j] - It[i][j]
	}
}

// DerivCdF computes the 9x9 derivative of the right Cauchy-Green tensor with
// respect to the deformation gradient. Rows follow the Voigt order of C
// components, columns the Voigt order of F components:
//   dC[I][J]/dF[a][B] = δ[B][I]·F[a][J] + F[a][I]·δ[B][J]
func DerivCdF(d, F [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			a, B := Pairs[c][0], Pairs[c][1]
			d[r][c] = 0
			if B == I {
				d[r][c] += F[a][J]
			}
			if B == J {
				d[r][c] += F[a][I]
			}
		}
	}
}

// DerivPsiDF computes the 9x9 derivative of Ψ with respect to F:
//   dΨ[I][J]/dF[a][B] = δ[B][I]·χ[a][J]
func DerivPsiDF(d, χ [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			a, B := Pairs[c][0], Pairs[c][1]
			d[r][c] = 0
			if B == I {
				d[r][c] = χ[a][J]
			}
		}
	}
}

// DerivPsiDChi computes the 9x9 derivative of Ψ with respect to χ. Because
// the Voigt column enumeration of χ components coincides with the packing of
// phi, the result also serves as dΨ/dphi:
//   dΨ[I][J]/dχ[a][B] = F[a][I]·δ[J][B]
func DerivPsiDChi(d, F [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			a, B := Pairs[c][0], Pairs[c][1]
			d[r][c] = 0
			if J == B {
				d[r][c] = F[a][I]
			}
		}
	}
}

// DerivGammaDF computes the 27x9 derivative of Γ with respect to F:
//   dΓ[I][(J,K)]/dF[a][B] = δ[B][I]·gradχ[a][(J,K)]
func DerivGammaDF(d, gχ [][]float64) {
	for r := 0; r < 27; r++ {
		I := r / 9
		jk := r % 9
		for c := 0; c < 9; c++ {
			a, B := Pairs[c][0], Pairs[c][1]
			d[r][c] = 0
			if B == I {
				d[r][c] = gχ[a][jk]
			}
		}
	}
}

// DerivGammaDGchi computes the 27x27 derivative of Γ with respect to gradχ:
//   dΓ[I][(J,K)]/dgradχ[a][(B,C)] = F[a][I]·δ[(J,K)][(B,C)]
func DerivGammaDGchi(d, F [][]float64) {
	for r := 0; r < 27; r++ {
		I := r / 9
		jk := r % 9
		for c := 0; c < 27; c++ {
			a := c / 9
			bc := c % 9
			d[r][c] = 0
			if jk == bc {
				d[r][c] = F[a][I]
			}
		}
	}
}

// DerivFdGradU computes the 9x9 derivative of the deformation gradient with
// respect to the displacement gradient. Rows follow the Voigt order of F
// components, columns the row-major flattening 3a+b of grad_u:
//   dF[i][I]/dgrad_u[a][b] = F[i][a]·F[b][I]
func DerivFdGradU(d, F [][]float64) {
	for r := 0; r < 9; r++ {
		i, I := Pairs[r][0], Pairs[r][1]
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				d[r][3*a+b] = F[i][a] * F[b][I]
			}
		}
	}
}

// DerivGchiDGradPhi computes the constant 27x27 derivative of gradχ with
// respect to grad_phi. Rows follow the 27-component packing of gradχ,
// columns the row-major flattening 3p+x of the 9x3 grad_phi
func DerivGchiDGradPhi(d [][]float64) {
	la.MatFill(d, 0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				d[9*i+Vmap[j][k]][3*Vmap[i][j]+k] = 1
			}
		}
	}
}

// DerivInvDA computes the 9x9 derivative of the inverse of a second-order
// tensor with respect to the tensor itself:
//   dA⁻¹[I][J]/dA[O][P] = -A⁻¹[I][O]·A⁻¹[P][J]
func DerivInvDA(d, Ai [][]float64) {
	for r := 0; r < 9; r++ {
		I, J := Pairs[r][0], Pairs[r][1]
		for c := 0; c < 9; c++ {
			O, P := Pairs[c][0], Pairs[c][1]
			d[r][c] = -Ai[I][O] * Ai[P][J]
		}
	}
}
