package gaussbeam

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Mat2 is a 2×2 ray-transfer (ABCD) matrix (row-major: A B / C D).
type Mat2 struct {
	A, B, C, D Real
}

func I2() Mat2 {
	return Mat2{A: 1, D: 1}
}

// LensMatrix returns the thin lens [[1,0],[-1/f,1]].
func LensMatrix(focalLength Real) (Mat2, error) {
	if focalLength == 0 {
		return Mat2{}, ErrZeroFocalLength
	}
	return Mat2{A: 1, B: 0, C: -1 / focalLength, D: 1}, nil
}

// FreeSpaceMatrix returns [[1,d],[0,1]]; negative d is allowed.
func FreeSpaceMatrix(distance Real) Mat2 {
	return Mat2{A: 1, B: distance, C: 0, D: 1}
}

// MirrorMatrix models a curved mirror of radius roc as a thin lens of focal length -roc/2.
func MirrorMatrix(roc Real) (Mat2, error) {
	if roc == 0 {
		return Mat2{}, ErrZeroRadius
	}
	return LensMatrix(-roc / 2)
}

func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

func (m Mat2) Det() Real { return m.A*m.D - m.B*m.C }

// Apply performs the ABCD transform q' = (Aq+B)/(Cq+D).
func (m Mat2) Apply(q complex128) complex128 {
	return (complex(m.A, 0)*q + complex(m.B, 0)) / (complex(m.C, 0)*q + complex(m.D, 0))
}

// Dense converts to a gonum matrix.
func (m Mat2) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{m.A, m.B, m.C, m.D})
}

func (m Mat2) String() string {
	return fmt.Sprintf("[[%g %g] [%g %g]]", m.A, m.B, m.C, m.D)
}
