package gaussbeam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// OpticalSystem lists elements in the order the beam traverses them.
type OpticalSystem []Mat2

// Compose returns Mn···M2·M1 for elements given in traversal order, so the first
// element traversed is the rightmost factor.
func Compose(matrices ...Mat2) Mat2 {
	M := I2()
	for _, m := range matrices {
		M = m.Mul(M)
	}
	return M
}

func (s OpticalSystem) Compose() Mat2 { return Compose(s...) }

// Inverse returns the system traversed backwards with every element inverted, so a
// free-space leg d becomes -d and a lens f becomes -f.
func (s OpticalSystem) Inverse() OpticalSystem {
	inv := make(OpticalSystem, len(s))
	for i, m := range s {
		d := m.Det()
		inv[len(s)-1-i] = Mat2{A: m.D / d, B: -m.B / d, C: -m.C / d, D: m.A / d}
	}
	return inv
}

// CollimationSystem builds the train: half mirror gap → mirror → half lens gap → lens.
func CollimationSystem(roc, focalLength, dLens, dMirror Real) (OpticalSystem, error) {
	mirror, err := MirrorMatrix(roc)
	if err != nil {
		return nil, err
	}
	lens, err := LensMatrix(focalLength)
	if err != nil {
		return nil, err
	}
	return OpticalSystem{
		FreeSpaceMatrix(dMirror / 2),
		mirror,
		FreeSpaceMatrix(dLens / 2),
		lens,
	}, nil
}

// Lossless cross-checks the composed determinant against gonum's product of the
// same elements; both must equal 1 within tol. Evaluate refuses systems that fail it.
func (s OpticalSystem) Lossless(tol Real) error {
	var prod mat.Dense
	prod.CloneFrom(I2().Dense())
	for _, m := range s {
		var next mat.Dense
		next.Mul(m.Dense(), &prod)
		prod.CloneFrom(&next)
	}
	det := mat.Det(&prod)
	own := s.Compose().Det()
	if math.Abs(det-1) > tol || math.Abs(own-1) > tol {
		return fmt.Errorf("%w: det=%g (gonum %g)", ErrLossySystem, own, det)
	}
	return nil
}

// WaistAndCurvature launches a beam at waist w0 into the system and returns the beam
// radius and curvature at its output. The system must be lossless.
func (s OpticalSystem) WaistAndCurvature(w0, wavelength Real) (Real, Real, error) {
	if err := s.Lossless(LosslessTol); err != nil {
		return 0, 0, err
	}
	return BeamWaistAndCurvature(w0, wavelength, s...)
}
