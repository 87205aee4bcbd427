package gaussbeam

import (
	"fmt"
	"math"
	"math/cmplx"
)

// RayleighRange returns z_r = π·w0²/λ.
func RayleighRange(w0, wavelength Real) Real {
	return math.Pi * w0 * w0 / wavelength
}

// InitialQ builds the beam parameter at a waist, where the wavefront is flat: q0 = i·z_r.
func InitialQ(w0, wavelength Real) (complex128, error) {
	if !(w0 > 0) || !(wavelength > 0) {
		return 0, fmt.Errorf("%w: w0=%g wavelength=%g", ErrInvalidBeam, w0, wavelength)
	}
	return complex(0, RayleighRange(w0, wavelength)), nil
}

// Propagate transforms q through matrices given in traversal order.
func Propagate(q complex128, matrices ...Mat2) complex128 {
	return Compose(matrices...).Apply(q)
}

// WaistAndCurvature splits 1/q = R - i·λ/(π·w²) into the beam radius w and the
// residual wavefront curvature R = Re(1/q). Im(1/q) must be negative.
func WaistAndCurvature(q complex128, wavelength Real) (w, R Real, err error) {
	inv := 1 / q
	if cmplx.IsNaN(inv) || cmplx.IsInf(inv) {
		return 0, 0, fmt.Errorf("%w: q=%v", ErrNonPhysicalBeam, q)
	}
	im := imag(inv)
	if im >= 0 {
		return 0, 0, fmt.Errorf("%w: Im(1/q)=%g", ErrNonPhysicalBeam, im)
	}
	w = math.Sqrt(-wavelength / (math.Pi * im))
	R = real(inv)
	return w, R, nil
}

// BeamWaistAndCurvature propagates a beam starting at waist w0 through matrices and
// returns the beam radius and curvature at the output plane. Both are computed from
// the propagated q.
func BeamWaistAndCurvature(w0, wavelength Real, matrices ...Mat2) (Real, Real, error) {
	q0, err := InitialQ(w0, wavelength)
	if err != nil {
		return 0, 0, err
	}
	q := Propagate(q0, matrices...)
	return WaistAndCurvature(q, wavelength)
}

// Evaluate runs the collimation train for a lens placed dLens from the curved mirror.
func Evaluate(w0, wavelength, roc, focalLength, dLens, dMirror Real) (Real, Real, error) {
	sys, err := CollimationSystem(roc, focalLength, dLens, dMirror)
	if err != nil {
		return 0, 0, err
	}
	return sys.WaistAndCurvature(w0, wavelength)
}
