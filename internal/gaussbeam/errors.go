package gaussbeam

import "errors"

var (
	// ErrZeroFocalLength indicates a thin lens (or mirror) with focal length exactly zero.
	ErrZeroFocalLength = errors.New("gaussbeam: focal length must be non-zero")
	// ErrZeroRadius indicates a curved mirror with radius of curvature exactly zero.
	ErrZeroRadius = errors.New("gaussbeam: radius of curvature must be non-zero")
	// ErrNonPhysicalBeam indicates Im(1/q) >= 0, so no real waist exists.
	ErrNonPhysicalBeam = errors.New("gaussbeam: non-physical beam parameter")
	// ErrNotConverged indicates the root search found no sign change or ran out of iterations.
	ErrNotConverged = errors.New("gaussbeam: root finding did not converge")
	// ErrInvalidBeam indicates a non-positive wavelength or initial waist.
	ErrInvalidBeam = errors.New("gaussbeam: wavelength and waist must be positive")
	// ErrLossySystem indicates an optical system whose ABCD determinant is not 1.
	ErrLossySystem = errors.New("gaussbeam: optical system is not lossless")
)
