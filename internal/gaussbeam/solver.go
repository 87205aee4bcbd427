package gaussbeam

import (
	"fmt"
)

// SolverOptions bounds the collimation search.
type SolverOptions struct {
	BracketLow  Real `json:"bracketLow,omitempty"`  // m
	BracketHigh Real `json:"bracketHigh,omitempty"` // m
	XTol        Real `json:"xtol,omitempty"`
	RTol        Real `json:"rtol,omitempty"`
	MaxIter     int  `json:"maxIter,omitempty"`
}

// DefaultSolverOptions searches [0.01, 10] m.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		BracketLow:  BracketLow,
		BracketHigh: BracketHigh,
		XTol:        SolverXTol,
		RTol:        SolverRTol,
		MaxIter:     SolverMaxIter,
	}
}

func (o SolverOptions) withDefaults() SolverOptions {
	def := DefaultSolverOptions()
	if o.BracketLow == 0 && o.BracketHigh == 0 {
		o.BracketLow, o.BracketHigh = def.BracketLow, def.BracketHigh
	}
	if o.XTol <= 0 {
		o.XTol = def.XTol
	}
	if o.RTol <= 0 {
		o.RTol = def.RTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = def.MaxIter
	}
	return o
}

func (o SolverOptions) validate() error {
	if !(o.BracketLow < o.BracketHigh) {
		return fmt.Errorf("invalid bracket [%g, %g]", o.BracketLow, o.BracketHigh)
	}
	return nil
}

// CurvatureObjective returns d_lens -> residual wavefront curvature at the lens output.
func CurvatureObjective(w0, wavelength, roc, focalLength, dMirror Real) Objective {
	return func(dLens Real) (Real, error) {
		_, R, err := Evaluate(w0, wavelength, roc, focalLength, dLens, dMirror)
		return R, err
	}
}

// FindCollimationDistance returns the lens-to-mirror distance (m) that zeroes the
// residual wavefront curvature, searched in the default bracket.
func FindCollimationDistance(w0, wavelength, roc, focalLength, dMirror Real) (Real, error) {
	return FindCollimationDistanceWith(DefaultSolverOptions(), w0, wavelength, roc, focalLength, dMirror)
}

// FindCollimationDistanceWith is FindCollimationDistance with explicit solver options.
func FindCollimationDistanceWith(opts SolverOptions, w0, wavelength, roc, focalLength, dMirror Real) (Real, error) {
	if focalLength == 0 {
		return 0, ErrZeroFocalLength
	}
	if roc == 0 {
		return 0, ErrZeroRadius
	}
	if _, err := InitialQ(w0, wavelength); err != nil {
		return 0, err
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return 0, err
	}
	res, err := brent(
		CurvatureObjective(w0, wavelength, roc, focalLength, dMirror),
		opts.BracketLow, opts.BracketHigh, opts.XTol, opts.RTol, opts.MaxIter,
	)
	if err != nil {
		return 0, fmt.Errorf("ROC=%g f=%g: %w", roc, focalLength, err)
	}
	DebugLog("ROC=%g f=%g: d_lens=%.9g after %d iterations (%d evals)", roc, focalLength, res.Root, res.Iterations, res.Evals)
	return res.Root, nil
}
