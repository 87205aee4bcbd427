package gaussbeam

import (
	"fmt"
	"math"
)

// Objective is a scalar function whose root is searched; an error aborts the search.
type Objective func(x Real) (Real, error)

// RootResult reports where Brent's method stopped.
type RootResult struct {
	Root       Real
	Iterations int
	Evals      int
	Converged  bool
}

// brent finds a root of f in [a, b] with Brent's method (inverse quadratic
// interpolation, secant and bisection steps). f(a) and f(b) must differ in sign.
func brent(f Objective, a, b, xtol, rtol Real, maxIter int) (RootResult, error) {
	var res RootResult
	xpre, xcur := a, b
	fpre, err := f(xpre)
	if err != nil {
		return res, err
	}
	fcur, err := f(xcur)
	if err != nil {
		return res, err
	}
	res.Evals = 2
	if !isFinite(fpre) || !isFinite(fcur) {
		return res, fmt.Errorf("%w: objective not finite at bracket f(%g)=%g f(%g)=%g", ErrNotConverged, a, fpre, b, fcur)
	}
	if fpre == 0 {
		res.Root, res.Converged = xpre, true
		return res, nil
	}
	if fcur == 0 {
		res.Root, res.Converged = xcur, true
		return res, nil
	}
	if sameSign(fpre, fcur) {
		return res, fmt.Errorf("%w: no sign change in [%g, %g] (f=%g, %g)", ErrNotConverged, a, b, fpre, fcur)
	}

	var xblk, fblk, spre, scur Real
	for i := 0; i < maxIter; i++ {
		res.Iterations = i + 1
		if fpre != 0 && fcur != 0 && !sameSign(fpre, fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		// keep xcur as the best estimate
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (xtol + rtol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			res.Root, res.Converged = xcur, true
			return res, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry Real
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}
		fcur, err = f(xcur)
		res.Evals++
		if err != nil {
			return res, err
		}
		if !isFinite(fcur) {
			return res, fmt.Errorf("%w: objective not finite at x=%g", ErrNotConverged, xcur)
		}
	}
	res.Root = xcur
	return res, fmt.Errorf("%w: %d iterations exhausted near x=%g", ErrNotConverged, maxIter, xcur)
}
