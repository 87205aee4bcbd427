package gaussbeam

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// sameSign treats -0 as negative, matching the sign test of the root bracket.
func sameSign(a, b Real) bool { return math.Signbit(a) == math.Signbit(b) }
