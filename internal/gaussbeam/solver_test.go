package gaussbeam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testW0       = 40e-6
	testLambda   = 780e-9
	testROC      = 0.1
	testFocal    = 0.1
	testDMirror  = 0.0625
	testDLens    = 0.16103605755426348 // bisection reference for the cavity scenario
	testWaistOut = 1.0115142838206296e-3
)

func TestFindCollimationDistanceCavity(t *testing.T) {
	d, err := FindCollimationDistance(testW0, testLambda, testROC, testFocal, testDMirror)
	require.NoError(t, err)
	assert.Greater(t, d, BracketLow)
	assert.Less(t, d, BracketHigh)
	assert.InDelta(t, testDLens, d, 1e-9)

	w, R, err := Evaluate(testW0, testLambda, testROC, testFocal, d, testDMirror)
	require.NoError(t, err)
	assert.Less(t, math.Abs(R), 1e-6)
	assert.Greater(t, w, 0.0)
	assert.False(t, math.IsInf(w, 0) || math.IsNaN(w))
	assert.InDelta(t, testWaistOut, w, 1e-9)
}

func TestFindCollimationDistanceGrid(t *testing.T) {
	for _, roc := range []Real{0.1, 0.15} {
		for _, f := range []Real{0.05, 0.075, 0.1, 0.2, 0.3, 0.4, 0.5} {
			d, err := FindCollimationDistance(testW0, testLambda, roc, f, testDMirror)
			require.NoError(t, err, "ROC=%g f=%g", roc, f)
			_, R, err := Evaluate(testW0, testLambda, roc, f, d, testDMirror)
			require.NoError(t, err)
			assert.Less(t, math.Abs(R), 1e-6, "ROC=%g f=%g d=%g", roc, f, d)
		}
	}
}

func TestFindCollimationDistanceZeroFocal(t *testing.T) {
	_, err := FindCollimationDistance(testW0, testLambda, testROC, 0, testDMirror)
	require.ErrorIs(t, err, ErrZeroFocalLength)
	require.NotErrorIs(t, err, ErrNotConverged)
}

func TestFindCollimationDistanceZeroROC(t *testing.T) {
	_, err := FindCollimationDistance(testW0, testLambda, 0, testFocal, testDMirror)
	require.ErrorIs(t, err, ErrZeroRadius)
}

func TestFindCollimationDistanceUnreachable(t *testing.T) {
	// a diverging lens never flattens the wavefront inside the bracket
	_, err := FindCollimationDistance(testW0, testLambda, testROC, -0.1, testDMirror)
	require.ErrorIs(t, err, ErrNotConverged)
}

func TestFindCollimationDistanceNarrowBracket(t *testing.T) {
	opts := SolverOptions{BracketLow: 0.5, BracketHigh: 10}
	_, err := FindCollimationDistanceWith(opts, testW0, testLambda, testROC, testFocal, testDMirror)
	require.ErrorIs(t, err, ErrNotConverged)

	opts = SolverOptions{BracketLow: 0.1, BracketHigh: 0.2}
	d, err := FindCollimationDistanceWith(opts, testW0, testLambda, testROC, testFocal, testDMirror)
	require.NoError(t, err)
	assert.InDelta(t, testDLens, d, 1e-9)
}

func TestSolverOptionsDefaults(t *testing.T) {
	o := SolverOptions{}.withDefaults()
	assert.Equal(t, DefaultSolverOptions(), o)
	require.NoError(t, o.validate())
	require.Error(t, SolverOptions{BracketLow: 2, BracketHigh: 1}.validate())

	_, err := FindCollimationDistanceWith(SolverOptions{BracketLow: 2, BracketHigh: 1}, testW0, testLambda, testROC, testFocal, testDMirror)
	require.Error(t, err)
}
