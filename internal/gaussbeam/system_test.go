package gaussbeam

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approxMat(t *testing.T, want, got Mat2, tol Real) {
	t.Helper()
	assert.InDelta(t, want.A, got.A, tol)
	assert.InDelta(t, want.B, got.B, tol)
	assert.InDelta(t, want.C, got.C, tol)
	assert.InDelta(t, want.D, got.D, tol)
}

func TestComposeTraversalOrder(t *testing.T) {
	d := FreeSpaceMatrix(0.2)
	l, err := LensMatrix(0.1)
	require.NoError(t, err)
	// free space first, then lens: M = L·D
	approxMat(t, l.Mul(d), Compose(d, l), 0)
	approxMat(t, I2(), Compose(), 0)
}

func TestComposeAssociative(t *testing.T) {
	m1 := FreeSpaceMatrix(0.03125)
	m2, _ := MirrorMatrix(0.1)
	m3, _ := LensMatrix(0.3)
	all := Compose(m1, m2, m3)
	left := Compose(Compose(m1, m2), m3)
	right := Compose(m1, Compose(m2, m3))
	approxMat(t, all, left, 1e-12)
	approxMat(t, all, right, 1e-12)
}

func TestFreeSpaceRoundTrip(t *testing.T) {
	q0, err := InitialQ(40e-6, 780e-9)
	require.NoError(t, err)
	q := Propagate(q0, FreeSpaceMatrix(0.7), FreeSpaceMatrix(-0.7))
	assert.InDelta(t, 0, cmplx.Abs(q-q0), 1e-12)
}

func TestSystemInverseRoundTrip(t *testing.T) {
	sys, err := CollimationSystem(0.1, 0.2, 0.16, 0.0625)
	require.NoError(t, err)
	q0, err := InitialQ(40e-6, 780e-9)
	require.NoError(t, err)
	q := Propagate(Propagate(q0, sys...), sys.Inverse()...)
	assert.InDelta(t, 0, cmplx.Abs(q-q0)/cmplx.Abs(q0), 1e-9)
	approxMat(t, I2(), append(append(OpticalSystem{}, sys...), sys.Inverse()...).Compose(), 1e-9)
}

func TestCollimationSystemOrder(t *testing.T) {
	sys, err := CollimationSystem(0.1, 0.2, 0.3, 0.0625)
	require.NoError(t, err)
	require.Len(t, sys, 4)
	assert.Equal(t, FreeSpaceMatrix(0.03125), sys[0])
	assert.InDelta(t, 20.0, sys[1].C, 1e-12)
	assert.Equal(t, FreeSpaceMatrix(0.15), sys[2])
	assert.InDelta(t, -5.0, sys[3].C, 1e-12)
	require.NoError(t, sys.Lossless(1e-9))

	_, err = CollimationSystem(0.1, 0, 0.3, 0.0625)
	require.ErrorIs(t, err, ErrZeroFocalLength)
}

func TestLosslessRejectsGain(t *testing.T) {
	sys := OpticalSystem{FreeSpaceMatrix(0.1), {A: 2, D: 1}}
	require.ErrorIs(t, sys.Lossless(LosslessTol), ErrLossySystem)

	_, _, err := sys.WaistAndCurvature(40e-6, 780e-9)
	require.ErrorIs(t, err, ErrLossySystem)
}

func TestSystemWaistAndCurvature(t *testing.T) {
	sys, err := CollimationSystem(testROC, testFocal, testDLens, testDMirror)
	require.NoError(t, err)
	w, R, err := sys.WaistAndCurvature(testW0, testLambda)
	require.NoError(t, err)
	assert.InDelta(t, testWaistOut, w, 1e-9)
	assert.Less(t, R*R, 1e-12)

	ww, RR, err := Evaluate(testW0, testLambda, testROC, testFocal, testDLens, testDMirror)
	require.NoError(t, err)
	assert.Equal(t, w, ww)
	assert.Equal(t, R, RR)
}
