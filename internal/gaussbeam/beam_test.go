package gaussbeam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialQ(t *testing.T) {
	q, err := InitialQ(40e-6, 780e-9)
	require.NoError(t, err)
	assert.Equal(t, 0.0, real(q))
	assert.InDelta(t, math.Pi*40e-6*40e-6/780e-9, imag(q), 1e-15)

	_, err = InitialQ(0, 780e-9)
	require.ErrorIs(t, err, ErrInvalidBeam)
	_, err = InitialQ(40e-6, -1)
	require.ErrorIs(t, err, ErrInvalidBeam)
}

func TestWaistAtOrigin(t *testing.T) {
	w, R, err := BeamWaistAndCurvature(40e-6, 780e-9)
	require.NoError(t, err)
	assert.InDelta(t, 40e-6, w, 1e-12)
	assert.InDelta(t, 0, R, 1e-12)
}

func TestFreeSpaceWaistGrowth(t *testing.T) {
	w0, lambda := 40e-6, 780e-9
	zr := RayleighRange(w0, lambda)
	// one Rayleigh range away the radius is √2·w0 and 1/R = z/(z²+zr²) = 1/(2zr)
	w, R, err := BeamWaistAndCurvature(w0, lambda, FreeSpaceMatrix(zr))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2*w0, w, 1e-12)
	assert.InDelta(t, 1/(2*zr), R, 1e-9)
}

func TestWaistUsesPropagatedQ(t *testing.T) {
	w0, lambda := 40e-6, 780e-9
	w, _, err := BeamWaistAndCurvature(w0, lambda, FreeSpaceMatrix(1))
	require.NoError(t, err)
	assert.Greater(t, w, 10*w0)
}

func TestNonPhysicalBeam(t *testing.T) {
	_, _, err := WaistAndCurvature(complex(0, -1), 780e-9)
	require.ErrorIs(t, err, ErrNonPhysicalBeam)
	_, _, err = WaistAndCurvature(complex(1, 0), 780e-9)
	require.ErrorIs(t, err, ErrNonPhysicalBeam)
	_, _, err = WaistAndCurvature(0, 780e-9)
	require.ErrorIs(t, err, ErrNonPhysicalBeam)
}

func TestEvaluateZeroFocalLength(t *testing.T) {
	_, _, err := Evaluate(40e-6, 780e-9, 0.1, 0, 0.2, 0.0625)
	require.ErrorIs(t, err, ErrZeroFocalLength)
}
