package gaussbeam

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHarmonicsAndPlots(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	plotDir := filepath.Join(dir, "plots")
	path := writeConfig(t, fmt.Sprintf(`{
		"beams": [{"name": "pump", "wavelengthNm": 780, "w0Microns": 40, "csvOut": %q}],
		"harmonics": true,
		"rocsMM": [100],
		"focalLengthsMM": [50, -100, 100],
		"mirrorDistanceMM": 62.5,
		"workers": 2,
		"plot": {"dir": %q}
	}`, filepath.Join(dir, "pump.csv"), plotDir))

	prev := Plot
	Plot = true
	t.Cleanup(func() { Plot = prev })
	require.NoError(t, Run(path))

	pump, err := NewStore(filepath.Join(dir, "pump.csv")).Load()
	require.NoError(t, err)
	require.Len(t, pump, 3)
	assert.Equal(t, 40.0, pump[0].W0)
	assert.False(t, pump[0].Failed)
	assert.True(t, pump[1].Failed)
	assert.InDelta(t, testDLens*1e3, pump[2].DLens, 1e-6)

	// the harmonic beam has no explicit table and gets a name-derived one
	harmonic, err := NewStore(filepath.Join(dir, "collimation_results_pump-harmonic.csv")).Load()
	require.NoError(t, err)
	require.Len(t, harmonic, 3)
	assert.InDelta(t, 28.2842712475, harmonic[0].W0, 1e-9)

	charts, err := filepath.Glob(filepath.Join(plotDir, "*.png"))
	require.NoError(t, err)
	assert.Len(t, charts, 4)

	// re-running appends nothing
	Plot = false
	require.NoError(t, Run(path))
	pump, err = NewStore(filepath.Join(dir, "pump.csv")).Load()
	require.NoError(t, err)
	assert.Len(t, pump, 3)
}

func TestRunReportsTableErrors(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "table-is-a-dir")
	require.NoError(t, os.Mkdir(table, 0o755))
	path := writeConfig(t, fmt.Sprintf(`{
		"beams": [{"wavelengthNm": 780, "w0Microns": 40, "csvOut": %q}],
		"rocsMM": [100],
		"focalLengthsMM": [100]
	}`, table))
	err := Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), table)
}

func TestRunBadConfig(t *testing.T) {
	require.Error(t, Run(filepath.Join(t.TempDir(), "missing.json")))
}
