package gaussbeam

import (
	"fmt"
	"time"
)

// Run loads the config (defaults when cfgPath is empty), sweeps every beam into its
// result table and optionally renders charts. Grid points that cannot be solved end
// up as Error rows; only config and I/O problems are returned.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	workers := cfg.Workers
	if Workers > 0 {
		workers = Workers
	}
	grid := cfg.Grid()

	for _, bc := range cfg.Beams {
		beam := bc.Beam()
		store := NewStore(bc.CSVOut)
		start := time.Now()
		sum, err := RecordSweep(store, beam, grid, cfg.Solver, workers)
		if err != nil {
			return fmt.Errorf("%s: %w", bc.CSVOut, err)
		}
		fmt.Printf("[SWEEP] %s (λ=%g nm, w0=%g µm): %d points, %d solved, %d errors, %d new rows -> %s\n",
			beam.Name, bc.WavelengthNm, bc.W0Microns, sum.Points, sum.Solved, sum.Failed, sum.Appended, bc.CSVOut)
		DebugLog("%s: sweep took %s", beam.Name, time.Since(start))

		if Plot {
			files, err := PlotTable(store, beam.Name, cfg.Plot)
			if err != nil {
				return fmt.Errorf("plot %s: %w", bc.CSVOut, err)
			}
			DebugLog("%s: wrote %d charts to %s", beam.Name, len(files), cfg.Plot.Dir)
		}
	}
	return nil
}
