package gaussbeam

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Beam is a source entering the train at its waist (SI units).
type Beam struct {
	Name       string
	Wavelength Real // m
	W0         Real // m
}

// Grid is the Cartesian product of mirror radii and lens focal lengths (SI units).
type Grid struct {
	ROCs           []Real
	FocalLengths   []Real
	MirrorDistance Real // curved mirror to origin, m
}

// Point is one (ROC, focal length) pair of a grid.
type Point struct {
	ROC, FocalLength Real
}

// Points enumerates the grid ROC-major.
func (g Grid) Points() []Point {
	pts := make([]Point, 0, len(g.ROCs)*len(g.FocalLengths))
	for _, roc := range g.ROCs {
		for _, f := range g.FocalLengths {
			pts = append(pts, Point{ROC: roc, FocalLength: f})
		}
	}
	return pts
}

// Outcome is the evaluation of one grid point; Err is set when it could not be solved.
type Outcome struct {
	Point
	DLens     Real // m
	Waist     Real // m
	Wavefront Real // 1/m
	Err       error
}

// inUnits expresses x in the given unit, rounded to 12 significant digits so that
// 40e-6 m reads back as 40 µm rather than 40.00000000000001.
func inUnits(x, unit Real) Real {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x/unit, 'g', 12, 64), 64)
	if err != nil {
		return x / unit
	}
	return v
}

// Record converts the outcome to table units. The Wavefront column keeps its
// historical "(m)" header but holds Re(1/q), in 1/m.
func (o Outcome) Record(beam Beam) ResultRecord {
	rec := ResultRecord{
		W0:          inUnits(beam.W0, um),
		ROC:         inUnits(o.ROC, mm),
		FocalLength: inUnits(o.FocalLength, mm),
	}
	if o.Err != nil {
		rec.Failed = true
		return rec
	}
	rec.DLens = inUnits(o.DLens, mm)
	rec.Waist = inUnits(o.Waist, um)
	rec.Wavefront = o.Wavefront
	return rec
}

// EvaluatePoint solves one grid point and re-propagates at the solved distance.
func EvaluatePoint(beam Beam, grid Grid, p Point, opts SolverOptions) Outcome {
	out := Outcome{Point: p}
	d, err := FindCollimationDistanceWith(opts, beam.W0, beam.Wavelength, p.ROC, p.FocalLength, grid.MirrorDistance)
	if err != nil {
		out.Err = err
		return out
	}
	w, R, err := Evaluate(beam.W0, beam.Wavelength, p.ROC, p.FocalLength, d, grid.MirrorDistance)
	if err != nil {
		out.Err = fmt.Errorf("ROC=%g f=%g d_lens=%g: %w", p.ROC, p.FocalLength, d, err)
		return out
	}
	out.DLens, out.Waist, out.Wavefront = d, w, R
	return out
}

// Sweep evaluates every grid point. Outcomes come back in grid order whatever the
// number of workers; workers <= 0 means runtime.NumCPU().
func Sweep(beam Beam, grid Grid, opts SolverOptions, workers int) []Outcome {
	pts := grid.Points()
	outs := make([]Outcome, len(pts))
	if len(pts) == 0 {
		return outs
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, workers)
	if workers > len(pts) {
		workers = len(pts)
	}
	DebugLogOnce("Launching %d sweep workers for %d grid points", workers, len(pts))

	var counter int64
	nextPrint := int64(max(1, len(pts)/10))
	per, rem := len(pts)/workers, len(pts)%workers
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		wg.Add(1)
		// each worker owns outs[from:to]
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				outs[i] = EvaluatePoint(beam, grid, pts[i], opts)
				done := atomic.AddInt64(&counter, 1)
				if Debug && done%nextPrint == 0 {
					fmt.Printf("[SWEEP] %s: %.2f%%\n", beam.Name, float64(done)*100/float64(len(pts)))
				}
			}
		}(start, start+n)
		start += n
	}
	wg.Wait()
	return outs
}

// SweepSummary counts what a recorded sweep did to the table.
type SweepSummary struct {
	Points   int
	Solved   int
	Failed   int
	Appended int
}

// RecordSweep sweeps the grid and appends every outcome to the store in grid order.
// Per-point failures become Error rows; only store I/O errors are returned.
func RecordSweep(store *Store, beam Beam, grid Grid, opts SolverOptions, workers int) (SweepSummary, error) {
	var sum SweepSummary
	for _, o := range Sweep(beam, grid, opts, workers) {
		sum.Points++
		if o.Err != nil {
			sum.Failed++
			DebugLog("%s: %v", beam.Name, o.Err)
		} else {
			sum.Solved++
		}
		added, err := store.AppendIfAbsent(o.Record(beam))
		if err != nil {
			return sum, err
		}
		if added {
			sum.Appended++
		}
	}
	return sum, nil
}
