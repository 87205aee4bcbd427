package gaussbeam

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// fontVariant maps a family name onto the Liberation variants bundled with gonum/plot.
func fontVariant(family string) (font.Variant, error) {
	switch family {
	case "Serif", "Sans", "Mono":
		return font.Variant(family), nil
	}
	return "", fmt.Errorf("unknown font family %q (want Serif, Sans or Mono)", family)
}

func (p PlotCfg) face(size Real) font.Font {
	v, err := fontVariant(p.FontFamily)
	if err != nil {
		v = FontFamily
	}
	return font.Font{Typeface: "Liberation", Variant: v, Size: vg.Points(size)}
}

// style applies the configured sizes to a single plot.
func (p PlotCfg) style(pl *plot.Plot) {
	pl.Title.TextStyle.Font = p.face(p.BiggerSize)
	pl.X.Label.TextStyle.Font = p.face(p.MediumSize)
	pl.Y.Label.TextStyle.Font = p.face(p.MediumSize)
	pl.X.Tick.Label.Font = p.face(p.SmallSize)
	pl.Y.Tick.Label.Font = p.face(p.SmallSize)
	pl.Legend.TextStyle.Font = p.face(p.SmallSize)
}

// MergeClose sorts values and collapses runs whose neighbours lie within tol into
// their mean.
func MergeClose(values []Real, tol Real) []Real {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]Real(nil), values...)
	sort.Float64s(sorted)
	var merged []Real
	group := []Real{sorted[0]}
	for _, v := range sorted[1:] {
		if v-group[len(group)-1] <= tol {
			group = append(group, v)
			continue
		}
		merged = append(merged, stat.Mean(group, nil))
		group = []Real{v}
	}
	return append(merged, stat.Mean(group, nil))
}

// Series is the solved rows of one (w0, ROC) group, sorted by focal length.
type Series struct {
	W0, ROC Real
	Rows    []ResultRecord
}

// GroupSeries drops failed rows and groups the rest by (w0, ROC) in first-seen order.
func GroupSeries(recs []ResultRecord) []Series {
	type gk struct{ w0, roc Real }
	idx := make(map[gk]int)
	var out []Series
	for _, r := range recs {
		if r.Failed {
			continue
		}
		k := gk{r.W0, r.ROC}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Series{W0: r.W0, ROC: r.ROC})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	for i := range out {
		rows := out[i].Rows
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].FocalLength < rows[b].FocalLength })
	}
	return out
}

func (s Series) xys(y func(ResultRecord) Real) plotter.XYs {
	pts := make(plotter.XYs, len(s.Rows))
	for i, r := range s.Rows {
		pts[i].X = r.FocalLength
		pts[i].Y = y(r)
	}
	return pts
}

func (s Series) ticks() plot.ConstantTicks {
	fs := make([]Real, len(s.Rows))
	for i, r := range s.Rows {
		fs[i] = r.FocalLength
	}
	merged := MergeClose(fs, MergeTol)
	ticks := make(plot.ConstantTicks, len(merged))
	for i, v := range merged {
		ticks[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%g", math.Round(v*10)/10)}
	}
	return ticks
}

func (p PlotCfg) chart(s Series, title, ylabel string, y func(ResultRecord) Real, path string) error {
	pl := plot.New()
	p.style(pl)
	pl.Title.Text = title
	pl.X.Label.Text = "Focal Length (mm)"
	pl.Y.Label.Text = ylabel
	pl.X.Tick.Marker = s.ticks()
	pl.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(s.xys(y))
	if err != nil {
		return err
	}
	pl.Add(line, points)
	pl.Legend.Add(fmt.Sprintf("ROC = %.1f mm", s.ROC), line, points)
	return pl.Save(vg.Length(p.WidthIn)*vg.Inch, vg.Length(p.HeightIn)*vg.Inch, path)
}

// PlotTable renders d_lens and waist versus focal length for every (w0, ROC) group of
// the table and returns the written file names.
func PlotTable(store *Store, name string, cfg PlotCfg) ([]string, error) {
	cfg = cfg.withDefaults()
	recs, err := store.Load()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, s := range GroupSeries(recs) {
		base := fmt.Sprintf("%s_w0_%g_ROC_%d", name, s.W0, int(math.Round(s.ROC)))
		dPath := filepath.Join(cfg.Dir, "d_lens_vs_focal_length_"+base+"."+cfg.Backend)
		title := fmt.Sprintf("d_lens vs. Focal Length for\nROC = %.1f mm and w0 = %.1f µm", s.ROC, s.W0)
		if err := cfg.chart(s, title, "d_lens (mm)", func(r ResultRecord) Real { return r.DLens }, dPath); err != nil {
			return written, err
		}
		written = append(written, dPath)

		wPath := filepath.Join(cfg.Dir, "waist_vs_focal_length_"+base+"."+cfg.Backend)
		title = fmt.Sprintf("Waist vs. Focal Length for\nROC = %.1f mm and w0 = %.1f µm", s.ROC, s.W0)
		if err := cfg.chart(s, title, "Waist (µm)", func(r ResultRecord) Real { return r.Waist }, wPath); err != nil {
			return written, err
		}
		written = append(written, wPath)
		fmt.Printf("[PLOT] %s: ROC=%.1f mm, %d points\n", name, s.ROC, len(s.Rows))
	}
	return written, nil
}
