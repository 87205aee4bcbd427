package gaussbeam

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
)

// BeamCfg describes a source in lab units.
type BeamCfg struct {
	Name         string `json:"name,omitempty"`
	WavelengthNm Real   `json:"wavelengthNm"`
	W0Microns    Real   `json:"w0Microns"`
	CSVOut       string `json:"csvOut,omitempty"`
}

// RangeCfg is an inclusive linear range of N values.
type RangeCfg struct {
	Start Real `json:"start"`
	End   Real `json:"end"`
	N     int  `json:"n"`
}

// PlotCfg is handed to the plotting side as is; nothing process-wide is changed.
type PlotCfg struct {
	Backend    string `json:"backend,omitempty"` // png, svg or pdf
	Dir        string `json:"dir,omitempty"`
	SmallSize  Real   `json:"smallSize,omitempty"`
	MediumSize Real   `json:"mediumSize,omitempty"`
	BiggerSize Real   `json:"biggerSize,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"` // Serif, Sans or Mono
	WidthIn    Real   `json:"widthIn,omitempty"`
	HeightIn   Real   `json:"heightIn,omitempty"`
}

type Config struct {
	Beams            []BeamCfg     `json:"beams"`
	Harmonics        bool          `json:"harmonics,omitempty"` // also sweep the second harmonic of every beam
	ROCsMM           []Real        `json:"rocsMM"`
	FocalLengthsMM   []Real        `json:"focalLengthsMM,omitempty"`
	FocalRangeMM     *RangeCfg     `json:"focalRangeMM,omitempty"`
	MirrorDistanceMM Real          `json:"mirrorDistanceMM,omitempty"`
	Solver           SolverOptions `json:"solver,omitempty"`
	Workers          int           `json:"workers,omitempty"`
	Plot             PlotCfg       `json:"plot,omitempty"`
}

// Span expands the range with gonum's floats.Span.
func (r RangeCfg) Span() ([]Real, error) {
	if r.N < 2 {
		return nil, fmt.Errorf("range needs n >= 2, got %d", r.N)
	}
	return floats.Span(make([]Real, r.N), r.Start, r.End), nil
}

// Beam converts to SI units.
func (b BeamCfg) Beam() Beam {
	return Beam{Name: b.Name, Wavelength: b.WavelengthNm * nm, W0: b.W0Microns * um}
}

// Grid converts to SI units.
func (c *Config) Grid() Grid {
	g := Grid{
		ROCs:           make([]Real, len(c.ROCsMM)),
		FocalLengths:   make([]Real, len(c.FocalLengthsMM)),
		MirrorDistance: c.MirrorDistanceMM * mm,
	}
	floats.ScaleTo(g.ROCs, mm, c.ROCsMM)
	floats.ScaleTo(g.FocalLengths, mm, c.FocalLengthsMM)
	return g
}

func (p PlotCfg) withDefaults() PlotCfg {
	if p.Backend == "" {
		p.Backend = PlotBackend
	}
	if p.Dir == "" {
		p.Dir = PlotDir
	}
	if p.SmallSize <= 0 {
		p.SmallSize = SmallFontSize
	}
	if p.MediumSize <= 0 {
		p.MediumSize = MediumFontSize
	}
	if p.BiggerSize <= 0 {
		p.BiggerSize = BiggerFontSize
	}
	if p.FontFamily == "" {
		p.FontFamily = FontFamily
	}
	if p.WidthIn <= 0 {
		p.WidthIn = PlotWidthInches
	}
	if p.HeightIn <= 0 {
		p.HeightIn = PlotHeightInches
	}
	return p
}

// DefaultConfig is the pump-beam sweep of the bow-tie cavity design.
func DefaultConfig() *Config {
	cfg := &Config{
		Beams: []BeamCfg{{Name: "pump", WavelengthNm: PumpWavelengthNm, W0Microns: PumpWaistMicrons, CSVOut: CSVOut}},
	}
	if err := cfg.fill(); err != nil {
		panic(err)
	}
	return cfg
}

// HarmonicBeam is the frequency-doubled companion of a pump: half the wavelength and
// a waist smaller by √2.
func HarmonicBeam(pump BeamCfg) BeamCfg {
	return BeamCfg{
		Name:         pump.Name + "-harmonic",
		WavelengthNm: pump.WavelengthNm / 2,
		W0Microns:    pump.W0Microns / math.Sqrt2,
	}
}

// fill applies defaults and validates.
func (c *Config) fill() error {
	if len(c.Beams) == 0 {
		return errors.New("config has no beams")
	}
	if c.Harmonics {
		n := len(c.Beams)
		for i := 0; i < n; i++ {
			c.Beams = append(c.Beams, HarmonicBeam(c.Beams[i]))
		}
		c.Harmonics = false
	}
	for i := range c.Beams {
		b := &c.Beams[i]
		if b.WavelengthNm <= 0 || b.W0Microns <= 0 {
			return fmt.Errorf("beam #%d: %w", i, ErrInvalidBeam)
		}
		if b.CSVOut == "" {
			if b.Name == "" || len(c.Beams) == 1 {
				b.CSVOut = CSVOut
			} else {
				b.CSVOut = fmt.Sprintf("collimation_results_%s.csv", b.Name)
			}
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("beam%d", i)
		}
	}
	seen := make(map[string]int, len(c.Beams))
	for i, b := range c.Beams {
		if j, ok := seen[b.CSVOut]; ok {
			return fmt.Errorf("beams #%d and #%d both write %s", j, i, b.CSVOut)
		}
		seen[b.CSVOut] = i
	}
	if len(c.ROCsMM) == 0 {
		c.ROCsMM = append([]Real(nil), DefaultROCsMM...)
	}
	if c.FocalRangeMM != nil {
		if len(c.FocalLengthsMM) > 0 {
			return errors.New("set either focalLengthsMM or focalRangeMM, not both")
		}
		fs, err := c.FocalRangeMM.Span()
		if err != nil {
			return err
		}
		c.FocalLengthsMM = fs
	}
	if len(c.FocalLengthsMM) == 0 {
		c.FocalLengthsMM = append([]Real(nil), DefaultFocalLengthsMM...)
	}
	if c.MirrorDistanceMM <= 0 {
		c.MirrorDistanceMM = MirrorDistanceMM
	}
	c.Solver = c.Solver.withDefaults()
	if err := c.Solver.validate(); err != nil {
		return err
	}
	c.Plot = c.Plot.withDefaults()
	if _, err := fontVariant(c.Plot.FontFamily); err != nil {
		return err
	}
	switch c.Plot.Backend {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unknown plot backend %q", c.Plot.Backend)
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		DebugLog("No config given, using defaults")
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.fill(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: beams=%d, ROCs=%v mm, f=%v mm, mirror=%g mm", path, len(cfg.Beams), cfg.ROCsMM, cfg.FocalLengthsMM, cfg.MirrorDistanceMM)
	return &cfg, nil
}
