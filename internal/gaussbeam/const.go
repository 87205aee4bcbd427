package gaussbeam

// Defaults for the collimation sweep; loadConfig falls back to these.
const (
	CSVOut           = "collimation_results.csv"
	PlotDir          = "plots"
	PlotBackend      = "png"
	PumpWavelengthNm = 780.0
	PumpWaistMicrons = 40.0
	MirrorDistanceMM = 125.0 / 2 // half of the curved-mirror spacing in a bow-tie ring cavity
	BracketLow       = 0.01      // m
	BracketHigh      = 10.0      // m
	SolverXTol       = 2e-12
	SolverRTol       = 4 * 2.220446049250313e-16
	SolverMaxIter    = 100
	LosslessTol      = 1e-9
	MergeTol         = 0.01
	SmallFontSize    = 12
	MediumFontSize   = 20
	BiggerFontSize   = 28
	FontFamily       = "Serif"
	PlotWidthInches  = 8
	PlotHeightInches = 6
	mm               = 1e-3
	um               = 1e-6
	nm               = 1e-9
)

// DefaultROCsMM and DefaultFocalLengthsMM are the hand-picked grid of the cavity design.
var (
	DefaultROCsMM         = []Real{100, 150}
	DefaultFocalLengthsMM = []Real{50, 75, 100, 200, 300, 400, 500}
)
