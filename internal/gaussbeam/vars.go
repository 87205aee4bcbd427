package gaussbeam

var (
	Debug   = false // set to true for verbose debug output
	Plot    = false // set to true to render charts from the result tables after the sweep
	Workers = 0     // number of sweep workers, <= 0 means runtime.NumCPU()
)
