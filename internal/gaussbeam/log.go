package gaussbeam

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	debugOut   io.Writer = os.Stdout
	debugStart           = time.Now()
	debugMu    sync.Mutex
	debugSeen  = map[string]bool{}
)

func debugOn() bool { return forceDebug || Debug }

// DebugLog prints a "[DEBUG +elapsed]" line when Debug is set or the binary is built
// with -tags debug. Sweep workers call it concurrently.
func DebugLog(format string, args ...interface{}) {
	if !debugOn() {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()
	fmt.Fprintf(debugOut, "[DEBUG +%s] "+format+"\n", append([]interface{}{time.Since(debugStart).Round(time.Millisecond)}, args...)...)
}

// DebugLogOnce is DebugLog that fires only the first time a given format is seen.
func DebugLogOnce(format string, args ...interface{}) {
	if !debugOn() {
		return
	}
	debugMu.Lock()
	seen := debugSeen[format]
	debugSeen[format] = true
	debugMu.Unlock()
	if !seen {
		DebugLog(format, args...)
	}
}
