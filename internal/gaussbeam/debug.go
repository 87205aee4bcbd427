//go:build debug
// +build debug

package gaussbeam

// forceDebug turns DebugLog on regardless of the Debug switch.
const forceDebug = true
