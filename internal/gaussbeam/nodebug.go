//go:build !debug
// +build !debug

package gaussbeam

const forceDebug = false
