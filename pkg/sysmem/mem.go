// Package sysmem detects total system memory for the benchmark run header
// and the default heap accounting limit.
package sysmem

import "fmt"

// DefaultMemoryBytes is the fallback value (4 GiB) used when
// platform-specific detection fails or is unsupported.
const DefaultMemoryBytes uint64 = 4 * 1024 * 1024 * 1024

// Result holds the result of memory detection.
type Result struct {
	// TotalBytes is the total system memory in bytes.
	TotalBytes uint64

	// Reliable is false when TotalBytes is the fallback default.
	Reliable bool
}

// String renders the result for logs, e.g. "15.52 GiB" or "4.00 GiB (fallback)".
func (r Result) String() string {
	s := fmt.Sprintf("%.2f GiB", float64(r.TotalBytes)/(1024*1024*1024))
	if !r.Reliable {
		s += " (fallback)"
	}
	return s
}

// Total returns the total system memory, or DefaultMemoryBytes with
// Reliable=false when it cannot be detected.
func Total() Result {
	bytes, ok := totalSystemMemory()
	if !ok || bytes == 0 {
		return Result{TotalBytes: DefaultMemoryBytes}
	}
	return Result{TotalBytes: bytes, Reliable: true}
}
