package benchutil

import (
	"os"
	"testing"
)

// SkipIfNoLongBench skips the benchmark if MEMBENCH_LONG_BENCH is not set.
// Use this to gate long-running benchmarks that shouldn't run by default.
func SkipIfNoLongBench(b *testing.B) {
	if os.Getenv("MEMBENCH_LONG_BENCH") == "" {
		b.Skip("set MEMBENCH_LONG_BENCH=1 to run scaling benchmark")
	}
}

// TargetFor picks the target word for a position in TargetPositions.
// "absent" returns a word that GenerateWords never produces.
func TargetFor(words []string, position string) string {
	if len(words) == 0 || position == "absent" {
		return AbsentWord
	}
	switch position {
	case "first":
		return words[0]
	case "middle":
		return words[len(words)/2]
	default:
		return words[len(words)-1]
	}
}
