package benchutil

// Shared constants for benchmarks across packages.

// BenchmarkSeed is the default seed for reproducible benchmark data generation.
const BenchmarkSeed = 42

// Standard word list sizes for quick runs. 1024 matches the loader's default capacity.
var BenchmarkSizes = []int{16, 256, 1024}

// ScalingSizes are larger sizes for comprehensive scaling tests.
// Used with MEMBENCH_LONG_BENCH=1 environment variable.
var ScalingSizes = []int{4096, 16384, 65536, 262144}

// ArraySizes are value array lengths for the averaging benchmarks.
var ArraySizes = []int{10, 1000, 100000}

// TargetPositions are where the searched word sits in a generated list.
//   - first: the scan stops immediately
//   - middle: half the list is scanned
//   - last: the whole list is scanned and the last word matches
//   - absent: the whole list is scanned without a match
var TargetPositions = []string{
	"first",
	"middle",
	"last",
	"absent",
}
