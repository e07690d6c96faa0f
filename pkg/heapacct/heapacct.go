// Package heapacct tracks bytes held by benchmark datasets.
//
// A Tracker is created by the harness and handed to the code that
// allocates dataset storage, which reserves bytes before allocating and
// releases them when the dataset is discarded. The tracker records the
// current and peak usage and can refuse reservations beyond a limit.
package heapacct

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/eunmann/membench/pkg/humanfmt"
	"github.com/eunmann/membench/pkg/sysmem"
)

// DefaultLimitBytes is the fallback limit when system RAM cannot be detected.
const DefaultLimitBytes uint64 = 4 * 1024 * 1024 * 1024

// ErrLimitExceeded indicates a reservation that would exceed the tracker limit.
var ErrLimitExceeded = errors.New("heap accounting limit exceeded")

// LimitSource indicates how the limit was determined.
type LimitSource string

const (
	// LimitSourceAuto50Pct indicates the limit was set to 50% of detected RAM.
	LimitSourceAuto50Pct LimitSource = "auto-50pct"
	// LimitSourceDefault indicates the limit used the fallback default.
	LimitSourceDefault LimitSource = "default"
	// LimitSourceCLI indicates the limit was set via CLI flag.
	LimitSourceCLI LimitSource = "cli"
	// LimitSourceEnv indicates the limit was set via environment variable.
	LimitSourceEnv LimitSource = "env"
)

// Tracker accounts reserved bytes against a limit.
// Tracker is safe for concurrent use.
type Tracker struct {
	limit  uint64
	inUse  atomic.Uint64
	peak   atomic.Uint64
	source LimitSource
}

// Config holds configuration for creating a Tracker.
type Config struct {
	// LimitBytes caps total reservations. 0 means unlimited.
	LimitBytes uint64

	// Source indicates how the limit was determined.
	Source LimitSource
}

// New creates a new Tracker with the given configuration.
func New(cfg Config) *Tracker {
	return &Tracker{
		limit:  cfg.LimitBytes,
		source: cfg.Source,
	}
}

// NewFromSystemRAM creates a Tracker limited to 50% of system RAM.
// If RAM cannot be detected, uses DefaultLimitBytes.
func NewFromSystemRAM() *Tracker {
	result := sysmem.Total()
	if result.Reliable {
		return New(Config{LimitBytes: result.TotalBytes / 2, Source: LimitSourceAuto50Pct})
	}
	return New(Config{LimitBytes: DefaultLimitBytes, Source: LimitSourceDefault})
}

// Limit returns the limit in bytes (0 = unlimited).
func (t *Tracker) Limit() uint64 {
	return t.limit
}

// InUse returns the currently reserved bytes.
func (t *Tracker) InUse() uint64 {
	return t.inUse.Load()
}

// Peak returns the highest InUse value observed.
func (t *Tracker) Peak() uint64 {
	return t.peak.Load()
}

// Source returns how the limit was determined.
func (t *Tracker) Source() LimitSource {
	return t.source
}

// Reserve records n bytes as held. It fails without reserving anything if
// the limit would be exceeded.
func (t *Tracker) Reserve(n uint64) error {
	for {
		current := t.inUse.Load()
		next := current + n
		if t.limit > 0 && next > t.limit {
			return fmt.Errorf("%w: reserving %s with %s in use (limit %s)",
				ErrLimitExceeded, FormatBytes(n), FormatBytes(current), FormatBytes(t.limit))
		}
		if t.inUse.CompareAndSwap(current, next) {
			t.raisePeak(next)
			return nil
		}
	}
}

func (t *Tracker) raisePeak(v uint64) {
	for {
		p := t.peak.Load()
		if v <= p || t.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Release returns n bytes. Releasing more than is held caps usage at 0.
func (t *Tracker) Release(n uint64) {
	for {
		current := t.inUse.Load()
		next := uint64(0)
		if n < current {
			next = current - n
		}
		if t.inUse.CompareAndSwap(current, next) {
			return
		}
	}
}

// Stats is a point-in-time view of a Tracker.
type Stats struct {
	LimitBytes uint64
	InUseBytes uint64
	PeakBytes  uint64
	Source     LimitSource
}

// Stats returns current tracker statistics.
func (t *Tracker) Stats() Stats {
	return Stats{
		LimitBytes: t.limit,
		InUseBytes: t.inUse.Load(),
		PeakBytes:  t.peak.Load(),
		Source:     t.source,
	}
}

// ParseHumanSize parses a human-readable size string (e.g., "4GiB", "512MB").
// Supported suffixes: B, KB, KiB, K, MB, MiB, M, GB, GiB, G, TB, TiB, T.
func ParseHumanSize(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty size string")
	}

	numEnd := 0
	for i, c := range s {
		if (c < '0' || c > '9') && c != '.' {
			numEnd = i
			break
		}
		numEnd = i + 1
	}

	numStr := s[:numEnd]
	suffix := s[numEnd:]

	var num float64
	if _, err := fmt.Sscanf(numStr, "%f", &num); err != nil {
		return 0, fmt.Errorf("invalid number: %s", numStr)
	}

	var multiplier float64
	switch suffix {
	case "", "B":
		multiplier = 1
	case "KB":
		multiplier = 1000
	case "KiB", "K":
		multiplier = 1024
	case "MB":
		multiplier = 1000 * 1000
	case "MiB", "M":
		multiplier = 1024 * 1024
	case "GB":
		multiplier = 1000 * 1000 * 1000
	case "GiB", "G":
		multiplier = 1024 * 1024 * 1024
	case "TB":
		multiplier = 1000 * 1000 * 1000 * 1000
	case "TiB", "T":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix: %s", suffix)
	}

	return uint64(num * multiplier), nil
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b uint64) string {
	return humanfmt.Bytes(int64(min(b, math.MaxInt64)))
}
