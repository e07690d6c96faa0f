// Package humanfmt renders byte counts, counts, durations and operation
// rates for the human companion fields of log events.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

type unit struct {
	size   float64
	suffix string
}

// Largest first.
var (
	byteUnits = []unit{
		{1 << 60, " EiB"}, {1 << 50, " PiB"}, {1 << 40, " TiB"},
		{1 << 30, " GiB"}, {1 << 20, " MiB"}, {1 << 10, " KiB"},
	}
	countUnits = []unit{{1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
	subMinute  = []struct {
		size   time.Duration
		format string
	}{
		{time.Second, "%.2fs"},
		{time.Millisecond, "%.1fms"},
		{time.Microsecond, "%.1fµs"},
	}
)

// scale formats n in the first unit it reaches, or returns ok=false.
func scale(n float64, units []unit) (string, bool) {
	for _, u := range units {
		if n >= u.size {
			return strconv.FormatFloat(n/u.size, 'f', 2, 64) + u.suffix, true
		}
	}
	return "", false
}

// Bytes formats a byte count in IEC units, e.g. "1.50 KiB" or "512 B".
func Bytes(b int64) string {
	if s, ok := scale(float64(b), byteUnits); ok {
		return s
	}
	return strconv.FormatInt(b, 10) + " B"
}

// Count formats n with a metric suffix, e.g. "1.23M" or "789".
func Count(n int64) string {
	if s, ok := scale(float64(n), countUnits); ok {
		return s
	}
	return strconv.FormatInt(n, 10)
}

// Duration formats d compactly: "12ns", "789.0µs", "45.6ms", "1.23s",
// "1m30s", "2h15m".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return d.String()
	case d >= time.Hour:
		return wholeUnits(d/time.Hour, "h", (d%time.Hour)/time.Minute, "m")
	case d >= time.Minute:
		return wholeUnits(d/time.Minute, "m", (d%time.Minute)/time.Second, "s")
	}
	for _, u := range subMinute {
		if d >= u.size {
			return fmt.Sprintf(u.format, float64(d)/float64(u.size))
		}
	}
	return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
}

func wholeUnits(major time.Duration, majorSuffix string, minor time.Duration, minorSuffix string) string {
	s := strconv.FormatInt(int64(major), 10) + majorSuffix
	if minor != 0 {
		s += strconv.FormatInt(int64(minor), 10) + minorSuffix
	}
	return s
}

// Rate formats n operations over d as a per-second rate, e.g. "1.50M ops/s".
func Rate(n int64, d time.Duration) string {
	if d <= 0 {
		return "∞"
	}
	return Count(int64(float64(n)/d.Seconds())) + " ops/s"
}
