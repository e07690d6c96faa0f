// Package memdiag snapshots runtime memory statistics around timed
// sections and optionally serves pprof.
//
// Enable debug memory logging with MEMBENCH_MEM_DEBUG=1.
// Serve pprof with MEMBENCH_PPROF=<addr>, e.g. MEMBENCH_PPROF=localhost:6060.
package memdiag

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	// Registers pprof handlers on DefaultServeMux for the pprof HTTP server.
	_ "net/http/pprof"

	"github.com/rs/zerolog"
)

// Config holds configuration for memory diagnostics.
type Config struct {
	// Enabled turns on debug memory logging around timed sections.
	Enabled bool

	// PprofAddr, if non-empty, is the listen address of the pprof server.
	PprofAddr string
}

// DefaultConfig reads the configuration from the environment.
func DefaultConfig() Config {
	return Config{
		Enabled:   os.Getenv("MEMBENCH_MEM_DEBUG") == "1",
		PprofAddr: os.Getenv("MEMBENCH_PPROF"),
	}
}

// Stats holds memory statistics from runtime.
type Stats struct {
	// HeapAlloc is bytes of allocated heap objects.
	HeapAlloc uint64

	// TotalAlloc is cumulative bytes allocated (even if freed).
	TotalAlloc uint64

	// Mallocs is the cumulative count of heap objects allocated.
	Mallocs uint64

	// Sys is bytes obtained from OS.
	Sys uint64

	// NumGC is the number of completed GC cycles.
	NumGC uint32
}

// Read reads current memory statistics.
func Read() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// Delta is the change in cumulative counters between two snapshots.
type Delta struct {
	AllocBytes uint64
	Mallocs    uint64
	NumGC      uint32
}

// Since returns the counters accumulated from before to after.
func Since(before, after Stats) Delta {
	return Delta{
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
		Mallocs:    after.Mallocs - before.Mallocs,
		NumGC:      after.NumGC - before.NumGC,
	}
}

// PerOp divides the delta over n operations.
func (d Delta) PerOp(n int) (bytes, allocs float64) {
	if n <= 0 {
		return 0, 0
	}
	return float64(d.AllocBytes) / float64(n), float64(d.Mallocs) / float64(n)
}

// FormatMB formats bytes as megabytes.
func FormatMB(b uint64) string {
	return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
}

// LogDelta logs a delta at debug level.
func LogDelta(log zerolog.Logger, reason string, d Delta, ops int) {
	bytesPerOp, allocsPerOp := d.PerOp(ops)
	log.Debug().
		Str("reason", reason).
		Str("alloc", FormatMB(d.AllocBytes)).
		Uint64("mallocs", d.Mallocs).
		Uint32("num_gc", d.NumGC).
		Float64("bytes_per_op", bytesPerOp).
		Float64("allocs_per_op", allocsPerOp).
		Msg("memory delta")
}

// ForceGC forces a garbage collection and logs how much heap it freed.
func ForceGC(log zerolog.Logger) {
	before := Read()
	runtime.GC()
	after := Read()

	freed := int64(before.HeapAlloc) - int64(after.HeapAlloc)

	log.Debug().
		Str("before_heap", FormatMB(before.HeapAlloc)).
		Str("after_heap", FormatMB(after.HeapAlloc)).
		Str("freed", FormatMB(uint64(max(freed, 0)))).
		Msg("forced GC")
}

// StartPprof serves net/http/pprof on addr until ctx is done. It returns
// the bound address (useful with port 0) and a function that stops the
// server and waits for it.
func StartPprof(ctx context.Context, log zerolog.Logger, addr string) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen pprof on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: http.DefaultServeMux, ReadHeaderTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info().Str("addr", ln.Addr().String()).Msg("starting pprof server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("pprof server failed")
		}
	}()

	stopCtx, cancel := context.WithCancel(ctx)
	go func() {
		<-stopCtx.Done()
		shutdownCtx, c := context.WithTimeout(context.Background(), time.Second)
		defer c()
		_ = srv.Shutdown(shutdownCtx)
	}()

	stop := func() {
		cancel()
		<-done
	}
	return ln.Addr().String(), stop, nil
}
