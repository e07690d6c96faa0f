// Package trial times repeated invocations of an operation: a number of
// outer trials, each timing a fixed number of back-to-back sub-trials.
package trial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eunmann/membench/internal/logctx"
	"github.com/eunmann/membench/pkg/logging"
	"github.com/eunmann/membench/pkg/memdiag"
)

// ErrInvalidConfig indicates trial or sub-trial counts below one.
var ErrInvalidConfig = errors.New("invalid trial config")

// Config sets how many timed samples to collect and how many operation
// invocations make up one sample.
type Config struct {
	Trials    int
	SubTrials int
}

// Validate checks that both counts are at least one.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be >= 1, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.SubTrials < 1 {
		return fmt.Errorf("%w: subtrials must be >= 1, got %d", ErrInvalidConfig, c.SubTrials)
	}
	return nil
}

// Report holds the timings of a run and the result of its final invocation.
type Report[R any] struct {
	Config Config
	// Elapsed holds one wall-clock duration per outer trial.
	Elapsed []time.Duration
	// Average is the arithmetic mean of Elapsed.
	Average time.Duration
	// Last is the result of the last invocation.
	Last R
	// Mem covers all trials, excluding setup before the first one.
	Mem memdiag.Delta
}

// Ops returns the total number of operation invocations.
func (r Report[R]) Ops() int {
	return r.Config.Trials * r.Config.SubTrials
}

// Run invokes op cfg.SubTrials times per outer trial, cfg.Trials times.
// Only the last result is kept; Report.Last starts as initial, so a caller
// can tell a run that never invoked op apart from a real result.
// The context is consulted between outer trials.
func Run[R any](ctx context.Context, name string, cfg Config, initial R, op func() R) (Report[R], error) {
	rep := Report[R]{Config: cfg, Last: initial}
	if err := cfg.Validate(); err != nil {
		return rep, err
	}

	log := logctx.FromContext(ctx)
	pt := logging.NewProgressTracker(cfg.Trials)
	rep.Elapsed = make([]time.Duration, 0, cfg.Trials)

	memBefore := memdiag.Read()
	var total time.Duration
	for i := 0; i < cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("trial %d: %w", i, err)
		}

		start := time.Now()
		for j := 0; j < cfg.SubTrials; j++ {
			rep.Last = op()
		}
		elapsed := time.Since(start)

		rep.Elapsed = append(rep.Elapsed, elapsed)
		total += elapsed
		pt.RecordCompletion(elapsed)

		logging.TrialComplete(log, name, elapsed).
			Int("trial", i).
			Count("subtrials", int64(cfg.SubTrials)).
			PerOp(cfg.SubTrials).
			ProgressFromTracker(pt).
			Log("trial completed")
	}
	rep.Mem = memdiag.Since(memBefore, memdiag.Read())
	rep.Average = total / time.Duration(cfg.Trials)

	logging.PhaseComplete(log, name, total).
		Int("trials", cfg.Trials).
		Count("ops", int64(rep.Ops())).
		PerOp(rep.Ops()).
		Bytes("alloc_bytes", int64(rep.Mem.AllocBytes)).
		Count("mallocs", int64(rep.Mem.Mallocs)).
		Log("trials completed")

	return rep, nil
}

// WriteTo writes one line per trial and the average, in seconds.
func (r Report[R]) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for i, d := range r.Elapsed {
		m, err := fmt.Fprintf(w, "Elapsed time for trial %d is %fs\n", i, d.Seconds())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	m, err := fmt.Fprintf(w, "Average elapsed time is %fs\n", r.Average.Seconds())
	n += int64(m)
	return n, err
}
