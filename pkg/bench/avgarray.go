package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/eunmann/membench/internal/logctx"
	"github.com/eunmann/membench/pkg/avgarray"
	"github.com/eunmann/membench/pkg/memdiag"
	"github.com/eunmann/membench/pkg/trial"
	"github.com/eunmann/membench/pkg/verify"
)

// DefaultArraySize is the element count of the averaging benchmark.
const DefaultArraySize = 1000

// AvgArrayConfig configures the avg-array benchmark.
type AvgArrayConfig struct {
	// Size is the number of values per sub-trial. 0 means DefaultArraySize.
	Size int
	// Seed seeds the value generator.
	Seed   int64
	Trials trial.Config
}

// Means holds the two averages of one sub-trial.
type Means struct {
	Direct int
	Refs   int
	ok     bool
}

// AvgArrayResult is the outcome of an avg-array run.
type AvgArrayResult struct {
	Report  trial.Report[Means]
	Verdict verify.Verdict
}

// AvgArray times building a fresh value array and reference view per
// sub-trial and averaging through both. Verification passes when the last
// sub-trial's two means agree.
func AvgArray(ctx context.Context, cfg AvgArrayConfig) (*AvgArrayResult, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultArraySize
	}
	if cfg.Size < 0 {
		return nil, fmt.Errorf("%w: array size must be positive, got %d", avgarray.ErrInvalidArgument, cfg.Size)
	}
	if err := cfg.Trials.Validate(); err != nil {
		return nil, err
	}

	ctx = logctx.WithInt(ctx, "size", cfg.Size)
	log := logctx.FromContext(ctx)
	rng := rand.New(rand.NewSource(cfg.Seed))

	var opErr error
	op := func() Means {
		values := make([]int, cfg.Size)
		avgarray.Fill(values, rng)
		m, err := averageBoth(values)
		if err != nil && opErr == nil {
			opErr = err
		}
		return m
	}

	memdiag.ForceGC(log)
	rep, err := trial.Run(ctx, "avg_array", cfg.Trials, Means{}, op)
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}
	memdiag.LogDelta(log, "avg_array", rep.Mem, rep.Ops())

	verdict := verify.NotRun
	if rep.Last.ok {
		verdict = verify.Check(rep.Last.Direct == rep.Last.Refs, true, false)
	}
	return &AvgArrayResult{Report: rep, Verdict: verdict}, nil
}

// averageBoth averages values directly and through a fresh reference view.
func averageBoth(values []int) (Means, error) {
	x, err := avgarray.Average(values)
	if err != nil {
		return Means{}, fmt.Errorf("average values: %w", err)
	}
	y, err := avgarray.AverageRefs(avgarray.NewRefView(values))
	if err != nil {
		return Means{}, fmt.Errorf("average refs: %w", err)
	}
	return Means{Direct: x, Refs: y, ok: true}, nil
}

// WriteTo writes the trial timings, both means, and the verdict.
func (r *AvgArrayResult) WriteTo(w io.Writer) (int64, error) {
	n, err := r.Report.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := fmt.Fprintf(w, "avg_array = %d, avg_parray = %d\n%s\n",
		r.Report.Last.Direct, r.Report.Last.Refs, r.Verdict)
	return n + int64(m), err
}
