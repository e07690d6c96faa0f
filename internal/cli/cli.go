// Package cli implements the command-line interface for membench.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/eunmann/membench/internal/logctx"
	"github.com/eunmann/membench/pkg/bench"
	"github.com/eunmann/membench/pkg/heapacct"
	"github.com/eunmann/membench/pkg/logging"
	"github.com/eunmann/membench/pkg/memdiag"
	"github.com/eunmann/membench/pkg/results"
	"github.com/eunmann/membench/pkg/sysmem"
	"github.com/eunmann/membench/pkg/trial"
	"github.com/eunmann/membench/pkg/verify"
	"github.com/eunmann/membench/pkg/wordsrc"
)

const (
	envWords     = "MEMBENCH_WORDS"
	envHeapLimit = "MEMBENCH_HEAP_LIMIT"
)

const usage = "usage: membench <command> [options]\ncommands: contains-word, avg-array"

// Run executes the CLI with the given arguments, writing the benchmark
// report to stdout.
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "contains-word":
		return runContainsWord(ctx, args[1:], stdout)
	case "avg-array":
		return runAvgArray(ctx, args[1:], stdout)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// commonFlags are shared by every benchmark subcommand.
type commonFlags struct {
	trials     int
	subTrials  int
	resultsOut string
	debug      bool
	human      bool
}

func (c *commonFlags) register(fs *flag.FlagSet, trials, subTrials int) {
	fs.IntVar(&c.trials, "trials", trials, "number of timed outer trials")
	fs.IntVar(&c.subTrials, "subtrials", subTrials, "operation invocations per trial")
	fs.StringVar(&c.resultsOut, "results-out", "", "write per-trial results to this Parquet file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&c.human, "human", false, "human-readable console logs")
}

func (c *commonFlags) trialConfig() trial.Config {
	return trial.Config{Trials: c.trials, SubTrials: c.subTrials}
}

// startRun configures logging, tags the context with a run id, and starts
// the pprof server if one is configured. The returned stop function must be
// called when the run ends.
func startRun(ctx context.Context, benchmark string, c *commonFlags) (context.Context, func(), error) {
	memCfg := memdiag.DefaultConfig()
	logging.Init(c.debug || memCfg.Enabled, c.human)

	ctx = logctx.WithLogger(ctx, *logging.L())
	ctx = logctx.WithRunID(ctx)
	ctx = logctx.WithStr(ctx, "benchmark", benchmark)
	log := logctx.FromContext(ctx)

	log.Info().
		Str("system_memory", sysmem.Total().String()).
		Str("go_version", runtime.Version()).
		Int("trials", c.trials).
		Int("subtrials", c.subTrials).
		Msg("starting benchmark")

	stop := func() {}
	if memCfg.PprofAddr != "" {
		_, stopPprof, err := memdiag.StartPprof(ctx, log, memCfg.PprofAddr)
		if err != nil {
			return ctx, stop, err
		}
		stop = stopPprof
	}
	return ctx, stop, nil
}

func runContainsWord(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("contains-word", flag.ContinueOnError)
	var common commonFlags
	common.register(fs, 1, 1)
	words := fs.String("words", envOr(envWords, wordsrc.DefaultPath), "word list path or s3://bucket/key (env "+envWords+")")
	target := fs.String("target", "flower", "word to search for")
	expect := fs.String("expect", verify.OutcomeFound.String(), "outcome that passes verification: found or not-found; not-found inverts the sentinel so a miss passes")
	strategy := fs.String("strategy", bench.StrategyLengthFirst, fmt.Sprintf("search strategy %v", bench.Strategies()))
	maxWords := fs.Int("max-words", 1024, "maximum number of words to load")
	maxWordLen := fs.Int("max-word-len", 255, "maximum characters per word")
	heapLimit := fs.String("heap-limit", "", "heap accounting limit, e.g. 64MiB (default: 50% of RAM, env "+envHeapLimit+")")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *words == "" {
		return errors.New("--words is required")
	}
	if *target == "" {
		return errors.New("--target is required")
	}
	want, err := verify.ParseOutcome(*expect)
	if err != nil {
		return fmt.Errorf("invalid --expect: %w", err)
	}
	heap, err := determineHeapLimit(*heapLimit)
	if err != nil {
		return err
	}

	ctx, stop, err := startRun(ctx, "contains-word", &common)
	if err != nil {
		return err
	}
	defer stop()

	log := logctx.FromContext(ctx)
	log.Info().
		Str("limit", heapacct.FormatBytes(heap.Limit())).
		Str("source", string(heap.Source())).
		Msg("heap accounting limit")

	startedAt := time.Now()
	res, err := bench.ContainsWord(ctx, bench.ContainsWordConfig{
		Source:     *words,
		Target:     *target,
		Expect:     want,
		Strategy:   *strategy,
		Trials:     common.trialConfig(),
		MaxWords:   *maxWords,
		MaxWordLen: *maxWordLen,
		Heap:       heap,
	})
	if err != nil {
		return err
	}

	hs := heap.Stats()
	log.Debug().
		Uint64("peak_bytes", hs.PeakBytes).
		Uint64("in_use_bytes", hs.InUseBytes).
		Str("source", string(hs.Source)).
		Msg("heap accounting")

	if _, err := res.WriteTo(stdout); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return writeResults(ctx, common.resultsOut, results.Rows(results.Meta{
		RunID:     logctx.RunID(ctx),
		Benchmark: "contains-word",
		Strategy:  *strategy,
		SubTrials: common.subTrials,
		StartedAt: startedAt,
	}, res.Report.Elapsed, res.Report.Average, res.Report.Mem.AllocBytes, res.Verdict.Name()))
}

func runAvgArray(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("avg-array", flag.ContinueOnError)
	var common commonFlags
	common.register(fs, 5, 100000)
	size := fs.Int("size", bench.DefaultArraySize, "number of values per array")
	seed := fs.Int64("seed", 1, "seed for value generation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *size < 1 {
		return fmt.Errorf("--size must be at least 1, got %d", *size)
	}

	ctx, stop, err := startRun(ctx, "avg-array", &common)
	if err != nil {
		return err
	}
	defer stop()

	startedAt := time.Now()
	res, err := bench.AvgArray(ctx, bench.AvgArrayConfig{
		Size:   *size,
		Seed:   *seed,
		Trials: common.trialConfig(),
	})
	if err != nil {
		return err
	}

	if _, err := res.WriteTo(stdout); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return writeResults(ctx, common.resultsOut, results.Rows(results.Meta{
		RunID:     logctx.RunID(ctx),
		Benchmark: "avg-array",
		SubTrials: common.subTrials,
		StartedAt: startedAt,
	}, res.Report.Elapsed, res.Report.Average, res.Report.Mem.AllocBytes, res.Verdict.Name()))
}

func writeResults(ctx context.Context, path string, rows []results.Row) error {
	if path == "" {
		return nil
	}
	if err := results.Write(path, rows); err != nil {
		return err
	}
	log := logctx.FromContext(ctx)
	log.Info().
		Str("path", path).
		Int("rows", len(rows)).
		Msg("wrote results")
	return nil
}

// determineHeapLimit resolves the heap accounting limit with priority:
// CLI flag > environment variable > 50% of system RAM.
func determineHeapLimit(cliLimit string) (*heapacct.Tracker, error) {
	if cliLimit != "" {
		limit, err := heapacct.ParseHumanSize(cliLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid --heap-limit: %w", err)
		}
		return heapacct.New(heapacct.Config{LimitBytes: limit, Source: heapacct.LimitSourceCLI}), nil
	}

	if envLimit := os.Getenv(envHeapLimit); envLimit != "" {
		limit, err := heapacct.ParseHumanSize(envLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envHeapLimit, err)
		}
		return heapacct.New(heapacct.Config{LimitBytes: limit, Source: heapacct.LimitSourceEnv}), nil
	}

	return heapacct.NewFromSystemRAM(), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
