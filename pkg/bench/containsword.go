// Package bench wires each benchmark's pipeline: build the dataset once,
// time the operation under test, then verify and report the last result.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eunmann/membench/internal/logctx"
	"github.com/eunmann/membench/pkg/heapacct"
	"github.com/eunmann/membench/pkg/logging"
	"github.com/eunmann/membench/pkg/memdiag"
	"github.com/eunmann/membench/pkg/strmatch"
	"github.com/eunmann/membench/pkg/trial"
	"github.com/eunmann/membench/pkg/verify"
	"github.com/eunmann/membench/pkg/wordindex"
	"github.com/eunmann/membench/pkg/wordlist"
	"github.com/eunmann/membench/pkg/wordsrc"
)

// Search strategies for the contains-word benchmark. The first two select
// an equality predicate for a linear scan.
const (
	StrategyLengthFirst    = strmatch.VariantLengthFirst
	StrategyTerminatorScan = strmatch.VariantTerminatorScan
	StrategyCached         = "cached"
	StrategyIndexed        = "indexed"
)

// ErrUnknownStrategy indicates an unrecognized search strategy.
var ErrUnknownStrategy = errors.New("unknown search strategy")

// Strategies lists the accepted search strategies.
func Strategies() []string {
	return append(strmatch.VariantNames(), StrategyCached, StrategyIndexed)
}

// ContainsWordConfig configures the contains-word benchmark.
type ContainsWordConfig struct {
	// Source is a word list path or s3:// URI.
	Source string
	// Target is the word searched for.
	Target string
	// Expect is the outcome that passes verification.
	Expect verify.Outcome
	// Strategy selects how membership is decided.
	Strategy string
	Trials   trial.Config

	MaxWords   int
	MaxWordLen int
	// Heap is charged for the word list storage. Nil disables accounting.
	Heap *heapacct.Tracker
	// Opener opens Source. Nil uses a zero wordsrc.Opener.
	Opener *wordsrc.Opener
}

// ContainsWordResult is the outcome of a contains-word run.
type ContainsWordResult struct {
	Report    trial.Report[verify.Outcome]
	Verdict   verify.Verdict
	Words     int
	WordBytes uint64
	Truncated bool
}

// ContainsWord loads the word list, times the membership search, and
// verifies the last answer against cfg.Expect. The word list is released
// before returning, whatever the outcome.
func ContainsWord(ctx context.Context, cfg ContainsWordConfig) (*ContainsWordResult, error) {
	if err := cfg.Trials.Validate(); err != nil {
		return nil, err
	}
	target, err := strmatch.NewWord(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	ctx = logctx.WithStr(ctx, "strategy", cfg.Strategy)
	log := logctx.FromContext(ctx)

	loadStart := time.Now()
	list, err := loadWords(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer list.Release()

	logging.PhaseComplete(log, "load_words", time.Since(loadStart)).
		Str("source", cfg.Source).
		Count("words", int64(list.Len())).
		Bytes("word_bytes", int64(list.Bytes())).
		Log("word list loaded")

	op, err := searchOp(list, target, cfg.Strategy)
	if err != nil {
		return nil, err
	}

	memdiag.ForceGC(log)
	rep, err := trial.Run(ctx, "contains_word", cfg.Trials, verify.OutcomeUnset, op)
	if err != nil {
		return nil, err
	}
	memdiag.LogDelta(log, "contains_word", rep.Mem, rep.Ops())

	return &ContainsWordResult{
		Report:    rep,
		Verdict:   verify.Check(rep.Last, cfg.Expect, cfg.Expect.Opposite()),
		Words:     list.Len(),
		WordBytes: list.Bytes(),
		Truncated: list.Truncated(),
	}, nil
}

func loadWords(ctx context.Context, cfg ContainsWordConfig) (*wordlist.List, error) {
	opener := cfg.Opener
	if opener == nil {
		opener = &wordsrc.Opener{}
	}
	rc, err := opener.Open(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	list, err := wordlist.Load(ctx, rc, wordlist.Options{
		MaxWords:   cfg.MaxWords,
		MaxWordLen: cfg.MaxWordLen,
		Heap:       cfg.Heap,
	})
	if err != nil {
		return nil, fmt.Errorf("load words from %s: %w", cfg.Source, err)
	}
	return list, nil
}

func searchOp(list *wordlist.List, target strmatch.Word, strategy string) (func() verify.Outcome, error) {
	switch strategy {
	case StrategyCached:
		return func() verify.Outcome {
			return verify.OutcomeOf(list.ContainsCached(target))
		}, nil
	case StrategyIndexed:
		idx, err := wordindex.Build(list.Words())
		if err != nil {
			return nil, fmt.Errorf("build word index: %w", err)
		}
		return func() verify.Outcome {
			return verify.OutcomeOf(idx.Contains(target))
		}, nil
	}

	eq, err := strmatch.Variant(strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, strategy, Strategies())
	}
	return func() verify.Outcome {
		return verify.OutcomeOf(list.Contains(target, eq))
	}, nil
}

// WriteTo writes the heap usage line, the trial timings, and the verdict.
func (r *ContainsWordResult) WriteTo(w io.Writer) (int64, error) {
	var n int64
	m, err := fmt.Fprintf(w, "Heap space usage is %d bytes\n", r.WordBytes)
	n += int64(m)
	if err != nil {
		return n, err
	}
	k, err := r.Report.WriteTo(w)
	n += k
	if err != nil {
		return n, err
	}
	m, err = fmt.Fprintln(w, r.Verdict)
	n += int64(m)
	return n, err
}
