// Package verify turns the last result of a benchmark into a pass, fail,
// or not-run verdict.
package verify

import (
	"errors"
	"fmt"
)

// Verdict is the outcome of a verification.
type Verdict int

const (
	// NotRun means the result matched neither sentinel, e.g. the
	// operation never ran and the result kept its initial value.
	NotRun Verdict = iota
	// Passed means the result matched the success sentinel.
	Passed
	// Failed means the result matched the failure sentinel.
	Failed
)

// String returns the report line for the verdict.
func (v Verdict) String() string {
	switch v {
	case Passed:
		return "Verification passed"
	case Failed:
		return "Verification failed"
	default:
		return "Verification not run correctly"
	}
}

// Name returns a short identifier for the verdict: passed, failed or not-run.
func (v Verdict) Name() string {
	switch v {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "not-run"
	}
}

// Check compares got against the success and failure sentinels.
func Check[T comparable](got, pass, fail T) Verdict {
	switch got {
	case pass:
		return Passed
	case fail:
		return Failed
	default:
		return NotRun
	}
}

// Outcome is the result of a membership search, with an explicit initial
// sentinel distinct from both answers.
type Outcome int

const (
	OutcomeUnset    Outcome = -1
	OutcomeNotFound Outcome = 0
	OutcomeFound    Outcome = 1
)

// ErrUnknownOutcome indicates an unparseable outcome name.
var ErrUnknownOutcome = errors.New("unknown outcome")

// OutcomeOf converts a search result.
func OutcomeOf(found bool) Outcome {
	if found {
		return OutcomeFound
	}
	return OutcomeNotFound
}

// Opposite returns the other answer; OutcomeUnset stays unset.
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeFound:
		return OutcomeNotFound
	case OutcomeNotFound:
		return OutcomeFound
	default:
		return OutcomeUnset
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not-found"
	default:
		return "unset"
	}
}

// ParseOutcome parses "found" or "not-found".
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "found":
		return OutcomeFound, nil
	case "not-found":
		return OutcomeNotFound, nil
	default:
		return OutcomeUnset, fmt.Errorf("%w: %q (want found or not-found)", ErrUnknownOutcome, s)
	}
}
