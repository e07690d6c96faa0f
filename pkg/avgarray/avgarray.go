// Package avgarray computes integer means over a value array directly and
// through an index-aligned reference view, so the two traversals can be
// timed against each other.
//
// Means use truncating integer division: the sum of n values divided by n,
// rounded toward zero.
package avgarray

import (
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// MaxValue is the exclusive upper bound of values produced by Fill.
const MaxValue = 1000

var (
	// ErrInvalidArgument is the common cause of precondition failures.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyArray indicates a mean requested over zero elements.
	ErrEmptyArray = fmt.Errorf("%w: average of empty array", ErrInvalidArgument)
)

// Fill overwrites a with pseudo-random values in [0, MaxValue).
func Fill(a []int, rng *rand.Rand) {
	for i := range a {
		a[i] = rng.Intn(MaxValue)
	}
}

// Average returns the truncated mean of a. The sum is accumulated in
// int64, so element types narrower than 64 bits cannot overflow it. For int
// and int64 elements the sum must stay within the int64 range; values from
// Fill always do.
func Average[T constraints.Signed](a []T) (T, error) {
	if len(a) == 0 {
		return 0, ErrEmptyArray
	}
	var sum int64
	for _, v := range a {
		sum += int64(v)
	}
	return T(sum / int64(len(a))), nil
}

// AverageRefs returns the truncated mean of the values v refers to,
// reading each slot exactly once. The same int64 sum bound as Average applies.
func AverageRefs(v *RefView) (int, error) {
	if v == nil || len(v.refs) == 0 {
		return 0, ErrEmptyArray
	}
	var sum int64
	for _, idx := range v.refs {
		sum += int64(v.base[idx])
	}
	return int(sum / int64(len(v.refs))), nil
}
