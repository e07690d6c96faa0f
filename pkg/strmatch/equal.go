package strmatch

import (
	"fmt"
	"sort"
)

// EqualFunc reports whether two words hold identical characters.
type EqualFunc func(a, b Word) bool

// Variant names accepted by Variant.
const (
	VariantLengthFirst    = "length-first"
	VariantTerminatorScan = "terminator-scan"
)

var variants = map[string]EqualFunc{
	VariantLengthFirst:    EqualLengthFirst,
	VariantTerminatorScan: EqualTerminatorScan,
}

// Variant resolves a predicate by name.
func Variant(name string) (EqualFunc, error) {
	eq, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownVariant, name, VariantNames())
	}
	return eq, nil
}

// VariantNames returns the registered predicate names in sorted order.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EqualLengthFirst compares lengths first and only scans characters when
// they agree. The scan is bounded by the shared length.
func EqualLengthFirst(a, b Word) bool {
	n := Length(a)
	if n != Length(b) {
		return false
	}
	return equalPrefix(a, b, n)
}

// EqualTerminatorScan walks both words in lock-step until either reaches
// the terminator. The final comparison at the stop position catches one
// word being a strict prefix of the other.
func EqualTerminatorScan(a, b Word) bool {
	i := 0
	for a.at(i) != Terminator && b.at(i) != Terminator {
		if a.at(i) != b.at(i) {
			return false
		}
		i++
	}
	return a.at(i) == b.at(i)
}

// equalPrefix compares the first n characters of a and b.
func equalPrefix(a, b Word, n int) bool {
	for i := 0; i < n; i++ {
		if a.at(i) != b.at(i) {
			return false
		}
	}
	return true
}
