package strmatch

// Contains scans words in order and reports whether any equals target
// under eq. It stops at the first match.
func Contains(words []Word, target Word, eq EqualFunc) bool {
	for _, w := range words {
		if eq(w, target) {
			return true
		}
	}
	return false
}

// ContainsCached is Contains with precomputed word lengths: words whose
// cached length differs from the target's are skipped without a scan.
// lens[i] must be Length(words[i]).
func ContainsCached(words []Word, lens []int, target Word) (bool, error) {
	if len(lens) != len(words) {
		return false, ErrLengthMismatch
	}
	n := Length(target)
	for i, w := range words {
		if lens[i] != n {
			continue
		}
		if equalPrefix(w, target, n) {
			return true, nil
		}
	}
	return false, nil
}
