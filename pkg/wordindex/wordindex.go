// Package wordindex answers word membership through a minimal perfect hash
// over the word list, as a constant-time alternative to a linear scan.
package wordindex

import (
	"fmt"

	"github.com/relab/bbhash"

	"github.com/eunmann/membench/pkg/strmatch"
)

// Index maps each distinct word hash to the words that produced it.
type Index struct {
	mph    *bbhash.BBHash2
	words  []strmatch.Word
	hashes []uint64 // hashes[slot] is the key stored at slot
	slots  [][]int  // slots[slot] lists indices into words
}

// Build indexes words. The slice is retained, not copied.
func Build(words []strmatch.Word) (*Index, error) {
	idx := &Index{words: words}
	if len(words) == 0 {
		return idx, nil
	}

	byHash := make(map[uint64][]int, len(words))
	keys := make([]uint64, 0, len(words))
	for i, w := range words {
		h := hashWord(w)
		if _, seen := byHash[h]; !seen {
			keys = append(keys, h)
		}
		byHash[h] = append(byHash[h], i)
	}

	mph, err := bbhash.New(keys, bbhash.Gamma(2.0))
	if err != nil {
		return nil, fmt.Errorf("build MPHF: %w", err)
	}

	// BBHash returns 1-indexed values.
	idx.mph = mph
	idx.hashes = make([]uint64, len(keys))
	idx.slots = make([][]int, len(keys))
	for _, k := range keys {
		pos := mph.Find(k)
		if pos == 0 || pos > uint64(len(keys)) {
			return nil, fmt.Errorf("MPHF lookup failed for key %#x", k)
		}
		idx.hashes[pos-1] = k
		idx.slots[pos-1] = byHash[k]
	}
	return idx, nil
}

// Len returns the number of indexed words, duplicates included.
func (x *Index) Len() int {
	return len(x.words)
}

// Distinct returns the number of distinct word hashes.
func (x *Index) Distinct() int {
	return len(x.hashes)
}

// Contains reports whether target is one of the indexed words. A hash hit
// is confirmed character by character, so collisions cannot produce a
// false positive.
func (x *Index) Contains(target strmatch.Word) bool {
	if x.mph == nil {
		return false
	}
	h := hashWord(target)
	pos := x.mph.Find(h)
	if pos == 0 || pos > uint64(len(x.hashes)) || x.hashes[pos-1] != h {
		return false
	}
	for _, i := range x.slots[pos-1] {
		if strmatch.EqualLengthFirst(x.words[i], target) {
			return true
		}
	}
	return false
}

// hashWord is 64-bit FNV-1a over the word's characters.
func hashWord(w strmatch.Word) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, c := range w.Bytes() {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}
