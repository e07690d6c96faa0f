// Package strmatch implements word equality predicates and membership search
// over terminator-delimited words.
package strmatch

import (
	"errors"
	"fmt"
)

// Terminator marks the end of a word's character sequence.
const Terminator byte = 0

var (
	// ErrInvalidArgument is the common cause of precondition failures.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmbeddedTerminator indicates input containing the terminator byte.
	ErrEmbeddedTerminator = errors.New("word contains terminator byte")
	// ErrUnknownVariant indicates an unrecognized predicate name.
	ErrUnknownVariant = errors.New("unknown equality variant")
	// ErrLengthMismatch indicates a cached length slice that does not line up with its words.
	ErrLengthMismatch = fmt.Errorf("%w: cached lengths do not match words", ErrInvalidArgument)
)

// Word is an owned, immutable character sequence stored with an explicit
// trailing Terminator, so a word of n characters occupies n+1 bytes.
// The zero Word is the empty word.
type Word struct {
	b []byte
}

// NewWord copies s into a freshly allocated terminated buffer.
func NewWord(s string) (Word, error) {
	buf := make([]byte, len(s)+1)
	for i := 0; i < len(s); i++ {
		if s[i] == Terminator {
			return Word{}, fmt.Errorf("%w at offset %d", ErrEmbeddedTerminator, i)
		}
		buf[i] = s[i]
	}
	buf[len(s)] = Terminator
	return Word{b: buf}, nil
}

// MustWord is like NewWord but panics on invalid input. Intended for
// literals in tests and benchmarks.
func MustWord(s string) Word {
	w, err := NewWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// at returns the character at position i, or Terminator past the end of
// the backing buffer (covers the zero Word).
func (w Word) at(i int) byte {
	if i >= len(w.b) {
		return Terminator
	}
	return w.b[i]
}

// Size returns the number of bytes the word occupies, terminator included.
func (w Word) Size() int {
	if w.b == nil {
		return 1
	}
	return len(w.b)
}

// Bytes returns the word's characters without the terminator. The result
// aliases the word's storage and must not be modified.
func (w Word) Bytes() []byte {
	return w.b[:Length(w)]
}

// String returns the word's characters without the terminator.
func (w Word) String() string {
	return string(w.b[:Length(w)])
}

// Length counts the characters before the terminator.
func Length(w Word) int {
	i := 0
	for w.at(i) != Terminator {
		i++
	}
	return i
}
