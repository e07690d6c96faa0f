// Package wordlist loads a bounded, immutable list of words from a
// whitespace-delimited text source.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eunmann/membench/internal/logctx"
	"github.com/eunmann/membench/pkg/heapacct"
	"github.com/eunmann/membench/pkg/strmatch"
)

// Defaults mirror the fixed-size arrays of the classroom harness: room for
// 1024 words, each read through a 256-byte buffer including its terminator.
const (
	DefaultMaxWords   = 1024
	DefaultMaxWordLen = 255
)

// ErrWordTooLong indicates a token longer than Options.MaxWordLen.
var ErrWordTooLong = errors.New("word exceeds maximum length")

// Options bounds a load.
type Options struct {
	// MaxWords caps the number of words kept; reading stops silently at
	// the cap. 0 means DefaultMaxWords.
	MaxWords int
	// MaxWordLen caps the characters per word; a longer token fails the
	// load. 0 means DefaultMaxWordLen.
	MaxWordLen int
	// Heap, if set, is charged len+1 bytes per word.
	Heap *heapacct.Tracker
}

func (o Options) withDefaults() Options {
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.MaxWordLen <= 0 {
		o.MaxWordLen = DefaultMaxWordLen
	}
	return o
}

// List is an ordered, immutable sequence of owned words with cached lengths.
type List struct {
	words     []strmatch.Word
	lens      []int
	bytes     uint64
	truncated bool

	heap     *heapacct.Tracker
	released bool
}

// Load reads whitespace-delimited tokens from r until end of input or
// opts.MaxWords words have been kept.
func Load(ctx context.Context, r io.Reader, opts Options) (*List, error) {
	opts = opts.withDefaults()
	log := logctx.FromContext(ctx)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), max(opts.MaxWordLen+2, bufio.MaxScanTokenSize))
	sc.Split(bufio.ScanWords)

	l := &List{heap: opts.Heap}
	for len(l.words) < opts.MaxWords && sc.Scan() {
		tok := sc.Bytes()
		if len(tok) > opts.MaxWordLen {
			l.Release()
			return nil, fmt.Errorf("%w: word %d has %d characters (max %d)",
				ErrWordTooLong, len(l.words), len(tok), opts.MaxWordLen)
		}
		if err := l.add(string(tok)); err != nil {
			l.Release()
			return nil, fmt.Errorf("word %d: %w", len(l.words), err)
		}
	}
	if err := sc.Err(); err != nil {
		l.Release()
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: word %d (max %d)", ErrWordTooLong, len(l.words), opts.MaxWordLen)
		}
		return nil, fmt.Errorf("read words: %w", err)
	}

	if len(l.words) == opts.MaxWords && sc.Scan() {
		l.truncated = true
	}

	log.Debug().
		Int("words", len(l.words)).
		Uint64("bytes", l.bytes).
		Bool("truncated", l.truncated).
		Msg("loaded word list")
	return l, nil
}

func (l *List) add(s string) error {
	size := uint64(len(s) + 1)
	if l.heap != nil {
		if err := l.heap.Reserve(size); err != nil {
			return err
		}
	}
	w, err := strmatch.NewWord(s)
	if err != nil {
		if l.heap != nil {
			l.heap.Release(size)
		}
		return err
	}
	l.words = append(l.words, w)
	l.lens = append(l.lens, len(s))
	l.bytes += size
	return nil
}

// Len returns the number of words.
func (l *List) Len() int {
	return len(l.words)
}

// Words returns the words in load order. Callers must not modify the slice.
func (l *List) Words() []strmatch.Word {
	return l.words
}

// Lengths returns the cached length of each word, index-aligned with Words.
func (l *List) Lengths() []int {
	return l.lens
}

// Bytes returns the storage held by the words, terminators included.
func (l *List) Bytes() uint64 {
	return l.bytes
}

// Truncated reports whether input remained after the word cap was reached.
func (l *List) Truncated() bool {
	return l.truncated
}

// Contains reports whether target occurs in the list under eq.
func (l *List) Contains(target strmatch.Word, eq strmatch.EqualFunc) bool {
	return strmatch.Contains(l.words, target, eq)
}

// ContainsCached reports whether target occurs in the list, using the
// cached lengths to skip words that cannot match.
func (l *List) ContainsCached(target strmatch.Word) bool {
	// lens is built alongside words, so the length precondition holds.
	found, _ := strmatch.ContainsCached(l.words, l.lens, target)
	return found
}

// Release returns the list's bytes to the heap tracker. Only the first
// call has an effect.
func (l *List) Release() {
	if l.released {
		return
	}
	l.released = true
	if l.heap != nil {
		l.heap.Release(l.bytes)
	}
}
