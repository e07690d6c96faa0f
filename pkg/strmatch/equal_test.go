package strmatch

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewWord(t *testing.T) {
	w, err := NewWord("flower")
	if err != nil {
		t.Fatalf("NewWord error: %v", err)
	}
	if w.Size() != 7 {
		t.Errorf("Size() = %d, want 7", w.Size())
	}
	if Length(w) != 6 {
		t.Errorf("Length() = %d, want 6", Length(w))
	}
	if w.String() != "flower" {
		t.Errorf("String() = %q, want %q", w.String(), "flower")
	}
}

func TestNewWordEmbeddedTerminator(t *testing.T) {
	_, err := NewWord("ab\x00c")
	if !errors.Is(err, ErrEmbeddedTerminator) {
		t.Fatalf("expected ErrEmbeddedTerminator, got %v", err)
	}
}

func TestZeroWordIsEmpty(t *testing.T) {
	var zero Word
	if Length(zero) != 0 {
		t.Errorf("Length(zero) = %d, want 0", Length(zero))
	}
	if !EqualLengthFirst(zero, MustWord("")) {
		t.Error("zero word should equal empty word (length-first)")
	}
	if !EqualTerminatorScan(zero, MustWord("")) {
		t.Error("zero word should equal empty word (terminator-scan)")
	}
}

func TestEqualVariants(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"a", "a", true},
		{"rose", "rose", true},
		{"rose", "rise", false},
		{"flow", "flower", false},
		{"flower", "flow", false},
		{"", "a", false},
		{"a", "", false},
		{"Flower", "flower", false},
		{"abc", "abd", false},
		{"xbc", "abc", false},
	}

	for _, tt := range tests {
		a, b := MustWord(tt.a), MustWord(tt.b)
		if got := EqualLengthFirst(a, b); got != tt.want {
			t.Errorf("EqualLengthFirst(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := EqualTerminatorScan(a, b); got != tt.want {
			t.Errorf("EqualTerminatorScan(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// randomWord draws from a small alphabet so that equal and prefix pairs
// show up often.
func randomWord(rng *rand.Rand) string {
	const alphabet = "ab"
	n := rng.Intn(5)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}

func TestEqualProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		sa, sb := randomWord(rng), randomWord(rng)
		a, b := MustWord(sa), MustWord(sb)
		want := sa == sb

		lf := EqualLengthFirst(a, b)
		ts := EqualTerminatorScan(a, b)
		if lf != ts {
			t.Fatalf("variants disagree on (%q, %q): length-first=%v terminator-scan=%v", sa, sb, lf, ts)
		}
		if lf != want {
			t.Fatalf("EqualLengthFirst(%q, %q) = %v, want %v", sa, sb, lf, want)
		}
		if EqualLengthFirst(b, a) != lf || EqualTerminatorScan(b, a) != ts {
			t.Fatalf("not symmetric on (%q, %q)", sa, sb)
		}
		if !EqualLengthFirst(a, a) || !EqualTerminatorScan(a, a) {
			t.Fatalf("not reflexive on %q", sa)
		}
	}
}

func TestEqualDoesNotAllocate(t *testing.T) {
	a, b := MustWord("tulip"), MustWord("tulips")
	for _, name := range VariantNames() {
		eq, err := Variant(name)
		if err != nil {
			t.Fatalf("Variant(%q) error: %v", name, err)
		}
		allocs := testing.AllocsPerRun(100, func() {
			_ = eq(a, b)
		})
		if allocs != 0 {
			t.Errorf("%s allocated %.0f times per call, want 0", name, allocs)
		}
	}
}

func TestVariant(t *testing.T) {
	if _, err := Variant(VariantLengthFirst); err != nil {
		t.Errorf("Variant(%q) error: %v", VariantLengthFirst, err)
	}
	if _, err := Variant(VariantTerminatorScan); err != nil {
		t.Errorf("Variant(%q) error: %v", VariantTerminatorScan, err)
	}
	_, err := Variant("strcmp")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}
