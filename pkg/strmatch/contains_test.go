package strmatch

import (
	"errors"
	"testing"
)

func words(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = MustWord(s)
	}
	return out
}

func lengths(ws []Word) []int {
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = Length(w)
	}
	return out
}

func TestContains(t *testing.T) {
	list := words("rose", "tulip", "flower", "daisy")

	tests := []struct {
		target string
		want   bool
	}{
		{"flower", true},
		{"rose", true},
		{"daisy", true},
		{"cactus", false},
		{"flowe", false},
		{"flowers", false},
		{"Rose", false},
		{"", false},
	}

	for _, name := range VariantNames() {
		eq, _ := Variant(name)
		for _, tt := range tests {
			target := MustWord(tt.target)
			if got := Contains(list, target, eq); got != tt.want {
				t.Errorf("%s: Contains(%q) = %v, want %v", name, tt.target, got, tt.want)
			}
			got, err := ContainsCached(list, lengths(list), target)
			if err != nil {
				t.Fatalf("ContainsCached error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ContainsCached(%q) = %v, want %v", tt.target, got, tt.want)
			}
		}
	}
}

func TestContainsEmptyList(t *testing.T) {
	target := MustWord("flower")
	if Contains(nil, target, EqualLengthFirst) {
		t.Error("Contains on empty list should be false")
	}
	got, err := ContainsCached(nil, nil, target)
	if err != nil || got {
		t.Errorf("ContainsCached on empty list = %v, %v; want false, nil", got, err)
	}
}

func TestContainsEmptyWordInList(t *testing.T) {
	list := words("a", "", "b")
	if !Contains(list, MustWord(""), EqualTerminatorScan) {
		t.Error("expected empty word to be found")
	}
}

func TestContainsCachedLengthMismatch(t *testing.T) {
	list := words("rose", "tulip")
	_, err := ContainsCached(list, []int{4}, MustWord("rose"))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected error to wrap ErrInvalidArgument, got %v", err)
	}
}
