package wordindex

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/eunmann/membench/pkg/benchutil"
	"github.com/eunmann/membench/pkg/strmatch"
)

func words(ss ...string) []strmatch.Word {
	out := make([]strmatch.Word, len(ss))
	for i, s := range ss {
		out[i] = strmatch.MustWord(s)
	}
	return out
}

func TestIndexScenario(t *testing.T) {
	idx, err := Build(words("rose", "tulip", "flower", "daisy"))
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !idx.Contains(strmatch.MustWord("flower")) {
		t.Error("expected flower to be found")
	}
	if idx.Contains(strmatch.MustWord("cactus")) {
		t.Error("did not expect cactus to be found")
	}
	if idx.Contains(strmatch.MustWord("flowe")) {
		t.Error("did not expect prefix to be found")
	}
}

func TestIndexEmpty(t *testing.T) {
	idx, err := Build(nil)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if idx.Len() != 0 || idx.Distinct() != 0 {
		t.Errorf("Len()=%d Distinct()=%d, want 0 0", idx.Len(), idx.Distinct())
	}
	if idx.Contains(strmatch.MustWord("")) {
		t.Error("empty index should not contain anything")
	}
}

func TestIndexDuplicates(t *testing.T) {
	idx, err := Build(words("rose", "rose", "tulip", "rose"))
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if idx.Len() != 4 {
		t.Errorf("Len() = %d, want 4", idx.Len())
	}
	if idx.Distinct() != 2 {
		t.Errorf("Distinct() = %d, want 2", idx.Distinct())
	}
	if !idx.Contains(strmatch.MustWord("rose")) || !idx.Contains(strmatch.MustWord("tulip")) {
		t.Error("expected both distinct words to be found")
	}
}

func TestIndexAgreesWithScan(t *testing.T) {
	raw := benchutil.GenerateWords(2000)
	list := words(raw...)
	idx, err := Build(list)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	probes := append([]string{}, raw[:200]...)
	probes = append(probes, benchutil.NewGenerator(benchutil.GeneratorConfig{
		NumWords: 500, MinLen: 1, MaxLen: 4, Seed: 7,
	}).Generate()...)
	probes = append(probes, benchutil.AbsentWord, "")

	for _, p := range probes {
		target := strmatch.MustWord(p)
		want := strmatch.Contains(list, target, strmatch.EqualLengthFirst)
		if got := idx.Contains(target); got != want {
			t.Errorf("Contains(%q) = %v, scan says %v", p, got, want)
		}
	}
}

func TestHashWordMatchesFNV(t *testing.T) {
	for _, s := range []string{"", "a", "flower", "chrysanthemum"} {
		h := fnv.New64a()
		h.Write([]byte(s))
		if got, want := hashWord(strmatch.MustWord(s)), h.Sum64(); got != want {
			t.Errorf("hashWord(%q) = %#x, want %#x", s, got, want)
		}
	}
}

func BenchmarkIndexContains(b *testing.B) {
	for _, size := range benchutil.BenchmarkSizes {
		raw := benchutil.GenerateWords(size)
		idx, err := Build(words(raw...))
		if err != nil {
			b.Fatalf("Build error: %v", err)
		}
		for _, pos := range benchutil.TargetPositions {
			target := strmatch.MustWord(benchutil.TargetFor(raw, pos))
			b.Run(fmt.Sprintf("size=%d/%s", size, pos), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = idx.Contains(target)
				}
			})
		}
	}
}
