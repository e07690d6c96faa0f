package avgarray

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/eunmann/membench/pkg/benchutil"
)

func TestAverageScenario(t *testing.T) {
	values := []int{2, 4, 6, 8}

	direct, err := Average(values)
	if err != nil {
		t.Fatalf("Average error: %v", err)
	}
	indirect, err := AverageRefs(NewRefView(values))
	if err != nil {
		t.Fatalf("AverageRefs error: %v", err)
	}
	if direct != 5 || indirect != 5 {
		t.Errorf("Average = %d, AverageRefs = %d, want 5 and 5", direct, indirect)
	}
}

func TestAverageTruncates(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{[]int{1, 2}, 1},
		{[]int{1, 1, 2}, 1},
		{[]int{999, 998}, 998},
		{[]int{0, 0, 1}, 0},
		{[]int{7}, 7},
		{[]int{-3, -4}, -3},
	}
	for _, tt := range tests {
		got, err := Average(tt.values)
		if err != nil {
			t.Fatalf("Average(%v) error: %v", tt.values, err)
		}
		if got != tt.want {
			t.Errorf("Average(%v) = %d, want %d", tt.values, got, tt.want)
		}
		ref, _ := AverageRefs(NewRefView(tt.values))
		if ref != got {
			t.Errorf("AverageRefs(%v) = %d, want %d", tt.values, ref, got)
		}
	}
}

func TestAverageNarrowTypesDoNotOverflow(t *testing.T) {
	// 3*100 and 3*30000 overflow int8 and int16 but not the int64 sum.
	if got, err := Average([]int8{100, 100, 100}); err != nil || got != 100 {
		t.Errorf("Average(int8) = %d, %v, want 100", got, err)
	}
	if got, err := Average([]int16{30000, 30000, 30001}); err != nil || got != 30000 {
		t.Errorf("Average(int16) = %d, %v, want 30000", got, err)
	}
	if got, err := Average([]int32{math.MaxInt32, math.MaxInt32}); err != nil || got != math.MaxInt32 {
		t.Errorf("Average(int32) = %d, %v, want %d", got, err, math.MaxInt32)
	}
}

func TestAverageIdenticalValues(t *testing.T) {
	for _, n := range []int{1, 2, 3, 1000} {
		for _, v := range []int{0, 1, 500, 999} {
			values := make([]int, n)
			for i := range values {
				values[i] = v
			}
			got, _ := Average(values)
			ref, _ := AverageRefs(NewRefView(values))
			if got != v || ref != v {
				t.Errorf("n=%d v=%d: Average=%d AverageRefs=%d", n, v, got, ref)
			}
		}
	}
}

func TestAverageEmpty(t *testing.T) {
	if _, err := Average([]int{}); !errors.Is(err, ErrEmptyArray) {
		t.Errorf("Average(empty) error = %v, want ErrEmptyArray", err)
	}
	if _, err := AverageRefs(NewRefView(nil)); !errors.Is(err, ErrEmptyArray) {
		t.Errorf("AverageRefs(empty) error = %v, want ErrEmptyArray", err)
	}
	if _, err := AverageRefs(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AverageRefs(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestAverageOtherIntegerTypes(t *testing.T) {
	// int8 sums overflow the element type but not the accumulator.
	small := []int8{100, 100, 100}
	got, err := Average(small)
	if err != nil || got != 100 {
		t.Errorf("Average(int8) = %d, %v; want 100", got, err)
	}

	wide := []int64{1 << 40, 1 << 40}
	if got, _ := Average(wide); got != 1<<40 {
		t.Errorf("Average(int64) = %d, want %d", got, int64(1<<40))
	}
}

func TestDirectAndIndirectAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(benchutil.BenchmarkSeed))
	values := make([]int, 1000)
	view := NewRefView(values)

	for round := 0; round < 200; round++ {
		Fill(values, rng)
		direct, _ := Average(values)
		indirect, _ := AverageRefs(view)
		if direct != indirect {
			t.Fatalf("round %d: Average=%d AverageRefs=%d", round, direct, indirect)
		}
	}
}

func TestFillRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := make([]int, 10000)
	Fill(values, rng)
	for i, v := range values {
		if v < 0 || v >= MaxValue {
			t.Fatalf("values[%d] = %d out of [0, %d)", i, v, MaxValue)
		}
	}
}

func TestRefViewAliasing(t *testing.T) {
	values := []int{10, 20, 30}
	view := NewRefView(values)

	if view.Len() != len(values) {
		t.Fatalf("Len() = %d, want %d", view.Len(), len(values))
	}
	for i := range values {
		if view.At(i) != values[i] {
			t.Errorf("At(%d) = %d, want %d", i, view.At(i), values[i])
		}
	}

	view.Set(1, 99)
	if values[1] != 99 {
		t.Errorf("write through view not visible in values: %v", values)
	}

	values[2] = 7
	if view.At(2) != 7 {
		t.Errorf("write to values not visible through view: At(2) = %d", view.At(2))
	}
}
