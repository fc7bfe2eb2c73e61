package grid

import (
	"math"
	"testing"
)

func TestCellSizeFillsWidthExactly(t *testing.T) {
	cases := []struct {
		width    float64
		n        int
		overhead float64
		gap      float64
	}{
		{800, 52, 40, 2},
		{1024, 1, 0, 0},
		{333.5, 7, 12.25, 1.5},
		{100, 3, 10, 0},
	}
	for _, tc := range cases {
		size := CellSize(tc.width, tc.n, tc.overhead, tc.gap)
		filled := size*float64(tc.n) + tc.gap*float64(tc.n-1)
		if math.Abs(filled-(tc.width-tc.overhead)) > 1e-9 {
			t.Fatalf("CellSize(%v, %d, %v, %v): %v does not fill %v",
				tc.width, tc.n, tc.overhead, tc.gap, filled, tc.width-tc.overhead)
		}
	}
}

func TestSizerRejectsTooSmall(t *testing.T) {
	var s Sizer
	if !s.Update(800, 52, 40, 2) {
		t.Fatalf("expected first update to apply")
	}
	prev := s.Size()
	// 100px across 52 cells is under the 4px floor.
	if s.Update(100, 52, 40, 2) {
		t.Fatalf("expected sub-floor update to be rejected")
	}
	if s.Size() != prev {
		t.Fatalf("rejected update must retain previous size")
	}
}

func TestSizerSkipsTinyChanges(t *testing.T) {
	var s Sizer
	if !s.Update(800, 52, 40, 2) {
		t.Fatalf("expected first update to apply")
	}
	prev := s.Size()
	if s.Update(800.5, 52, 40, 2) {
		t.Fatalf("expected sub-threshold change to be skipped")
	}
	if s.Size() != prev {
		t.Fatalf("skipped update must retain previous size")
	}
}

func TestSizerIgnoresUnchangedInputs(t *testing.T) {
	var s Sizer
	s.Update(800, 52, 40, 2)
	if s.Update(800, 52, 40, 2) {
		t.Fatalf("expected unchanged inputs to be a no-op")
	}
}

func TestSizerRecomputesOnCardinalityChange(t *testing.T) {
	var s Sizer
	s.Update(800, 52, 40, 2)
	before := s.Size()
	if !s.Update(800, 40, 40, 2) {
		t.Fatalf("expected cardinality change to recompute")
	}
	if s.Size() <= before {
		t.Fatalf("fewer cells should mean larger cells: %v -> %v", before, s.Size())
	}
}

func TestSizerRejectsDegenerateInputs(t *testing.T) {
	var s Sizer
	if s.Update(800, 0, 40, 2) {
		t.Fatalf("cardinality 0 must be rejected")
	}
	if s.Update(30, 5, 40, 2) {
		t.Fatalf("width below overhead must be rejected")
	}
}
