package core

import (
	"math"
	"testing"
)

func TestSafePercent(t *testing.T) {
	cases := []struct {
		name string
		num  float64
		den  float64
		want float64
	}{
		{"zero over zero", 0, 0, 0},
		{"full completion", 100000, 100000, 99.9999999},
		{"partial fulfillment", 40000, 100000, 39.99999996},
		{"half", 50, 100, 49.99995000005},
	}
	for _, tc := range cases {
		got := SafePercent(tc.num, tc.den)
		if math.Abs(got-tc.want) > 1e-6 {
			t.Fatalf("%s: SafePercent(%v, %v) = %v, want %v", tc.name, tc.num, tc.den, got, tc.want)
		}
	}
}

func TestSafePercentZeroDenominatorIsFinite(t *testing.T) {
	got := SafePercent(42, 0)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("SafePercent(42, 0) = %v, want finite", got)
	}
	want := 42 * 100 / percentEpsilon
	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("SafePercent(42, 0) = %v, want %v", got, want)
	}
}

func TestSafePercentNonNegative(t *testing.T) {
	for _, num := range []float64{0, 1, 250000} {
		for _, den := range []float64{0, 1, 99999.5} {
			if got := SafePercent(num, den); got < 0 {
				t.Fatalf("SafePercent(%v, %v) = %v, want non-negative", num, den, got)
			}
		}
	}
}
