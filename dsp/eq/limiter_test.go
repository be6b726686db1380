package eq

import (
	"math"
	"testing"
)

func TestLimitIdentityBelowKnee(t *testing.T) {
	for x := -LimiterKnee; x <= LimiterKnee; x += 0.01 {
		if got := Limit(x); got != x {
			t.Fatalf("Limit(%v) = %v, want identity below knee", x, got)
		}
	}
	if got := Limit(LimiterKnee); got != LimiterKnee {
		t.Fatalf("Limit(knee) = %v, want %v", got, LimiterKnee)
	}
}

func TestLimitBoundedByCeiling(t *testing.T) {
	for _, x := range []float64{0.86, 0.9, 1, 1.5, 2, 10, 1e6} {
		if got := Limit(x); got >= LimiterCeiling {
			t.Fatalf("Limit(%v) = %v, exceeds ceiling %v", x, got, LimiterCeiling)
		}
		if got := Limit(-x); got <= -LimiterCeiling {
			t.Fatalf("Limit(%v) = %v, exceeds ceiling", -x, got)
		}
	}
}

func TestLimitOddSymmetric(t *testing.T) {
	for x := 0.0; x <= 2; x += 0.013 {
		if got, want := Limit(-x), -Limit(x); got != want {
			t.Fatalf("Limit(-%v) = %v, want %v", x, got, want)
		}
	}
}

func TestLimitContinuousAtKnee(t *testing.T) {
	// The soft curve must meet the identity segment at the knee.
	const eps = 1e-9
	below := Limit(LimiterKnee - eps)
	above := Limit(LimiterKnee + eps)
	if math.Abs(above-below) > 1e-6 {
		t.Fatalf("discontinuity at knee: %v vs %v", below, above)
	}
}

func TestLimitMonotone(t *testing.T) {
	prev := Limit(0)
	for x := 0.001; x <= 3; x += 0.001 {
		y := Limit(x)
		if y < prev {
			t.Fatalf("Limit not monotone at x=%v: %v < %v", x, y, prev)
		}
		prev = y
	}
}
