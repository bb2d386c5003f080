package decimal

import (
	"math"
	"testing"

	calcerrors "go-chi-calculator/internal/errors"
)

func TestRoundToSignificantDigits(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		digits int
		want   float64
	}{
		{name: "classic artifact", in: 0.1 + 0.2, digits: 12, want: 0.3},
		{name: "keeps precision", in: 1.23456789, digits: 12, want: 1.23456789},
		{name: "near one", in: 1.000000000000001, digits: 12, want: 1},
		{name: "large magnitude", in: 123456789012345.6, digits: 12, want: 123456789012000},
		{name: "negative", in: -(0.1 + 0.2), digits: 12, want: -0.3},
		{name: "zero", in: 0, digits: 12, want: 0},
		{name: "display budget", in: 0.30000000000000004, digits: 15, want: 0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundToSignificantDigits(tc.in, tc.digits)
			if got != tc.want {
				t.Fatalf("RoundToSignificantDigits(%v, %d) = %v, want %v", tc.in, tc.digits, got, tc.want)
			}
		})
	}
}

func TestRoundToSignificantDigitsSmallAndNonFinite(t *testing.T) {
	got := RoundToSignificantDigits(0.000000000000001, 12)
	if math.Abs(got-1e-15) > 1e-27 {
		t.Fatalf("expected ~1e-15, got %v", got)
	}

	if got := RoundToSignificantDigits(math.Inf(1), 12); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf passthrough, got %v", got)
	}
	if got := RoundToSignificantDigits(math.NaN(), 12); !math.IsNaN(got) {
		t.Fatalf("expected NaN passthrough, got %v", got)
	}

	// Scale would overflow for a subnormal input.
	if got := RoundToSignificantDigits(5e-310, 15); math.Abs(got-5e-310) > 1e-320 {
		t.Fatalf("expected subnormal to survive, got %v", got)
	}
}

func TestSnapToExpected(t *testing.T) {
	if got := SnapToExpected(8.9999999999991, 9, SnapTolerance); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
	if got := SnapToExpected(2.9999999999999996, 3, SnapTolerance); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := SnapToExpected(5.1, 5, SnapTolerance); got != 5.1 {
		t.Fatalf("expected 5.1 unchanged, got %v", got)
	}
}

// isCloseTo reports whether a and b differ by less than SnapTolerance.
func isCloseTo(a, b float64) bool {
	return math.Abs(a-b) < SnapTolerance
}

func TestPreciseSqrtAndSquare(t *testing.T) {
	for _, n := range []float64{0, 1, 9, 16, 25} {
		root, err := PreciseSqrt(n * n)
		if err != nil {
			t.Fatalf("PreciseSqrt(%v): %v", n*n, err)
		}
		if root != n {
			t.Fatalf("PreciseSqrt(%v) = %v, want %v", n*n, root, n)
		}
		if sq := PreciseSquare(n); sq != n*n {
			t.Fatalf("PreciseSquare(%v) = %v, want %v", n, sq, n*n)
		}
	}
}

func TestPreciseSqrtNegative(t *testing.T) {
	_, err := PreciseSqrt(-4)
	if !calcerrors.Is(err, calcerrors.KindInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestRepeatedSqrtSquareRoundTrip(t *testing.T) {
	for _, start := range []float64{2, 9, 10} {
		value := start
		for i := 0; i < 8; i++ {
			v, err := PreciseSqrt(value)
			if err != nil {
				t.Fatalf("PreciseSqrt: %v", err)
			}
			value = v
		}
		for i := 0; i < 8; i++ {
			value = PreciseSquare(value)
		}

		if !isCloseTo(value, start) {
			t.Fatalf("start %v: round trip drifted to %v", start, value)
		}
		if got := FormatNumberForUnaryOp(value); got != FormatNumber(start) {
			t.Fatalf("start %v: formatted %q", start, got)
		}
	}
}

func TestFormatNumberForUnaryOp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8.9999999999991, "9"},
		{2.9999999999999996, "3"},
		{3.0000000000000004, "3"},
		{0.25, "0.25"},
		{1.0 / 3, "0.333333333333333"},
		{0, "0"},
	}

	for _, tc := range tests {
		if got := FormatNumberForUnaryOp(tc.in); got != tc.want {
			t.Errorf("FormatNumberForUnaryOp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{-2.5, "-2.5"},
		{0.3, "0.3"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{1.5e-8, "1.5e-8"},
		{0.000001, "0.000001"},
		{123456789012, "123456789012"},
	}

	for _, tc := range tests {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripTrailingZeros(t *testing.T) {
	tests := map[string]string{
		"1.500": "1.5",
		"2.000": "2",
		"100":   "100",
		"0.000": "0",
		".":     "0",
	}

	for in, want := range tests {
		if got := StripTrailingZeros(in); got != want {
			t.Errorf("StripTrailingZeros(%q) = %q, want %q", in, got, want)
		}
	}
}
