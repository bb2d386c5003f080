// Package decimal corrects IEEE-754 artifacts in calculator results and
// formats values for display.
package decimal

import (
	"math"
	"strconv"
	"strings"

	calcerrors "go-chi-calculator/internal/errors"
)

const (
	// ResultDigits is the significant-digit budget applied to evaluated results.
	ResultDigits = 12
	// DisplayDigits is the significant-digit budget applied when formatting.
	DisplayDigits = 15
	// SnapTolerance is the distance within which a value snaps to an expected one.
	SnapTolerance = 1e-10
)

// RoundToSignificantDigits keeps the leading digits significant digits of x,
// independent of its magnitude. Zero and non-finite values are returned as is.
func RoundToSignificantDigits(x float64, digits int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	sign := 1.0
	if x < 0 {
		sign = -1
	}
	abs := math.Abs(x)
	magnitude := math.Floor(math.Log10(abs)) + 1
	scale := math.Pow(10, float64(digits)-magnitude)

	scaled := abs * scale
	if math.IsInf(scale, 0) || math.IsInf(scaled, 0) || scale == 0 {
		// Subnormal or huge magnitudes: let strconv do the decimal rounding.
		r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'e', digits-1, 64), 64)
		if err != nil {
			return x
		}
		return r
	}

	return sign * math.Round(scaled) / scale
}

// FormatResult applies post-evaluation correction.
func FormatResult(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return RoundToSignificantDigits(x, ResultDigits)
}

// SnapToExpected returns expected when x lies within tol of it, otherwise x.
func SnapToExpected(x, expected, tol float64) float64 {
	if math.Abs(x-expected) < tol {
		return expected
	}
	return x
}

// SnapToInteger snaps x to the nearest integer when it is within SnapTolerance.
func SnapToInteger(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return SnapToExpected(x, math.Round(x), SnapTolerance)
}

// PreciseSqrt returns the square root of x snapped to an integer when the
// float result is an integer plus noise.
func PreciseSqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, calcerrors.NewInvalidInput("square root of a negative number")
	}
	return SnapToInteger(math.Sqrt(x)), nil
}

// PreciseSquare returns x*x snapped to an integer when within tolerance.
func PreciseSquare(x float64) float64 {
	return SnapToInteger(x * x)
}

// FormatNumberForUnaryOp renders the result of sqrt, square or reciprocal.
func FormatNumberForUnaryOp(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return FormatNumber(x)
	}

	r := SnapToInteger(RoundToSignificantDigits(x, DisplayDigits))
	s := StripTrailingZeros(FormatNumber(r))
	if s == "." {
		return "0"
	}
	return s
}

// FormatNumber renders x with the shortest representation that parses back
// to the same value. Exponent form is used outside [1e-6, 1e21).
func FormatNumber(x float64) string {
	if x == 0 {
		// also folds negative zero
		return "0"
	}

	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(x, 'e', -1, 64))
}

// StripTrailingZeros removes zero padding after a decimal point and a
// dangling point. Strings without a point are returned unchanged.
func StripTrailingZeros(s string) string {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, "eE") {
		return s
	}

	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// trimExponent drops zero padding from an exponent: "1.5e-08" -> "1.5e-8".
func trimExponent(s string) string {
	i := strings.IndexAny(s, "eE")
	if i < 0 || i+2 > len(s) {
		return s
	}

	mantissa, exp := s[:i+2], s[i+2:]
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + exp
}
