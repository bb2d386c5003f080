package decimal

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MaxDisplayChars is the readout budget for a literal with integer digits.
	MaxDisplayChars = 16
	// MaxFractionDisplayChars is the budget for literals like "0.xxx".
	MaxFractionDisplayChars = 17

	exponentialDigits = 11
)

var printer = message.NewPrinter(language.English)

// MaxLiteralLength returns the character budget for an unsigned literal.
func MaxLiteralLength(unsigned string) int {
	if strings.HasPrefix(unsigned, "0.") {
		return MaxFractionDisplayChars
	}
	return MaxDisplayChars
}

// FormatForDisplay renders a current-input string (or any numeric string)
// for the primary readout.
func FormatForDisplay(value string) string {
	if value == "" || value == "-0" {
		return "0"
	}

	// An entry being typed keeps its trailing point.
	if strings.HasSuffix(value, ".") {
		return groupInteger(strings.TrimSuffix(value, ".")) + "."
	}

	num, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return value
	}

	abs := math.Abs(num)
	if abs >= 1e15 || (abs < 1e-6 && num != 0) {
		return trimExponent(strconv.FormatFloat(num, 'e', exponentialDigits, 64))
	}

	cleaned := StripTrailingZeros(FormatNumber(RoundToSignificantDigits(num, DisplayDigits)))
	cleaned = truncateToBudget(cleaned)

	intPart, frac, hasFrac := strings.Cut(cleaned, ".")
	if hasFrac {
		return groupInteger(intPart) + "." + frac
	}
	return groupInteger(intPart)
}

// FormatValue is FormatForDisplay for a numeric value.
func FormatValue(x float64) string {
	return FormatForDisplay(FormatNumber(x))
}

// truncateToBudget cuts fraction digits until the unsigned literal fits the
// readout, keeping the decimal point where it is.
func truncateToBudget(s string) string {
	sign := ""
	unsigned := s
	if strings.HasPrefix(s, "-") {
		sign, unsigned = "-", s[1:]
	}

	limit := MaxLiteralLength(unsigned)
	if len(unsigned) <= limit {
		return s
	}

	dot := strings.IndexByte(unsigned, '.')
	if dot < 0 || dot >= limit-1 {
		if dot >= 0 {
			unsigned = unsigned[:dot]
		}
		return sign + unsigned
	}

	unsigned = StripTrailingZeros(unsigned[:limit])
	if unsigned == "0" {
		return unsigned
	}
	return sign + unsigned
}

func groupInteger(s string) string {
	sign := ""
	digits := s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	if digits == "" {
		digits = "0"
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return s
	}
	return sign + printer.Sprintf("%d", n)
}
