package expression

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2 + 3", 5},
		{"10 − 3", 7},
		{"4 × 5", 20},
		{"20 ÷ 4", 5},
		{"2 + 3 × 4", 14},
		{"10 − 2 × 3", 4},
		{"2 × 3 + 4 × 5", 26},
		{"2 + 3 × 4 + 5", 19},
		{"100 ÷ 5 × 2", 40},
		{"2 + 3 × 4 − 5", 9},
		{"10 − 4 − 3", 3},
		{"8 ÷ 4 ÷ 2", 1},
		{"0.1 + 0.2", 0.3},
		{"1.5 × 2", 3},
		{"10.5 ÷ 2.5", 4.2},
		{"-5 + 3", -2},
		{"5 + (-3)", 2},
		{"-5 × 3", -15},
		{"42", 42},
		{"", 0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Evaluate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	for _, in := range []string{"5 ÷ 0", "10 ÷ 0", "1 + 6 ÷ 0 × 2"} {
		_, err := Evaluate(in)
		assert.True(t, calcerrors.Is(err, calcerrors.KindDivisionByZero), "%q: got %v", in, err)
	}
}

func TestEvaluateInvalidExpression(t *testing.T) {
	for _, in := range []string{"5 +", "× 3", "5 + ×", "+"} {
		_, err := Evaluate(in)
		assert.True(t, calcerrors.Is(err, calcerrors.KindInvalidExpression), "%q: got %v", in, err)
	}
}

func TestEvaluateNeverReturnsNonFinite(t *testing.T) {
	_, err := Evaluate("1e200 × 1e200", WithExponents())
	require.Error(t, err)
	assert.True(t, calcerrors.Is(err, calcerrors.KindInvalidExpression))
}

func TestEvaluatePostfixUnderflow(t *testing.T) {
	_, err := EvaluatePostfix([]Token{Number(1), Op(OpAdd)})
	assert.True(t, calcerrors.Is(err, calcerrors.KindInvalidExpression))
}

// govaluate is an independent evaluator; both must agree on precedence and
// on left associativity of − and ÷.
func TestEvaluateMatchesGovaluate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ascii := map[Operator]string{
		OpAdd:      "+",
		OpSubtract: "-",
		OpMultiply: "*",
		OpDivide:   "/",
	}
	glyphs := []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}

	for i := 0; i < 300; i++ {
		var ours, theirs strings.Builder
		n := 2 + rng.Intn(6)
		for j := 0; j < n; j++ {
			if j > 0 {
				op := glyphs[rng.Intn(len(glyphs))]
				fmt.Fprintf(&ours, " %s ", op)
				fmt.Fprintf(&theirs, " %s ", ascii[op])
			}
			operand := fmt.Sprintf("%d.%d", 1+rng.Intn(99), rng.Intn(10))
			ours.WriteString(operand)
			theirs.WriteString(operand)
		}

		got, err := Evaluate(ours.String())
		require.NoError(t, err, ours.String())

		oracle, err := govaluate.NewEvaluableExpression(theirs.String())
		require.NoError(t, err)
		raw, err := oracle.Evaluate(nil)
		require.NoError(t, err)
		want := decimal.FormatResult(raw.(float64))

		assert.InDelta(t, want, got, math.Max(1, math.Abs(want))*1e-9, ours.String())
	}
}

func TestEvaluateLeftAssociative(t *testing.T) {
	for in, want := range map[string]float64{
		"20 − 5 − 3":     12,
		"64 ÷ 8 ÷ 2":     4,
		"10 − 4 + 3":     9,
		"24 ÷ 4 × 3":     18,
		"2 + 12 ÷ 3 ÷ 2": 4,
	} {
		got, err := Evaluate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestEvaluateExponentLiterals(t *testing.T) {
	got, err := Evaluate("2 e - 3")
	require.NoError(t, err)
	assert.Equal(t, -1.0, got, "plain scanning drops the marker")

	got, err = Evaluate("2 e - 3", WithExponents())
	require.NoError(t, err)
	assert.Equal(t, 0.002, got)

	got, err = Evaluate("1e+21 + 1e+21", WithExponents())
	require.NoError(t, err)
	assert.InDelta(t, 2e21, got, 2e21*1e-12)
}
