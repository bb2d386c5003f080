package expression

import (
	"fmt"
	"strconv"
	"strings"

	calcerrors "go-chi-calculator/internal/errors"
)

// Option adjusts how an expression is scanned.
type Option func(*scanOptions)

type scanOptions struct {
	exponents bool
}

// WithExponents keeps an exponent marker inside a numeric literal, so
// results that decimal.FormatNumber printed in exponent form ("1e+21") read
// back. Without it 'e' is dropped like any other foreign character.
func WithExponents() Option {
	return func(o *scanOptions) { o.exponents = true }
}

func newScanOptions(opts []Option) scanOptions {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tokenize scans expr left to right into numbers and operators.
//
// A '-' joins the number being read only at the start of the expression or
// right after an operator; elsewhere it is subtraction. Every other
// character (parentheses included) is dropped.
func Tokenize(expr string, opts ...Option) ([]Token, error) {
	o := newScanOptions(opts)
	var (
		tokens []Token
		buf    strings.Builder
	)

	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		lit := buf.String()
		buf.Reset()

		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return calcerrors.NewInvalidExpression(fmt.Sprintf("malformed number %q", lit))
		}
		tokens = append(tokens, Number(v))
		return nil
	}

	afterOperator := func() bool {
		return len(tokens) == 0 || tokens[len(tokens)-1].Kind == TokenOperator
	}

	for _, r := range expr {
		switch {
		case r == ' ':
			continue

		case o.exponents && (r == '+' || r == '-') && endsWithExponent(buf.String()):
			buf.WriteRune(r)

		case isOperatorRune(r):
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, Op(Operator(string(r))))

		case r == '-':
			if buf.Len() == 0 && afterOperator() {
				buf.WriteRune(r)
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, Op(OpSubtract))

		case r >= '0' && r <= '9', r == '.':
			buf.WriteRune(r)

		case o.exponents && (r == 'e' || r == 'E'):
			if lit := buf.String(); strings.ContainsAny(lit, "0123456789") && !strings.ContainsAny(lit, "eE") {
				buf.WriteRune('e')
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func endsWithExponent(lit string) bool {
	return strings.HasSuffix(lit, "e")
}
