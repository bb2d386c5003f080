package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/decimal"
	calcerrors "go-chi-calculator/internal/errors"
	"go-chi-calculator/internal/expression"
)

func NewEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression...>",
		Short: "Evaluate a flat expression",
		Long: `Evaluate an expression such as "2 + 3 × 4". Multiplication and division bind
tighter than addition and subtraction. ASCII * / and - are accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	expr := normalizeExpression(strings.Join(args, " "))

	result, err := expression.Evaluate(expr)
	if err != nil {
		return errors.New(calcerrors.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), decimal.FormatValue(result))
	return nil
}

// asciiOperators maps shell-friendly spellings onto the glyphs the tokenizer
// reads. "-" needs no mapping.
var asciiOperators = strings.NewReplacer("*", string(expression.OpMultiply), "/", string(expression.OpDivide))

func normalizeExpression(s string) string {
	return asciiOperators.Replace(s)
}
