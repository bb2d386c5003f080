package main

import (
	"strings"
	"testing"

	calcerrors "go-chi-calculator/internal/errors"
)

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "2 + 3 × 4"}, "14"},
		{[]string{"eval", "2", "+", "3", "*", "4"}, "14"},
		{[]string{"eval", "0.1 + 0.2"}, "0.3"},
		{[]string{"eval", "10 / 4"}, "2.5"},
		{[]string{"eval", "5 - -3"}, "8"},
		{[]string{"eval", "999999 + 1"}, "1,000,000"},
	}

	for _, tt := range tests {
		out, err := execute(t, "", tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestEvalCmdReportsEngineErrors(t *testing.T) {
	_, err := execute(t, "", "eval", "1 / 0")
	if err == nil || err.Error() != calcerrors.MsgDivisionByZero {
		t.Fatalf("error = %v, want %q", err, calcerrors.MsgDivisionByZero)
	}
}

func TestEvalCmdRequiresExpression(t *testing.T) {
	if _, err := execute(t, "", "eval"); err == nil {
		t.Fatal("expected an argument error")
	}
}
