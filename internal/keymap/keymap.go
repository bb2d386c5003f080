// Package keymap translates keyboard keys and named key tokens into
// calculator actions.
package keymap

import (
	"fmt"
	"strings"

	"go-chi-calculator/internal/expression"
	"go-chi-calculator/internal/machine"
)

var ctrlKeys = map[string]machine.Action{
	"l": machine.MemoryClear(),
	"r": machine.MemoryRecall(),
	"p": machine.MemoryAdd(),
	"q": machine.MemorySubtract(),
	"m": machine.MemoryStore(),
}

var plainKeys = map[string]machine.Action{
	".":         machine.InputDot(),
	",":         machine.InputDot(),
	"+":         machine.PressOperator(expression.OpAdd),
	"-":         machine.PressOperator(expression.OpSubtract),
	"*":         machine.PressOperator(expression.OpMultiply),
	"/":         machine.PressOperator(expression.OpDivide),
	"enter":     machine.Equals(),
	"=":         machine.Equals(),
	"escape":    machine.ClearAll(),
	"delete":    machine.ClearEntry(),
	"backspace": machine.Backspace(),
	"%":         machine.Percent(),
	"s":         machine.Sqrt(),
	"x":         machine.Square(),
	"n":         machine.Negate(),
	"r":         machine.Reciprocal(),
}

// namedKeys are the button labels accepted by Parse in addition to the
// keyboard keys. Matched case-sensitively so "C" and "c" stay distinct.
var namedKeys = map[string]machine.Action{
	"sqrt":  machine.Sqrt(),
	"√":     machine.Sqrt(),
	"sqr":   machine.Square(),
	"x²":    machine.Square(),
	"neg":   machine.Negate(),
	"±":     machine.Negate(),
	"recip": machine.Reciprocal(),
	"1/x":   machine.Reciprocal(),
	"MS":    machine.MemoryStore(),
	"MR":    machine.MemoryRecall(),
	"M+":    machine.MemoryAdd(),
	"M-":    machine.MemorySubtract(),
	"MC":    machine.MemoryClear(),
	"CE":    machine.ClearEntry(),
	"C":     machine.ClearAll(),
	"⌫":     machine.Backspace(),
}

// Lookup maps one keyboard key to its action. Ctrl combinations take
// precedence over the plain binding of the same key; letters are matched
// case-insensitively.
func Lookup(key string, ctrl bool) (machine.Action, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if ctrl {
			return machine.Action{}, false
		}
		return machine.InputDigit(key), true
	}

	k := strings.ToLower(key)
	if ctrl {
		a, ok := ctrlKeys[k]
		return a, ok
	}
	a, ok := plainKeys[k]
	return a, ok
}

// Parse converts a key sequence into actions. A token is a named button, a
// keyboard key ("x" squares, as it does on the keyboard), "ctrl+<key>", an
// operator glyph, or a run of digits and points such as "12.5" that expands
// to one action per character.
func Parse(tokens []string) ([]machine.Action, error) {
	var actions []machine.Action
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		parsed, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		actions = append(actions, parsed...)
	}
	return actions, nil
}

func parseToken(tok string) ([]machine.Action, error) {
	if a, ok := namedKeys[tok]; ok {
		return []machine.Action{a}, nil
	}
	if rest, ok := cutCtrl(tok); ok {
		if a, ok := Lookup(rest, true); ok {
			return []machine.Action{a}, nil
		}
		return nil, fmt.Errorf("unknown key %q", tok)
	}
	if a, ok := Lookup(tok, false); ok {
		return []machine.Action{a}, nil
	}
	if op, ok := expression.ParseOperator(tok); ok {
		return []machine.Action{machine.PressOperator(op)}, nil
	}
	if isNumberRun(tok) {
		out := make([]machine.Action, 0, len(tok))
		for _, c := range tok {
			if c == '.' {
				out = append(out, machine.InputDot())
			} else {
				out = append(out, machine.InputDigit(string(c)))
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown key %q", tok)
}

func cutCtrl(tok string) (string, bool) {
	lower := strings.ToLower(tok)
	for _, prefix := range []string{"ctrl+", "ctrl-"} {
		if strings.HasPrefix(lower, prefix) && len(tok) > len(prefix) {
			return tok[len(prefix):], true
		}
	}
	return "", false
}

func isNumberRun(tok string) bool {
	for _, c := range tok {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}
