// Package machine is the calculator's interaction state machine: a pure
// transition function from (State, Action) to State.
package machine

import (
	"strings"
	"time"

	"go-chi-calculator/internal/decimal"
)

// HistoryEntry is written by every successful EQUALS.
type HistoryEntry struct {
	Expression string    `json:"expression"`
	Result     float64   `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// MemoryEntry is one banked value. Index 0 of State.Memory is the most
// recently stored entry.
type MemoryEntry struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// UnaryOp tags one step of a unary chain.
type UnaryOp string

const (
	UnarySqrt       UnaryOp = "sqrt"
	UnarySquare     UnaryOp = "square"
	UnaryReciprocal UnaryOp = "reciprocal"
)

// UnaryChain records repeated sqrt/square/reciprocal presses so the
// displayed trace keeps referring to the value that started the chain.
type UnaryChain struct {
	// Prefix is the committed expression the chain was opened after: empty or
	// ending in a binary operator.
	Prefix   string    `json:"prefix"`
	Original float64   `json:"original"`
	Ops      []UnaryOp `json:"ops"`
}

// Trace renders the nested function applications, innermost first:
// √(√(9)), sqr(1/(4)).
func (c *UnaryChain) Trace() string {
	expr := decimal.FormatNumber(c.Original)
	for _, op := range c.Ops {
		switch op {
		case UnarySqrt:
			expr = "√(" + expr + ")"
		case UnarySquare:
			expr = "sqr(" + expr + ")"
		case UnaryReciprocal:
			expr = "1/(" + expr + ")"
		}
	}
	return expr
}

// State is the whole calculator. Transitions replace it, never mutate it:
// the slices of a previous State are never written to.
type State struct {
	CurrentInput string         `json:"current_input"`
	Expression   string         `json:"expression"`
	Error        string         `json:"error,omitempty"`
	History      []HistoryEntry `json:"history"`
	Memory       []MemoryEntry  `json:"memory"`
	LastResult   *float64       `json:"last_result,omitempty"`
	Chain        *UnaryChain    `json:"chain,omitempty"`

	// AwaitingOperand is set between a binary operator and the next entry;
	// a second operator then replaces the pending one.
	AwaitingOperand bool `json:"awaiting_operand,omitempty"`
}

// InitialState returns the state a fresh calculator starts in.
func InitialState() State {
	return State{
		CurrentInput: "0",
		History:      []HistoryEntry{},
		Memory:       []MemoryEntry{},
	}
}

// HasError reports whether an error is latched.
func (s State) HasError() bool {
	return s.Error != ""
}

// committedPrefix is the expression without an active chain's trace.
func (s State) committedPrefix() string {
	if s.Chain != nil {
		return s.Chain.Prefix
	}
	return s.Expression
}

// pendingOperation is the text evaluated by EQUALS and chained operators:
// the committed prefix followed by the entry. An active chain contributes
// its result, not its trace.
func (s State) pendingOperation() string {
	return joinExpr(s.committedPrefix(), normalizeOperand(s.CurrentInput))
}

// endChain drops an active chain and restores the expression it followed.
func endChain(s State) State {
	if s.Chain != nil {
		s.Expression = s.Chain.Prefix
		s.Chain = nil
	}
	return s
}

func joinExpr(prefix, operand string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return operand
	}
	return prefix + " " + operand
}

func floatPtr(v float64) *float64 {
	return &v
}
