package machine

import (
	"errors"
	"fmt"
	"math"

	"go-chi-calculator/internal/expression"
)

// ActionType names one key press or panel command.
type ActionType string

const (
	ActionInputDigit      ActionType = "INPUT_DIGIT"
	ActionInputDot        ActionType = "INPUT_DOT"
	ActionOperator        ActionType = "OPERATOR"
	ActionEquals          ActionType = "EQUALS"
	ActionClearAll        ActionType = "CLEAR_ALL"
	ActionClearEntry      ActionType = "CLEAR_ENTRY"
	ActionBackspace       ActionType = "BACKSPACE"
	ActionNegate          ActionType = "NEGATE"
	ActionSqrt            ActionType = "SQRT"
	ActionSquare          ActionType = "SQUARE"
	ActionReciprocal      ActionType = "RECIPROCAL"
	ActionPercent         ActionType = "PERCENT"
	ActionLoadFromHistory ActionType = "LOAD_FROM_HISTORY"
	ActionClearHistory    ActionType = "CLEAR_HISTORY"
	ActionMemoryAdd       ActionType = "MEMORY_ADD"
	ActionMemorySubtract  ActionType = "MEMORY_SUBTRACT"
	ActionMemoryStore     ActionType = "MEMORY_STORE"
	ActionMemoryRecall    ActionType = "MEMORY_RECALL"
	ActionMemoryClear     ActionType = "MEMORY_CLEAR"
	ActionMemoryItemClear ActionType = "MEMORY_ITEM_CLEAR"
	ActionLoadFromMemory  ActionType = "LOAD_FROM_MEMORY"
)

// ErrInvalidAction is wrapped by every Action.Validate failure.
var ErrInvalidAction = errors.New("invalid action")

// Action is the tagged union of everything the front end can send. Only the
// payload field matching Type is read.
type Action struct {
	Type     ActionType          `json:"type"`
	Digit    string              `json:"digit,omitempty"`
	Operator expression.Operator `json:"operator,omitempty"`
	Value    float64             `json:"value,omitempty"`
	ID       string              `json:"id,omitempty"`
}

func InputDigit(d string) Action                  { return Action{Type: ActionInputDigit, Digit: d} }
func InputDot() Action                            { return Action{Type: ActionInputDot} }
func PressOperator(op expression.Operator) Action { return Action{Type: ActionOperator, Operator: op} }
func Equals() Action                              { return Action{Type: ActionEquals} }
func ClearAll() Action                            { return Action{Type: ActionClearAll} }
func ClearEntry() Action                          { return Action{Type: ActionClearEntry} }
func Backspace() Action                           { return Action{Type: ActionBackspace} }
func Negate() Action                              { return Action{Type: ActionNegate} }
func Sqrt() Action                                { return Action{Type: ActionSqrt} }
func Square() Action                              { return Action{Type: ActionSquare} }
func Reciprocal() Action                          { return Action{Type: ActionReciprocal} }
func Percent() Action                             { return Action{Type: ActionPercent} }
func LoadFromHistory(v float64) Action            { return Action{Type: ActionLoadFromHistory, Value: v} }
func ClearHistory() Action                        { return Action{Type: ActionClearHistory} }
func MemoryAdd() Action                           { return Action{Type: ActionMemoryAdd} }
func MemorySubtract() Action                      { return Action{Type: ActionMemorySubtract} }
func MemoryStore() Action                         { return Action{Type: ActionMemoryStore} }
func MemoryRecall() Action                        { return Action{Type: ActionMemoryRecall} }
func MemoryClear() Action                         { return Action{Type: ActionMemoryClear} }
func MemoryItemClear(id string) Action            { return Action{Type: ActionMemoryItemClear, ID: id} }
func LoadFromMemory(v float64) Action             { return Action{Type: ActionLoadFromMemory, Value: v} }

// Validate checks the payload required by the action's type.
func (a Action) Validate() error {
	switch a.Type {
	case ActionInputDigit:
		if len(a.Digit) != 1 || a.Digit[0] < '0' || a.Digit[0] > '9' {
			return fmt.Errorf("%w: digit %q", ErrInvalidAction, a.Digit)
		}
	case ActionOperator:
		if !a.Operator.Valid() {
			return fmt.Errorf("%w: operator %q", ErrInvalidAction, a.Operator)
		}
	case ActionLoadFromHistory, ActionLoadFromMemory:
		if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
			return fmt.Errorf("%w: value %v", ErrInvalidAction, a.Value)
		}
	case ActionMemoryItemClear:
		if a.ID == "" {
			return fmt.Errorf("%w: missing memory id", ErrInvalidAction)
		}
	case ActionInputDot, ActionEquals, ActionClearAll, ActionClearEntry,
		ActionBackspace, ActionNegate, ActionSqrt, ActionSquare, ActionReciprocal,
		ActionPercent, ActionClearHistory, ActionMemoryAdd, ActionMemorySubtract,
		ActionMemoryStore, ActionMemoryRecall, ActionMemoryClear:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
	return nil
}
