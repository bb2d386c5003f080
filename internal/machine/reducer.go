package machine

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	calcerrors "go-chi-calculator/internal/errors"
)

// Reducer applies actions to states. The zero value is ready to use.
type Reducer struct {
	// Now stamps history and memory entries. Defaults to time.Now.
	Now func() time.Time
	// NewID mints memory entry ids. Defaults to a monotonic ULID.
	NewID func() string
	// MaxHistory caps the history log; the oldest entries drop first. 0 is unbounded.
	MaxHistory int
	// MaxMemory caps the memory bank; the oldest entries drop first. 0 is unbounded.
	MaxMemory int
}

var defaultReducer = &Reducer{}

// Reduce applies a with the default reducer.
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

// Reduce returns the state that follows s after a. Invalid actions leave s
// unchanged. While an error is latched only CLEAR_ALL and INPUT_DIGIT have
// any effect.
func (r *Reducer) Reduce(s State, a Action) State {
	if err := a.Validate(); err != nil {
		return s
	}

	if s.HasError() {
		switch a.Type {
		case ActionClearAll:
			return clearAll(s)
		case ActionInputDigit:
			return recoverWithDigit(s, a.Digit)
		default:
			return s
		}
	}

	switch a.Type {
	case ActionInputDigit:
		return inputDigit(s, a.Digit)
	case ActionInputDot:
		return inputDot(s)
	case ActionOperator:
		return pressOperator(s, a.Operator)
	case ActionEquals:
		return r.equals(s)
	case ActionClearAll:
		return clearAll(s)
	case ActionClearEntry:
		return clearEntry(s)
	case ActionBackspace:
		return backspace(s)
	case ActionNegate:
		return negate(s)
	case ActionSqrt:
		return applyUnary(s, UnarySqrt)
	case ActionSquare:
		return applyUnary(s, UnarySquare)
	case ActionReciprocal:
		return applyUnary(s, UnaryReciprocal)
	case ActionPercent:
		return percent(s)
	case ActionLoadFromHistory, ActionLoadFromMemory:
		return loadValue(s, a.Value)
	case ActionClearHistory:
		s.History = []HistoryEntry{}
		return s
	case ActionMemoryAdd:
		return r.memoryAdd(s)
	case ActionMemorySubtract:
		return r.memorySubtract(s)
	case ActionMemoryStore:
		return r.memoryStore(s)
	case ActionMemoryRecall:
		return memoryRecall(s)
	case ActionMemoryClear:
		s.Memory = []MemoryEntry{}
		return s
	case ActionMemoryItemClear:
		return memoryItemClear(s, a.ID)
	}
	return s
}

func (r *Reducer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Reducer) newID(at time.Time) string {
	if r.NewID != nil {
		return r.NewID()
	}
	return newULID(at)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newULID(at time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), entropy).String()
}

// clearAll resets every transient field; history and memory survive.
func clearAll(s State) State {
	next := InitialState()
	next.History = s.History
	next.Memory = s.Memory
	return next
}

// recoverWithDigit leaves the error latch and starts a fresh entry.
func recoverWithDigit(s State, d string) State {
	s.Error = ""
	s.CurrentInput = d
	s.Expression = ""
	s.LastResult = nil
	s.Chain = nil
	s.AwaitingOperand = false
	return s
}

// withError latches msg and resets the entry and pending expression.
func withError(s State, msg string) State {
	s.Error = msg
	s.CurrentInput = "0"
	s.Expression = ""
	s.LastResult = nil
	s.Chain = nil
	s.AwaitingOperand = false
	return s
}

func withEngineError(s State, err error) State {
	return withError(s, calcerrors.UserMessage(err))
}
