package machine

import (
	"slices"

	"go-chi-calculator/internal/decimal"
)

// currentValue is the number the memory keys operate on.
func currentValue(s State) (float64, bool) {
	v, err := parseOperand(s.CurrentInput)
	return v, err == nil
}

// loadValue puts v in the entry as if it had just been computed.
func loadValue(s State, v float64) State {
	s.CurrentInput = decimal.FormatNumber(v)
	s.Expression = ""
	s.LastResult = floatPtr(v)
	s.Error = ""
	s.Chain = nil
	s.AwaitingOperand = false
	return s
}

func (r *Reducer) memoryStore(s State) State {
	v, ok := currentValue(s)
	if !ok {
		return s
	}

	now := r.now()
	next := make([]MemoryEntry, 0, len(s.Memory)+1)
	next = append(next, MemoryEntry{ID: r.newID(now), Value: v, Timestamp: now})
	next = append(next, s.Memory...)
	if r.MaxMemory > 0 && len(next) > r.MaxMemory {
		next = next[:r.MaxMemory]
	}
	s.Memory = next
	return s
}

func (r *Reducer) memoryAdd(s State) State {
	if len(s.Memory) == 0 {
		return r.memoryStore(s)
	}
	return r.adjustTop(s, 1)
}

func (r *Reducer) memorySubtract(s State) State {
	if len(s.Memory) == 0 {
		return s
	}
	return r.adjustTop(s, -1)
}

// adjustTop adds sign*entry to memory[0]; no other entry is touched.
func (r *Reducer) adjustTop(s State, sign float64) State {
	v, ok := currentValue(s)
	if !ok {
		return s
	}

	next := slices.Clone(s.Memory)
	next[0].Value = decimal.FormatResult(next[0].Value + sign*v)
	next[0].Timestamp = r.now()
	s.Memory = next
	return s
}

func memoryRecall(s State) State {
	if len(s.Memory) == 0 {
		return s
	}
	return loadValue(s, decimal.FormatResult(s.Memory[0].Value))
}

func memoryItemClear(s State, id string) State {
	i := slices.IndexFunc(s.Memory, func(e MemoryEntry) bool { return e.ID == id })
	if i < 0 {
		return s
	}
	s.Memory = slices.Delete(slices.Clone(s.Memory), i, i+1)
	return s
}
