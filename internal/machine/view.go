package machine

import "go-chi-calculator/internal/decimal"

// DisplayView is what a front end renders: the primary readout, the
// secondary expression line and the two side panels.
type DisplayView struct {
	Display    string         `json:"display"`
	Expression string         `json:"expression"`
	Error      string         `json:"error,omitempty"`
	History    []HistoryEntry `json:"history"`
	Memory     []MemoryEntry  `json:"memory"`
}

// View formats s for display. The primary readout shows the latched error
// message instead of the entry.
func View(s State) DisplayView {
	v := DisplayView{
		Display:    decimal.FormatForDisplay(s.CurrentInput),
		Expression: s.Expression,
		Error:      s.Error,
		History:    append(make([]HistoryEntry, 0, len(s.History)), s.History...),
		Memory:     append(make([]MemoryEntry, 0, len(s.Memory)), s.Memory...),
	}
	if s.HasError() {
		v.Display = s.Error
	}
	return v
}
