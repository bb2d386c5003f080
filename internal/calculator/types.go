package calculator

import (
	"time"

	"go-chi-calculator/internal/machine"
)

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse carries the corrected result and its readout form.
type EvaluateResponse struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	Display    string  `json:"display"`
}

// PercentRequest is the JSON body for POST /calculator/percent.
type PercentRequest struct {
	Expression string `json:"expression"`
	Entry      string `json:"entry"`
}

type PercentResponse struct {
	Result  float64 `json:"result"`
	Display string  `json:"display"`
}

// SessionResponse is returned by every endpoint that reads or changes a
// session.
type SessionResponse struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	View      machine.DisplayView `json:"view"`
	State     machine.State       `json:"state"`
	Steps     []KeyStep           `json:"steps,omitempty"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// KeyStep is the readout after one action of a key sequence.
type KeyStep struct {
	Action     machine.ActionType `json:"action"`
	Display    string             `json:"display"`
	Expression string             `json:"expression"`
}

type HistoryResponse struct {
	Order   machine.SortOrder      `json:"order"`
	Entries []machine.HistoryEntry `json:"entries"`
}

type MemoryResponse struct {
	Order   machine.SortOrder     `json:"order"`
	Entries []machine.MemoryEntry `json:"entries"`
}
