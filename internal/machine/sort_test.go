package machine

import (
	"testing"
	"time"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", Newest, false},
		{"newest", Newest, false},
		{"OLDEST", Oldest, false},
		{" oldest ", Oldest, false},
		{"random", "", true},
	}

	for _, tc := range tests {
		got, err := ParseSortOrder(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSortHistory(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []HistoryEntry{
		{Expression: "b", Timestamp: base.Add(2 * time.Minute)},
		{Expression: "a", Timestamp: base.Add(time.Minute)},
		{Expression: "c", Timestamp: base.Add(3 * time.Minute)},
	}

	newest := SortHistory(entries, Newest)
	if newest[0].Expression != "c" || newest[2].Expression != "a" {
		t.Errorf("newest order = %v", newest)
	}

	oldest := SortHistory(entries, Oldest)
	if oldest[0].Expression != "a" || oldest[2].Expression != "c" {
		t.Errorf("oldest order = %v", oldest)
	}

	if entries[0].Expression != "b" {
		t.Error("SortHistory modified its input")
	}
}

func TestSortMemory(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []MemoryEntry{
		{ID: "x", Timestamp: base},
		{ID: "y", Timestamp: base},
		{ID: "z", Timestamp: base.Add(time.Second)},
	}

	got := SortMemory(entries, Oldest)
	if got[0].ID != "x" || got[1].ID != "y" || got[2].ID != "z" {
		t.Errorf("oldest order = %v, want stable x y z", got)
	}

	if got := SortMemory(nil, Newest); got == nil || len(got) != 0 {
		t.Errorf("SortMemory(nil) = %#v, want empty slice", got)
	}
}

func TestViewShowsErrorInsteadOfEntry(t *testing.T) {
	s := InitialState()
	s.CurrentInput = "1234567"
	if got := View(s).Display; got != "1,234,567" {
		t.Errorf("Display = %q, want 1,234,567", got)
	}

	s = Reduce(InitialState(), Reciprocal())
	v := View(s)
	if v.Display != "Cannot divide by zero" || v.Error != v.Display {
		t.Errorf("View = %+v", v)
	}
	if v.History == nil || v.Memory == nil {
		t.Error("View panels must be non-nil")
	}
}
