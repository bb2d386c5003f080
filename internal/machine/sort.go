package machine

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder orders the history and memory panels by timestamp.
type SortOrder string

const (
	Newest SortOrder = "newest"
	Oldest SortOrder = "oldest"
)

// ParseSortOrder accepts "newest", "oldest" or "" (newest).
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", Newest:
		return Newest, nil
	case Oldest:
		return Oldest, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// SortHistory returns a sorted copy; entries with equal timestamps keep
// their relative order.
func SortHistory(entries []HistoryEntry, order SortOrder) []HistoryEntry {
	out := append(make([]HistoryEntry, 0, len(entries)), entries...)
	slices.SortStableFunc(out, func(a, b HistoryEntry) int {
		if order == Oldest {
			return a.Timestamp.Compare(b.Timestamp)
		}
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// SortMemory is SortHistory for memory entries.
func SortMemory(entries []MemoryEntry, order SortOrder) []MemoryEntry {
	out := append(make([]MemoryEntry, 0, len(entries)), entries...)
	slices.SortStableFunc(out, func(a, b MemoryEntry) int {
		if order == Oldest {
			return a.Timestamp.Compare(b.Timestamp)
		}
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
