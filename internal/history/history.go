// Package history implements the bounded, most-recently-used clipboard
// history owned by the running clipqture instance.
//
// Entries are kept most recent first. Recording text that is already present
// moves the existing entry to the front instead of adding a duplicate, and the
// list never grows beyond the configured maximum.
package history

import (
	"log/slog"
	"sync"
)

// DefaultMaxItems is the cap used when a Store is created with max <= 0.
const DefaultMaxItems = 10

// Entry is a single clipboard snapshot.
type Entry struct {
	Text string
	Icon Icon // nil = no icon
}

// Store is the ordered clipboard history.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

// New returns an empty Store holding at most max entries.
func New(max int) *Store {
	if max <= 0 {
		max = DefaultMaxItems
	}
	return &Store{max: max}
}

// Record adds text to the front of the history and returns the entry now at
// the front. added is false when the text was already present (the existing
// entry, with its original icon, was moved to the front) or when text is
// empty, in which case nothing changes and the zero Entry is returned.
func (s *Store) Record(text string, icon Icon) (front Entry, added bool) {
	if text == "" {
		return Entry{}, false
	}
	text = SummarizeFileList(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.Text != text {
			continue
		}
		copy(s.entries[1:i+1], s.entries[:i])
		s.entries[0] = e
		return e, false
	}

	e := Entry{Text: text, Icon: icon}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[1:], s.entries)
	s.entries[0] = e
	if len(s.entries) > s.max {
		dropped := len(s.entries) - s.max
		clear(s.entries[s.max:])
		s.entries = s.entries[:s.max]
		slog.Debug("history truncated", "dropped", dropped, "max", s.max)
	}
	return e, true
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = nil
	s.mu.Unlock()
	slog.Info("history cleared", "removed", n)
}

// Entries returns a snapshot of the history, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Cap returns the maximum number of entries kept.
func (s *Store) Cap() int { return s.max }
