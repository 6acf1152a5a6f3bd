// Package history implements the session-local undo/redo buffer over
// successive content snapshots of a single note being edited. Entries are
// never persisted; the stack lives only as long as the editing session.
package history

import (
	"sync"
	"time"
)

// Entry is a single recorded snapshot.
type Entry struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Stack is a linear sequence of snapshots plus a cursor. The cursor always
// satisfies 0 <= cursor < len(entries) once initialized. Pushing after an
// undo truncates the abandoned redo tail before appending.
type Stack struct {
	mu         sync.Mutex
	entries    []Entry
	cursor     int
	maxEntries int
}

// New creates a stack seeded with the given content at cursor 0.
func New(content string, maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	s := &Stack{maxEntries: maxEntries}
	s.Initialize(content)
	return s
}

// Initialize resets the stack to a single entry and cursor 0.
func (s *Stack) Initialize(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []Entry{{Content: content, Timestamp: time.Now()}}
	s.cursor = 0
}

// Push records a new snapshot. A push identical to the current entry is
// skipped to avoid redundant history noise. Any entries past the cursor are
// discarded first, then the cursor moves to the new last entry.
func (s *Stack) Push(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 && s.entries[s.cursor].Content == content {
		return
	}

	s.entries = append(s.entries[:s.cursor+1], Entry{Content: content, Timestamp: time.Now()})
	s.cursor = len(s.entries) - 1

	if len(s.entries) > s.maxEntries {
		excess := len(s.entries) - s.maxEntries
		s.entries = s.entries[excess:]
		s.cursor -= excess
	}
}

// Undo steps the cursor back one entry and returns its content. At the
// beginning of history it is a no-op returning the current content, never
// an error.
func (s *Stack) Undo() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor > 0 {
		s.cursor--
	}
	return s.entries[s.cursor].Content
}

// Redo steps the cursor forward one entry and returns its content. At the
// end of history it is a no-op returning the current content.
func (s *Stack) Redo() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < len(s.entries)-1 {
		s.cursor++
	}
	return s.entries[s.cursor].Content
}

// Current returns the content at the cursor.
func (s *Stack) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries[s.cursor].Content
}

// CanUndo reports whether the cursor can move backward.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursor > 0
}

// CanRedo reports whether the cursor can move forward.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursor < len(s.entries)-1
}

// Len returns the number of recorded entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// State is a point-in-time snapshot of the stack's observable state.
type State struct {
	Content string `json:"content"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
	Length  int    `json:"length"`
}

// Snapshot returns the current observable state in one locked read.
func (s *Stack) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Content: s.entries[s.cursor].Content,
		CanUndo: s.cursor > 0,
		CanRedo: s.cursor < len(s.entries)-1,
		Length:  len(s.entries),
	}
}
