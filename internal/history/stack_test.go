package history

import (
	"testing"
	"time"
)

func TestNewSeedsSingleEntry(t *testing.T) {
	s := New("hello", 10)
	if s.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", s.Len())
	}
	if s.Current() != "hello" {
		t.Errorf("expected current %q, got %q", "hello", s.Current())
	}
	if s.CanUndo() {
		t.Error("fresh stack should not allow undo")
	}
	if s.CanRedo() {
		t.Error("fresh stack should not allow redo")
	}
}

func TestPushMovesCursorToEnd(t *testing.T) {
	s := New("a", 10)
	s.Push("b")
	s.Push("c")

	if s.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", s.Len())
	}
	if s.Current() != "c" {
		t.Errorf("expected current %q, got %q", "c", s.Current())
	}
	if !s.CanUndo() {
		t.Error("should allow undo after pushes")
	}
	if s.CanRedo() {
		t.Error("should not allow redo at the end")
	}
}

func TestPushIdenticalContentSkipped(t *testing.T) {
	s := New("a", 10)
	s.Push("a")
	if s.Len() != 1 {
		t.Errorf("identical push should be skipped, got %d entries", s.Len())
	}
}

func TestUndoRedoWalksEntries(t *testing.T) {
	s := New("a", 10)
	s.Push("b")
	s.Push("c")

	if got := s.Undo(); got != "b" {
		t.Errorf("undo: expected %q, got %q", "b", got)
	}
	if got := s.Undo(); got != "a" {
		t.Errorf("undo: expected %q, got %q", "a", got)
	}
	if got := s.Redo(); got != "b" {
		t.Errorf("redo: expected %q, got %q", "b", got)
	}
	if got := s.Redo(); got != "c" {
		t.Errorf("redo: expected %q, got %q", "c", got)
	}
}

func TestUndoAtBeginningIsNoOp(t *testing.T) {
	s := New("a", 10)
	for i := 0; i < 3; i++ {
		if got := s.Undo(); got != "a" {
			t.Errorf("undo at beginning should return %q, got %q", "a", got)
		}
	}
	if s.CanUndo() {
		t.Error("should not allow undo at index 0")
	}
}

func TestRedoAtEndIsNoOp(t *testing.T) {
	s := New("a", 10)
	s.Push("b")
	if got := s.Redo(); got != "b" {
		t.Errorf("redo at end should return %q, got %q", "b", got)
	}
}

func TestPushAfterUndoDiscardsRedoTail(t *testing.T) {
	s := New("A", 10)
	s.Push("B")
	s.Push("C")

	if got := s.Undo(); got != "B" {
		t.Fatalf("undo: expected %q, got %q", "B", got)
	}

	s.Push("D")

	if s.Len() != 3 {
		t.Errorf("expected entries [A,B,D], got %d entries", s.Len())
	}
	if s.Current() != "D" {
		t.Errorf("expected current %q, got %q", "D", s.Current())
	}
	if s.CanRedo() {
		t.Error("C should be unreachable after branching push")
	}

	// Walk back down to confirm C is gone
	if got := s.Undo(); got != "B" {
		t.Errorf("undo: expected %q, got %q", "B", got)
	}
	if got := s.Redo(); got != "D" {
		t.Errorf("redo: expected %q, got %q", "D", got)
	}
}

func TestCanUndoCanRedoTrackCursorBounds(t *testing.T) {
	s := New("a", 10)
	s.Push("b")
	s.Push("c")

	// Cursor at end: undo only
	if !s.CanUndo() || s.CanRedo() {
		t.Error("at end: expected canUndo && !canRedo")
	}

	s.Undo()
	// Cursor in the middle: both
	if !s.CanUndo() || !s.CanRedo() {
		t.Error("in middle: expected canUndo && canRedo")
	}

	s.Undo()
	// Cursor at start: redo only
	if s.CanUndo() || !s.CanRedo() {
		t.Error("at start: expected !canUndo && canRedo")
	}
}

func TestMaxEntriesEvictsOldest(t *testing.T) {
	s := New("0", 3)
	s.Push("1")
	s.Push("2")
	s.Push("3")

	if s.Len() != 3 {
		t.Errorf("expected capped length 3, got %d", s.Len())
	}
	if s.Current() != "3" {
		t.Errorf("expected current %q, got %q", "3", s.Current())
	}

	// Oldest entry "0" was evicted
	s.Undo()
	s.Undo()
	if got := s.Undo(); got != "1" {
		t.Errorf("expected oldest surviving entry %q, got %q", "1", got)
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	s := New("a", 10)
	s.Push("b")
	s.Undo()

	state := s.Snapshot()
	if state.Content != "a" {
		t.Errorf("expected content %q, got %q", "a", state.Content)
	}
	if state.CanUndo {
		t.Error("expected canUndo false")
	}
	if !state.CanRedo {
		t.Error("expected canRedo true")
	}
	if state.Length != 2 {
		t.Errorf("expected length 2, got %d", state.Length)
	}
}

func TestSessionRegistrySeedsAndReuses(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	first := r.Get("user-1", "content-1", "seed")
	if first.Current() != "seed" {
		t.Errorf("expected seeded content %q, got %q", "seed", first.Current())
	}

	first.Push("edited")
	second := r.Get("user-1", "content-1", "ignored")
	if second.Current() != "edited" {
		t.Error("expected same session stack on second access")
	}

	// Distinct users get distinct stacks for the same content
	other := r.Get("user-2", "content-1", "seed")
	if other.Current() != "seed" {
		t.Error("expected a fresh stack for a different user")
	}
}

func TestSessionRegistryDrop(t *testing.T) {
	r := NewSessionRegistry(time.Minute)
	stack := r.Get("user-1", "content-1", "seed")
	stack.Push("edited")

	r.Drop("user-1", "content-1")

	fresh := r.Get("user-1", "content-1", "seed")
	if fresh.Current() != "seed" {
		t.Error("expected dropped session to reseed")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", r.Len())
	}
}
