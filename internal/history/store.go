package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store tracks a value with full undo/redo over a linear snapshot log.
// All methods are safe for concurrent use.
type Store[T any] struct {
	mu sync.Mutex

	snapshots []Snapshot[T]
	cursor    int
	value     T
	nextSeq   uint64

	// Configuration
	maxEntries int
	observers  []Observer[T]
	now        func() time.Time
}

// New creates a store tracking initial.
// The log starts with a single snapshot of initial and the cursor on it.
func New[T any](initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.value = initial
	s.snapshots = []Snapshot[T]{s.takeLocked(initial, KindInitial)}
	return s
}

// takeLocked builds the next snapshot. Caller must hold mu or own s exclusively.
func (s *Store[T]) takeLocked(v T, kind Kind) Snapshot[T] {
	snap := Snapshot[T]{
		id:    uuid.New(),
		value: v,
		seq:   s.nextSeq,
		time:  s.now(),
		kind:  kind,
	}
	s.nextSeq++
	return snap
}

// appendLocked discards the redo future, appends a snapshot of v and moves
// the cursor onto it.
func (s *Store[T]) appendLocked(v T, kind Kind) Snapshot[T] {
	snap := s.takeLocked(v, kind)

	// Drop snapshots past the cursor
	s.snapshots = append(s.snapshots[:s.cursor+1], snap)
	s.cursor = len(s.snapshots) - 1
	s.value = v

	// Enforce max entries
	if s.maxEntries > 0 && len(s.snapshots) > s.maxEntries {
		excess := len(s.snapshots) - s.maxEntries
		kept := make([]Snapshot[T], s.maxEntries)
		copy(kept, s.snapshots[excess:])
		s.snapshots = kept
		s.cursor -= excess
	}
	return snap
}

// eventLocked describes the current state for observers.
func (s *Store[T]) eventLocked(op Op) Event[T] {
	return Event[T]{
		Op:       op,
		Snapshot: s.snapshots[s.cursor],
		Position: s.cursor,
		Length:   len(s.snapshots),
	}
}

// emit delivers ev to every observer. Must be called without mu held.
func (s *Store[T]) emit(ev Event[T]) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// Record sets the tracked value to v and appends a snapshot of it.
// Any snapshots after the cursor are discarded first, so a following Redo
// is a no-op.
func (s *Store[T]) Record(v T) Snapshot[T] {
	s.mu.Lock()
	snap := s.appendLocked(v, KindRecord)
	ev := s.eventLocked(OpRecord)
	s.mu.Unlock()

	s.emit(ev)
	return snap
}

// Undo steps the cursor back one snapshot and restores the tracked value
// from it. Returns false, leaving the store unchanged, when the cursor is
// already on the oldest snapshot.
func (s *Store[T]) Undo() (Snapshot[T], bool) {
	s.mu.Lock()
	if s.cursor == 0 {
		s.mu.Unlock()
		return Snapshot[T]{}, false
	}

	s.cursor--
	snap := s.snapshots[s.cursor]
	s.value = snap.value
	ev := s.eventLocked(OpUndo)
	s.mu.Unlock()

	s.emit(ev)
	return snap, true
}

// Redo steps the cursor forward one snapshot and restores the tracked value
// from it. Returns false, leaving the store unchanged, when the cursor is
// already on the newest snapshot.
func (s *Store[T]) Redo() (Snapshot[T], bool) {
	s.mu.Lock()
	if s.cursor+1 >= len(s.snapshots) {
		s.mu.Unlock()
		return Snapshot[T]{}, false
	}

	s.cursor++
	snap := s.snapshots[s.cursor]
	s.value = snap.value
	ev := s.eventLocked(OpRedo)
	s.mu.Unlock()

	s.emit(ev)
	return snap, true
}

// Restore returns the tracked value to that of the snapshot with the given ID.
// The value is recorded as a new snapshot under the same rule as Record:
// snapshots after the cursor are discarded and the log stays linear.
// Returns ErrSnapshotNotFound if the store no longer holds the snapshot.
func (s *Store[T]) Restore(id uuid.UUID) (Snapshot[T], error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return Snapshot[T]{}, ErrSnapshotNotFound
	}

	snap := s.appendLocked(s.snapshots[idx].value, KindRestore)
	ev := s.eventLocked(OpRestore)
	s.mu.Unlock()

	s.emit(ev)
	return snap, nil
}

// indexLocked returns the position of id in the log, or -1.
func (s *Store[T]) indexLocked(id uuid.UUID) int {
	for i := range s.snapshots {
		if s.snapshots[i].id == id {
			return i
		}
	}
	return -1
}

// Compact discards every snapshot except the one under the cursor.
// The kept snapshot keeps its ID; undo and redo become unavailable.
func (s *Store[T]) Compact() {
	s.mu.Lock()
	s.snapshots = []Snapshot[T]{s.snapshots[s.cursor]}
	s.cursor = 0
	ev := s.eventLocked(OpCompact)
	s.mu.Unlock()

	s.emit(ev)
}

// Current returns the tracked value.
func (s *Store[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Snapshot returns the snapshot under the cursor.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[s.cursor]
}

// Position returns the cursor index.
func (s *Store[T]) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Len returns the number of snapshots in the log.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// CanUndo returns true if Undo would move the cursor.
func (s *Store[T]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo returns true if Redo would move the cursor.
func (s *Store[T]) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor+1 < len(s.snapshots)
}

// UndoCount returns how many times Undo can succeed in a row.
func (s *Store[T]) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// RedoCount returns how many times Redo can succeed in a row.
func (s *Store[T]) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots) - 1 - s.cursor
}

// PeekUndo returns the snapshot Undo would restore without moving the cursor.
func (s *Store[T]) PeekUndo() (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return Snapshot[T]{}, false
	}
	return s.snapshots[s.cursor-1], true
}

// PeekRedo returns the snapshot Redo would restore without moving the cursor.
func (s *Store[T]) PeekRedo() (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor+1 >= len(s.snapshots) {
		return Snapshot[T]{}, false
	}
	return s.snapshots[s.cursor+1], true
}

// Lookup returns the snapshot with the given ID if the store still holds it.
func (s *Store[T]) Lookup(id uuid.UUID) (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Snapshot[T]{}, false
	}
	return s.snapshots[idx], true
}

// Snapshots returns a copy of the log, oldest first.
func (s *Store[T]) Snapshots() []Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Snapshot[T], len(s.snapshots))
	copy(result, s.snapshots)
	return result
}

// MaxEntries returns the snapshot limit, or 0 when unbounded.
func (s *Store[T]) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
