package history

import "time"

// Op identifies a cursor movement reported to observers.
type Op uint8

const (
	// OpRecord is reported after Record.
	OpRecord Op = iota
	// OpUndo is reported after a successful Undo.
	OpUndo
	// OpRedo is reported after a successful Redo.
	OpRedo
	// OpRestore is reported after a successful Restore.
	OpRestore
	// OpCompact is reported after Compact.
	OpCompact
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpRecord:
		return "record"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	case OpRestore:
		return "restore"
	case OpCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// Event describes a change to a store.
type Event[T any] struct {
	Op       Op
	Snapshot Snapshot[T]
	Position int
	Length   int
}

// Observer is called after a store changes.
// It is invoked without the store lock held and may call back into the store.
type Observer[T any] func(Event[T])

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithMaxEntries bounds the number of snapshots kept.
// When the log grows past max the oldest snapshots are dropped.
// Zero or a negative value means unbounded, which is the default.
func WithMaxEntries[T any](max int) Option[T] {
	return func(s *Store[T]) {
		if max < 0 {
			max = 0
		}
		s.maxEntries = max
	}
}

// WithObserver registers fn to be called after every change.
func WithObserver[T any](fn Observer[T]) Option[T] {
	return func(s *Store[T]) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithClock sets the time source used to stamp snapshots.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Store[T]) {
		if now != nil {
			s.now = now
		}
	}
}
