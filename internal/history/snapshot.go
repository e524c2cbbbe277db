package history

import (
	"time"

	"github.com/google/uuid"
)

// Kind describes how a snapshot entered the log.
type Kind uint8

const (
	// KindInitial is the snapshot taken when the store was created or compacted.
	KindInitial Kind = iota
	// KindRecord is a snapshot taken by Record.
	KindRecord
	// KindRestore is a snapshot taken by Restore.
	KindRestore
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindRecord:
		return "record"
	case KindRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable capture of the tracked value.
// The zero Snapshot is returned alongside false or an error and carries no data.
type Snapshot[T any] struct {
	id    uuid.UUID
	value T
	seq   uint64
	time  time.Time
	kind  Kind
}

// ID returns the snapshot's unique identifier.
func (s Snapshot[T]) ID() uuid.UUID {
	return s.id
}

// Value returns the captured value.
func (s Snapshot[T]) Value() T {
	return s.value
}

// Seq returns the issue number of the snapshot within its store.
// Sequence numbers increase by one for every snapshot taken, starting at 0.
func (s Snapshot[T]) Seq() uint64 {
	return s.seq
}

// Time returns when the snapshot was taken.
func (s Snapshot[T]) Time() time.Time {
	return s.time
}

// Kind returns how the snapshot entered the log.
func (s Snapshot[T]) Kind() Kind {
	return s.kind
}

// IsZero returns true for the zero Snapshot.
func (s Snapshot[T]) IsZero() bool {
	return s.id == uuid.Nil
}
