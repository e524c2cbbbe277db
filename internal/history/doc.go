// Package history provides a linear undo/redo log of immutable snapshots.
//
// A Store tracks one value. Every mutation goes through Record, which takes a
// snapshot and appends it to the log. Undo and Redo move a cursor within the
// log and restore the tracked value from the snapshot under it:
//
//	s := history.New[int64](100)
//	s.Record(150)
//	s.Record(175)
//	s.Undo() // 150
//	s.Undo() // 100
//	s.Redo() // 150
//
// # Truncation
//
// Recording while the cursor is not at the newest snapshot discards every
// snapshot after the cursor first, so the log never branches. Restore, which
// jumps back to an earlier snapshot by ID, follows the same rule: it records
// the snapshot's value as a new entry.
//
// # Invariants
//
// The log always holds at least one snapshot and the cursor is always within
// [0, Len()-1]. Snapshots are never modified once issued.
package history
