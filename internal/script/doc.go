// Package script runs Lua sessions against an account and the tree cursor.
//
// A State is a sandboxed gopher-lua interpreter with only the base, table,
// string and math libraries opened. BindAccount and BindTree install global
// tables that expose the Go components:
//
//	account.deposit(50)           -- snapshot table, or nil, err
//	account.withdraw(20)
//	account.undo()                -- snapshot table, or nil when nothing to undo
//	account.redo()
//	account.restore(snap.id)
//	account.balance()
//	account.history()             -- array of snapshot tables, oldest first
//	account.position()            -- 1-based cursor into history()
//
//	tree.inorder({1, 2, 3})       -- {2, 1, 3}; input is breadth-first order
//	tree.walk({1, 2, 3}, fn)      -- calls fn(v) in order until it returns false
//	tree.height({1, 2, 3})        -- 2
//	tree.balanced({1, 2, 3})      -- {1, 2, 3}, via a height-balanced tree
//
// A snapshot table has the fields id, value, seq and kind.
package script
