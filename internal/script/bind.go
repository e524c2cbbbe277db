package script

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vignette/internal/account"
	"github.com/dshills/vignette/internal/tree"
)

// BindAccount installs the global table "account" backed by acct.
func (s *State) BindAccount(acct *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	L := s.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"deposit": func(L *lua.LState) int {
			snap, err := acct.Deposit(L.CheckInt64(1))
			return pushResult(L, snap, err)
		},
		"withdraw": func(L *lua.LState) int {
			snap, err := acct.Withdraw(L.CheckInt64(1))
			return pushResult(L, snap, err)
		},
		"undo": func(L *lua.LState) int {
			snap, moved := acct.Undo()
			return pushMoved(L, snap, moved)
		},
		"redo": func(L *lua.LState) int {
			snap, moved := acct.Redo()
			return pushMoved(L, snap, moved)
		},
		"restore": func(L *lua.LState) int {
			id, err := uuid.Parse(L.CheckString(1))
			if err != nil {
				L.Push(lua.LNil)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			snap, err := acct.Restore(id)
			return pushResult(L, snap, err)
		},
		"balance": func(L *lua.LState) int {
			L.Push(lua.LNumber(acct.Balance()))
			return 1
		},
		"history": func(L *lua.LState) int {
			list := L.NewTable()
			for _, snap := range acct.History().Snapshots() {
				list.Append(snapshotTable(L, snap))
			}
			L.Push(list)
			return 1
		},
		"position": func(L *lua.LState) int {
			L.Push(lua.LNumber(acct.History().Position() + 1))
			return 1
		},
	})
	L.SetGlobal("account", mod)
}

// BindTree installs the global table "tree".
func (s *State) BindTree() {
	s.mu.Lock()
	defer s.mu.Unlock()

	L := s.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"inorder": func(L *lua.LState) int {
			root := tree.FromLevelOrder(checkNumbers(L, 1))
			out := L.NewTable()
			for v := range tree.All(root) {
				out.Append(lua.LNumber(v))
			}
			L.Push(out)
			return 1
		},
		"walk": func(L *lua.LState) int {
			root := tree.FromLevelOrder(checkNumbers(L, 1))
			fn := L.CheckFunction(2)

			c, err := tree.NewCursor(root)
			if err != nil {
				L.Push(lua.LNumber(0))
				return 1
			}
			visited := 0
			for v, ok := c.Next(); ok; v, ok = c.Next() {
				visited++
				L.Push(fn)
				L.Push(lua.LNumber(v))
				L.Call(1, 1)
				ret := L.Get(-1)
				L.Pop(1)
				if ret == lua.LFalse {
					break
				}
			}
			L.Push(lua.LNumber(visited))
			return 1
		},
		"balanced": func(L *lua.LState) int {
			out := L.NewTable()
			for v := range tree.All(tree.Balanced(checkNumbers(L, 1))) {
				out.Append(lua.LNumber(v))
			}
			L.Push(out)
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(tree.Height(tree.FromLevelOrder(checkNumbers(L, 1)))))
			return 1
		},
	})
	L.SetGlobal("tree", mod)
}

// checkNumbers reads the array part of the table argument at n.
func checkNumbers(L *lua.LState, n int) []float64 {
	tbl := L.CheckTable(n)
	out := make([]float64, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		num, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(n, "array of numbers expected")
			return nil
		}
		out = append(out, float64(num))
	}
	return out
}

// snapshotTable converts a snapshot to a Lua table.
func snapshotTable(L *lua.LState, snap account.Snapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(snap.ID().String()))
	t.RawSetString("value", lua.LNumber(snap.Value()))
	t.RawSetString("seq", lua.LNumber(snap.Seq()))
	t.RawSetString("kind", lua.LString(snap.Kind().String()))
	return t
}

// pushResult pushes a snapshot, or nil and the error message.
func pushResult(L *lua.LState, snap account.Snapshot, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(snapshotTable(L, snap))
	return 1
}

// pushMoved pushes a snapshot, or nil when the history did not move.
func pushMoved(L *lua.LState, snap account.Snapshot, moved bool) int {
	if !moved {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(snapshotTable(L, snap))
	return 1
}
