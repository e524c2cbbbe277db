package tree

import "iter"

// All returns a sequence over the in-order values of root, driven by a fresh
// Cursor each time it is ranged over. A nil root yields nothing.
func All[T any](root *Node[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		c, err := NewCursor(root)
		if err != nil {
			return
		}
		for v, ok := c.Next(); ok; v, ok = c.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Values drains a cursor over root into a slice.
// Returns nil for a nil root.
func Values[T any](root *Node[T]) []T {
	if root == nil {
		return nil
	}
	out := make([]T, 0, Size(root))
	for v := range All(root) {
		out = append(out, v)
	}
	return out
}

// Walk visits the nodes of root in order using recursion.
// Visiting stops as soon as fn returns false.
// Walk returns false if it was stopped early.
func Walk[T any](root *Node[T], fn func(*Node[T]) bool) bool {
	if root == nil {
		return true
	}
	if !Walk(root.left, fn) {
		return false
	}
	if !fn(root) {
		return false
	}
	return Walk(root.right, fn)
}
