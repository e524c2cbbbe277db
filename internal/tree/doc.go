// Package tree provides a binary tree with parent back-references and an
// in-order cursor that walks it without recursion or an explicit stack.
//
// Nodes own their children top-down. Each child also keeps a pointer to the
// node that holds it; that pointer is only used for upward navigation and is
// fixed when the parent is constructed.
//
// # Cursor
//
// A Cursor holds the current node and a flag recording whether the leftmost
// node has been produced yet. Next advances to the in-order successor:
//
//	root := tree.NewNode(1, tree.Leaf(2), tree.Leaf(3))
//	c, _ := tree.NewCursor(root)
//	for v, ok := c.Next(); ok; v, ok = c.Next() {
//	    fmt.Println(v) // 2, 1, 3
//	}
//
// A cursor is not restartable. Create a new one to traverse again.
//
// # Builders
//
// Balanced and FromLevelOrder build trees from slices, and All adapts a
// cursor to a range-over-func sequence.
package tree
