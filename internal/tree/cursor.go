package tree

// Cursor produces the values of a tree in in-order sequence.
//
// The state kept is the starting root, the current node and whether the
// first (leftmost) node has been produced. Upward moves follow parent
// back-references, so no stack is needed and each step is bounded by the
// tree height. A cursor started on an inner node never climbs above it.
//
// Cursor is not safe for concurrent use and never modifies the tree.
type Cursor[T any] struct {
	root    *Node[T]
	current *Node[T]
	started bool
	last    *Node[T]
}

// NewCursor creates a cursor positioned before the leftmost node of root.
// Returns ErrNilRoot if root is nil.
func NewCursor[T any](root *Node[T]) (*Cursor[T], error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	return &Cursor[T]{
		root:    root,
		current: leftmost(root),
	}, nil
}

// Next advances to the in-order successor and returns its value.
// Returns the zero value and false once the sequence is exhausted; every
// later call returns false as well.
func (c *Cursor[T]) Next() (T, bool) {
	var zero T

	if c.current == nil {
		c.last = nil
		return zero, false
	}

	if !c.started {
		c.started = true
		c.last = c.current
		return c.current.Value, true
	}

	if c.current.right != nil {
		c.current = leftmost(c.current.right)
		c.last = c.current
		return c.current.Value, true
	}

	// Climb while we are the right child; the first ancestor reached from
	// its left side is the successor. Reaching the root ends the walk.
	for c.current != c.root && c.current == c.current.parent.right {
		c.current = c.current.parent
	}
	if c.current == c.root {
		c.current = nil
		c.last = nil
		return zero, false
	}
	c.current = c.current.parent
	c.last = c.current
	return c.current.Value, true
}

// Node returns the node produced by the last successful call to Next.
// Returns nil before the first call and after exhaustion.
func (c *Cursor[T]) Node() *Node[T] {
	return c.last
}

// Done returns true once the cursor has passed the rightmost node.
func (c *Cursor[T]) Done() bool {
	return c.current == nil
}
