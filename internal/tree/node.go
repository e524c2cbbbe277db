package tree

// Node is a binary tree node.
// Children are owned by their parent. The parent pointer is a back-reference
// set by NewNode and never changed afterwards.
type Node[T any] struct {
	Value T

	left   *Node[T]
	right  *Node[T]
	parent *Node[T]
}

// NewNode creates a node holding value with the given children.
// Either child may be nil. Non-nil children get their parent set to the new node.
// NewNode panics if a child already belongs to another node, or if left and
// right are the same node.
func NewNode[T any](value T, left, right *Node[T]) *Node[T] {
	if left != nil && left == right {
		panic("tree: same node given as left and right child")
	}
	if left != nil && left.parent != nil {
		panic("tree: left child already has a parent")
	}
	if right != nil && right.parent != nil {
		panic("tree: right child already has a parent")
	}
	n := &Node[T]{
		Value: value,
		left:  left,
		right: right,
	}
	if left != nil {
		left.parent = n
	}
	if right != nil {
		right.parent = n
	}
	return n
}

// Leaf creates a node with no children.
func Leaf[T any](value T) *Node[T] {
	return NewNode[T](value, nil, nil)
}

// Left returns the left child, or nil.
func (n *Node[T]) Left() *Node[T] {
	return n.left
}

// Right returns the right child, or nil.
func (n *Node[T]) Right() *Node[T] {
	return n.right
}

// Parent returns the node holding n, or nil for a root.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

// IsLeaf returns true if n has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// IsRoot returns true if n has no parent.
func (n *Node[T]) IsRoot() bool {
	return n.parent == nil
}

// leftmost returns the leftmost descendant of n (n itself if it has no left child).
func leftmost[T any](n *Node[T]) *Node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Size returns the number of nodes in the tree rooted at root.
func Size[T any](root *Node[T]) int {
	if root == nil {
		return 0
	}
	return 1 + Size(root.left) + Size(root.right)
}

// Height returns the number of levels in the tree rooted at root.
// An empty tree has height 0 and a single node has height 1.
func Height[T any](root *Node[T]) int {
	if root == nil {
		return 0
	}
	return 1 + max(Height(root.left), Height(root.right))
}
