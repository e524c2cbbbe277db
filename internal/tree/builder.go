package tree

// Balanced builds a height-balanced tree whose in-order sequence is values.
// Returns nil for an empty slice.
func Balanced[T any](values []T) *Node[T] {
	if len(values) == 0 {
		return nil
	}
	mid := len(values) / 2
	return NewNode(values[mid], Balanced(values[:mid]), Balanced(values[mid+1:]))
}

// FromLevelOrder builds a complete tree from values given in breadth-first
// order: the node at index i has children at 2i+1 and 2i+2.
// Returns nil for an empty slice.
func FromLevelOrder[T any](values []T) *Node[T] {
	return fromLevelOrder(values, 0)
}

func fromLevelOrder[T any](values []T, i int) *Node[T] {
	if i >= len(values) {
		return nil
	}
	return NewNode(values[i], fromLevelOrder(values, 2*i+1), fromLevelOrder(values, 2*i+2))
}
