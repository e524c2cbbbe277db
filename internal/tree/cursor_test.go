package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects every value a cursor produces.
func drain[T any](t *testing.T, c *Cursor[T]) []T {
	t.Helper()
	var out []T
	for v, ok := c.Next(); ok; v, ok = c.Next() {
		out = append(out, v)
	}
	return out
}

func TestNewCursorNilRoot(t *testing.T) {
	c, err := NewCursor[int](nil)
	require.ErrorIs(t, err, ErrNilRoot)
	assert.Nil(t, c)
}

func TestCursorThreeNodes(t *testing.T) {
	root := NewNode(1, Leaf(2), Leaf(3))

	c, err := NewCursor(root)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1, 3}, drain(t, c))

	v, ok := c.Next()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.True(t, c.Done())
}

func TestCursorSingleNode(t *testing.T) {
	c, err := NewCursor(Leaf("only"))
	require.NoError(t, err)

	v, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, "only", v)

	_, ok = c.Next()
	assert.False(t, ok)
}

func TestCursorRightChain(t *testing.T) {
	root := NewNode(1, nil, NewNode(2, nil, NewNode(3, nil, Leaf(4))))

	c, err := NewCursor(root)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, drain(t, c))
}

func TestCursorLeftChain(t *testing.T) {
	root := NewNode(4, NewNode(3, NewNode(2, Leaf(1), nil), nil), nil)

	c, err := NewCursor(root)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, drain(t, c))
}

func TestCursorZigZag(t *testing.T) {
	//     5
	//    /
	//   1
	//    \
	//     3
	//    / \
	//   2   4
	root := NewNode(5, NewNode(1, nil, NewNode(3, Leaf(2), Leaf(4))), nil)

	c, err := NewCursor(root)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, drain(t, c))
}

func TestCursorExhaustionIsSticky(t *testing.T) {
	c, err := NewCursor(NewNode(1, Leaf(0), nil))
	require.NoError(t, err)
	drain(t, c)

	for i := 0; i < 3; i++ {
		_, ok := c.Next()
		assert.False(t, ok)
		assert.Nil(t, c.Node())
	}
}

func TestCursorNode(t *testing.T) {
	left := Leaf(2)
	root := NewNode(1, left, Leaf(3))

	c, err := NewCursor(root)
	require.NoError(t, err)
	assert.Nil(t, c.Node())

	_, ok := c.Next()
	require.True(t, ok)
	assert.Same(t, left, c.Node())

	_, ok = c.Next()
	require.True(t, ok)
	assert.Same(t, root, c.Node())
}

func TestCursorBalancedDepths(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		n := 1<<depth - 1
		values := make([]int, n)
		for i := range values {
			values[i] = i
		}
		root := Balanced(values)
		require.Equal(t, depth, Height(root))

		c, err := NewCursor(root)
		require.NoError(t, err)
		got := drain(t, c)

		assert.Len(t, got, n, "depth %d", depth)
		assert.Equal(t, values, got, "depth %d", depth)
	}
}

func TestCursorDeterministic(t *testing.T) {
	root := FromLevelOrder([]int{8, 4, 12, 2, 6, 10, 14, 1, 3})

	first, err := NewCursor(root)
	require.NoError(t, err)
	want := drain(t, first)

	for i := 0; i < 5; i++ {
		c, err := NewCursor(root)
		require.NoError(t, err)
		assert.Equal(t, want, drain(t, c))
	}
}

func TestCursorMatchesRecursiveWalk(t *testing.T) {
	roots := map[string]*Node[int]{
		"level order": FromLevelOrder([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}),
		"balanced":    Balanced([]int{1, 2, 3, 4, 5, 6, 7}),
		"sparse":      NewNode(1, NewNode(2, nil, Leaf(3)), NewNode(4, Leaf(5), nil)),
	}

	for name, root := range roots {
		t.Run(name, func(t *testing.T) {
			var want []int
			Walk(root, func(n *Node[int]) bool {
				want = append(want, n.Value)
				return true
			})

			c, err := NewCursor(root)
			require.NoError(t, err)
			assert.Equal(t, want, drain(t, c))
		})
	}
}

func TestCursorDoesNotModifyTree(t *testing.T) {
	root := FromLevelOrder([]int{1, 2, 3, 4, 5})
	before := Values(root)

	c, err := NewCursor(root)
	require.NoError(t, err)
	drain(t, c)

	assert.Equal(t, before, Values(root))
	assert.Nil(t, root.Parent())
	assert.Same(t, root, root.Left().Parent())
}

func TestCursorStaysInSubtree(t *testing.T) {
	//        1
	//       / \
	//      2   3
	//     / \
	//    4   5
	root := FromLevelOrder([]int{1, 2, 3, 4, 5})

	tests := []struct {
		name string
		sub  *Node[int]
		want []int
	}{
		{"left inner node", root.Left(), []int{4, 2, 5}},
		{"leaf that is a left child", root.Left().Left(), []int{4}},
		{"leaf that is a right child", root.Left().Right(), []int{5}},
		{"right leaf", root.Right(), []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCursor(tt.sub)
			require.NoError(t, err)
			assert.Equal(t, tt.want, drain(t, c))
			assert.True(t, c.Done())

			assert.Equal(t, tt.want, Values(tt.sub))
			assert.Len(t, Values(tt.sub), Size(tt.sub))

			var walked []int
			Walk(tt.sub, func(n *Node[int]) bool {
				walked = append(walked, n.Value)
				return true
			})
			assert.Equal(t, walked, Values(tt.sub))
		})
	}
}
