package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanced(t *testing.T) {
	assert.Nil(t, Balanced[int](nil))

	values := []int{1, 2, 3, 4, 5, 6, 7}
	root := Balanced(values)
	require.NotNil(t, root)

	assert.Equal(t, 4, root.Value)
	assert.Equal(t, 3, Height(root))
	assert.Equal(t, values, Values(root))
}

func TestBalancedUneven(t *testing.T) {
	values := []string{"a", "b", "c", "d"}
	root := Balanced(values)

	assert.Equal(t, values, Values(root))
	assert.Equal(t, 3, Height(root))
}

func TestFromLevelOrder(t *testing.T) {
	assert.Nil(t, FromLevelOrder[int](nil))

	root := FromLevelOrder([]int{1, 2, 3})
	require.NotNil(t, root)
	assert.Equal(t, []int{2, 1, 3}, Values(root))

	root = FromLevelOrder([]int{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, []int{4, 2, 5, 1, 6, 3, 7}, Values(root))
	assert.Same(t, root, root.Left().Parent())
	assert.Same(t, root.Right(), root.Right().Right().Parent())
}
