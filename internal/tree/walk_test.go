package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	root := NewNode(1, Leaf(2), Leaf(3))

	var got []int
	for v := range All(root) {
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 1, 3}, got)

	// Ranging again starts a fresh cursor.
	got = got[:0]
	for v := range All(root) {
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 1, 3}, got)
}

func TestAllNilRoot(t *testing.T) {
	count := 0
	for range All[int](nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestAllEarlyBreak(t *testing.T) {
	root := Balanced([]int{1, 2, 3, 4, 5})

	var got []int
	for v := range All(root) {
		if v > 2 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestValues(t *testing.T) {
	assert.Nil(t, Values[int](nil))
	assert.Equal(t, []int{7}, Values(Leaf(7)))
}

func TestWalkStops(t *testing.T) {
	root := Balanced([]int{1, 2, 3, 4, 5})

	var seen []int
	completed := Walk(root, func(n *Node[int]) bool {
		seen = append(seen, n.Value)
		return n.Value < 3
	})

	assert.False(t, completed)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.True(t, Walk[int](nil, func(*Node[int]) bool { return false }))
}
