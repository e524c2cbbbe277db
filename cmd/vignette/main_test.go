package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		in   string
		want []int64
	}{
		{"1,2,3", []int64{1, 2, 3}},
		{" 4 , -2,6 ", []int64{4, -2, 6}},
		{"7,,8,", []int64{7, 8}},
		{",", []int64{}},
	}
	for _, tt := range tests {
		got, err := parseValues(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseValues("1,x")
	assert.Error(t, err)
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "2 1 3", formatValues([]int64{2, 1, 3}))
	assert.Equal(t, "", formatValues(nil))
}
