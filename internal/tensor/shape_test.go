package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElementsAndStrides(t *testing.T) {
	tests := []struct {
		shape   Shape
		n       int
		strides []int
	}{
		{Shape{}, 1, []int{}},
		{Shape{5}, 5, []int{1}},
		{Shape{4, 3}, 12, []int{3, 1}},
		{Shape{2, 3, 4}, 24, []int{12, 4, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.n, tt.shape.NumElements(), "%v", tt.shape)
		assert.Equal(t, tt.strides, tt.shape.ComputeStrides(), "%v", tt.shape)
	}
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, Shape{2, 3}.Validate())
	require.NoError(t, Shape{}.Validate())
	require.Error(t, Shape{2, 0}.Validate())
	require.Error(t, Shape{-1}.Validate())
}

func TestShape_NormalizeDim(t *testing.T) {
	s := Shape{4, 10, 2}
	assert.Equal(t, 2, s.NormalizeDim(-1))
	assert.Equal(t, 0, s.NormalizeDim(-3))
	assert.Equal(t, 1, s.NormalizeDim(1))
	assert.Panics(t, func() { s.NormalizeDim(3) })
	assert.Panics(t, func() { s.NormalizeDim(-4) })
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{}, Shape{2, 2}, Shape{2, 2}, true, false},
		{Shape{8, 1}, Shape{1, 32}, Shape{8, 32}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.broadcast, broadcast)
	}
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{1, 0}, BroadcastStrides(Shape{3, 1}, Shape{3, 5}))
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{5}, Shape{3, 5}))
	assert.Equal(t, []int{0, 0}, BroadcastStrides(Shape{}, Shape{3, 5}))
}

func TestRawTensor(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, 48, raw.ByteSize())
	assert.Equal(t, []int{3, 1}, raw.Strides())

	data := raw.AsFloat64()
	data[4] = 7

	clone := raw.Clone()
	clone.AsFloat64()[4] = 1
	assert.Equal(t, 7.0, raw.AsFloat64()[4])

	view := raw.WithShape(Shape{6})
	view.AsFloat64()[0] = 3
	assert.Equal(t, 3.0, raw.AsFloat64()[0])
	assert.Panics(t, func() { raw.WithShape(Shape{4}) })

	assert.Panics(t, func() { raw.AsInt64() })

	_, err = NewRaw(Shape{0, 3}, Float64, CPU)
	require.Error(t, err)
}
