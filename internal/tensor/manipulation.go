package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	x := tensor.Zeros[float64](Shape{8, 1}, backend)
//	t := tensor.Zeros[float64](Shape{8, 1}, backend)
//	xt := tensor.Cat([]*Tensor[float64, B]{x, t}, 1) // Shape: [8, 2]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}

	backend := tensors[0].backend
	return New[T, B](backend.Cat(raws, dim), backend)
}

// Stack joins same-shaped tensors along a new dimension.
// Supports negative dim indexing (-1 = new last dimension).
//
// Example:
//
//	t := tensor.Zeros[float64](Shape{4, 10}, backend)
//	x := tensor.Zeros[float64](Shape{4, 10}, backend)
//	tx := tensor.Stack([]*Tensor[float64, B]{t, x}, -1) // Shape: [4, 10, 2]
func Stack[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("stack: at least one tensor required")
	}

	base := tensors[0].Shape()
	expanded := make(Shape, 0, len(base)+1)
	expanded = append(expanded, base...)
	expanded = append(expanded, 1)
	dim = expanded.NormalizeDim(dim)
	copy(expanded[dim+1:], base[dim:])
	expanded[dim] = 1

	parts := make([]*Tensor[T, B], len(tensors))
	for i, t := range tensors {
		if !t.Shape().Equal(base) {
			panic("stack: all tensors must have the same shape")
		}
		parts[i] = t.Reshape(expanded...)
	}
	return Cat(parts, dim)
}
