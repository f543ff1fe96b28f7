package cpu

import (
	"fmt"

	"github.com/born-ml/pinn/internal/tensor"
)

// Reshape returns a copy of t with a new shape.
// The new shape must have the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}
	return t.Clone().WithShape(newShape)
}

// Transpose permutes the dimensions of t.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	requireFloat64("transpose", t)
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}

	outShape := make(tensor.Shape, ndim)
	for i, a := range axes {
		outShape[i] = shape[a]
	}

	result := cpu.alloc("transpose", outShape, tensor.Float64)
	inStrides := t.Strides()
	outStrides := outShape.ComputeStrides()
	src, dst := t.AsFloat64(), result.AsFloat64()
	for i := range dst {
		offset := 0
		rem := i
		for d, s := range outStrides {
			offset += (rem / s) * inStrides[axes[d]]
			rem %= s
		}
		dst[i] = src[offset]
	}
	return result
}

// Cat concatenates tensors along dim.
//
// All tensors must match in every dimension except dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0].Shape()
	dim = first.NormalizeDim(dim)
	outShape := first.Clone()
	outShape[dim] = 0
	for _, t := range tensors {
		requireFloat64("cat", t)
		s := t.Shape()
		if len(s) != len(first) {
			panic(fmt.Sprintf("cat: rank mismatch %v vs %v", first, s))
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: shape mismatch %v vs %v at dimension %d", first, s, d))
			}
		}
		outShape[dim] += s[dim]
	}

	result := cpu.alloc("cat", outShape, tensor.Float64)
	outer, total, inner := splitAt(outShape, dim)
	dst := result.AsFloat64()
	offset := 0
	for _, t := range tensors {
		size := t.Shape()[dim]
		src := t.AsFloat64()
		chunk := size * inner
		for o := 0; o < outer; o++ {
			copy(dst[(o*total+offset)*inner:], src[o*chunk:(o+1)*chunk])
		}
		offset += size
	}
	return result
}

// Narrow returns length elements of x along dim starting at start.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	requireFloat64("narrow", x)
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	if start < 0 || length <= 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d of %v",
			start, start+length, dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = length
	result := cpu.alloc("narrow", outShape, tensor.Float64)

	outer, size, inner := splitAt(shape, dim)
	src, dst := x.AsFloat64(), result.AsFloat64()
	chunk := length * inner
	for o := 0; o < outer; o++ {
		copy(dst[o*chunk:(o+1)*chunk], src[(o*size+start)*inner:])
	}
	return result
}
