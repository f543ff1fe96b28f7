package cpu

import (
	"fmt"

	"github.com/born-ml/pinn/internal/tensor"
)

// Sum reduces all elements to a scalar tensor of shape [].
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	requireFloat64("sum", x)
	result := cpu.alloc("sum", tensor.Shape{}, tensor.Float64)

	var sum float64
	for _, v := range x.AsFloat64() {
		sum += v
	}
	result.AsFloat64()[0] = sum
	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Zeros[float64](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)  // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), -1, false) // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	requireFloat64("sumdim", x)
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, len(shape)-1)
		outShape = append(outShape, shape[:dim]...)
		outShape = append(outShape, shape[dim+1:]...)
	}

	result := cpu.alloc("sumdim", outShape, tensor.Float64)
	outer, size, inner := splitAt(shape, dim)
	src, dst := x.AsFloat64(), result.AsFloat64()
	for o := 0; o < outer; o++ {
		for k := 0; k < size; k++ {
			base := (o*size + k) * inner
			for i := 0; i < inner; i++ {
				dst[o*inner+i] += src[base+i]
			}
		}
	}
	return result
}

// Expand broadcasts x to shape following NumPy rules.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	requireFloat64("expand", x)
	target, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !target.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", x.Shape(), shape))
	}

	result := cpu.alloc("expand", shape, tensor.Float64)
	strides := tensor.BroadcastStrides(x.Shape(), shape)
	outStrides := shape.ComputeStrides()
	src, dst := x.AsFloat64(), result.AsFloat64()
	for i := range dst {
		offset := 0
		rem := i
		for d, s := range outStrides {
			offset += (rem / s) * strides[d]
			rem %= s
		}
		dst[i] = src[offset]
	}
	return result
}

// splitAt returns the element counts before, at and after dim.
func splitAt(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	return outer, shape[dim], inner
}
