package cpu

import (
	"fmt"

	"github.com/born-ml/pinn/internal/tensor"
)

// Gather selects elements along dim using an int64 index tensor,
// like torch.gather(input, dim, index).
//
// The index must have the rank of x and match its shape except at dim.
// The result has the shape of index:
//
//	output[i][j] = x[i][index[i][j]]  // dim == 1
func (cpu *CPUBackend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	requireFloat64("gather", x)
	if index.DType() != tensor.Int64 {
		panic(fmt.Sprintf("gather: index tensor must have dtype int64, got %s", index.DType()))
	}

	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	indexShape := index.Shape()
	if len(indexShape) != len(shape) {
		panic(fmt.Sprintf("gather: index rank %d != input rank %d", len(indexShape), len(shape)))
	}
	for d := range shape {
		if d != dim && indexShape[d] != shape[d] {
			panic(fmt.Sprintf("gather: index shape mismatch at dim %d: %d != %d", d, indexShape[d], shape[d]))
		}
	}

	result := cpu.alloc("gather", indexShape, tensor.Float64)
	inStrides := x.Strides()
	outStrides := indexShape.ComputeStrides()
	src, dst, idx := x.AsFloat64(), result.AsFloat64(), index.AsInt64()
	for i := range dst {
		j := idx[i]
		if j < 0 || int(j) >= shape[dim] {
			panic(fmt.Sprintf("gather: index %d out of range [0, %d)", j, shape[dim]))
		}
		offset := 0
		rem := i
		for d, s := range outStrides {
			coord := rem / s
			rem %= s
			if d == dim {
				coord = int(j)
			}
			offset += coord * inStrides[d]
		}
		dst[i] = src[offset]
	}
	return result
}
