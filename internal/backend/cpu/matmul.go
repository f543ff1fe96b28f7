package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/pinn/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Row-major float64 buffers map directly onto gonum dense matrices, so the
// product runs through gonum's BLAS implementation without copying inputs.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	requireFloat64("matmul", a)
	requireFloat64("matmul", b)

	aShape := a.Shape()
	bShape := b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := cpu.alloc("matmul", tensor.Shape{m, n}, tensor.Float64)

	lhs := mat.NewDense(m, k, a.AsFloat64())
	rhs := mat.NewDense(k, n, b.AsFloat64())
	out := mat.NewDense(m, n, result.AsFloat64())
	out.Mul(lhs, rhs)

	return result
}
