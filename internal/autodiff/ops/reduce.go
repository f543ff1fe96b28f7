package ops

import "github.com/born-ml/pinn/internal/tensor"

// SumOp represents the total sum: output = Σ input (shape []).
//
// Backward: broadcast the scalar output gradient to the input shape.
type SumOp struct{ unary }

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{unary{input: input, output: output}}
}

// Backward computes input gradient for sum.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Expand(outputGrad, op.input.Shape())}
}

// SumDimOp represents a sum along one dimension.
//
// Backward: restore the reduced dimension (size 1) if it was dropped, then
// broadcast back to the input shape.
type SumDimOp struct {
	unary
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		unary:   unary{input: input, output: output},
		dim:     input.Shape().NormalizeDim(dim),
		keepDim: keepDim,
	}
}

// Backward computes input gradient for sumdim.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		kept := op.input.Shape().Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{backend.Expand(grad, op.input.Shape())}
}
