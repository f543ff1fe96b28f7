package ops

import "github.com/born-ml/pinn/internal/tensor"

// CatOp represents a concatenation along a dimension.
//
// Backward: narrow the output gradient at the input boundaries; each input
// receives the slice corresponding to its contribution.
//
//	inputs: x [N,1], t [N,1] along dim=1
//	gradOutput: [N,2]
//	grad_x = gradOutput[:, 0:1], grad_t = gradOutput[:, 1:2]
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a new cat operation.
func NewCatOp(inputs []*tensor.RawTensor, dim int, output *tensor.RawTensor) *CatOp {
	return &CatOp{
		inputs: inputs,
		output: output,
		dim:    output.Shape().NormalizeDim(dim),
	}
}

// Inputs returns the input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *CatOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for the input tensors.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for i, input := range op.inputs {
		size := input.Shape()[op.dim]
		grads[i] = backend.Narrow(outputGrad, op.dim, offset, size)
		offset += size
	}
	return grads
}

// NarrowOp represents output = input[..., start:start+length, ...] along dim.
//
// Backward: place the output gradient back at its position and pad the rest
// of the dimension with zeros.
type NarrowOp struct {
	unary
	dim    int
	start  int
	length int
}

// NewNarrowOp creates a new NarrowOp.
func NewNarrowOp(input, output *tensor.RawTensor, dim, start, length int) *NarrowOp {
	return &NarrowOp{
		unary:  unary{input: input, output: output},
		dim:    input.Shape().NormalizeDim(dim),
		start:  start,
		length: length,
	}
}

// Backward computes input gradient for narrow.
func (op *NarrowOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	size := op.input.Shape()[op.dim]
	parts := make([]*tensor.RawTensor, 0, 3)
	if op.start > 0 {
		parts = append(parts, zerosAlong(outputGrad, op.dim, op.start, backend))
	}
	parts = append(parts, outputGrad)
	if rest := size - op.start - op.length; rest > 0 {
		parts = append(parts, zerosAlong(outputGrad, op.dim, rest, backend))
	}
	if len(parts) == 1 {
		return []*tensor.RawTensor{outputGrad}
	}
	return []*tensor.RawTensor{backend.Cat(parts, op.dim)}
}

// zerosAlong creates a zero constant shaped like like, with size n along dim.
func zerosAlong(like *tensor.RawTensor, dim, n int, backend tensor.Backend) *tensor.RawTensor {
	shape := like.Shape().Clone()
	shape[dim] = n
	zeros, err := tensor.NewRaw(shape, like.DType(), backend.Device())
	if err != nil {
		panic(err)
	}
	return zeros
}
