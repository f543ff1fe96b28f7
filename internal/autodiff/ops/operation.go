// Package ops defines the differentiable operations recorded by the gradient tape.
//
// Each operation records its inputs and output during the forward pass and
// computes input gradients during the backward pass. Backward is written only
// in terms of tensor.Backend calls. When the tape hands Backward a recording
// backend, the gradient computation is itself recorded, which is what makes
// second and higher derivatives available.
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic with broadcasting
//   - MulScalarOp, AddScalarOp: arithmetic with a constant
//   - ExpOp, SinOp, CosOp, TanhOp: element-wise math
//   - MatMulOp, TransposeOp, ReshapeOp, ExpandOp: linear algebra and shape
//   - SumOp, SumDimOp: reductions
//   - CatOp, NarrowOp: concatenation and slicing
package ops

import "github.com/born-ml/pinn/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)]
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// unary holds the bookkeeping shared by single-input operations.
type unary struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// Inputs returns the input tensor [x].
func (u unary) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{u.input}
}

// Output returns the output tensor.
func (u unary) Output() *tensor.RawTensor {
	return u.output
}

// binary holds the bookkeeping shared by two-input operations.
type binary struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor
}

// Inputs returns the input tensors [a, b].
func (b binary) Inputs() []*tensor.RawTensor {
	return b.inputs
}

// Output returns the output tensor.
func (b binary) Output() *tensor.RawTensor {
	return b.output
}
