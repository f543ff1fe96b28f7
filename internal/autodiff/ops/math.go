package ops

import "github.com/born-ml/pinn/internal/tensor"

// ExpOp represents y = exp(x).
//
// Backward: grad_x = outputGrad * y.
type ExpOp struct{ unary }

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{unary{input: x, output: output}}
}

// Backward computes input gradient for exp.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// SinOp represents y = sin(x).
//
// Backward: grad_x = outputGrad * cos(x).
type SinOp struct{ unary }

// NewSinOp creates a new SinOp.
func NewSinOp(x, output *tensor.RawTensor) *SinOp {
	return &SinOp{unary{input: x, output: output}}
}

// Backward computes input gradient for sin.
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.input))}
}

// CosOp represents y = cos(x).
//
// Backward: grad_x = -outputGrad * sin(x).
type CosOp struct{ unary }

// NewCosOp creates a new CosOp.
func NewCosOp(x, output *tensor.RawTensor) *CosOp {
	return &CosOp{unary{input: x, output: output}}
}

// Backward computes input gradient for cos.
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.Mul(outputGrad, backend.Sin(op.input))
	return []*tensor.RawTensor{backend.MulScalar(grad, -1)}
}

// TanhOp represents y = tanh(x).
//
// Backward uses the stored output: grad_x = outputGrad * (1 - y²).
// Because y is itself a recorded output, differentiating this gradient again
// yields the second derivative -2y(1 - y²).
type TanhOp struct{ unary }

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{unary{input: x, output: output}}
}

// Backward computes input gradient for tanh.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	squared := backend.Mul(op.output, op.output)
	derivative := backend.AddScalar(backend.MulScalar(squared, -1), 1)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}
