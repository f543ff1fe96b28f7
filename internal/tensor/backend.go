package tensor

// Backend defines the interface that compute backends implement.
//
// Every operation returns a newly allocated result and leaves its inputs
// untouched. Element-wise binary operations broadcast NumPy-style.
//
// Implementations:
//   - cpu.CPUBackend: pure Go, gonum for matrix products
//   - autodiff.AutodiffBackend: decorator that records operations on a tape
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor

	// MatMul multiplies 2D tensors: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Reductions
	Sum(x *RawTensor) *RawTensor                           // total sum, shape []
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Manipulation
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Narrow(x *RawTensor, dim, start, length int) *RawTensor

	// Gather selects elements of x along dim using an int64 index tensor.
	Gather(x *RawTensor, dim int, index *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
