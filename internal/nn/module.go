// Package nn implements the neural network building blocks used as PINN
// fields.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Linear: Fully connected layer
//   - Activations: Tanh, Sigmoid
//   - Sequential and NewMLP: layer stacks
//   - MSELoss: differentiable mean squared error
//   - RequiresGrad, ZeroGrad, CountParams, AccumulateGrads: parameter utilities
//
// Every forward pass is built from operations whose backward pass is itself
// differentiable, so derivatives of a network with respect to its inputs can
// be taken more than once.
package nn

import (
	"github.com/born-ml/pinn/internal/tensor"
)

// ParameterSet is anything that exposes trainable parameters.
type ParameterSet[B tensor.Backend] interface {
	// Parameters returns all trainable parameters, including those of
	// nested modules. Modules without parameters return an empty slice.
	Parameters() []*Parameter[B]
}

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(2, 32, rng, backend),
//	    nn.NewTanh[Backend](),
//	    nn.NewLinear(32, 1, rng, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	ParameterSet[B]

	// Forward computes the output of the module given an input tensor.
	//
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]
}
