// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network modules used as PINN fields and the
// parameter utilities around them.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	model, _ := nn.NewMLP([]int{2, 32, 32, 1}, rng, backend)
//	fmt.Println(nn.CountParams[Backend](model))
package nn

import (
	"math/rand"

	"github.com/born-ml/pinn/internal/nn"
	"github.com/born-ml/pinn/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// ParameterSet is anything that exposes trainable parameters.
type ParameterSet[B tensor.Backend] = nn.ParameterSet[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization drawn from rng.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, rng, backend)
}

// Activations

// Tanh represents the hyperbolic tangent activation function.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation layer.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Sigmoid represents the sigmoid activation function.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Containers

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// ErrInvalidLayers is returned by NewMLP for unusable layer sizes.
var ErrInvalidLayers = nn.ErrInvalidLayers

// NewMLP builds Linear→Tanh→…→Linear for the given layer sizes.
func NewMLP[B tensor.Backend](sizes []int, rng *rand.Rand, backend B) (*Sequential[B], error) {
	return nn.NewMLP(sizes, rng, backend)
}

// Loss

// MSELoss computes mean squared error.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}

// Parameter utilities

// RequiresGrad enables or disables gradient tracking for every parameter of model.
func RequiresGrad[B tensor.Backend](model ParameterSet[B], flag bool) {
	nn.RequiresGrad(model, flag)
}

// ZeroGrad detaches and zeroes the accumulated gradients of params.
func ZeroGrad[B tensor.Backend](params ...*Parameter[B]) {
	nn.ZeroGrad(params...)
}

// CountParams returns the total number of scalar parameters of net.
func CountParams[B tensor.Backend](net ParameterSet[B]) int {
	return nn.CountParams(net)
}

// AccumulateGrads adds tape gradients into the gradient buffers of params.
func AccumulateGrads[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	nn.AccumulateGrads(params, grads)
}
