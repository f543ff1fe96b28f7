// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation with
// support for higher-order derivatives.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
//	x.RequireGrad()
//	y := x.Mul(x).Mul(x)
//
//	type T = tensor.Tensor[float64, *autodiff.Backend[*cpu.Backend]]
//	opts := autodiff.GradOptions{CreateGraph: true}
//	dy, _ := autodiff.Grad([]*T{y}, []*T{x}, opts)      // 27
//	d2y, _ := autodiff.Grad([]*T{dy[0]}, []*T{x}, opts) // 18
package autodiff

import (
	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// GradOptions controls Grad.
type GradOptions = autodiff.GradOptions

// Errors returned by Grad.
var (
	ErrNoOperations      = autodiff.ErrNoOperations
	ErrNotDifferentiable = autodiff.ErrNotDifferentiable
	ErrUnusedInput       = autodiff.ErrUnusedInput
)

// Backward computes gradients via backpropagation.
func Backward[B BackwardCapable](t *tensor.Tensor[float64, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// Grad computes the gradients of the sum of outputs with respect to inputs.
func Grad[B BackwardCapable](outputs, inputs []*tensor.Tensor[float64, B], opts GradOptions) ([]*tensor.Tensor[float64, B], error) {
	return autodiff.Grad(outputs, inputs, opts)
}
