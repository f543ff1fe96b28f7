// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pde evaluates the residual u_t + u·u_x - ν·u_xx of the 1-D
// viscous Burgers' equation for a learned field.
//
// Example:
//
//	x, t, _ := collocation.Columns(sample.Points)
//	residual, err := pde.Residual(model, x, t, 0.01)
//	loss := pde.ResidualLoss(residual)
package pde

import (
	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/pde"
	"github.com/born-ml/pinn/internal/tensor"
)

// Field is a differentiable scalar field on (N, 2) inputs with columns (x, t).
type Field[B tensor.Backend] = pde.Field[B]

// FieldFunc adapts a function to the Field interface.
type FieldFunc[B tensor.Backend] = pde.FieldFunc[B]

// Terms holds the field, its derivatives and the residual.
type Terms[B tensor.Backend] = pde.Terms[B]

// Errors.
var (
	ErrNotDifferentiable = pde.ErrNotDifferentiable
	ErrShapeMismatch     = pde.ErrShapeMismatch
)

// Split returns the x and t columns of a field input.
func Split[B tensor.Backend](input *tensor.Tensor[float64, B]) (x, t *tensor.Tensor[float64, B]) {
	return pde.Split(input)
}

// ResidualTerms evaluates the field, its derivatives and the residual.
func ResidualTerms[B autodiff.BackwardCapable](model Field[B], x, t *tensor.Tensor[float64, B], nu float64) (*Terms[B], error) {
	return pde.ResidualTerms(model, x, t, nu)
}

// Residual returns the pointwise residual (N, 1).
func Residual[B autodiff.BackwardCapable](model Field[B], x, t *tensor.Tensor[float64, B], nu float64) (*tensor.Tensor[float64, B], error) {
	return pde.Residual(model, x, t, nu)
}

// ResidualLoss reduces a residual to mean(residual²).
func ResidualLoss[B tensor.Backend](residual *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return pde.ResidualLoss(residual)
}
