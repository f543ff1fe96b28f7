// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API.
//
// The package defines core types for type-safe tensor operations:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level byte-backed storage for advanced use cases
//   - Backend: Interface for compute implementations
//   - Shape, DataType, Device: Core type definitions
//
// Floating tensors are float64; index tensors are int64.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Linspace(0, 1, 5, backend)
//	y := x.Mul(x).Sin()
package tensor

import (
	"math/rand"

	"github.com/born-ml/pinn/internal/tensor"
)

// DType is a constraint for tensor element types: float64 and int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the untyped tensor storage that backends operate on.
type RawTensor = tensor.RawTensor

// Backend defines the interface that compute backends implement.
//
// Implementations:
//   - backend/cpu: pure Go, gonum for matrix products
//   - autodiff: decorator recording operations for differentiation
type Backend = tensor.Backend

// Tensor is a generic type-safe tensor.
//
// T is the element type (float64 or int64).
// B is the backend implementation.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4, 1}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// Linspace creates n evenly spaced values over [start, stop].
func Linspace[B Backend](start, stop float64, n int, b B) *Tensor[float64, B] {
	return tensor.Linspace(start, stop, n, b)
}

// Rand creates a tensor with values uniform in [0, 1) drawn from rng.
func Rand[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[float64, B] {
	return tensor.Rand(shape, rng, b)
}

// RandInt creates an int64 tensor with values uniform in [0, high) drawn from rng.
func RandInt[B Backend](shape Shape, high int, rng *rand.Rand, b B) *Tensor[int64, B] {
	return tensor.RandInt(shape, high, rng, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Manipulation functions

// Cat concatenates tensors along a dimension.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat(tensors, dim)
}

// Stack joins same-shaped tensors along a new dimension.
func Stack[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Stack(tensors, dim)
}

// BroadcastShapes computes the broadcast shape for two shapes following NumPy broadcasting rules.
// Returns the resulting shape and whether any operand needs broadcasting.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
