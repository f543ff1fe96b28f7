// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package collocation draws collocation samples and evaluation grids for
// PINNs on the 1-D viscous Burgers' equation over (x, t) ∈ [0,1]×[0,1].
//
// Example:
//
//	sampler, err := collocation.NewSampler(collocation.SamplerConfig{
//	    Batch: 4, TimeSteps: 101, Cells: 128, Points: 64, Interior: 256, Seed: 42,
//	}, backend)
//	sample := sampler.Sample() // Points: [4, 384, 2]
package collocation

import (
	"github.com/born-ml/pinn/internal/collocation"
	"github.com/born-ml/pinn/internal/tensor"
)

// SamplerConfig controls the shape of a Sample.
type SamplerConfig = collocation.SamplerConfig

// ConfigError describes a rejected sampler or grid argument.
type ConfigError = collocation.ConfigError

// Errors.
var (
	ErrInvalidConfig = collocation.ErrInvalidConfig
	ErrShapeMismatch = collocation.ErrShapeMismatch
)

// DefaultSamplerConfig returns a small configuration suitable for experiments.
func DefaultSamplerConfig() SamplerConfig {
	return collocation.DefaultSamplerConfig()
}

// Sampler draws Samples from its own random source.
type Sampler[B tensor.Backend] = collocation.Sampler[B]

// Sample is one training batch of collocation points.
type Sample[B tensor.Backend] = collocation.Sample[B]

// GridBatch is the evaluation mesh.
type GridBatch[B tensor.Backend] = collocation.GridBatch[B]

// NewSampler validates config and creates a sampler.
func NewSampler[B tensor.Backend](config SamplerConfig, backend B) (*Sampler[B], error) {
	return collocation.NewSampler(config, backend)
}

// Grid builds the deterministic evaluation mesh.
func Grid[B tensor.Backend](batch, timeSteps, cells int, backend B) (*GridBatch[B], error) {
	return collocation.Grid(batch, timeSteps, cells, backend)
}

// WarpTime maps a uniform draw u ∈ [0,1] to 1 - cos(u·π/2).
func WarpTime(u float64) float64 {
	return collocation.WarpTime(u)
}

// GatherInitial looks up ground-truth initial values at sampled cells.
func GatherInitial[B tensor.Backend](u0 *tensor.Tensor[float64, B], index *tensor.Tensor[int64, B]) (*tensor.Tensor[float64, B], error) {
	return collocation.GatherInitial(u0, index)
}

// Columns flattens coordinates into fresh (K, 1) space and time leaves.
func Columns[B tensor.Backend](points *tensor.Tensor[float64, B]) (x, t *tensor.Tensor[float64, B], err error) {
	return collocation.Columns(points)
}
