// Package collocation draws the coordinate batches a PINN for the 1-D
// viscous Burgers' equation is trained and evaluated on.
//
// All coordinates live in the unit square (x, t) ∈ [0,1]×[0,1]. A Sample
// mixes three kinds of points per batch row:
//   - initial-condition points at t = 0 on grid cells index/s
//   - boundary points at x = 0 and x = 1 sharing the same times
//   - interior points with times warped toward t = 1
//
// Grid builds the deterministic evaluation mesh. Coordinate components are
// returned as gradient-tracked leaves so the residual can be differentiated
// with respect to them.
package collocation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every *ConfigError.
var ErrInvalidConfig = errors.New("collocation: invalid configuration")

// ConfigError describes a rejected sampler or grid argument.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("collocation: %s = %d: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// SamplerConfig controls the shape of a Sample.
type SamplerConfig struct {
	// Batch is the number of independent rows N.
	Batch int

	// TimeSteps is the time resolution T of the matching evaluation grid.
	// Sampling does not use it; it is validated so one config can drive both.
	TimeSteps int

	// Cells is the number of spatial grid cells s for initial-condition indices.
	Cells int

	// Points is the number p of initial-condition points, and also of
	// boundary points, per row. Must be even: half go to each boundary.
	Points int

	// Interior is the number q of interior points per row.
	Interior int

	// Seed for reproducibility. Negative = random.
	Seed int64
}

// DefaultSamplerConfig returns a small configuration suitable for experiments.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Batch:     4,
		TimeSteps: 101,
		Cells:     128,
		Points:    64,
		Interior:  256,
		Seed:      -1,
	}
}

// PointsPerRow returns 2p+q, the number of points in each Sample row.
func (c SamplerConfig) PointsPerRow() int {
	return 2*c.Points + c.Interior
}

// Validate checks that every size is usable.
func (c SamplerConfig) Validate() error {
	checks := []struct {
		field string
		value int
	}{
		{"Batch", c.Batch},
		{"TimeSteps", c.TimeSteps},
		{"Cells", c.Cells},
		{"Interior", c.Interior},
	}
	for _, chk := range checks {
		if err := positive(chk.field, chk.value); err != nil {
			return err
		}
	}

	if c.Points < 2 || c.Points%2 != 0 {
		return &ConfigError{Field: "Points", Value: c.Points, Reason: "must be even and at least 2"}
	}
	return nil
}

func positive(field string, value int) error {
	if value < 1 {
		return &ConfigError{Field: field, Value: value, Reason: "must be at least 1"}
	}
	return nil
}
