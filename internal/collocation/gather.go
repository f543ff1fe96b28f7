package collocation

import (
	"errors"
	"fmt"

	"github.com/born-ml/pinn/internal/tensor"
)

// ErrShapeMismatch is returned when tensors handed to this package do not
// have the expected shapes.
var ErrShapeMismatch = errors.New("collocation: shape mismatch")

// GatherInitial looks up ground-truth initial values at sampled cells.
//
// u0 holds the initial condition on the grid (N, s); index is a Sample's
// Index (N, p). The result (N, p) lines up with the sample's initial points
// and carries no gradient.
func GatherInitial[B tensor.Backend](u0 *tensor.Tensor[float64, B], index *tensor.Tensor[int64, B]) (*tensor.Tensor[float64, B], error) {
	us, is := u0.Shape(), index.Shape()
	if len(us) != 2 || len(is) != 2 {
		return nil, fmt.Errorf("%w: want u0 (N, s) and index (N, p), got %v and %v", ErrShapeMismatch, us, is)
	}
	if us[0] != is[0] {
		return nil, fmt.Errorf("%w: batch %d of u0 differs from batch %d of index", ErrShapeMismatch, us[0], is[0])
	}

	cells := us[1]
	for _, idx := range index.Data() {
		if idx < 0 || idx >= int64(cells) {
			return nil, &ConfigError{Field: "index", Value: int(idx), Reason: fmt.Sprintf("outside [0, %d)", cells)}
		}
	}

	return u0.Gather(1, index), nil
}

// Columns flattens a coordinate batch (..., 2) with (t, x) pairs into fresh
// (K, 1) space and time columns, ready for pde.Residual.
//
// The columns are new gradient-tracked leaves holding copies of the values,
// so derivatives taken with respect to them do not flow back into points.
func Columns[B tensor.Backend](points *tensor.Tensor[float64, B]) (x, t *tensor.Tensor[float64, B], err error) {
	shape := points.Shape()
	if len(shape) < 1 || shape[len(shape)-1] != 2 {
		return nil, nil, fmt.Errorf("%w: want (..., 2) coordinates, got %v", ErrShapeMismatch, shape)
	}

	k := points.NumElements() / 2
	backend := points.Backend()
	x = tensor.Zeros[float64](tensor.Shape{k, 1}, backend)
	t = tensor.Zeros[float64](tensor.Shape{k, 1}, backend)

	data, xData, tData := points.Data(), x.Data(), t.Data()
	for i := range k {
		tData[i] = data[2*i]
		xData[i] = data[2*i+1]
	}
	return x.RequireGrad(), t.RequireGrad(), nil
}
