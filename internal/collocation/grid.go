package collocation

import (
	"github.com/born-ml/pinn/internal/tensor"
)

// GridBatch is the evaluation mesh returned by Grid.
type GridBatch[B tensor.Backend] struct {
	// Points is the coordinate batch (N, T*s, 2); the last dimension is (t, x)
	// and points are ordered time-major.
	Points *tensor.Tensor[float64, B]

	// T holds the times (N, T, s). Gradient-tracked leaf.
	T *tensor.Tensor[float64, B]

	// X holds the spaces (N, T, s). Gradient-tracked leaf.
	X *tensor.Tensor[float64, B]
}

// Grid builds the deterministic evaluation mesh.
//
// Times are timeSteps evenly spaced values over [0,1] with both ends
// included; a single step gives t = 0. Spaces are cells evenly spaced values
// over [0,1) starting at 0: {0, 1/s, ..., (s-1)/s}.
//
// Example:
//
//	g, _ := collocation.Grid(1, 3, 2, backend)
//	// t: 0, 0, 0.5, 0.5, 1, 1
//	// x: 0, 0.5, 0, 0.5, 0, 0.5
func Grid[B tensor.Backend](batch, timeSteps, cells int, backend B) (*GridBatch[B], error) {
	for _, chk := range []struct {
		field string
		value int
	}{{"Batch", batch}, {"TimeSteps", timeSteps}, {"Cells", cells}} {
		if err := positive(chk.field, chk.value); err != nil {
			return nil, err
		}
	}

	times := tensor.Linspace(0, 1, timeSteps, backend).Data()
	spaces := tensor.Linspace(0, 1, cells+1, backend).Data()[:cells]

	shape := tensor.Shape{batch, timeSteps, cells}
	ts := tensor.Zeros[float64](shape, backend)
	xs := tensor.Zeros[float64](shape, backend)
	tData, xData := ts.Data(), xs.Data()

	i := 0
	for range batch {
		for _, tv := range times {
			for _, xv := range spaces {
				tData[i] = tv
				xData[i] = xv
				i++
			}
		}
	}

	ts.RequireGrad()
	xs.RequireGrad()

	points := tensor.Stack([]*tensor.Tensor[float64, B]{ts, xs}, -1).Reshape(batch, timeSteps*cells, 2)
	return &GridBatch[B]{
		Points: points,
		T:      ts,
		X:      xs,
	}, nil
}
