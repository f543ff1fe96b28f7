package nn

import (
	"github.com/born-ml/pinn/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// The loss is built from backend operations, so it is recorded on the tape
// and gradients flow back to the predictions.
//
// Example:
//
//	mse := nn.NewMSELoss[Backend]()
//	loss := mse.Forward(model.Forward(icPoints), icTargets)
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the MSE loss as a scalar tensor (shape []).
//
// Panics if predictions and targets differ in shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}
