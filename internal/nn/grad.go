package nn

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/pinn/internal/tensor"
)

// RequiresGrad enables or disables gradient tracking for every parameter of
// model. It is typically used to freeze a network while it acts as a fixed
// function.
func RequiresGrad[B tensor.Backend](model ParameterSet[B], flag bool) {
	for _, p := range model.Parameters() {
		p.SetRequiresGrad(flag)
	}
}

// ZeroGrad resets the accumulated gradient of each parameter.
//
// Each existing gradient is detached and filled with zeros in place.
// Parameters without a gradient are left alone, so calling ZeroGrad twice is
// the same as calling it once.
func ZeroGrad[B tensor.Backend](params ...*Parameter[B]) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// CountParams returns the total number of scalar parameters of net,
// whether or not they currently require gradients.
func CountParams[B tensor.Backend](net ParameterSet[B]) int {
	total := 0
	for _, p := range net.Parameters() {
		total += p.NumElements()
	}
	return total
}

// AccumulateGrads adds gradients computed by a backward pass into the
// gradient buffers of params.
//
// grads maps parameter tensors (by RawTensor) to their gradient, as returned
// by the tape. Parameters with RequiresGrad cleared, or absent from grads,
// are skipped. The first accumulation copies the gradient into a buffer owned
// by the parameter.
func AccumulateGrads[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range params {
		if !p.RequiresGrad() {
			continue
		}
		g, ok := grads[p.Tensor().Raw()]
		if !ok {
			continue
		}
		if !g.Shape().Equal(p.Tensor().Shape()) {
			panic("AccumulateGrads: gradient shape does not match parameter " + p.Name())
		}

		if p.grad == nil {
			p.grad = tensor.New[float64](g.Clone(), p.Tensor().Backend())
			continue
		}
		floats.Add(p.grad.Data(), g.AsFloat64())
	}
}
