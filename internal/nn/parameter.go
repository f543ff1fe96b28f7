package nn

import (
	"github.com/born-ml/pinn/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that take part in gradient computation. Their value
// tensor is marked with RequireGrad on creation; RequiresGrad/SetRequiresGrad
// toggle that flag. Gradients are accumulated into a buffer owned by the
// parameter and never attached to the computation graph.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//	grad := weight.Grad() // nil until gradients are accumulated
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float64, B] // The parameter tensor
	grad   *tensor.Tensor[float64, B] // Accumulated gradient
}

// NewParameter creates a new trainable parameter.
//
// The tensor is marked as requiring gradients.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t.RequireGrad(),
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float64, B] {
	return p.tensor
}

// Grad returns the accumulated gradient.
//
// Returns nil if no gradient has been accumulated yet.
func (p *Parameter[B]) Grad() *tensor.Tensor[float64, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float64, B]) {
	p.grad = grad
}

// RequiresGrad reports whether gradients are computed and accumulated for p.
func (p *Parameter[B]) RequiresGrad() bool {
	return p.tensor.RequiresGrad()
}

// SetRequiresGrad enables or disables gradient tracking for p.
func (p *Parameter[B]) SetRequiresGrad(flag bool) {
	p.tensor.SetRequiresGrad(flag)
}

// NumElements returns the number of scalar values held by p.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}

// ZeroGrad detaches the accumulated gradient and fills it with zeros in place.
// It does nothing if no gradient has been accumulated.
func (p *Parameter[B]) ZeroGrad() {
	if p.grad == nil {
		return
	}
	p.grad = p.grad.Detach()
	clear(p.grad.Data())
}
