package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/pinn/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(2, 32, rng, backend),
//	    nn.NewTanh[Backend](),
//	    nn.NewLinear(32, 1, rng, backend),
//	)
//
//	output := model.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// ErrInvalidLayers is returned by NewMLP for unusable layer sizes.
var ErrInvalidLayers = errors.New("nn: invalid layer sizes")

// NewMLP builds Linear→Tanh→…→Linear for the given layer sizes.
//
// sizes lists the width of every layer including input and output, so
// [2, 32, 32, 1] has two hidden layers. Weights are drawn from rng, and the
// parameters of the i-th dense layer are named fc<i>.weight and fc<i>.bias.
func NewMLP[B tensor.Backend](sizes []int, rng *rand.Rand, backend B) (*Sequential[B], error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least input and output sizes, got %v", ErrInvalidLayers, sizes)
	}
	for i, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("%w: layer %d has size %d", ErrInvalidLayers, i, n)
		}
	}

	model := NewSequential[B]()
	for i := 0; i+1 < len(sizes); i++ {
		if i > 0 {
			model.Add(NewTanh[B]())
		}
		model.Add(newLinear(fmt.Sprintf("fc%d", i), sizes[i], sizes[i+1], rng, backend))
	}
	return model, nil
}
