package autodiff

import (
	"errors"
	"fmt"

	"github.com/born-ml/pinn/internal/tensor"
)

var (
	// ErrNoOperations is returned when a gradient is requested from an empty tape.
	ErrNoOperations = errors.New("autodiff: no operations recorded (did you forget to call Tape().StartRecording()?)")

	// ErrNotDifferentiable is returned when a gradient input is not marked with RequireGrad.
	ErrNotDifferentiable = errors.New("autodiff: input does not require grad")

	// ErrUnusedInput is returned when an input does not contribute to any output.
	ErrUnusedInput = errors.New("autodiff: input was not used to compute the outputs")
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
	// Base returns the backend that executes operations without recording.
	Base() tensor.Backend
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Base returns the wrapped backend as a plain tensor.Backend.
func (b *AutodiffBackend[B]) Base() tensor.Backend {
	return b.inner
}

// GradOptions controls Grad.
type GradOptions struct {
	// CreateGraph records the backward pass so the returned gradients can be
	// differentiated again.
	CreateGraph bool

	// AllowUnused returns zero gradients for inputs that do not reach any
	// output instead of failing with ErrUnusedInput.
	AllowUnused bool
}

// Backward computes gradients for a tensor using the AutodiffBackend's tape.
//
// The tensor is seeded with ones. Returns a map from RawTensor to its gradient.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones[float64](Shape{2}, backend)
//	y := x.Mul(x) // y = x²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // Get gradient for x
func Backward[B BackwardCapable](t *tensor.Tensor[float64, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	seeds := map[*tensor.RawTensor]*tensor.RawTensor{t.Raw(): onesLike(t.Raw())}
	return tape.Gradients(seeds, backend.Base(), false)
}

// Grad computes the gradients of the sum of outputs with respect to inputs.
//
// Each output is seeded with ones, so for an output that depends element-wise
// on an input of the same shape the result is the element-wise derivative.
// Results are returned in the order of inputs.
//
// With opts.CreateGraph the returned gradients are recorded on the tape and
// marked with RequireGrad, so they can be passed back into Grad for higher
// derivatives.
func Grad[B BackwardCapable](
	outputs, inputs []*tensor.Tensor[float64, B],
	opts GradOptions,
) ([]*tensor.Tensor[float64, B], error) {
	if len(outputs) == 0 {
		return nil, errors.New("autodiff: grad requires at least one output")
	}
	for i, in := range inputs {
		if !in.RequiresGrad() {
			return nil, fmt.Errorf("input %d: %w", i, ErrNotDifferentiable)
		}
	}

	backend := outputs[0].Backend()
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		return nil, ErrNoOperations
	}

	var walker tensor.Backend = backend.Base()
	if opts.CreateGraph {
		walker = backend
	}

	seeds := make(map[*tensor.RawTensor]*tensor.RawTensor, len(outputs))
	for _, out := range outputs {
		seed := onesLike(out.Raw())
		if existing, ok := seeds[out.Raw()]; ok {
			seed = walker.Add(existing, seed)
		}
		seeds[out.Raw()] = seed
	}

	grads := tape.Gradients(seeds, walker, opts.CreateGraph)

	result := make([]*tensor.Tensor[float64, B], len(inputs))
	for i, in := range inputs {
		g, ok := grads[in.Raw()]
		if !ok {
			if !opts.AllowUnused {
				return nil, fmt.Errorf("input %d: %w", i, ErrUnusedInput)
			}
			g = zerosLike(in.Raw())
		}
		if !g.Shape().Equal(in.Shape()) {
			return nil, fmt.Errorf("input %d: gradient shape %v does not match input shape %v", i, g.Shape(), in.Shape())
		}
		result[i] = tensor.New[float64](g, backend)
		if opts.CreateGraph {
			result[i].RequireGrad()
		}
	}
	return result, nil
}

func zerosLike(raw *tensor.RawTensor) *tensor.RawTensor {
	z, err := tensor.NewRaw(raw.Shape(), tensor.Float64, raw.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: failed to allocate gradient: %v", err))
	}
	return z
}

func onesLike(raw *tensor.RawTensor) *tensor.RawTensor {
	o := zerosLike(raw)
	data := o.AsFloat64()
	for i := range data {
		data[i] = 1
	}
	return o
}
