// Package pde evaluates the residual of the 1-D viscous Burgers' equation
//
//	u_t + u·u_x = ν·u_xx
//
// for a learned field u(x, t).
//
// Derivatives are taken by nested reverse-mode differentiation: the first
// pass records its own computation, so u_x can be differentiated again for
// u_xx. The residual stays on the tape and can be backpropagated into the
// field's parameters.
package pde

import (
	"errors"
	"fmt"

	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/tensor"
)

var (
	// ErrNotDifferentiable is returned when x or t is not gradient-tracked.
	ErrNotDifferentiable = autodiff.ErrNotDifferentiable

	// ErrShapeMismatch is returned for coordinates or field outputs that are
	// not (N, 1) columns of matching length.
	ErrShapeMismatch = errors.New("pde: shape mismatch")
)

// Field is a differentiable scalar field evaluated row-wise on (N, 2) inputs
// whose columns are (x, t). Every nn.Module satisfies Field.
type Field[B tensor.Backend] interface {
	Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]
}

// FieldFunc adapts a function to the Field interface.
type FieldFunc[B tensor.Backend] func(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]

// Forward calls f(input).
func (f FieldFunc[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return f(input)
}

// Split returns the x and t columns (N, 1) of a field input (N, 2).
func Split[B tensor.Backend](input *tensor.Tensor[float64, B]) (x, t *tensor.Tensor[float64, B]) {
	return input.Narrow(1, 0, 1), input.Narrow(1, 1, 1)
}

// Terms holds the field and its derivatives at the evaluation points.
// Every tensor is (N, 1).
type Terms[B tensor.Backend] struct {
	U        *tensor.Tensor[float64, B]
	Ux       *tensor.Tensor[float64, B]
	Ut       *tensor.Tensor[float64, B]
	Uxx      *tensor.Tensor[float64, B]
	Residual *tensor.Tensor[float64, B]
}

// ResidualTerms evaluates u = model([x, t]) and its derivatives, and forms
// the residual u_t + u·u_x - nu·u_xx.
//
// x and t must be (N, 1) leaves marked with RequireGrad. The tape is switched
// to recording for the call and restored afterwards; the operations it
// records stay on the tape until the caller clears it. A derivative the field
// does not depend on is zero. Model parameters are not modified.
func ResidualTerms[B autodiff.BackwardCapable](model Field[B], x, t *tensor.Tensor[float64, B], nu float64) (*Terms[B], error) {
	if err := checkColumns(x, t); err != nil {
		return nil, err
	}
	if !x.RequiresGrad() {
		return nil, fmt.Errorf("pde: x: %w", ErrNotDifferentiable)
	}
	if !t.RequiresGrad() {
		return nil, fmt.Errorf("pde: t: %w", ErrNotDifferentiable)
	}

	tape := x.Backend().GetTape()
	if !tape.IsRecording() {
		tape.StartRecording()
		defer tape.StopRecording()
	}

	u := model.Forward(tensor.Cat([]*tensor.Tensor[float64, B]{x, t}, 1))
	if !u.Shape().Equal(x.Shape()) {
		return nil, fmt.Errorf("%w: field output %v, want %v", ErrShapeMismatch, u.Shape(), x.Shape())
	}

	opts := autodiff.GradOptions{CreateGraph: true, AllowUnused: true}

	first, err := autodiff.Grad(list(u.Sum()), list(x, t), opts)
	if err != nil {
		return nil, fmt.Errorf("pde: first derivatives: %w", err)
	}
	ux, ut := first[0], first[1]

	second, err := autodiff.Grad(list(ux.Sum()), list(x), opts)
	if err != nil {
		return nil, fmt.Errorf("pde: second derivative: %w", err)
	}
	uxx := second[0]

	residual := ut.Add(u.Mul(ux)).Sub(uxx.MulScalar(nu))

	return &Terms[B]{
		U:        u,
		Ux:       ux,
		Ut:       ut,
		Uxx:      uxx,
		Residual: residual,
	}, nil
}

// Residual returns the pointwise residual (N, 1) of Burgers' equation for
// model at (x, t). See ResidualTerms.
func Residual[B autodiff.BackwardCapable](model Field[B], x, t *tensor.Tensor[float64, B], nu float64) (*tensor.Tensor[float64, B], error) {
	terms, err := ResidualTerms(model, x, t, nu)
	if err != nil {
		return nil, err
	}
	return terms.Residual, nil
}

// ResidualLoss reduces a residual to mean(residual²), shape [].
func ResidualLoss[B tensor.Backend](residual *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return residual.Mul(residual).Mean()
}

func checkColumns[B tensor.Backend](x, t *tensor.Tensor[float64, B]) error {
	xs, ts := x.Shape(), t.Shape()
	if len(xs) != 2 || xs[1] != 1 {
		return fmt.Errorf("%w: x must be (N, 1), got %v", ErrShapeMismatch, xs)
	}
	if !ts.Equal(xs) {
		return fmt.Errorf("%w: t %v does not match x %v", ErrShapeMismatch, ts, xs)
	}
	return nil
}

func list[B tensor.Backend](ts ...*tensor.Tensor[float64, B]) []*tensor.Tensor[float64, B] {
	return ts
}
