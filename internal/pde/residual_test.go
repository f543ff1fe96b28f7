package pde_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/backend/cpu"
	"github.com/born-ml/pinn/internal/nn"
	"github.com/born-ml/pinn/internal/pde"
	"github.com/born-ml/pinn/internal/tensor"
)

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

type tensorT = tensor.Tensor[float64, backendT]

func column(t *testing.T, backend backendT, values ...float64) *tensorT {
	t.Helper()
	c, err := tensor.FromSlice(values, tensor.Shape{len(values), 1}, backend)
	require.NoError(t, err)
	return c.RequireGrad()
}

// quadratic is u = x² + t.
func quadratic() pde.FieldFunc[backendT] {
	return func(input *tensorT) *tensorT {
		x, t := pde.Split(input)
		return x.Mul(x).Add(t)
	}
}

func TestResidualQuadratic(t *testing.T) {
	backend := autodiff.New(cpu.New())
	xs := []float64{-1, 0, 0.25, 0.5, 1}
	ts := []float64{0, 0.3, 1, 0.5, 0.75}
	x := column(t, backend, xs...)
	tc := column(t, backend, ts...)

	terms, err := pde.ResidualTerms[backendT](quadratic(), x, tc, 0.5)
	require.NoError(t, err)

	for i := range xs {
		xv, tv := xs[i], ts[i]
		assert.InDelta(t, xv*xv+tv, terms.U.At(i, 0), 1e-12)
		assert.InDelta(t, 2*xv, terms.Ux.At(i, 0), 1e-12)
		assert.InDelta(t, 1, terms.Ut.At(i, 0), 1e-12)
		assert.InDelta(t, 2, terms.Uxx.At(i, 0), 1e-12)
		// 1 + (x²+t)·2x - 0.5·2
		assert.InDelta(t, 2*xv*xv*xv+2*xv*tv, terms.Residual.At(i, 0), 1e-12)
	}
	assert.Equal(t, tensor.Shape{5, 1}, terms.Residual.Shape())
}

func TestResidualLinearFieldHasZeroCurvature(t *testing.T) {
	backend := autodiff.New(cpu.New())
	field := pde.FieldFunc[backendT](func(input *tensorT) *tensorT {
		x, t := pde.Split(input)
		return x.MulScalar(3).Add(t.MulScalar(2))
	})

	x := column(t, backend, 0.1, 0.9)
	tc := column(t, backend, 0.2, 0.4)
	terms, err := pde.ResidualTerms[backendT](field, x, tc, 0.01)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0}, terms.Uxx.Data())
	for i, v := range []float64{0.3 + 0.4, 2.7 + 0.8} {
		assert.InDelta(t, 2+3*v, terms.Residual.At(i, 0), 1e-12)
	}
}

func TestResidualTimeOnlyField(t *testing.T) {
	backend := autodiff.New(cpu.New())
	field := pde.FieldFunc[backendT](func(input *tensorT) *tensorT {
		_, t := pde.Split(input)
		return t.Sin()
	})

	x := column(t, backend, 0.5)
	tc := column(t, backend, 0.2)
	residual, err := pde.Residual[backendT](field, x, tc, 0.1)
	require.NoError(t, err)
	// u_x = u_xx = 0, residual = cos(t)
	assert.InDelta(t, 0.9800665778412416, residual.Item(), 1e-12)
}

func newMLP(t *testing.T, backend backendT) *nn.Sequential[backendT] {
	t.Helper()
	model, err := nn.NewMLP([]int{2, 16, 16, 1}, rand.New(rand.NewSource(3)), backend)
	require.NoError(t, err)
	return model
}

// eval runs model at a single point without recording.
func eval(t *testing.T, model *nn.Sequential[backendT], backend backendT, x, tv float64) float64 {
	t.Helper()
	input, err := tensor.FromSlice([]float64{x, tv}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	return model.Forward(input).Item()
}

func TestResidualMLPMatchesFiniteDifferences(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newMLP(t, backend)

	xs := []float64{0.1, 0.45, 0.8}
	ts := []float64{0.9, 0.2, 0.5}
	const nu = 0.05

	terms, err := pde.ResidualTerms[backendT](model, column(t, backend, xs...), column(t, backend, ts...), nu)
	require.NoError(t, err)
	require.False(t, backend.Tape().IsRecording())

	for i := range xs {
		xv, tv := xs[i], ts[i]
		alongX := func(v float64) float64 { return eval(t, model, backend, v, tv) }
		alongT := func(v float64) float64 { return eval(t, model, backend, xv, v) }

		u := alongX(xv)
		ux := fd.Derivative(alongX, xv, &fd.Settings{Formula: fd.Central})
		ut := fd.Derivative(alongT, tv, &fd.Settings{Formula: fd.Central})
		uxx := fd.Derivative(alongX, xv, &fd.Settings{Formula: fd.Central2nd})

		assert.InDelta(t, u, terms.U.At(i, 0), 1e-12)
		assert.InDelta(t, ux, terms.Ux.At(i, 0), 1e-6)
		assert.InDelta(t, ut, terms.Ut.At(i, 0), 1e-6)
		assert.InDelta(t, uxx, terms.Uxx.At(i, 0), 1e-5)
		assert.InDelta(t, ut+u*ux-nu*uxx, terms.Residual.At(i, 0), 1e-5)
	}
}

func TestResidualLossBackpropagatesToParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newMLP(t, backend)
	x := column(t, backend, 0.2, 0.6, 0.7)
	tc := column(t, backend, 0.1, 0.5, 0.3)
	const nu = 0.1

	loss := func() *tensorT {
		backend.Tape().Clear()
		residual, err := pde.Residual[backendT](model, x, tc, nu)
		require.NoError(t, err)
		return pde.ResidualLoss(residual)
	}

	backend.Tape().StartRecording()
	l := loss()
	grads := autodiff.Backward(l, backend)
	backend.Tape().StopRecording()

	// Check the first hidden bias and the output weight against finite differences.
	params := model.Parameters()
	for _, p := range []*nn.Parameter[backendT]{params[1], params[4]} {
		g, ok := grads[p.Tensor().Raw()]
		require.True(t, ok, p.Name())

		data := p.Tensor().Data()
		want := fd.Derivative(func(v float64) float64 {
			old := data[0]
			data[0] = v
			defer func() { data[0] = old }()
			return loss().Item()
		}, data[0], &fd.Settings{Formula: fd.Central})

		assert.InDelta(t, want, g.AsFloat64()[0], 1e-6, p.Name())
	}
}

func TestResidualDoesNotTouchParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newMLP(t, backend)

	before := make([][]float64, 0)
	for _, p := range model.Parameters() {
		before = append(before, append([]float64(nil), p.Tensor().Data()...))
	}

	_, err := pde.Residual[backendT](model, column(t, backend, 0.3), column(t, backend, 0.4), 0.01)
	require.NoError(t, err)

	for i, p := range model.Parameters() {
		assert.Equal(t, before[i], p.Tensor().Data())
		assert.Nil(t, p.Grad())
	}
}

func TestResidualRecordingState(t *testing.T) {
	backend := autodiff.New(cpu.New())

	_, err := pde.Residual[backendT](quadratic(), column(t, backend, 0.5), column(t, backend, 0.5), 0.1)
	require.NoError(t, err)
	assert.False(t, backend.Tape().IsRecording())
	assert.Positive(t, backend.Tape().NumOps())

	backend.Tape().Clear()
	backend.Tape().StartRecording()
	_, err = pde.Residual[backendT](quadratic(), column(t, backend, 0.5), column(t, backend, 0.5), 0.1)
	require.NoError(t, err)
	assert.True(t, backend.Tape().IsRecording())
}

func TestResidualErrors(t *testing.T) {
	backend := autodiff.New(cpu.New())

	plain, err := tensor.FromSlice([]float64{0.5}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)

	_, err = pde.Residual[backendT](quadratic(), plain, column(t, backend, 0.5), 0.1)
	assert.ErrorIs(t, err, pde.ErrNotDifferentiable)

	_, err = pde.Residual[backendT](quadratic(), column(t, backend, 0.5), plain, 0.1)
	assert.ErrorIs(t, err, pde.ErrNotDifferentiable)

	_, err = pde.Residual[backendT](quadratic(), column(t, backend, 0.5, 0.6), column(t, backend, 0.5), 0.1)
	assert.ErrorIs(t, err, pde.ErrShapeMismatch)

	row, err := tensor.FromSlice([]float64{0.5, 0.6}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	_, err = pde.Residual[backendT](quadratic(), row.RequireGrad(), row, 0.1)
	assert.ErrorIs(t, err, pde.ErrShapeMismatch)

	wide := pde.FieldFunc[backendT](func(input *tensorT) *tensorT { return input })
	_, err = pde.Residual[backendT](wide, column(t, backend, 0.5), column(t, backend, 0.5), 0.1)
	assert.ErrorIs(t, err, pde.ErrShapeMismatch)
}

func TestResidualLoss(t *testing.T) {
	backend := autodiff.New(cpu.New())
	r, err := tensor.FromSlice([]float64{1, -2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	loss := pde.ResidualLoss(r)
	assert.Equal(t, tensor.Shape{}, loss.Shape())
	assert.InDelta(t, 14.0/3, loss.Item(), 1e-12)
}
