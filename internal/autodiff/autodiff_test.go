package autodiff

import (
	"math"
	"testing"

	"github.com/born-ml/pinn/internal/backend/cpu"
	"github.com/born-ml/pinn/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBackend = *AutodiffBackend[*cpu.CPUBackend]

type testTensor = tensor.Tensor[float64, testBackend]

func list(ts ...*testTensor) []*testTensor {
	return ts
}

func newRecording(t *testing.T) testBackend {
	t.Helper()
	backend := New(cpu.New())
	backend.Tape().StartRecording()
	return backend
}

func leaf(t *testing.T, backend testBackend, data []float64, shape tensor.Shape) *testTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, backend)
	require.NoError(t, err)
	return x.RequireGrad()
}

func TestBackendName(t *testing.T) {
	backend := New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.False(t, backend.Tape().IsRecording())
}

func TestRecordingOnlyWhenStarted(t *testing.T) {
	backend := New(cpu.New())
	x := leaf(t, backend, []float64{1, 2}, tensor.Shape{2})

	_ = x.Mul(x)
	assert.Equal(t, 0, backend.Tape().NumOps())

	backend.Tape().StartRecording()
	_ = x.Mul(x)
	assert.Equal(t, 1, backend.Tape().NumOps())

	backend.Tape().Clear()
	assert.Equal(t, 0, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording())
}

func TestBackwardMap(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{1, 2, 3}, tensor.Shape{3})

	y := x.Mul(x).Sum()
	grads := Backward(y, backend)

	assert.Equal(t, []float64{2, 4, 6}, grads[x.Raw()].AsFloat64())
}

func TestGradCubeSecondOrder(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{3, -1}, tensor.Shape{2})
	y := x.Mul(x).Mul(x)

	opts := GradOptions{CreateGraph: true}
	dy, err := Grad(list(y), list(x), opts)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{27, 3}, dy[0].Data(), 1e-12)
	assert.True(t, dy[0].RequiresGrad())

	d2y, err := Grad(list(dy[0]), list(x), opts)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{18, -6}, d2y[0].Data(), 1e-12)

	d3y, err := Grad(list(d2y[0]), list(x), GradOptions{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{6, 6}, d3y[0].Data(), 1e-12)
}

func TestGradElementwiseMath(t *testing.T) {
	values := []float64{-1.2, 0, 0.4, 2}

	tests := []struct {
		name   string
		fn     func(x *testTensor) *testTensor
		first  func(v float64) float64
		second func(v float64) float64
	}{
		{
			name:   "sin",
			fn:     func(x *testTensor) *testTensor { return x.Sin() },
			first:  math.Cos,
			second: func(v float64) float64 { return -math.Sin(v) },
		},
		{
			name:   "cos",
			fn:     func(x *testTensor) *testTensor { return x.Cos() },
			first:  func(v float64) float64 { return -math.Sin(v) },
			second: func(v float64) float64 { return -math.Cos(v) },
		},
		{
			name:   "exp",
			fn:     func(x *testTensor) *testTensor { return x.Exp() },
			first:  math.Exp,
			second: math.Exp,
		},
		{
			name: "tanh",
			fn:   func(x *testTensor) *testTensor { return x.Tanh() },
			first: func(v float64) float64 {
				th := math.Tanh(v)
				return 1 - th*th
			},
			second: func(v float64) float64 {
				th := math.Tanh(v)
				return -2 * th * (1 - th*th)
			},
		},
		{
			name:   "div",
			fn:     func(x *testTensor) *testTensor { return tensor.Ones[float64](x.Shape(), x.Backend()).Div(x.AddScalar(3)) },
			first:  func(v float64) float64 { return -1 / ((v + 3) * (v + 3)) },
			second: func(v float64) float64 { return 2 / ((v + 3) * (v + 3) * (v + 3)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newRecording(t)
			x := leaf(t, backend, values, tensor.Shape{len(values)})

			opts := GradOptions{CreateGraph: true}
			dy, err := Grad(list(tt.fn(x)), list(x), opts)
			require.NoError(t, err)
			d2y, err := Grad(list(dy[0]), list(x), opts)
			require.NoError(t, err)

			for i, v := range values {
				assert.InDelta(t, tt.first(v), dy[0].Data()[i], 1e-12, "first derivative at %v", v)
				assert.InDelta(t, tt.second(v), d2y[0].Data()[i], 1e-12, "second derivative at %v", v)
			}
		})
	}
}

func TestGradLinearLayerShapes(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	w := leaf(t, backend, []float64{0.5, -1, 2, 0.25}, tensor.Shape{2, 2})
	b := leaf(t, backend, []float64{0.1, 0.2}, tensor.Shape{2})

	y := x.MatMul(w).Add(b.Reshape(1, 2)).Sum()
	grads, err := Grad(list(y), list(x, w, b), GradOptions{})
	require.NoError(t, err)

	// dy/dx = ones(3,2) @ wᵀ; dy/dw = xᵀ @ ones(3,2); dy/db = 3 per column
	assert.Equal(t, tensor.Shape{3, 2}, grads[0].Shape())
	assert.InDeltaSlice(t, []float64{-0.5, 2.25, -0.5, 2.25, -0.5, 2.25}, grads[0].Data(), 1e-12)
	assert.Equal(t, tensor.Shape{2, 2}, grads[1].Shape())
	assert.InDeltaSlice(t, []float64{9, 9, 12, 12}, grads[1].Data(), 1e-12)
	assert.Equal(t, tensor.Shape{2}, grads[2].Shape())
	assert.InDeltaSlice(t, []float64{3, 3}, grads[2].Data(), 1e-12)
}

func TestGradThroughCatAndNarrow(t *testing.T) {
	backend := newRecording(t)
	a := leaf(t, backend, []float64{1, 2}, tensor.Shape{2, 1})
	b := leaf(t, backend, []float64{3, 4}, tensor.Shape{2, 1})

	ab := tensor.Cat(list(a, b), 1) // [2,2]
	right := ab.Narrow(1, 1, 1)     // == b
	y := right.Mul(right).Add(ab.Narrow(1, 0, 1))

	grads, err := Grad(list(y), list(a, b), GradOptions{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, grads[0].Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{6, 8}, grads[1].Data(), 1e-12)
}

func TestGradStackSecondOrder(t *testing.T) {
	backend := newRecording(t)
	tt := leaf(t, backend, []float64{0.5, 1}, tensor.Shape{2})
	x := leaf(t, backend, []float64{2, 3}, tensor.Shape{2})

	points := tensor.Stack(list(tt, x), -1) // [2,2]
	require.Equal(t, tensor.Shape{2, 2}, points.Shape())

	// u = t * x² computed from the stacked points
	pt := points.Narrow(1, 0, 1).Reshape(2)
	px := points.Narrow(1, 1, 1).Reshape(2)
	u := pt.Mul(px).Mul(px)

	opts := GradOptions{CreateGraph: true}
	first, err := Grad(list(u), list(tt, x), opts)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 9}, first[0].Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{2, 6}, first[1].Data(), 1e-12)

	uxx, err := Grad(list(first[1]), list(x), opts)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, uxx[0].Data(), 1e-12)
}

func TestGradTapeGrowth(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{1, 2}, tensor.Shape{2})
	y := x.Mul(x).Sin()
	before := backend.Tape().NumOps()

	_, err := Grad(list(y), list(x), GradOptions{})
	require.NoError(t, err)
	assert.Equal(t, before, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording())

	_, err = Grad(list(y), list(x), GradOptions{CreateGraph: true})
	require.NoError(t, err)
	assert.Greater(t, backend.Tape().NumOps(), before)
	assert.True(t, backend.Tape().IsRecording())
}

func TestGradMultipleOutputsSum(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{1, 2}, tensor.Shape{2})

	grads, err := Grad(list(x.Mul(x), x.MulScalar(3)), list(x), GradOptions{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 7}, grads[0].Data(), 1e-12)
}

func TestGradErrors(t *testing.T) {
	t.Run("no operations", func(t *testing.T) {
		backend := newRecording(t)
		x := leaf(t, backend, []float64{1}, tensor.Shape{1})
		_, err := Grad(list(x), list(x), GradOptions{})
		assert.ErrorIs(t, err, ErrNoOperations)
	})

	t.Run("not differentiable", func(t *testing.T) {
		backend := newRecording(t)
		x, err := tensor.FromSlice([]float64{1}, tensor.Shape{1}, backend)
		require.NoError(t, err)
		_, err = Grad(list(x.Mul(x)), list(x), GradOptions{})
		assert.ErrorIs(t, err, ErrNotDifferentiable)
	})

	t.Run("unused input", func(t *testing.T) {
		backend := newRecording(t)
		x := leaf(t, backend, []float64{1, 2}, tensor.Shape{2})
		z := leaf(t, backend, []float64{5, 5}, tensor.Shape{2})
		y := x.Mul(x)

		_, err := Grad(list(y), list(x, z), GradOptions{})
		assert.ErrorIs(t, err, ErrUnusedInput)

		grads, err := Grad(list(y), list(x, z), GradOptions{AllowUnused: true})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, grads[1].Data())
	})
}

func TestGatherNotRecorded(t *testing.T) {
	backend := newRecording(t)
	x := leaf(t, backend, []float64{10, 20, 30}, tensor.Shape{1, 3})
	index, err := tensor.FromSlice([]int64{2, 0}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	g := x.Gather(1, index)
	assert.Equal(t, []float64{30, 10}, g.Data())
	assert.Equal(t, 0, backend.Tape().NumOps())
}
