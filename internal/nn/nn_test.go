package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/backend/cpu"
	"github.com/born-ml/pinn/internal/nn"
	"github.com/born-ml/pinn/internal/tensor"
)

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() backendT {
	return autodiff.New(cpu.New())
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func TestParameter(t *testing.T) {
	backend := newBackend()

	data, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Nil(t, param.Grad())
	assert.True(t, param.RequiresGrad())
	assert.Equal(t, 3, param.NumElements())

	param.SetRequiresGrad(false)
	assert.False(t, param.RequiresGrad())
	assert.False(t, data.RequiresGrad())
}

func TestLinear_Forward(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(2, 3, newRNG(), backend)

	assert.Equal(t, 2, layer.InFeatures())
	assert.Equal(t, 3, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{3, 2}, layer.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{3}, layer.Bias().Tensor().Shape())

	// W = [[1,2],[3,4],[5,6]], b = [0.5,0,-0.5]
	copy(layer.Weight().Tensor().Data(), []float64{1, 2, 3, 4, 5, 6})
	copy(layer.Bias().Tensor().Data(), []float64{0.5, 0, -0.5})

	input, err := tensor.FromSlice([]float64{1, 1, 2, -1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.Equal(t, tensor.Shape{2, 3}, output.Shape())
	assert.InDeltaSlice(t, []float64{3.5, 7, 10.5, 0.5, 2, 3.5}, output.Data(), 1e-12)
}

func TestLinear_ForwardPanicsOnBadShape(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(2, 3, newRNG(), backend)

	assert.Panics(t, func() {
		layer.Forward(tensor.Zeros[float64](tensor.Shape{4, 3}, backend))
	})
	assert.Panics(t, func() {
		layer.Forward(tensor.Zeros[float64](tensor.Shape{4}, backend))
	})
}

func TestXavierBounds(t *testing.T) {
	backend := cpu.New()
	w := nn.Xavier(32, 32, tensor.Shape{32, 32}, newRNG(), backend)

	bound := math.Sqrt(6.0 / 64)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}

	again := nn.Xavier(32, 32, tensor.Shape{32, 32}, newRNG(), backend)
	assert.Equal(t, w.Data(), again.Data())
}

func TestActivations(t *testing.T) {
	backend := newBackend()
	input, err := tensor.FromSlice([]float64{-2, 0, 1.5}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	tanh := nn.NewTanh[backendT]().Forward(input)
	sigmoid := nn.NewSigmoid[backendT]().Forward(input)
	for i, v := range []float64{-2, 0, 1.5} {
		assert.InDelta(t, math.Tanh(v), tanh.Data()[i], 1e-12)
		assert.InDelta(t, 1/(1+math.Exp(-v)), sigmoid.Data()[i], 1e-12)
	}
	assert.Empty(t, nn.NewTanh[backendT]().Parameters())
}

func TestNewMLP(t *testing.T) {
	backend := newBackend()

	model, err := nn.NewMLP([]int{2, 32, 32, 1}, newRNG(), backend)
	require.NoError(t, err)

	// Linear, Tanh, Linear, Tanh, Linear
	assert.Equal(t, 5, model.Len())
	assert.Len(t, model.Parameters(), 6)
	assert.Equal(t, "fc0.weight", model.Parameters()[0].Name())
	assert.Equal(t, "fc2.bias", model.Parameters()[5].Name())

	input := tensor.Zeros[float64](tensor.Shape{7, 2}, backend)
	assert.Equal(t, tensor.Shape{7, 1}, model.Forward(input).Shape())

	_, err = nn.NewMLP([]int{2}, newRNG(), backend)
	require.ErrorIs(t, err, nn.ErrInvalidLayers)
	_, err = nn.NewMLP([]int{2, 0, 1}, newRNG(), backend)
	require.ErrorIs(t, err, nn.ErrInvalidLayers)
}

func TestCountParams(t *testing.T) {
	backend := newBackend()

	tests := []struct {
		sizes []int
		want  int
	}{
		{[]int{2, 1}, 3},
		{[]int{2, 32, 1}, 2*32 + 32 + 32 + 1},
		{[]int{2, 32, 32, 32, 1}, (2*32 + 32) + 2*(32*32+32) + (32 + 1)},
	}
	for _, tt := range tests {
		model, err := nn.NewMLP(tt.sizes, newRNG(), backend)
		require.NoError(t, err)
		assert.Equal(t, tt.want, nn.CountParams[backendT](model), "sizes %v", tt.sizes)
	}

	// Counting ignores the gradient flag.
	model, err := nn.NewMLP([]int{2, 4, 1}, newRNG(), backend)
	require.NoError(t, err)
	nn.RequiresGrad[backendT](model, false)
	assert.Equal(t, 17, nn.CountParams[backendT](model))
}

func TestRequiresGrad(t *testing.T) {
	backend := newBackend()
	model, err := nn.NewMLP([]int{2, 4, 1}, newRNG(), backend)
	require.NoError(t, err)

	nn.RequiresGrad[backendT](model, false)
	for _, p := range model.Parameters() {
		assert.False(t, p.RequiresGrad(), p.Name())
	}

	nn.RequiresGrad[backendT](model, true)
	for _, p := range model.Parameters() {
		assert.True(t, p.RequiresGrad(), p.Name())
	}
}

// backward runs the model on input, reduces with MSE against zeros and
// returns the tape gradients.
func backward(t *testing.T, backend backendT, model *nn.Sequential[backendT], input *tensor.Tensor[float64, backendT]) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	backend.Tape().Clear()
	backend.Tape().StartRecording()
	defer backend.Tape().StopRecording()

	out := model.Forward(input)
	loss := nn.NewMSELoss[backendT]().Forward(out, tensor.Zeros[float64](out.Shape(), backend))
	return autodiff.Backward(loss, backend)
}

func TestAccumulateAndZeroGrad(t *testing.T) {
	backend := newBackend()
	model, err := nn.NewMLP([]int{2, 4, 1}, newRNG(), backend)
	require.NoError(t, err)
	params := model.Parameters()

	input, err := tensor.FromSlice([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)

	grads := backward(t, backend, model, input)
	nn.AccumulateGrads(params, grads)

	first := make([][]float64, len(params))
	for i, p := range params {
		require.NotNil(t, p.Grad(), p.Name())
		assert.Equal(t, p.Tensor().Shape(), p.Grad().Shape())
		assert.False(t, p.Grad().RequiresGrad())
		first[i] = append([]float64(nil), p.Grad().Data()...)
	}

	// The accumulated buffer is owned by the parameter.
	for _, g := range grads {
		clear(g.AsFloat64())
	}
	for i, p := range params {
		assert.Equal(t, first[i], p.Grad().Data())
	}

	nn.AccumulateGrads(params, backward(t, backend, model, input))
	for i, p := range params {
		for j, v := range p.Grad().Data() {
			assert.InDelta(t, 2*first[i][j], v, 1e-12)
		}
	}

	nn.ZeroGrad(params...)
	for _, p := range params {
		require.NotNil(t, p.Grad())
		for _, v := range p.Grad().Data() {
			assert.Zero(t, v)
		}
	}

	// Idempotent.
	nn.ZeroGrad(params...)
	for _, p := range params {
		for _, v := range p.Grad().Data() {
			assert.Zero(t, v)
		}
	}
}

func TestAccumulateGradsSkipsFrozen(t *testing.T) {
	backend := newBackend()
	model, err := nn.NewMLP([]int{2, 3, 1}, newRNG(), backend)
	require.NoError(t, err)
	params := model.Parameters()

	input := tensor.Ones[float64](tensor.Shape{2, 2}, backend)
	grads := backward(t, backend, model, input)

	nn.RequiresGrad[backendT](model, false)
	nn.AccumulateGrads(params, grads)
	for _, p := range params {
		assert.Nil(t, p.Grad(), p.Name())
	}
}

func TestZeroGradWithoutGradient(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(2, 2, newRNG(), backend)

	assert.NotPanics(t, func() {
		nn.ZeroGrad(layer.Parameters()...)
	})
	assert.Nil(t, layer.Weight().Grad())
}

func TestMSELoss(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	pred, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)
	pred.RequireGrad()
	target, err := tensor.FromSlice([]float64{1, 1, 1, 1}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)

	loss := nn.NewMSELoss[backendT]().Forward(pred, target)
	assert.Equal(t, tensor.Shape{}, loss.Shape())
	assert.InDelta(t, (0+1+4+9)/4.0, loss.Item(), 1e-12)

	grads, err := autodiff.Grad([]*tensor.Tensor[float64, backendT]{loss}, []*tensor.Tensor[float64, backendT]{pred}, autodiff.GradOptions{})
	require.NoError(t, err)
	// d/dp mean((p-t)²) = 2(p-t)/n
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1.5}, grads[0].Data(), 1e-12)

	assert.Panics(t, func() {
		nn.NewMSELoss[backendT]().Forward(pred, tensor.Zeros[float64](tensor.Shape{4}, backend))
	})
}
