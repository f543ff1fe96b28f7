package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/pinn/internal/tensor"
)

// Linear is a dense layer computing y = x·Wᵀ + b.
//
// W has shape [out, in] and is Xavier-initialized from the caller's rng;
// b has shape [out] and starts at zero. Every op in Forward has a
// differentiable backward, so a stack of Linear and Tanh layers can be
// differentiated twice with respect to its input.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear(2, 32, rng, backend)
//	h := layer.Forward(xt) // [N, 2] -> [N, 32]
type Linear[B tensor.Backend] struct {
	in, out int
	weight  *Parameter[B]
	bias    *Parameter[B]
}

// NewLinear creates a layer mapping in features to out features.
func NewLinear[B tensor.Backend](in, out int, rng *rand.Rand, backend B) *Linear[B] {
	return newLinear("", in, out, rng, backend)
}

// newLinear names the parameters prefix.weight and prefix.bias when prefix
// is set.
func newLinear[B tensor.Backend](prefix string, in, out int, rng *rand.Rand, backend B) *Linear[B] {
	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "." + s
	}
	return &Linear[B]{
		in:     in,
		out:    out,
		weight: NewParameter(name("weight"), Xavier(in, out, tensor.Shape{out, in}, rng, backend)),
		bias:   NewParameter(name("bias"), Zeros(tensor.Shape{out}, backend)),
	}
}

// Forward maps [N, in] to [N, out]. Panics on any other input shape.
func (l *Linear[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != l.in {
		panic(fmt.Sprintf("linear: expected input [N, %d], got %v", l.in, shape))
	}
	return input.MatMul(l.weight.Tensor().T()).Add(l.bias.Tensor().Reshape(1, l.out))
}

// Parameters returns [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }
func (l *Linear[B]) Bias() *Parameter[B]   { return l.bias }
func (l *Linear[B]) InFeatures() int       { return l.in }
func (l *Linear[B]) OutFeatures() int      { return l.out }
