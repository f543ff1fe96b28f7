package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/pinn/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Values are drawn from rng so that initialization is reproducible.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float64, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Rand(shape, rng, backend)
	data := t.Data()
	for i := range data {
		data[i] = (data[i]*2.0 - 1.0) * bound
	}
	return t
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float64, B] {
	return tensor.Zeros[float64](shape, backend)
}
