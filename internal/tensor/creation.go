package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float64](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Linspace creates a 1D tensor of n evenly spaced values over [start, stop],
// both ends included. A single point yields [start].
//
// Example:
//
//	t := tensor.Linspace(0, 1, 5, backend) // [0, 0.25, 0.5, 0.75, 1]
func Linspace[B Backend](start, stop float64, n int, b B) *Tensor[float64, B] {
	t := Zeros[float64](Shape{n}, b)
	data := t.Data()
	if n == 1 {
		data[0] = start
		return t
	}
	floats.Span(data, start, stop)
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1),
// drawn from rng.
func Rand[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[float64, B] {
	t := Zeros[float64](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = rng.Float64()
	}
	return t
}

// RandInt creates an int64 tensor with values uniformly distributed in
// [0, high), drawn from rng.
func RandInt[B Backend](shape Shape, high int, rng *rand.Rand, b B) *Tensor[int64, B] {
	t := Zeros[int64](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = int64(rng.Intn(high))
	}
	return t
}
