// Package cpu implements the float64 CPU backend.
package cpu

import (
	"fmt"

	"github.com/born-ml/pinn/internal/parallel"
	"github.com/born-ml/pinn/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Floating-point operations accept Float64 tensors only; Int64 tensors are
// accepted as Gather indices.
//
// Element-wise kernels split large tensors across goroutines; every call
// still returns only after its result is complete.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// binary applies fn element-wise over the broadcast shape of a and b.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, fn func(x, y float64) float64) *tensor.RawTensor {
	requireFloat64(name, a)
	requireFloat64(name, b)

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := cpu.alloc(name, outShape, tensor.Float64)
	dst, src1, src2 := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()

	// Fast path: identical shapes
	if !needsBroadcast {
		parallel.Range(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = fn(src1[i], src2[i])
			}
		}, cpu.parallel)
		return result
	}

	aStrides := tensor.BroadcastStrides(a.Shape(), outShape)
	bStrides := tensor.BroadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()
	parallel.Range(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			ai, bi := 0, 0
			rem := i
			for d, s := range outStrides {
				coord := rem / s
				rem %= s
				ai += coord * aStrides[d]
				bi += coord * bStrides[d]
			}
			dst[i] = fn(src1[ai], src2[bi])
		}
	}, cpu.parallel)
	return result
}

// alloc creates a result tensor, panicking with the op name on failure.
func (cpu *CPUBackend) alloc(name string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}

func requireFloat64(name string, t *tensor.RawTensor) {
	if t.DType() != tensor.Float64 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float64 supported)", name, t.DType()))
	}
}
