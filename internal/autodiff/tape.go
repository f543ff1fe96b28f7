package autodiff

import (
	"github.com/born-ml/pinn/internal/autodiff/ops"
	"github.com/born-ml/pinn/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	gradients := tape.Backward(outputGrad, backend)
//
// A backward pass run with createGraph set keeps the tape recording, so the
// operations that compute the gradients are appended to the tape and can be
// walked again by a later pass.
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
		recording:  false,
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	clear(t.operations)
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients by walking the tape in reverse, seeding the
// output of the last recorded operation with outputGrad.
//
// The backward pass itself is not recorded.
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	if len(t.operations) == 0 {
		return make(map[*tensor.RawTensor]*tensor.RawTensor)
	}

	lastOp := t.operations[len(t.operations)-1]
	seeds := map[*tensor.RawTensor]*tensor.RawTensor{lastOp.Output(): outputGrad}
	return t.Gradients(seeds, backend, false)
}

// Gradients walks the tape in reverse starting from the given seed gradients.
//
// Algorithm:
//  1. Start with the seed gradients (typically ones for each output)
//  2. Walk the operations recorded so far in reverse order
//  3. For each operation whose output has a gradient, apply the chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// With createGraph the tape records while walking and backend should be the
// recording backend; the returned gradients are then themselves on the tape.
// Without it recording is suspended for the walk. Either way the previous
// recording state is restored on return.
//
// Only operations present when the walk starts are visited.
func (t *GradientTape) Gradients(
	seeds map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
	createGraph bool,
) map[*tensor.RawTensor]*tensor.RawTensor {
	wasRecording := t.recording
	t.recording = createGraph
	defer func() {
		t.recording = wasRecording
	}()

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor, len(seeds))
	for raw, g := range seeds {
		grads[raw] = g
	}

	n := len(t.operations)
	for i := n - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		t.accumulateGrads(op, op.Backward(outputGrad, backend), grads, backend)
	}

	return grads
}

// accumulateGrads accumulates gradients for each input tensor.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	inputs := op.Inputs()
	for j, input := range inputs {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}
