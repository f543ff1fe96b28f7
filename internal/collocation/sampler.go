package collocation

import (
	"math"
	"math/rand"

	"github.com/born-ml/pinn/internal/tensor"
)

// Sample is one training batch of collocation points.
//
// M = 2p+q points per row, ordered initial, boundary, interior.
type Sample[B tensor.Backend] struct {
	// Points is the coordinate batch (N, M, 2); the last dimension is (t, x).
	Points *tensor.Tensor[float64, B]

	// T holds the times (N, M). Gradient-tracked leaf.
	T *tensor.Tensor[float64, B]

	// X holds the spaces (N, M). Gradient-tracked leaf.
	X *tensor.Tensor[float64, B]

	// Index holds the initial-condition cell indices (N, p), in [0, s).
	Index *tensor.Tensor[int64, B]

	p, q int
}

// Sampler draws Samples from its own random source.
//
// A Sampler is not safe for concurrent use.
type Sampler[B tensor.Backend] struct {
	config  SamplerConfig
	rng     *rand.Rand
	backend B
}

// NewSampler validates config and creates a sampler.
//
// Samplers created with the same non-negative seed produce identical samples.
func NewSampler[B tensor.Backend](config SamplerConfig, backend B) (*Sampler[B], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if config.Seed >= 0 {
		rng = rand.New(rand.NewSource(config.Seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	} else {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // User requested random seed
	}

	return &Sampler[B]{
		config:  config,
		rng:     rng,
		backend: backend,
	}, nil
}

// Config returns the sampler configuration.
func (s *Sampler[B]) Config() SamplerConfig {
	return s.config
}

// WarpTime maps a uniform draw u ∈ [0,1] to 1 - cos(u·π/2).
//
// The map is increasing, fixes 0 and 1, and concentrates interior points
// toward later times where the solution steepens.
func WarpTime(u float64) float64 {
	return 1 - math.Cos(u*math.Pi/2)
}

// Sample draws a fresh batch.
//
// Per row:
//   - p indices uniform in [0, s); x = index/s, t = 0
//   - p/2 uniform times used twice; x = 0 for the first copy, x = 1 for the second
//   - q interior points with t = WarpTime(u) and x uniform, u and x independent
//
// Random numbers are drawn in that order, row by row within each group.
func (s *Sampler[B]) Sample() *Sample[B] {
	n, p, q := s.config.Batch, s.config.Points, s.config.Interior
	cells := float64(s.config.Cells)
	half := p / 2
	m := s.config.PointsPerRow()

	index := tensor.RandInt(tensor.Shape{n, p}, s.config.Cells, s.rng, s.backend)
	bc := tensor.Rand(tensor.Shape{n, half}, s.rng, s.backend)
	u := tensor.Rand(tensor.Shape{n, q}, s.rng, s.backend)
	ix := tensor.Rand(tensor.Shape{n, q}, s.rng, s.backend)

	ts := tensor.Zeros[float64](tensor.Shape{n, m}, s.backend)
	xs := tensor.Zeros[float64](tensor.Shape{n, m}, s.backend)
	tData, xData := ts.Data(), xs.Data()
	indexData, bcData, uData, ixData := index.Data(), bc.Data(), u.Data(), ix.Data()

	for row := range n {
		tRow := tData[row*m : (row+1)*m]
		xRow := xData[row*m : (row+1)*m]

		// Initial condition: t stays 0.
		for j, idx := range indexData[row*p : (row+1)*p] {
			xRow[j] = float64(idx) / cells
		}

		// Boundary: same times on both sides.
		off := p
		for j, tb := range bcData[row*half : (row+1)*half] {
			tRow[off+j] = tb
			tRow[off+half+j] = tb
			xRow[off+half+j] = 1
		}

		// Interior.
		off = 2 * p
		for j := range q {
			tRow[off+j] = WarpTime(uData[row*q+j])
			xRow[off+j] = ixData[row*q+j]
		}
	}

	ts.RequireGrad()
	xs.RequireGrad()

	return &Sample[B]{
		Points: tensor.Stack([]*tensor.Tensor[float64, B]{ts, xs}, -1),
		T:      ts,
		X:      xs,
		Index:  index,
		p:      p,
		q:      q,
	}
}

// Initial returns the initial-condition block (N, p, 2) of Points.
func (s *Sample[B]) Initial() *tensor.Tensor[float64, B] {
	return s.Points.Narrow(1, 0, s.p)
}

// Boundary returns the boundary block (N, p, 2) of Points.
// The first p/2 points lie on x = 0, the rest on x = 1.
func (s *Sample[B]) Boundary() *tensor.Tensor[float64, B] {
	return s.Points.Narrow(1, s.p, s.p)
}

// Interior returns the interior block (N, q, 2) of Points.
func (s *Sample[B]) Interior() *tensor.Tensor[float64, B] {
	return s.Points.Narrow(1, 2*s.p, s.q)
}
