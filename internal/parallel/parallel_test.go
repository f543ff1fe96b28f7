package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	var counter int64
	seen := make([]int32, 1000)
	For(len(seen), func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	assert.Equal(t, int64(1000), counter)
	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
}

func TestRangeCoversDisjointChunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 5}

	var calls int64
	hits := make([]int32, 101)
	Range(len(hits), func(start, end int) {
		atomic.AddInt64(&calls, 1)
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	assert.Equal(t, int64(3), calls)
	for i, v := range hits {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
}

func TestRange_Sequential(t *testing.T) {
	var calls int
	Range(100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	}, Sequential())
	assert.Equal(t, 1, calls)
}

func TestRange_SmallInput(t *testing.T) {
	cfg := DefaultConfig()

	var calls int
	Range(cfg.MinChunkSize, func(_, _ int) { calls++ }, cfg)
	assert.Equal(t, 1, calls)

	Range(0, func(_, _ int) { calls++ }, cfg)
	assert.Equal(t, 1, calls)
}
