package parallel

import (
	"runtime"
	"sync"
)

// ChunkSize is the number of items each reduction chunk covers. It is fixed,
// not derived from the CPU count, so chunk boundaries (and therefore the
// floating-point summation order) are the same on every machine.
const ChunkSize = 4096

// Parallelize splits [0, items) into one range per CPU core and runs fn on
// each range concurrently.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// Reduce computes a vector of sums over [0, items). fn returns the partial
// sums for one range; every partial has width elements.
//
// Inputs of at most threshold items are reduced by a single sequential call.
// Larger inputs are split into fixed ChunkSize ranges that run concurrently,
// and the partials are then added in chunk order. The result is therefore
// deterministic across runs and machines, but for large inputs it can differ
// in the last bits from a single sequential sum because the addition is
// grouped differently.
func Reduce(items, threshold, width int, fn func(start, end int) []float64) []float64 {
	if items <= threshold || items <= ChunkSize {
		out := make([]float64, width)
		if items > 0 {
			copy(out, fn(0, items))
		}
		return out
	}

	numChunks := (items + ChunkSize - 1) / ChunkSize
	partials := make([][]float64, numChunks)

	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * ChunkSize
		end := start + ChunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx, s, e int) {
			defer wg.Done()
			defer func() { <-sem }()
			partials[idx] = fn(s, e)
		}(c, start, end)
	}
	wg.Wait()

	out := make([]float64, width)
	for _, p := range partials {
		for j := 0; j < width; j++ {
			out[j] += p[j]
		}
	}
	return out
}
