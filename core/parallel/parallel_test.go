package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelize_CoversEveryItemOnce(t *testing.T) {
	const n = 10007
	var hits [n]int32

	Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("item %d visited %d times", i, h)
		}
	}
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}

func TestParallelize_Empty(t *testing.T) {
	Parallelize(0, func(start, end int) {
		t.Fatal("fn must not be called for zero items")
	})
}

func sumRange(values []float64) func(start, end int) []float64 {
	return func(start, end int) []float64 {
		var s, sq float64
		for i := start; i < end; i++ {
			s += values[i]
			sq += values[i] * values[i]
		}
		return []float64{s, sq}
	}
}

func TestReduce_SmallInputIsSequential(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	got := Reduce(len(values), 1000, 2, sumRange(values))
	assert.Equal(t, []float64{10, 30}, got)
}

func TestReduce_LargeInputIsDeterministic(t *testing.T) {
	n := ChunkSize*5 + 17
	values := make([]float64, n)
	for i := range values {
		values[i] = 1.0 / float64(i+1)
	}

	first := Reduce(n, 0, 2, sumRange(values))
	for run := 0; run < 5; run++ {
		assert.Equal(t, first, Reduce(n, 0, 2, sumRange(values)))
	}

	seq := sumRange(values)(0, n)
	assert.InDelta(t, seq[0], first[0], 1e-9)
	assert.InDelta(t, seq[1], first[1], 1e-9)
}

func TestReduce_Empty(t *testing.T) {
	got := Reduce(0, 10, 3, func(start, end int) []float64 {
		t.Fatal("fn must not be called for zero items")
		return nil
	})
	assert.Equal(t, []float64{0, 0, 0}, got)
}
