package hubclust

import (
	"math/rand"
	"testing"
)

func TestComputeTriangularDistancesMatchesCache(t *testing.T) {
	rng := rand.New(rand.NewSource(71))
	data := make([][]float64, 25)
	for i := range data {
		data[i] = []float64{rng.Float64() * 10, rng.Float64() * 10}
	}

	tri := ComputeTriangularDistances(data, EuclideanMetric{})
	cache := NewDistanceCache(data, EuclideanMetric{})
	if err := cache.Prefill(tri); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	metric := EuclideanMetric{}
	for i := range data {
		for j := range data {
			want := metric.Distance(data[i], data[j])
			if got := cache.Distance(i, j); !almostEqual(got, want, floatTol) {
				t.Errorf("distance(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestComputeTriangularDistancesParallelIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(73))
	data := make([][]float64, 40)
	for i := range data {
		data[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}

	serial := ComputeTriangularDistances(data, ManhattanMetric{})
	for _, workers := range []int{2, 3, 8, 64} {
		parallel := ComputeTriangularDistancesParallel(data, ManhattanMetric{}, workers)
		if len(parallel) != len(serial) {
			t.Fatalf("workers=%d: length %d, want %d", workers, len(parallel), len(serial))
		}
		for i := range serial {
			if parallel[i] != serial[i] {
				t.Fatalf("workers=%d: entry %d differs: %v vs %v", workers, i, parallel[i], serial[i])
			}
		}
	}
}

func TestComputeTriangularDistancesTinyInputs(t *testing.T) {
	if tri := ComputeTriangularDistances(nil, EuclideanMetric{}); len(tri) != 0 {
		t.Errorf("expected empty matrix for no data, got %d entries", len(tri))
	}
	if tri := ComputeTriangularDistances([][]float64{{1, 2}}, EuclideanMetric{}); len(tri) != 0 {
		t.Errorf("expected empty matrix for a single point, got %d entries", len(tri))
	}
}
