package hubclust

import "fmt"

// DistanceCache lazily computes and stores pairwise distances between data
// points in an upper-triangular layout. Each unordered pair is computed at
// most once per run; the diagonal is always zero and never stored.
//
// A cache belongs to exactly one clustering run. It is not safe for
// concurrent use; concurrent runs must each build their own cache.
type DistanceCache struct {
	n      int
	data   [][]float64
	metric DistanceMetric
	vals   []float64
	known  []bool
}

// NewDistanceCache creates an empty cache over data using metric.
// The data is referenced, not copied, and must not change during the run.
func NewDistanceCache(data [][]float64, metric DistanceMetric) *DistanceCache {
	n := len(data)
	pairs := n * (n - 1) / 2
	return &DistanceCache{
		n:      n,
		data:   data,
		metric: metric,
		vals:   make([]float64, pairs),
		known:  make([]bool, pairs),
	}
}

// pairIndex maps an unordered index pair to its slot in the upper-triangular
// layout: row i holds pairs (i, i+1) .. (i, n-1).
func (c *DistanceCache) pairIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*c.n - i*(i+1)/2 + (j - i - 1)
}

// Distance returns the distance between points i and j, computing and
// storing it on first access. Once stored, a value is never recomputed.
func (c *DistanceCache) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	idx := c.pairIndex(i, j)
	if !c.known[idx] {
		c.vals[idx] = c.metric.Distance(c.data[i], c.data[j])
		c.known[idx] = true
	}
	return c.vals[idx]
}

// Prefill loads an externally computed upper-triangular distance matrix,
// marking every pair as known. tri must hold n*(n-1)/2 entries in the same
// row-major diagonal-omitted layout the cache uses.
func (c *DistanceCache) Prefill(tri []float64) error {
	if len(tri) != len(c.vals) {
		return fmt.Errorf("hubclust: triangular matrix has %d entries, want %d", len(tri), len(c.vals))
	}
	copy(c.vals, tri)
	for i := range c.known {
		c.known[i] = true
	}
	return nil
}
