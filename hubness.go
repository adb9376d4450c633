package hubclust

// NeighborGraph supplies precomputed k-nearest-neighbor statistics for a
// dataset. The engine consumes the graph; it never builds one itself.
type NeighborGraph interface {
	// OccurrenceFrequencies returns, for each point, the number of times it
	// appears in another point's k-nearest-neighbor list. Frequencies are
	// non-negative and aligned with point indices; for a complete kNN graph
	// over n points they sum to n*k.
	OccurrenceFrequencies() []int

	// TriangularDistances returns a precomputed upper-triangular distance
	// matrix in the DistanceCache layout (row-major, diagonal omitted), or
	// nil if none is available. When non-nil it must cover every pair the
	// engine will query; when nil the engine computes its own distances.
	TriangularDistances() []float64
}

// StaticNeighborGraph is a NeighborGraph backed by plain slices.
type StaticNeighborGraph struct {
	// Frequencies is the per-point occurrence-frequency array.
	Frequencies []int

	// Distances is an optional upper-triangular distance matrix.
	Distances []float64
}

func (g StaticNeighborGraph) OccurrenceFrequencies() []int { return g.Frequencies }

func (g StaticNeighborGraph) TriangularDistances() []float64 { return g.Distances }

// OccurrenceFrequencies derives a hubness profile from k-nearest-neighbor
// lists. neighbors[i] lists the indices of point i's nearest neighbors;
// the result counts, per point, its appearances across all lists. Points
// that appear in no list have frequency zero.
func OccurrenceFrequencies(neighbors [][]int, n int) []int {
	freq := make([]int, n)
	for _, list := range neighbors {
		for _, j := range list {
			freq[j]++
		}
	}
	return freq
}
