package hubclust

import "sync"

// ComputeTriangularDistances eagerly computes the full upper-triangular
// pairwise distance matrix in the DistanceCache layout (row-major, diagonal
// omitted). The result can back a NeighborGraph or pre-fill a cache via
// [DistanceCache.Prefill].
//
// This precomputation is a caller-side convenience and stays outside the
// clustering loop, which fills its cache lazily.
func ComputeTriangularDistances(data [][]float64, metric DistanceMetric) []float64 {
	return ComputeTriangularDistancesParallel(data, metric, 1)
}

// ComputeTriangularDistancesParallel computes the upper-triangular distance
// matrix using numWorkers goroutines. If numWorkers <= 1 it runs
// single-threaded. The result is identical to ComputeTriangularDistances.
func ComputeTriangularDistancesParallel(data [][]float64, metric DistanceMetric, numWorkers int) []float64 {
	n := len(data)
	tri := make([]float64, n*(n-1)/2)

	fillRows := func(start, end int) {
		idx := start*n - start*(start+1)/2
		for i := start; i < end; i++ {
			for j := i + 1; j < n; j++ {
				tri[idx] = metric.Distance(data[i], data[j])
				idx++
			}
		}
	}

	if numWorkers <= 1 || n <= 1 {
		fillRows(0, n)
		return tri
	}

	// Split source rows across workers. Row ranges write disjoint slices of
	// tri, so no synchronization is needed beyond the WaitGroup.
	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		if start >= n {
			break
		}
		end := start + rowsPerWorker
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fillRows(start, end)
		}(start, end)
	}
	wg.Wait()
	return tri
}
