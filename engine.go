package hubclust

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// errEmptyCluster aborts a clustering attempt when a cluster loses all its
// members during reassignment; Cluster retries from a fresh seeding.
var errEmptyCluster = errors.New("hubclust: cluster lost all members")

// NoHub marks a cluster whose representative is a synthetic mean vector
// rather than a real data point.
const NoHub = -1

// representative is a cluster's current center: either a real data point
// (hub >= 0, distances served by the cache) or a synthetic mean vector
// (hub == NoHub, distances computed through the raw metric).
type representative struct {
	hub int
	vec []float64
}

// loopState carries the mutable state of one clustering attempt between the
// assign and update steps, plus the best association snapshot seen so far.
type loopState struct {
	iteration   int
	labels      []int
	reps        []representative
	errCurrent  float64
	errPrevious float64
	changed     bool

	bestLabels []int
	bestReps   []representative
	bestError  float64
}

// engine runs one clustering attempt. It owns no data: the dataset, cache,
// and hubness profile are shared across retries within a single Cluster call
// and must not be shared across concurrent runs.
type engine struct {
	data     [][]float64
	cfg      *Config
	cache    *DistanceCache
	selector *hubSelector
	monitor  convergenceMonitor
	hubness  []int // global occurrence profile; nil for the local variant
}

// run executes one attempt to convergence, no-reassignment, or the iteration
// cap. It returns errEmptyCluster when a cluster empties out.
func (e *engine) run() (*loopState, error) {
	seeds := e.cfg.Seeder.Seed(e.data, e.cfg.NumClusters, e.cfg.Metric, e.cfg.Rand)
	if err := checkSeeds(seeds, e.cfg.NumClusters, len(e.data)); err != nil {
		return nil, err
	}

	st := &loopState{
		labels:      make([]int, len(e.data)),
		reps:        make([]representative, e.cfg.NumClusters),
		errPrevious: math.NaN(),
		bestError:   math.Inf(1),
	}
	for c, s := range seeds {
		st.reps[c] = representative{hub: s}
	}

	if err := e.assign(st); err != nil {
		return nil, err
	}
	e.trackBest(st)

	for st.iteration < e.cfg.MaxIterations {
		st.iteration++
		e.updateRepresentatives(st)
		st.errPrevious = st.errCurrent
		if err := e.assign(st); err != nil {
			return nil, err
		}
		e.trackBest(st)
		if !st.changed {
			break
		}
		if e.monitor.converged(st.errPrevious, st.errCurrent, st.iteration) {
			break
		}
	}
	return st, nil
}

// assign reassigns every point to its nearest current representative, with
// ties broken toward the lowest cluster index. It accumulates the total
// squared error and tracks whether any point changed cluster. A cluster left
// with no members is fatal to the attempt.
func (e *engine) assign(st *loopState) error {
	st.changed = false
	st.errCurrent = 0
	counts := make([]int, len(st.reps))
	for p := range e.data {
		best := 0
		bestDist := e.repDistance(p, st.reps[0])
		for c := 1; c < len(st.reps); c++ {
			if d := e.repDistance(p, st.reps[c]); d < bestDist {
				best, bestDist = c, d
			}
		}
		if st.labels[p] != best {
			st.labels[p] = best
			st.changed = true
		}
		counts[best]++
		st.errCurrent += bestDist * bestDist
	}
	for _, c := range counts {
		if c == 0 {
			return errEmptyCluster
		}
	}
	return nil
}

// repDistance returns the distance from point p to a representative: cached
// when the representative is a real point, raw metric when it is synthetic.
func (e *engine) repDistance(p int, r representative) float64 {
	if r.hub != NoHub {
		return e.cache.Distance(p, r.hub)
	}
	return e.cfg.Metric.Distance(e.data[p], r.vec)
}

// updateRepresentatives refreshes each cluster's representative according to
// the configured variant. Singleton clusters short-circuit to their sole
// member without consulting the selector.
func (e *engine) updateRepresentatives(st *loopState) {
	members := memberships(st.labels, len(st.reps))
	for c, ms := range members {
		if len(ms) == 1 {
			st.reps[c] = representative{hub: ms[0]}
			continue
		}
		switch e.cfg.Variant {
		case VariantGlobalHub:
			hub := e.selector.selectHub(ms, e.globalFreqs(ms), st.iteration)
			st.reps[c] = representative{hub: hub}
		case VariantGlobalKMeans:
			// The mean fallback has its own schedule gate: with probability
			// schedule(iteration) the cluster keeps a real max-hubness hub,
			// otherwise it takes the arithmetic-mean centroid.
			if e.cfg.Rand.Float64() < e.selector.schedule(st.iteration) {
				freqs := e.globalFreqs(ms)
				st.reps[c] = representative{hub: ms[maxFrequencyPos(freqs)]}
			} else {
				st.reps[c] = representative{hub: NoHub, vec: e.mean(ms)}
			}
		case VariantLocalHub:
			// Below k+2 members there are too few points for a meaningful
			// within-cluster neighbor graph; fall back to the mean.
			if len(ms) < e.cfg.K+2 {
				st.reps[c] = representative{hub: NoHub, vec: e.mean(ms)}
			} else {
				freqs := localOccurrences(ms, e.cfg.K, e.cache)
				st.reps[c] = representative{hub: e.selector.selectHub(ms, freqs, st.iteration)}
			}
		}
	}
}

// globalFreqs maps the global hubness profile onto a cluster's member order.
// Indices beyond the profile default to zero occurrence.
func (e *engine) globalFreqs(members []int) []int {
	freqs := make([]int, len(members))
	for p, m := range members {
		if m < len(e.hubness) {
			freqs[p] = e.hubness[m]
		}
	}
	return freqs
}

// mean computes the arithmetic mean of the members' feature vectors.
func (e *engine) mean(members []int) []float64 {
	vec := make([]float64, len(e.data[members[0]]))
	for _, m := range members {
		floats.Add(vec, e.data[m])
	}
	floats.Scale(1/float64(len(members)), vec)
	return vec
}

// trackBest retains the lowest-error association snapshot seen so far. The
// snapshot, not the final iteration's state, is the algorithm's result.
func (e *engine) trackBest(st *loopState) {
	if degenerate(st.errCurrent) || st.errCurrent >= st.bestError {
		return
	}
	st.bestError = st.errCurrent
	if st.bestLabels == nil {
		st.bestLabels = make([]int, len(st.labels))
	}
	copy(st.bestLabels, st.labels)
	st.bestReps = append(st.bestReps[:0], st.reps...)
}

// memberships groups point indices by their current cluster.
func memberships(labels []int, numClusters int) [][]int {
	members := make([][]int, numClusters)
	for p, c := range labels {
		members[c] = append(members[c], p)
	}
	return members
}

// checkSeeds validates the seeding contract: exactly numClusters distinct
// in-range indices.
func checkSeeds(seeds []int, numClusters, n int) error {
	if len(seeds) != numClusters {
		return fmt.Errorf("hubclust: seeder returned %d seeds, want %d", len(seeds), numClusters)
	}
	seen := make(map[int]bool, len(seeds))
	for _, s := range seeds {
		if s < 0 || s >= n {
			return fmt.Errorf("hubclust: seed index %d out of range [0, %d)", s, n)
		}
		if seen[s] {
			return fmt.Errorf("hubclust: duplicate seed index %d", s)
		}
		seen[s] = true
	}
	return nil
}
