package hubclust

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Variant selects the hub-selection strategy.
type Variant string

const (
	// VariantGlobalHub uses a real data point, chosen by annealed
	// hubness-proportional selection against a global occurrence profile,
	// as each cluster's representative.
	VariantGlobalHub Variant = "global_hub"

	// VariantGlobalKMeans anneals between the max-hubness point and the
	// arithmetic-mean centroid as each cluster's representative.
	VariantGlobalKMeans Variant = "global_kmeans"

	// VariantLocalHub recomputes hubness within each cluster every
	// iteration instead of consulting a global neighbor graph.
	VariantLocalHub Variant = "local_hub"
)

// Config controls hubness-aware clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// NumClusters is the number of clusters to produce. Must be >= 1 and
	// no larger than the dataset size. No default.
	NumClusters int

	// Variant selects the hub-selection strategy. Default: VariantGlobalHub.
	Variant Variant

	// K is the neighborhood size used by VariantLocalHub when rebuilding
	// within-cluster neighbor lists. Clusters with fewer than K+2 members
	// fall back to a mean centroid. Must be >= 1. Default: 10.
	K int

	// Metric is the distance function used to compare points.
	// Built-in: EuclideanMetric, ManhattanMetric, ChebyshevMetric,
	// CosineMetric. Use DistanceFunc to wrap a custom function.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Schedule maps the iteration index to the probability of deterministic
	// max-hubness selection. Must be non-decreasing and reach 1.0.
	// Default: LinearSchedule(20).
	Schedule SelectionSchedule

	// Seeder provides the initial hub indices. Default: PlusPlusSeeder.
	Seeder Seeder

	// NeighborGraph supplies precomputed occurrence frequencies. Required
	// for VariantGlobalHub and VariantGlobalKMeans, ignored by
	// VariantLocalHub. An attached triangular distance matrix, if any,
	// pre-fills the distance cache.
	NeighborGraph NeighborGraph

	// MinIterations is the floor below which convergence is never declared.
	// Default: 2.
	MinIterations int

	// MaxIterations is the hard cap on update/reassign passes. Default: 100.
	MaxIterations int

	// ErrorThreshold is the relative squared-error change below which a run
	// is considered converged. Must be > 0. Default: 0.001.
	ErrorThreshold float64

	// MaxRetries bounds how many times a run is restarted from a fresh
	// seeding after a cluster empties out. Default: 10.
	MaxRetries int

	// Rand is the random source for seeding and stochastic hub selection.
	// Inject a seeded source for reproducible runs. Default: time-seeded.
	Rand *rand.Rand
}

// Result contains the output of a clustering run.
type Result struct {
	// Labels assigns each point to a cluster index in [0, NumClusters).
	// This is the lowest-squared-error snapshot seen during the run, which
	// is not necessarily the final iteration's assignment.
	Labels []int

	// Hubs holds, per cluster, the index of the data point serving as its
	// hub in the best snapshot, or NoHub when the representative is a
	// synthetic mean.
	Hubs []int

	// Centroids holds each cluster's representative vector: the hub point's
	// features, or the synthetic mean for NoHub clusters.
	Centroids [][]float64

	// SquaredError is the total squared point-to-representative distance of
	// the returned snapshot.
	SquaredError float64

	// Iterations is the number of update/reassign passes performed by the
	// attempt that produced the snapshot.
	Iterations int

	// Restarts counts attempts abandoned because a cluster emptied out.
	Restarts int

	metric DistanceMetric
}

// ErrUnableToFinish is returned when every retry of a clustering attempt
// ended with a cluster losing all its members.
var ErrUnableToFinish = errors.New("hubclust: unable to finish clustering")

// DefaultConfig returns a Config with reasonable defaults.
// NumClusters must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		Variant:        VariantGlobalHub,
		K:              10,
		Metric:         EuclideanMetric{},
		Schedule:       LinearSchedule(20),
		Seeder:         PlusPlusSeeder{},
		MinIterations:  2,
		MaxIterations:  100,
		ErrorThreshold: 0.001,
		MaxRetries:     10,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Variant == "" {
		cfg.Variant = VariantGlobalHub
	}
	if cfg.K == 0 {
		cfg.K = 10
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Schedule == nil {
		cfg.Schedule = LinearSchedule(20)
	}
	if cfg.Seeder == nil {
		cfg.Seeder = PlusPlusSeeder{}
	}
	if cfg.MinIterations == 0 {
		cfg.MinIterations = 2
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 100
	}
	if cfg.ErrorThreshold == 0 {
		cfg.ErrorThreshold = 0.001
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 10
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// validateConfig checks cfg fields and returns a descriptive error if any
// is invalid. Dataset-dependent checks live in Cluster.
func validateConfig(cfg *Config) error {
	if cfg.NumClusters <= 0 {
		return fmt.Errorf("hubclust: NumClusters must be >= 1, got %d", cfg.NumClusters)
	}
	switch cfg.Variant {
	case VariantGlobalHub, VariantGlobalKMeans, VariantLocalHub:
		// valid
	default:
		return fmt.Errorf("hubclust: invalid Variant %q", cfg.Variant)
	}
	if cfg.K < 1 {
		return fmt.Errorf("hubclust: K must be >= 1, got %d", cfg.K)
	}
	if cfg.MinIterations < 1 {
		return fmt.Errorf("hubclust: MinIterations must be >= 1, got %d", cfg.MinIterations)
	}
	if cfg.MaxIterations < cfg.MinIterations {
		return fmt.Errorf("hubclust: MaxIterations %d is below MinIterations %d", cfg.MaxIterations, cfg.MinIterations)
	}
	if cfg.ErrorThreshold <= 0 {
		return fmt.Errorf("hubclust: ErrorThreshold must be > 0, got %f", cfg.ErrorThreshold)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("hubclust: MaxRetries must be >= 0, got %d", cfg.MaxRetries)
	}
	return nil
}

// Cluster performs hubness-aware clustering on the given data. Each element
// is a point (float64 slice); all points must have the same dimensionality.
// The data is referenced, not copied, and must not change during the run.
//
// An attempt whose reassignment pass empties a cluster is abandoned and
// restarted from a fresh seeding, up to Config.MaxRetries times; exhausting
// the retries returns an error wrapping ErrUnableToFinish. The returned
// Result always holds the lowest-error snapshot of the successful attempt.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if n == 0 {
		return nil, errors.New("hubclust: empty dataset")
	}
	if cfg.NumClusters > n {
		return nil, fmt.Errorf("hubclust: NumClusters %d exceeds dataset size %d", cfg.NumClusters, n)
	}

	var hubness []int
	switch cfg.Variant {
	case VariantGlobalHub, VariantGlobalKMeans:
		if cfg.NeighborGraph == nil {
			return nil, fmt.Errorf("hubclust: variant %q requires a NeighborGraph", cfg.Variant)
		}
		hubness = cfg.NeighborGraph.OccurrenceFrequencies()
		if len(hubness) != n {
			return nil, fmt.Errorf("hubclust: NeighborGraph has %d frequencies, want %d", len(hubness), n)
		}
	}

	// Pairwise distances are immutable for the run, so one cache serves
	// every retry.
	cache := NewDistanceCache(data, cfg.Metric)
	if cfg.NeighborGraph != nil {
		if tri := cfg.NeighborGraph.TriangularDistances(); tri != nil {
			if err := cache.Prefill(tri); err != nil {
				return nil, err
			}
		}
	}

	e := &engine{
		data:     data,
		cfg:      &cfg,
		cache:    cache,
		selector: &hubSelector{rng: cfg.Rand, schedule: cfg.Schedule},
		monitor:  convergenceMonitor{threshold: cfg.ErrorThreshold, minIterations: cfg.MinIterations},
		hubness:  hubness,
	}

	var restarts int
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		st, err := e.run()
		if errors.Is(err, errEmptyCluster) {
			restarts++
			continue
		}
		if err != nil {
			return nil, err
		}
		return newResult(data, st, &cfg, restarts), nil
	}
	return nil, fmt.Errorf("%w: a cluster emptied out in all %d attempts", ErrUnableToFinish, cfg.MaxRetries+1)
}

// newResult freezes the best snapshot of a finished attempt into a Result.
// If every pass produced a degenerate error value the final state stands in
// for the best snapshot.
func newResult(data [][]float64, st *loopState, cfg *Config, restarts int) *Result {
	labels, reps, sqErr := st.bestLabels, st.bestReps, st.bestError
	if labels == nil {
		labels, reps, sqErr = st.labels, st.reps, st.errCurrent
	}

	hubs := make([]int, len(reps))
	centroids := make([][]float64, len(reps))
	for c, r := range reps {
		hubs[c] = r.hub
		if r.hub != NoHub {
			centroids[c] = append([]float64(nil), data[r.hub]...)
		} else {
			centroids[c] = r.vec
		}
	}
	return &Result{
		Labels:       labels,
		Hubs:         hubs,
		Centroids:    centroids,
		SquaredError: sqErr,
		Iterations:   st.iteration,
		Restarts:     restarts,
		metric:       cfg.Metric,
	}
}

// Assign maps out-of-sample points to their nearest cluster representative
// using the frozen centroids of the best snapshot. No retraining occurs.
func (r *Result) Assign(points [][]float64) []int {
	labels := make([]int, len(points))
	for p, v := range points {
		best := 0
		bestDist := r.metric.Distance(v, r.Centroids[0])
		for c := 1; c < len(r.Centroids); c++ {
			if d := r.metric.Distance(v, r.Centroids[c]); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[p] = best
	}
	return labels
}
