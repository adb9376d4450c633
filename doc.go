// Package hubclust implements hubness-aware partitional clustering.
//
// In high-dimensional spaces a small set of points ("hubs") appears in the
// k-nearest-neighbor lists of disproportionately many other points. The
// algorithms here exploit that skew: instead of always averaging members
// into a synthetic centroid, they bias cluster-representative selection
// toward high-occurrence points, following an annealing schedule that moves
// from stochastic hubness-proportional sampling early in the run to
// deterministic max-hubness selection later.
//
// Basic usage:
//
//	cfg := hubclust.DefaultConfig()
//	cfg.NumClusters = 3
//	cfg.NeighborGraph = graph // precomputed occurrence frequencies
//	result, err := hubclust.Cluster(data, cfg)
//	// result.Labels[i] is the cluster index for point i
//	// result.Hubs[c] is the data point serving as cluster c's hub
//
// # Variants
//
// Three variants share one annealed selection/assignment engine. Set
// Config.Variant to choose:
//
//	cfg.Variant = hubclust.VariantGlobalHub    // hub point as representative
//	cfg.Variant = hubclust.VariantGlobalKMeans // anneal hub vs. mean centroid
//	cfg.Variant = hubclust.VariantLocalHub     // per-cluster hubness recompute
//
// The global variants consume occurrence frequencies from a precomputed
// k-nearest-neighbor graph supplied through Config.NeighborGraph. The local
// variant needs no graph: it rebuilds within-cluster neighbor lists every
// iteration and derives cluster-local occurrence counts from them.
//
// The result is always the lowest-squared-error association snapshot seen
// during the run, which is not necessarily the final iteration's state.
package hubclust
