package hubclust

import "math"

// convergenceMonitor decides when the assign/update loop may stop, based on
// the relative change in total squared error between consecutive iterations.
type convergenceMonitor struct {
	threshold     float64
	minIterations int
}

// converged reports whether |cur/prev - 1| has dropped below the threshold.
// It never reports convergence before the minimum-iteration floor, and a
// degenerate error value (NaN or ±Inf) on either side counts as a
// still-significant difference rather than a failure.
func (m convergenceMonitor) converged(prev, cur float64, iteration int) bool {
	if iteration < m.minIterations {
		return false
	}
	if degenerate(prev) || degenerate(cur) {
		return false
	}
	if prev == 0 {
		return cur == 0
	}
	return math.Abs(cur/prev-1) < m.threshold
}

func degenerate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
