package hubclust

import (
	"math/rand"
	"sort"
)

// SelectionSchedule maps an iteration index to the probability of using the
// deterministic max-hubness selection rule instead of stochastic sampling.
// Schedules must be monotonically non-decreasing and reach 1.0 at or before
// a configured iteration count.
type SelectionSchedule func(iteration int) float64

// LinearSchedule ramps linearly from 0 to 1, reaching full determinism at
// iteration fullAt. fullAt <= 0 yields a schedule that is always 1.
func LinearSchedule(fullAt int) SelectionSchedule {
	return func(iteration int) float64 {
		if fullAt <= 0 || iteration >= fullAt {
			return 1
		}
		if iteration <= 0 {
			return 0
		}
		return float64(iteration) / float64(fullAt)
	}
}

// StepSchedule is 0 before iteration at and 1 from it onward.
func StepSchedule(at int) SelectionSchedule {
	return func(iteration int) float64 {
		if iteration >= at {
			return 1
		}
		return 0
	}
}

// ConstantSchedule always returns p, clamped to [0, 1]. Useful for forcing
// fully stochastic (0) or fully deterministic (1) selection.
func ConstantSchedule(p float64) SelectionSchedule {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return func(int) float64 { return p }
}

// hubSelector chooses one representative point per cluster per iteration,
// annealing between stochastic hubness-proportional sampling and
// deterministic max-hubness selection.
type hubSelector struct {
	rng      *rand.Rand
	schedule SelectionSchedule
}

// selectHub picks one member of the cluster as its hub. freqs holds the
// occurrence frequencies aligned positionally with members. A single-member
// cluster short-circuits to that member without consulting either rule.
func (s *hubSelector) selectHub(members, freqs []int, iteration int) int {
	if len(members) == 1 {
		return members[0]
	}
	if s.rng.Float64() < s.schedule(iteration) {
		return members[maxFrequencyPos(freqs)]
	}
	return members[s.samplePos(freqs)]
}

// maxFrequencyPos returns the position of the strictly largest frequency,
// keeping the earliest position on ties.
func maxFrequencyPos(freqs []int) int {
	best := 0
	for p, f := range freqs {
		if f > freqs[best] {
			best = p
		}
	}
	return best
}

// samplePos draws a position with probability proportional to the squared
// occurrence frequency: it builds cumulative sums of freq² over the member
// order and binary-searches for the smallest position whose cumulative value
// covers a uniform draw. When every frequency is zero the cumulative sums
// carry no mass and the draw falls back to a uniform choice.
func (s *hubSelector) samplePos(freqs []int) int {
	cumulative := make([]float64, len(freqs))
	var total float64
	for p, f := range freqs {
		w := float64(f)
		total += w * w
		cumulative[p] = total
	}
	if total == 0 {
		return s.rng.Intn(len(freqs))
	}
	// Draw in (0, total] so zero-frequency prefixes can never be hit.
	u := total * (1 - s.rng.Float64())
	return sort.Search(len(cumulative), func(p int) bool { return cumulative[p] >= u })
}
