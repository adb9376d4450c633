package hubclust

import (
	"math"
	"testing"
)

func TestConvergenceMonitor(t *testing.T) {
	m := convergenceMonitor{threshold: 0.001, minIterations: 2}

	tests := []struct {
		name      string
		prev, cur float64
		iteration int
		want      bool
	}{
		{"small relative change converges", 1000, 1000.5, 5, true},
		{"large relative change continues", 1000, 900, 5, false},
		{"below iteration floor never converges", 1000, 1000, 1, false},
		{"exactly at floor may converge", 1000, 1000, 2, true},
		{"NaN previous continues", math.NaN(), 500, 5, false},
		{"NaN current continues", 500, math.NaN(), 5, false},
		{"Inf previous continues", math.Inf(1), 500, 5, false},
		{"Inf current continues", 500, math.Inf(1), 5, false},
		{"both zero converges", 0, 0, 5, true},
		{"zero to nonzero continues", 0, 10, 5, false},
		{"just under threshold converges", 1000, 1000.9, 5, true},
		{"just over threshold continues", 1000, 1001.1, 5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.converged(tc.prev, tc.cur, tc.iteration); got != tc.want {
				t.Errorf("converged(%v, %v, %d) = %v, want %v", tc.prev, tc.cur, tc.iteration, got, tc.want)
			}
		})
	}
}

func TestDegenerate(t *testing.T) {
	if degenerate(1.5) || degenerate(0) {
		t.Error("finite values are not degenerate")
	}
	if !degenerate(math.NaN()) || !degenerate(math.Inf(1)) || !degenerate(math.Inf(-1)) {
		t.Error("NaN and ±Inf are degenerate")
	}
}
