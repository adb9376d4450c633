package hubclust

import (
	"math/rand"
	"testing"
)

func TestLinearSchedule(t *testing.T) {
	s := LinearSchedule(10)
	if p := s(0); p != 0 {
		t.Errorf("expected 0 at iteration 0, got %v", p)
	}
	if p := s(5); !almostEqual(p, 0.5, floatTol) {
		t.Errorf("expected 0.5 at iteration 5, got %v", p)
	}
	if p := s(10); p != 1 {
		t.Errorf("expected 1 at iteration 10, got %v", p)
	}
	if p := s(100); p != 1 {
		t.Errorf("expected 1 past fullAt, got %v", p)
	}
	// Monotone non-decreasing.
	prev := 0.0
	for i := 0; i <= 20; i++ {
		if p := s(i); p < prev {
			t.Fatalf("schedule decreased at iteration %d: %v < %v", i, p, prev)
		} else {
			prev = p
		}
	}

	if p := LinearSchedule(0)(0); p != 1 {
		t.Errorf("fullAt <= 0 should always be 1, got %v", p)
	}
}

func TestStepSchedule(t *testing.T) {
	s := StepSchedule(6)
	if p := s(5); p != 0 {
		t.Errorf("expected 0 before the step, got %v", p)
	}
	if p := s(6); p != 1 {
		t.Errorf("expected 1 at the step, got %v", p)
	}
}

func TestConstantScheduleClamps(t *testing.T) {
	if p := ConstantSchedule(-1)(3); p != 0 {
		t.Errorf("expected clamp to 0, got %v", p)
	}
	if p := ConstantSchedule(2)(3); p != 1 {
		t.Errorf("expected clamp to 1, got %v", p)
	}
	if p := ConstantSchedule(0.25)(99); p != 0.25 {
		t.Errorf("expected 0.25, got %v", p)
	}
}

func TestMaxFrequencyPosTieBreak(t *testing.T) {
	tests := []struct {
		name  string
		freqs []int
		want  int
	}{
		{"strict max", []int{1, 7, 3}, 1},
		{"tie keeps earliest", []int{2, 5, 5}, 1},
		{"all equal keeps first", []int{4, 4, 4}, 0},
		{"all zero keeps first", []int{0, 0, 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := maxFrequencyPos(tc.freqs); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSelectHubSingletonShortCircuits(t *testing.T) {
	// nil rng: any draw would panic, so a panic-free call proves the
	// single-member short circuit.
	s := &hubSelector{rng: nil, schedule: ConstantSchedule(0)}
	if got := s.selectHub([]int{42}, []int{0}, 3); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestSelectHubDeterministicUnderFullSchedule(t *testing.T) {
	s := &hubSelector{
		rng:      rand.New(rand.NewSource(3)),
		schedule: ConstantSchedule(1),
	}
	members := []int{10, 20, 30, 40}
	freqs := []int{2, 9, 9, 1}
	for i := 0; i < 500; i++ {
		if got := s.selectHub(members, freqs, i); got != 20 {
			t.Fatalf("iteration %d: expected member 20 (earliest max), got %d", i, got)
		}
	}
}

func TestSamplePosNeverPicksZeroFrequency(t *testing.T) {
	s := &hubSelector{rng: rand.New(rand.NewSource(5))}
	freqs := []int{0, 3, 0, 7, 0}
	for i := 0; i < 10000; i++ {
		pos := s.samplePos(freqs)
		if freqs[pos] == 0 {
			t.Fatalf("draw %d selected zero-frequency position %d", i, pos)
		}
	}
}

func TestSamplePosSquaredProportions(t *testing.T) {
	s := &hubSelector{rng: rand.New(rand.NewSource(7))}
	freqs := []int{3, 4}
	// weights 9 : 16, so position 0 should win about 36% of draws.
	const draws = 20000
	var zero int
	for i := 0; i < draws; i++ {
		if s.samplePos(freqs) == 0 {
			zero++
		}
	}
	got := float64(zero) / draws
	if got < 0.31 || got > 0.41 {
		t.Errorf("position 0 frequency %v, want about 0.36", got)
	}
}

func TestSamplePosUniformFallbackOnAllZero(t *testing.T) {
	s := &hubSelector{rng: rand.New(rand.NewSource(9))}
	freqs := []int{0, 0, 0}
	seen := make(map[int]int)
	for i := 0; i < 3000; i++ {
		seen[s.samplePos(freqs)]++
	}
	for pos := 0; pos < 3; pos++ {
		if seen[pos] == 0 {
			t.Errorf("position %d never selected under uniform fallback", pos)
		}
	}
}

func TestSelectHubScheduleGating(t *testing.T) {
	members := []int{0, 1, 2}
	freqs := []int{1, 1, 50}

	// Always stochastic: member 2 dominates but 0 and 1 remain possible.
	s := &hubSelector{rng: rand.New(rand.NewSource(13)), schedule: ConstantSchedule(0)}
	seen := make(map[int]int)
	for i := 0; i < 50000; i++ {
		seen[s.selectHub(members, freqs, i)]++
	}
	if seen[2] == 0 {
		t.Error("dominant member never selected")
	}
	if seen[0] == 0 && seen[1] == 0 {
		t.Error("low-frequency members never selected under stochastic policy")
	}
}
