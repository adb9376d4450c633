package hubclust

import (
	"math"
	"math/rand"
)

// Seeder produces the initial representative indices for a clustering run.
// Implementations must return numClusters distinct indices into data, spread
// apart so that no two clusters start from the same point.
type Seeder interface {
	Seed(data [][]float64, numClusters int, metric DistanceMetric, rng *rand.Rand) []int
}

// PlusPlusSeeder implements k-means++-style D² seeding: the first seed is
// drawn uniformly, and each subsequent seed is drawn with probability
// proportional to its squared distance to the nearest seed chosen so far.
// Already-chosen points carry zero mass and can never be drawn twice.
type PlusPlusSeeder struct{}

func (PlusPlusSeeder) Seed(data [][]float64, numClusters int, metric DistanceMetric, rng *rand.Rand) []int {
	n := len(data)
	seeds := make([]int, 0, numClusters)
	seeds = append(seeds, rng.Intn(n))

	// minDist[i] is the squared distance from point i to its nearest seed.
	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	for len(seeds) < numClusters {
		last := seeds[len(seeds)-1]
		var total float64
		for i := 0; i < n; i++ {
			d := metric.Distance(data[i], data[last])
			if d2 := d * d; d2 < minDist[i] {
				minDist[i] = d2
			}
			total += minDist[i]
		}
		if total == 0 {
			// All remaining points coincide with a seed; any unchosen
			// index is as good as another.
			seeds = append(seeds, randomUnchosen(n, seeds, rng))
			continue
		}

		u := rng.Float64() * total
		next := -1
		var acc float64
		for i := 0; i < n; i++ {
			acc += minDist[i]
			if acc > u {
				next = i
				break
			}
		}
		if next < 0 {
			next = randomUnchosen(n, seeds, rng)
		}
		seeds = append(seeds, next)
	}
	return seeds
}

// RandomSeeder picks numClusters distinct indices uniformly at random.
type RandomSeeder struct{}

func (RandomSeeder) Seed(data [][]float64, numClusters int, _ DistanceMetric, rng *rand.Rand) []int {
	return rng.Perm(len(data))[:numClusters]
}

// randomUnchosen returns a uniformly random index in [0, n) that does not
// already appear in chosen.
func randomUnchosen(n int, chosen []int, rng *rand.Rand) int {
	taken := make(map[int]bool, len(chosen))
	for _, c := range chosen {
		taken[c] = true
	}
	free := make([]int, 0, n-len(taken))
	for i := 0; i < n; i++ {
		if !taken[i] {
			free = append(free, i)
		}
	}
	return free[rng.Intn(len(free))]
}
