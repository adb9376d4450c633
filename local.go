package hubclust

// localOccurrences computes within-cluster occurrence frequencies for the
// members of one cluster. For every member it builds a sorted list of its k
// nearest neighbors among the other members, maintained by bounded insertion
// as pairwise distances come out of the cache (no full sort, no global
// index), then counts how many of those lists each member appears in.
//
// The returned counts are aligned positionally with members and sum to
// len(members) * k, with k clamped to len(members)-1.
func localOccurrences(members []int, k int, cache *DistanceCache) []int {
	m := len(members)
	if k > m-1 {
		k = m - 1
	}
	counts := make([]int, m)
	if k < 1 {
		return counts
	}

	nearestPos := make([]int, k)
	nearestDist := make([]float64, k)
	for a := 0; a < m; a++ {
		filled := 0
		for b := 0; b < m; b++ {
			if b == a {
				continue
			}
			d := cache.Distance(members[a], members[b])
			switch {
			case filled < k:
				pos := filled
				for pos > 0 && nearestDist[pos-1] > d {
					nearestDist[pos] = nearestDist[pos-1]
					nearestPos[pos] = nearestPos[pos-1]
					pos--
				}
				nearestDist[pos] = d
				nearestPos[pos] = b
				filled++
			case d < nearestDist[k-1]:
				// Shift larger entries down, dropping the current k-th.
				pos := k - 1
				for pos > 0 && nearestDist[pos-1] > d {
					nearestDist[pos] = nearestDist[pos-1]
					nearestPos[pos] = nearestPos[pos-1]
					pos--
				}
				nearestDist[pos] = d
				nearestPos[pos] = b
			}
		}
		for i := 0; i < filled; i++ {
			counts[nearestPos[i]]++
		}
	}
	return counts
}
