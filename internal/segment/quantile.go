package segment

import (
	"math"
	"sort"
)

// quantile returns the q-th quantile of vs using linear interpolation
// between closest ranks, matching the warehouse's reporting conventions.
// ok is false when vs is empty; callers skip percentile-based narrowing
// in that case rather than treating the threshold as zero.
func quantile(vs []float64, q float64) (threshold float64, ok bool) {
	if len(vs) == 0 {
		return 0, false
	}

	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}

	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}
