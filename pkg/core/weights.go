package core

// WeightMap maps a split-axis key (a phase or discipline name) to a relative,
// non-negative weight. Values are not required to sum to 100 or to 1; the
// normalizer absorbs any total. Negative values are treated as zero.
type WeightMap map[string]float64

// Sum returns the total of all weights after clamping negatives to zero.
// Callers surface this raw total to users as an input-validation signal;
// it is not required to equal 100 before normalization.
func (w WeightMap) Sum() float64 {
	total := 0.0
	for _, v := range w {
		if v > 0 {
			total += v
		}
	}
	return total
}

// Normalize converts the map into fractions summing to 1. Every value is
// clamped to max(v, 0) and divided by the clamped sum.
//
// If the clamped sum is <= 0 (empty map, all zeros, or all negative), a
// uniform 1/n distribution is returned so that callers always receive a
// valid distribution and never need a "no fee allocated" branch. An empty
// map normalizes to an empty map.
func (w WeightMap) Normalize() WeightMap {
	out := make(WeightMap, len(w))
	total := w.Sum()
	if total <= 0 {
		n := len(w)
		if n == 0 {
			return out
		}
		uniform := 1.0 / float64(n)
		for k := range w {
			out[k] = uniform
		}
		return out
	}
	for k, v := range w {
		if v < 0 {
			v = 0
		}
		out[k] = v / total
	}
	return out
}

// Clone returns a shallow copy. Engines operate on snapshots and never
// mutate caller-owned maps.
func (w WeightMap) Clone() WeightMap {
	out := make(WeightMap, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
