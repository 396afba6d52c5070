package aggregate

import (
	"cmp"
	"sort"
)

// Ratio is the share of the population, as a truncated percentage, that
// holds Value
type Ratio[K cmp.Ordered] struct {
	Value K   `json:"value"`
	Count int `json:"count"`
	Ratio int `json:"ratio"`
}

// CategoryRatio computes the population percentage of every distinct value
// returned by key. Values reported as null (ok == false) are left out of
// both the numerator and the denominator. The result is ordered by count
// descending, then value.
func CategoryRatio[T any, K cmp.Ordered](rows []T, key func(T) (K, bool)) []Ratio[K] {
	counts := make(map[K]int)
	total := 0
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		counts[k]++
		total++
	}

	out := make([]Ratio[K], 0, len(counts))
	for k, n := range counts {
		out = append(out, Ratio[K]{
			Value: k,
			Count: n,
			Ratio: int(float64(n) / float64(total) * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// RatioIndex maps each value to its ratio for join lookups
func RatioIndex[K cmp.Ordered](ratios []Ratio[K]) map[K]int {
	idx := make(map[K]int, len(ratios))
	for _, r := range ratios {
		idx[r.Value] = r.Ratio
	}
	return idx
}
