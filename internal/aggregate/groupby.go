package aggregate

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
)

// AggFunc selects the reduction applied by GroupAggregate
type AggFunc string

const (
	Sum     AggFunc = "sum"
	Count   AggFunc = "count"
	Max     AggFunc = "max"
	NUnique AggFunc = "nunique"
)

// ErrNotNumeric is returned when sum or max meets a non-numeric value
var ErrNotNumeric = errors.New("value is not numeric")

// Group is one row of a GroupAggregate result
type Group[K cmp.Ordered] struct {
	Key   K   `json:"key"`
	Value int `json:"value"`
}

type groupAcc struct {
	value  int
	seen   bool
	unique map[any]struct{}
}

// GroupAggregate reduces rows to one Group per key, ordered by key.
// value returns ok == false for null values, which every function skips.
// A group whose values are all null is still reported, with Value 0.
func GroupAggregate[T any, K cmp.Ordered](rows []T, group func(T) K, value func(T) (any, bool), fn AggFunc) ([]Group[K], error) {
	switch fn {
	case Sum, Count, Max, NUnique:
	default:
		return nil, fmt.Errorf("unknown aggregate function %q", fn)
	}

	accs := make(map[K]*groupAcc)
	for _, r := range rows {
		k := group(r)
		acc, ok := accs[k]
		if !ok {
			acc = &groupAcc{unique: make(map[any]struct{})}
			accs[k] = acc
		}

		v, ok := value(r)
		if !ok {
			continue
		}

		switch fn {
		case Count:
			acc.value++
		case NUnique:
			acc.unique[v] = struct{}{}
			acc.value = len(acc.unique)
		case Sum, Max:
			n, err := toInt(v)
			if err != nil {
				return nil, fmt.Errorf("%s of group %v: %w", fn, k, err)
			}
			if fn == Sum {
				acc.value += n
			} else if !acc.seen || n > acc.value {
				acc.value = n
			}
		}
		acc.seen = true
	}

	out := make([]Group[K], 0, len(accs))
	for k, acc := range accs {
		out = append(out, Group[K]{Key: k, Value: acc.value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// GroupIndex maps each key to its aggregated value
func GroupIndex[K cmp.Ordered](groups []Group[K]) map[K]int {
	idx := make(map[K]int, len(groups))
	for _, g := range groups {
		idx[g.Key] = g.Value
	}
	return idx
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}
