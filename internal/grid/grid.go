// Package grid turns a compact search-space description into the concrete
// list of experiment configurations it denotes, via cartesian expansion.
package grid

import (
	"fmt"
	"sort"

	"github.com/vk/expgridgo/internal/expconf"
)

// SearchSpace maps a parameter name to either a fixed value (scalar or
// nested map) or a list of candidate values. It is consumed once by Expand
// and then discarded.
type SearchSpace map[string]any

// Expand produces the cartesian product of the search space: one Config per
// combination of candidate values. Any value that is not a list is treated
// as a single-element candidate list.
//
// Enumeration order is deterministic: keys are iterated in sorted lexical
// order and the last sorted key varies fastest. An empty search space yields
// exactly one empty Config (the product of zero lists is one empty tuple);
// an empty candidate list anywhere yields zero Configs.
func Expand(space SearchSpace) ([]expconf.Config, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: search space is nil, expected a map", expconf.ErrInvalidInput)
	}

	keys := make([]string, 0, len(space))
	for k := range space {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lists := make([][]any, len(keys))
	total := 1
	for i, k := range keys {
		lists[i] = candidates(space[k])
		total *= len(lists[i])
	}
	if total == 0 {
		return []expconf.Config{}, nil
	}

	configs := make([]expconf.Config, 0, total)
	indices := make([]int, len(keys))
	for {
		c := make(expconf.Config, len(keys))
		for i, k := range keys {
			c[k] = lists[i][indices[i]]
		}
		configs = append(configs, c)

		// Advance the odometer, last key fastest.
		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(lists[pos]) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return configs, nil
}

// candidates normalizes a search-space value into its candidate list.
func candidates(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out
	default:
		return []any{v}
	}
}
