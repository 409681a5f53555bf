package expconf

import "reflect"

// IsSubset reports whether every key present in query is present in
// candidate with an equal value, recursing into maps present on both sides.
// Keys present only in candidate never affect the result.
//
// Per-key rules: a key missing on either side behaves as a nil value; two
// plain values match under value equality (numeric comparison crosses int
// and float representations); two maps recurse; a map on exactly one side
// never matches. The check short-circuits on the first failing key.
//
// The strict flag is reserved and does not change behavior yet; it is
// accepted and threaded through recursive calls unchanged.
func IsSubset(query, candidate Config, strict bool) bool {
	for _, k := range sortedKeys(query) {
		v1 := query[k]
		v2 := candidate[k]

		m1, ok1 := asMap(v1)
		m2, ok2 := asMap(v2)

		switch {
		case !ok1 && !ok2:
			if !valueEqual(v1, v2) {
				return false
			}
		case ok1 && ok2:
			if !IsSubset(m1, m2, strict) {
				return false
			}
		default:
			// One side is a map and the other is not (or is absent).
			return false
		}
	}
	return true
}

// valueEqual compares two non-map values. Numbers compare by magnitude
// regardless of their Go representation, since decoded configs carry
// float64 where hand-built ones carry int.
func valueEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	la, aIsList := toList(a)
	if aIsList {
		lb, bIsList := toList(b)
		if !bIsList || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valueEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out, true
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
