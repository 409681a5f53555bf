package expconf

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Config is one concrete, fully-resolved set of hyperparameters. Values are
// scalars (string, bool, integer, float), lists of scalars, or nested maps.
type Config map[string]any

// ErrInvalidInput reports a malformed configuration or search-space argument.
var ErrInvalidInput = errors.New("invalid input")

// asMap normalizes the two map shapes a nested value can arrive in. HCL
// decoding produces map[string]any while callers building configs by hand
// tend to use Config directly.
func asMap(v any) (Config, bool) {
	switch m := v.(type) {
	case Config:
		return m, true
	case map[string]any:
		return Config(m), true
	default:
		return nil, false
	}
}

// sortedKeys returns the config's keys in lexical order. All canonical
// operations (hashing, subset iteration in tests) go through this so the
// host map's iteration order never leaks into observable behavior.
func sortedKeys(c Config) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatValue renders a scalar or list value into its canonical string form.
// The rendering is part of the identity contract: changing it changes every
// hash, which orphans previously persisted experiment directories.
func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return formatFloat(float64(val)), nil
	case float64:
		return formatFloat(val), nil
	case []any:
		return formatList(val)
	case []string:
		anys := make([]any, len(val))
		for i, s := range val {
			anys[i] = s
		}
		return formatList(anys)
	case []int:
		anys := make([]any, len(val))
		for i, n := range val {
			anys[i] = n
		}
		return formatList(anys)
	case []float64:
		anys := make([]any, len(val))
		for i, f := range val {
			anys[i] = f
		}
		return formatList(anys)
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", ErrInvalidInput, v)
	}
}

// formatFloat renders integral floats without a fractional part so that a
// value decoded as float64(3) (HCL represents all numbers this way) hashes
// identically to a hand-written int 3.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatList(vals []any) (string, error) {
	out := "["
	for i, v := range vals {
		if i > 0 {
			out += ", "
		}
		s, err := formatValue(v)
		if err != nil {
			return "", err
		}
		out += s
	}
	return out + "]", nil
}
