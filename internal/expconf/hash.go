package expconf

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Hash computes the stable identity of a configuration: a 32-character
// lowercase hex digest that is a pure function of the config's content,
// independent of key insertion order.
//
// At every nesting level keys are visited in sorted lexical order. A nested
// map contributes its own recursive hash; any other value contributes its
// canonical string form. Each key appends "key/value" to one canonical
// string, which is then md5-digested. md5 is collision resistance for
// deduplication only, not adversarial security.
func Hash(c Config) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: config is nil, expected a map", ErrInvalidInput)
	}

	canonical := ""
	for _, k := range sortedKeys(c) {
		var rendered string
		if sub, ok := asMap(c[k]); ok {
			subHash, err := Hash(sub)
			if err != nil {
				return "", fmt.Errorf("in key %q: %w", k, err)
			}
			rendered = subHash
		} else {
			formatted, err := formatValue(c[k])
			if err != nil {
				return "", fmt.Errorf("in key %q: %w", k, err)
			}
			rendered = formatted
		}
		canonical += k + "/" + rendered
	}

	return HashString(canonical), nil
}

// HashString digests an arbitrary string with the same scheme Hash uses.
// It is the identity function for non-configuration identifiers.
func HashString(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
