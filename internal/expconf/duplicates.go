package expconf

import (
	"errors"
	"fmt"
)

// ErrDuplicate is the sentinel wrapped by every DuplicateError.
var ErrDuplicate = errors.New("duplicate configuration")

// DuplicateError reports two positions in a configuration sequence that
// hash to the same identity.
type DuplicateError struct {
	Identity string
	First    int
	Second   int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate configuration: positions %d and %d share identity %s", e.First, e.Second, e.Identity)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// CheckDuplicates verifies that no two configurations in the sequence share
// an identity. It fails fast with a *DuplicateError naming the colliding
// identity on the first collision, and has no side effects otherwise.
func CheckDuplicates(configs []Config) error {
	seen := make(map[string]int, len(configs))
	for i, c := range configs {
		id, err := Hash(c)
		if err != nil {
			return fmt.Errorf("hashing config at position %d: %w", i, err)
		}
		if first, ok := seen[id]; ok {
			return &DuplicateError{Identity: id, First: first, Second: i}
		}
		seen[id] = i
	}
	return nil
}
