package store

import (
	"encoding/json"
	"fmt"
	"io"
)

// SaveJSON atomically writes v as pretty-printed JSON. Map keys are emitted
// in lexical order, so re-saving equal content produces byte-identical
// files and stable diffs.
func SaveJSON(path string, v any) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(v)
	})
}

// LoadJSON reads a JSON artifact written by SaveJSON into out, which must
// be a pointer.
func LoadJSON(path string, out any) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding JSON from %s: %v", ErrStorage, path, err)
	}
	return nil
}
