package store

import (
	"encoding/gob"
	"fmt"
	"io"
)

// SaveGob atomically writes a structured object graph in the store's
// private binary format. Only LoadGob understands the encoding.
func SaveGob(path string, v any) error {
	return writeAtomic(path, func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(v)
	})
}

// LoadGob reads an artifact written by SaveGob into out, which must be a
// pointer to the same type that was saved.
func LoadGob(path string, out any) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding gob from %s: %v", ErrStorage, path, err)
	}
	return nil
}
