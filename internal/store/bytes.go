package store

import (
	"fmt"
	"io"
)

// SaveBytes atomically writes a raw byte blob, such as an encoded image.
func SaveBytes(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// LoadBytes reads back a blob written by SaveBytes, byte for byte.
func LoadBytes(path string) ([]byte, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorage, path, err)
	}
	return data, nil
}
