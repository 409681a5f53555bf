package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "exp_dict.json")
	payload := map[string]any{
		"dataset": "mnist",
		"model":   map[string]any{"name": "mlp", "n_layers": float64(30)},
	}

	require.NoError(t, SaveJSON(path, payload))

	var got map[string]any
	require.NoError(t, LoadJSON(path, &got))
	assert.Equal(t, payload, got)
}

func TestJSONOutputIsPrettyAndSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exp_dict.json")
	require.NoError(t, SaveJSON(path, map[string]any{"zebra": 1, "alpha": 2, "mid": 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Lexically sorted keys, four-space indentation: stable diffs.
	want := "{\n    \"alpha\": 2,\n    \"mid\": 3,\n    \"zebra\": 1\n}\n"
	assert.Equal(t, want, string(data))
}

func TestGobRoundTrip(t *testing.T) {
	type checkpoint struct {
		Epoch  int
		Loss   float64
		Labels []string
	}
	path := filepath.Join(t.TempDir(), "score_list.gob")
	in := checkpoint{Epoch: 12, Loss: 0.034, Labels: []string{"train", "val"}}

	require.NoError(t, SaveGob(path, in))

	var out checkpoint
	require.NoError(t, LoadGob(path, &out))
	assert.Equal(t, in, out)
}

func TestBytesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images", "sample.png")
	blob := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01, 0x02}

	require.NoError(t, SaveBytes(path, blob))

	got, err := LoadBytes(path)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestLoadMissingPathIsNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	var out map[string]any
	assert.ErrorIs(t, LoadJSON(missing, &out), ErrNotFound)
	assert.ErrorIs(t, LoadGob(missing, &out), ErrNotFound)
	_, err := LoadBytes(missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFailedWriteLeavesDestinationUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.bin")
	require.NoError(t, SaveBytes(path, []byte("good payload")))

	// A writer that dies mid-stream must not reach the rename step.
	err := writeAtomic(path, func(w io.Writer) error {
		if _, werr := w.Write([]byte("partial")); werr != nil {
			return werr
		}
		return errors.New("process killed")
	})
	require.ErrorIs(t, err, ErrStorage)

	got, err := LoadBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("good payload"), got)
}

func TestAbandonedTempFileDoesNotShadowData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.bin")
	require.NoError(t, SaveBytes(path, []byte("committed")))

	// Simulate a crash after the temp file was created but before rename:
	// a truncated temp colocated with the destination.
	tmp := path + ".deadbeef.tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("par"), 0o644))

	got, err := LoadBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("committed"), got)
}

func TestNoTempFilesLeftAfterSuccess(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		require.NoError(t, SaveBytes(filepath.Join(dir, "a.bin"), []byte{byte(i)}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
}

func TestSaveOverwritesPreviousPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exp_dict.json")
	require.NoError(t, SaveJSON(path, map[string]any{"v": float64(1)}))
	require.NoError(t, SaveJSON(path, map[string]any{"v": float64(2)}))

	var got map[string]any
	require.NoError(t, LoadJSON(path, &got))
	assert.Equal(t, map[string]any{"v": float64(2)}, got)
}

func TestConcurrentWritersToDistinctPaths(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	const n = 32

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			path := filepath.Join(dir, fmt.Sprintf("exp-%d", i), "payload.bin")
			if err := SaveBytes(path, []byte{byte(i)}); err != nil {
				t.Errorf("writer %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		got, err := LoadBytes(filepath.Join(dir, fmt.Sprintf("exp-%d", i), "payload.bin"))
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, got)
	}
}

func TestConcurrentWritersToSamePathNeverTear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contested.bin")
	payloads := [][]byte{
		[]byte("writer-a-payload"),
		[]byte("writer-b-payload"),
	}

	var wg sync.WaitGroup
	wg.Add(len(payloads))
	for _, p := range payloads {
		go func(p []byte) {
			defer wg.Done()
			if err := SaveBytes(path, p); err != nil {
				t.Errorf("save: %v", err)
			}
		}(p)
	}
	wg.Wait()

	// Last writer wins, but the result is always one complete payload.
	got, err := LoadBytes(path)
	require.NoError(t, err)
	assert.Contains(t, payloads, got)
}
