package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expgridgo/internal/grid"
)

func TestRegisterAndGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("mnist_baselines", func() grid.SearchSpace {
		return grid.SearchSpace{"dataset": "mnist", "lr": []any{0.1, 0.01}}
	}))

	space, err := r.Get("mnist_baselines")
	require.NoError(t, err)
	assert.Equal(t, "mnist", space["dataset"])
}

func TestGetUnknownName(t *testing.T) {
	r := New()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownSpace)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	r := New()
	f := func() grid.SearchSpace { return grid.SearchSpace{} }
	require.NoError(t, r.Register("g", f))
	assert.Error(t, r.Register("g", f))
}

func TestRegisterRejectsBadArguments(t *testing.T) {
	r := New()
	assert.Error(t, r.Register("", func() grid.SearchSpace { return nil }))
	assert.Error(t, r.Register("g", nil))
}

func TestNamesAreSorted(t *testing.T) {
	r := New()
	f := func() grid.SearchSpace { return grid.SearchSpace{} }
	require.NoError(t, r.Register("zeta", f))
	require.NoError(t, r.Register("alpha", f))
	require.NoError(t, r.Register("mid", f))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}
