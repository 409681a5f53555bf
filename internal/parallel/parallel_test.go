package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReturnsOnlyAfterAllTasksFinish(t *testing.T) {
	var r Runner
	var completed atomic.Int32

	for i := 0; i < 10; i++ {
		delay := time.Duration(i) * time.Millisecond
		r.Add("", func() error {
			time.Sleep(delay)
			completed.Add(1)
			return nil
		})
	}

	r.Run()
	require.NoError(t, r.Wait())
	assert.Equal(t, int32(10), completed.Load())
}

func TestFailureDoesNotCancelSiblings(t *testing.T) {
	var r Runner
	var completed atomic.Int32

	r.Add("bad", func() error {
		return errors.New("boom")
	})
	for i := 0; i < 5; i++ {
		r.Add("", func() error {
			time.Sleep(5 * time.Millisecond)
			completed.Add(1)
			return nil
		})
	}

	r.Run()
	err := r.Wait()
	require.Error(t, err)
	assert.ErrorContains(t, err, "task bad: boom")
	assert.Equal(t, int32(5), completed.Load(), "siblings must run to completion")
}

func TestAllFailuresAreCollected(t *testing.T) {
	var r Runner
	errA := errors.New("first failure")
	errB := errors.New("second failure")

	r.Add("a", func() error { return errA })
	r.Add("b", func() error { return errB })
	r.Add("c", func() error { return nil })

	r.Run()
	err := r.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestPanicBecomesError(t *testing.T) {
	var r Runner
	r.Add("panicky", func() error { panic("unexpected state") })
	r.Add("fine", func() error { return nil })

	r.Run()
	err := r.Wait()
	require.Error(t, err)
	assert.ErrorContains(t, err, "task panicky: panic: unexpected state")
}

func TestRunWithNoTasks(t *testing.T) {
	var r Runner
	r.Run()
	assert.NoError(t, r.Wait())
}

func TestAddAfterRunPanics(t *testing.T) {
	var r Runner
	r.Run()
	assert.Panics(t, func() {
		r.Add("late", func() error { return nil })
	})
}
