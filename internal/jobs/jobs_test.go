package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expgridgo/internal/expconf"
	"github.com/vk/expgridgo/internal/experiment"
)

// fakeScheduler records submissions and kills in memory.
type fakeScheduler struct {
	mu        sync.Mutex
	submitted []Spec
	killed    []string
	failOn    string // substring of command that triggers a submit failure
	nextID    int
}

func (f *fakeScheduler) Submit(ctx context.Context, spec Spec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && strings.Contains(spec.Command, f.failOn) {
		return "", errors.New("scheduler rejected job")
	}
	f.nextID++
	f.submitted = append(f.submitted, spec)
	return fmt.Sprintf("job-%d", f.nextID), nil
}

func (f *fakeScheduler) Kill(ctx context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed = append(f.killed, jobID)
	return nil
}

func (f *fakeScheduler) Status(ctx context.Context, jobID string) (State, error) {
	return StateRunning, nil
}

func makeRecords(t *testing.T, base string, n int) []*experiment.Record {
	t.Helper()
	configs := make([]expconf.Config, n)
	for i := range configs {
		configs[i] = expconf.Config{"seed": i}
	}
	records, err := experiment.FromConfigs(configs, base)
	require.NoError(t, err)
	return records
}

func TestSubmitAllWritesJobRecords(t *testing.T) {
	base := t.TempDir()
	records := makeRecords(t, base, 3)
	sched := &fakeScheduler{}

	spec := Spec{Command: "python train.py -ei <exp_id> -sb " + base}
	require.NoError(t, SubmitAll(context.Background(), sched, records, spec))

	assert.Len(t, sched.submitted, 3)
	for _, rec := range records {
		jr, err := LoadJobRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, jr.ExpID)
		assert.NotEmpty(t, jr.JobID)
		// The placeholder is replaced per experiment.
		assert.Contains(t, jr.Command, rec.ID)
		assert.NotContains(t, jr.Command, ExpIDPlaceholder)
	}
}

func TestSubmitAllCollectsFailuresWithoutCancelingSiblings(t *testing.T) {
	base := t.TempDir()
	records := makeRecords(t, base, 4)
	sched := &fakeScheduler{failOn: records[0].ID}

	err := SubmitAll(context.Background(), sched, records, Spec{Command: "run <exp_id>"})
	require.Error(t, err)
	assert.ErrorContains(t, err, records[0].ID)

	// The other three experiments were still submitted and recorded.
	assert.Len(t, sched.submitted, 3)
	for _, rec := range records[1:] {
		_, loadErr := LoadJobRecord(rec)
		assert.NoError(t, loadErr)
	}
}

func TestKillAll(t *testing.T) {
	base := t.TempDir()
	records := makeRecords(t, base, 2)
	sched := &fakeScheduler{}

	require.NoError(t, SubmitAll(context.Background(), sched, records, Spec{Command: "run <exp_id>"}))
	require.NoError(t, KillAll(context.Background(), sched, records))
	assert.Len(t, sched.killed, 2)
}

func TestKillAllSkipsUnsubmittedRecords(t *testing.T) {
	base := t.TempDir()
	records := makeRecords(t, base, 2)
	sched := &fakeScheduler{}

	// Nothing submitted: no job records exist, so nothing to kill.
	require.NoError(t, KillAll(context.Background(), sched, records))
	assert.Empty(t, sched.killed)
}
