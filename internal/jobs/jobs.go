// Package jobs defines the boundary to an external cluster scheduler and
// the glue that submits one job per experiment. The scheduler itself — the
// thing that decides when and where work runs — lives outside this module;
// only the Scheduler interface and the per-experiment bookkeeping are here.
package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/experiment"
	"github.com/vk/expgridgo/internal/parallel"
	"github.com/vk/expgridgo/internal/store"
)

// JobArtifact is the per-experiment file recording the submitted job.
const JobArtifact = "job_dict.json"

// ExpIDPlaceholder in a run command is replaced with the experiment's
// identity before submission.
const ExpIDPlaceholder = "<exp_id>"

// State is a scheduler-reported job state.
type State string

const (
	StateQueued    State = "QUEUED"
	StateRunning   State = "RUNNING"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
)

// Spec describes one unit of work for the scheduler.
type Spec struct {
	Command string
	WorkDir string
}

// Scheduler is the external job-orchestration collaborator. Implementations
// talk to a real cluster; this module never does.
type Scheduler interface {
	Submit(ctx context.Context, spec Spec) (jobID string, err error)
	Kill(ctx context.Context, jobID string) error
	Status(ctx context.Context, jobID string) (State, error)
}

// JobRecord is the payload persisted as job_dict.json in the experiment
// directory after a successful submission.
type JobRecord struct {
	JobID   string `json:"job_id"`
	ExpID   string `json:"exp_id"`
	Command string `json:"command"`
}

// SubmitAll launches one concurrent submission per experiment record and
// waits for all of them. Each successful submission atomically writes the
// job record into the experiment directory. A failed submission never
// cancels the sibling submissions; all failures come back joined.
func SubmitAll(ctx context.Context, s Scheduler, records []*experiment.Record, spec Spec) error {
	logger := ctxlog.FromContext(ctx)

	var runner parallel.Runner
	for _, rec := range records {
		rec := rec
		runner.Add(rec.ID, func() error {
			jobSpec := Spec{
				Command: strings.ReplaceAll(spec.Command, ExpIDPlaceholder, rec.ID),
				WorkDir: spec.WorkDir,
			}
			jobID, err := s.Submit(ctx, jobSpec)
			if err != nil {
				return err
			}
			logger.Debug("Job submitted.", "exp_id", rec.ID, "job_id", jobID)

			return store.SaveJSON(rec.ArtifactPath(JobArtifact), JobRecord{
				JobID:   jobID,
				ExpID:   rec.ID,
				Command: jobSpec.Command,
			})
		})
	}

	runner.Run()
	return runner.Wait()
}

// LoadJobRecord reads back the job record persisted for an experiment.
func LoadJobRecord(rec *experiment.Record) (*JobRecord, error) {
	var jr JobRecord
	if err := store.LoadJSON(rec.ArtifactPath(JobArtifact), &jr); err != nil {
		return nil, err
	}
	return &jr, nil
}

// KillAll kills the scheduler job of every record that has one, again one
// concurrent task per experiment. Records without a job record are skipped.
func KillAll(ctx context.Context, s Scheduler, records []*experiment.Record) error {
	var runner parallel.Runner
	for _, rec := range records {
		rec := rec
		runner.Add(rec.ID, func() error {
			jr, err := LoadJobRecord(rec)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return nil
				}
				return err
			}
			return s.Kill(ctx, jr.JobID)
		})
	}

	runner.Run()
	return runner.Wait()
}
