// Package experiment pairs a configuration with its content-derived
// identity and a base directory, forming the unit that gets persisted and
// queried. On disk an experiment lives at <savedir_base>/<identity>/ with
// its defining configuration stored as exp_dict.json.
package experiment

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/expgridgo/internal/expconf"
	"github.com/vk/expgridgo/internal/store"
)

// ConfigArtifact is the file holding an experiment's defining configuration.
const ConfigArtifact = "exp_dict.json"

// ErrIdentityMismatch reports a persisted configuration whose recomputed
// identity no longer matches its directory name. This happens when a config
// was mutated after hashing, or the artifact was edited by hand.
var ErrIdentityMismatch = errors.New("identity mismatch")

// Record is one experiment: a configuration, its identity, and the base
// directory its artifacts live under. The configuration must not be mutated
// after the record is created.
type Record struct {
	Config      expconf.Config
	ID          string
	SavedirBase string
}

// NewRecord computes the configuration's identity once and fixes it for the
// record's lifetime.
func NewRecord(c expconf.Config, savedirBase string) (*Record, error) {
	id, err := expconf.Hash(c)
	if err != nil {
		return nil, err
	}
	return &Record{Config: c, ID: id, SavedirBase: savedirBase}, nil
}

// FromConfigs validates an expanded configuration list against the
// duplicate guard and builds one record per configuration. It fails fast on
// the first collision without returning a partial list.
func FromConfigs(configs []expconf.Config, savedirBase string) ([]*Record, error) {
	if err := expconf.CheckDuplicates(configs); err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(configs))
	for _, c := range configs {
		rec, err := NewRecord(c, savedirBase)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Dir returns the directory all of this experiment's artifacts live under.
func (r *Record) Dir() string {
	return filepath.Join(r.SavedirBase, r.ID)
}

// ArtifactPath returns the path of a named artifact inside the experiment
// directory.
func (r *Record) ArtifactPath(name string) string {
	return filepath.Join(r.Dir(), name)
}

// Save atomically persists the defining configuration as exp_dict.json.
func (r *Record) Save() error {
	return store.SaveJSON(r.ArtifactPath(ConfigArtifact), r.Config)
}

// LoadRecord reads an experiment's persisted configuration back and
// verifies that its recomputed identity still matches the directory it was
// found under.
func LoadRecord(savedirBase, id string) (*Record, error) {
	var c expconf.Config
	path := filepath.Join(savedirBase, id, ConfigArtifact)
	if err := store.LoadJSON(path, &c); err != nil {
		return nil, err
	}

	recomputed, err := expconf.Hash(c)
	if err != nil {
		return nil, err
	}
	if recomputed != id {
		return nil, fmt.Errorf("%w: %s resolves to %s", ErrIdentityMismatch, id, recomputed)
	}
	return &Record{Config: c, ID: id, SavedirBase: savedirBase}, nil
}

// Filter returns the records whose configuration the query is a structural
// subset of. An empty query matches every record.
func Filter(records []*Record, query expconf.Config) []*Record {
	var matched []*Record
	for _, rec := range records {
		if expconf.IsSubset(query, rec.Config, false) {
			matched = append(matched, rec)
		}
	}
	return matched
}
