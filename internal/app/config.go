package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath    string // hcl search-space files
	Group       string // registered search-space group name
	SavedirBase string // base directory for experiment artifacts

	DryRun          bool
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" && cfg.Group == "" {
		return nil, errors.New("either a grid path or a registered group name is required")
	}
	if cfg.SavedirBase == "" && !cfg.DryRun {
		return nil, errors.New("SavedirBase is required unless running with DryRun")
	}
	return &cfg, nil
}
