package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkspacePath is the workspace root containing .hcl manifests.
	WorkspacePath string
	// PlanPath is where the build plan is written. Empty selects
	// <build_dir>/plan.yaml under the workspace root; "-" writes to the
	// app's output writer.
	PlanPath string

	// Overrides for the workspace block; empty means "use the manifest".
	OutputPolicy string
	BuildConfig  string
	BuildDir     string
	Generator    string
	// Defines are appended to the workspace's global define set.
	Defines []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkspacePath == "" {
		return nil, errors.New("WorkspacePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
