package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/app"
	"github.com/vk/modforge/internal/emit"
	"github.com/vk/modforge/internal/workspace"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Options tweaks a harness run.
type Options struct {
	// MinedDeps substitutes a StaticMiner keyed by descriptor base name.
	// Nil keeps the real XML miner, which reads the descriptor files the
	// test wrote.
	MinedDeps map[string][]string
	// Mutate edits the app config before the run.
	Mutate func(*app.Config)
}

// Result holds the outcomes of an integration test run.
type Result struct {
	LogOutput string
	Err       error
	App       *app.App
	Plan      *emit.Plan
	Generator *RecordingGenerator
	Root      string
}

// RunConfigure provides a standardized harness for running a full
// configuration pass over a synthetic workspace: it materializes the given
// files under a temp root, runs the app with a recording generator, and
// returns the emitted plan.
func RunConfigure(t *testing.T, files map[string]string, opts *Options) *Result {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		WorkspacePath: root,
		PlanPath:      filepath.Join(root, "plan.yaml"),
		LogLevel:      "debug",
		LogFormat:     "text",
	})
	require.NoError(t, err)
	if opts.Mutate != nil {
		opts.Mutate(cfg)
	}

	generator := NewRecordingGenerator()
	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		if opts.MinedDeps != nil {
			testApp = app.NewApp(logBuffer, cfg, workspace.NewLoader(), generator, &StaticMiner{Deps: opts.MinedDeps})
		} else {
			testApp = app.NewApp(logBuffer, cfg, workspace.NewLoader(), generator, nil)
		}
	}()

	if panicErr != nil {
		return &Result{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Generator: generator,
			Root:      root,
		}
	}

	runErr := testApp.Run(context.Background())
	return &Result{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Plan:      testApp.Plan(),
		Generator: generator,
		Root:      root,
	}
}
