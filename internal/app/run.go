package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/modforge/internal/ctxlog"
)

// planFileName is the default plan file under the build directory.
const planFileName = "plan.yaml"

// Run executes one configuration pass: assemble every declared module,
// finalize the dependency graph, and write the build plan. Any failure
// aborts the pass; no partial plan is ever written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	modules, err := a.assembler.AssembleAll(ctx)
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	a.logger.Debug("All modules assembled.", "count", len(modules))

	plan, err := a.assembler.Finalize(ctx)
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	a.plan = plan

	if a.config.PlanPath == "-" {
		if err := plan.Write(a.outW); err != nil {
			return err
		}
		return nil
	}

	planPath := a.config.PlanPath
	if planPath == "" {
		planPath = filepath.Join(a.workspace.Root, a.workspace.Settings.BuildDir, planFileName)
	}
	if err := os.MkdirAll(filepath.Dir(planPath), 0755); err != nil {
		return fmt.Errorf("cannot create plan directory: %w", err)
	}
	f, err := os.Create(planPath)
	if err != nil {
		return fmt.Errorf("cannot create plan file: %w", err)
	}
	defer f.Close()
	if err := plan.Write(f); err != nil {
		return err
	}

	a.logger.Info("Build plan written.", "path", planPath, "units", len(plan.Units))
	return nil
}
