package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modforge/internal/assembler"
	"github.com/vk/modforge/internal/codegen"
	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/emit"
	"github.com/vk/modforge/internal/mining"
	"github.com/vk/modforge/internal/model"
	"github.com/vk/modforge/internal/registry"
	"github.com/vk/modforge/internal/workspace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	workspace *workspace.Model
	registry  *registry.Registry
	assembler *assembler.Assembler

	plan *emit.Plan
}

// NewApp is the constructor for the main application. It loads the
// workspace, applies CLI overrides to its settings, and wires the
// assembler. A nil generator or miner selects the production
// implementations. Configuration loading failures are fatal startup
// errors and panic; callers recover to present a clean exit.
func NewApp(outW io.Writer, cfg *Config, loader workspace.Loader, generator codegen.Generator, miner mining.Miner) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	ws, err := loader.Load(ctx, cfg.WorkspacePath)
	if err != nil {
		panic(fmt.Errorf("failed to load workspace: %w", err))
	}
	logger.Debug("Workspace loaded.", "modules", len(ws.Modules))

	if err := applyOverrides(ws, cfg); err != nil {
		panic(fmt.Errorf("invalid configuration override: %w", err))
	}

	if generator == nil {
		generator = codegen.NewCommandGenerator(ws.Settings.GeneratorBin)
	}
	if miner == nil {
		miner = mining.NewXMLMiner()
	}

	reg := registry.New()
	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		workspace: ws,
		registry:  reg,
		assembler: assembler.New(ws, reg, generator, miner),
	}
}

// applyOverrides folds CLI-provided settings over the manifest's
// workspace block.
func applyOverrides(ws *workspace.Model, cfg *Config) error {
	if cfg.OutputPolicy != "" {
		policy, err := model.ParseOutputPolicy(cfg.OutputPolicy)
		if err != nil {
			return err
		}
		ws.Settings.OutputPolicy = policy
	}
	if cfg.BuildConfig != "" {
		buildConfig, err := model.ParseBuildConfig(cfg.BuildConfig)
		if err != nil {
			return err
		}
		ws.Settings.BuildConfig = buildConfig
	}
	if cfg.BuildDir != "" {
		ws.Settings.BuildDir = cfg.BuildDir
	}
	if cfg.Generator != "" {
		ws.Settings.GeneratorBin = cfg.Generator
	}
	ws.Settings.Defines = append(ws.Settings.Defines, cfg.Defines...)
	return nil
}

// Workspace returns the loaded workspace model. Primarily for testing.
func (a *App) Workspace() *workspace.Model {
	return a.workspace
}

// Registry returns the application's identity registry. Primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Plan returns the build plan produced by Run, or nil before Run.
func (a *App) Plan() *emit.Plan {
	return a.plan
}
