package assembler

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/vk/modforge/internal/classify"
	"github.com/vk/modforge/internal/codegen"
	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/dag"
	"github.com/vk/modforge/internal/mining"
	"github.com/vk/modforge/internal/model"
	"github.com/vk/modforge/internal/naming"
	"github.com/vk/modforge/internal/registry"
	"github.com/vk/modforge/internal/resolver"
	"github.com/vk/modforge/internal/workspace"
)

// placeholderSource is the stand-in source for library modules that end up
// with nothing to compile. It is stripped from the final source list as
// soon as a real source exists; see model.Module.CompiledSources.
const placeholderSource = "Empty.cpp"

// Assembler drives one configuration pass over a workspace.
type Assembler struct {
	ws      *workspace.Model
	reg     *registry.Registry
	invoker *codegen.Invoker
	res     *resolver.Resolver

	modules  map[model.ModuleID]*model.Module
	order    []model.ModuleID
	declByID map[model.ModuleID]*workspace.ModuleDecl

	// artifactOwners maps every generated path to the descriptor that owns
	// it, for collision detection across the whole pass.
	artifactOwners map[string]string

	graph    *dag.Graph
	platform string
}

// New creates an assembler for one pass. The registry is shared with the
// resolver so mined references and declarations converge on one identity
// per location.
func New(ws *workspace.Model, reg *registry.Registry, generator codegen.Generator, miner mining.Miner) *Assembler {
	declByID := make(map[model.ModuleID]*workspace.ModuleDecl, len(ws.Modules))
	for _, decl := range ws.Modules {
		id := registry.CanonicalID(decl.Dir)
		if _, ok := declByID[id]; !ok {
			declByID[id] = decl
		}
	}

	return &Assembler{
		ws:             ws,
		reg:            reg,
		invoker:        codegen.NewInvoker(generator),
		res:            resolver.New(reg, ws, miner),
		modules:        make(map[model.ModuleID]*model.Module),
		declByID:       declByID,
		artifactOwners: make(map[string]string),
		graph:          dag.New(),
		platform:       runtime.GOOS + "-" + runtime.GOARCH,
	}
}

// AssembleAll assembles every module declared in the workspace, in manifest
// order. Any failure is fatal for the pass.
func (a *Assembler) AssembleAll(ctx context.Context) ([]*model.Module, error) {
	for _, decl := range a.ws.Modules {
		if _, err := a.AssembleModule(ctx, decl); err != nil {
			return nil, err
		}
	}

	out := make([]*model.Module, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.modules[id])
	}
	return out, nil
}

// AssembleModule runs the per-module pipeline: classify, name, generate,
// resolve. Re-declaring an already assembled location returns the existing
// module. Dependency modules are assembled recursively so that every
// target a module links against exists by the time the plan is finalized.
func (a *Assembler) AssembleModule(ctx context.Context, decl *workspace.ModuleDecl) (*model.Module, error) {
	logger := ctxlog.FromContext(ctx)

	id, created, err := a.reg.Declare(decl.Dir)
	if err != nil {
		return nil, fmt.Errorf("declaring module at %s: %w", decl.Dir, err)
	}
	if m, ok := a.modules[id]; ok {
		logger.Debug("Module already assembled, reusing identity.", "module", id)
		return m, nil
	}
	if !created {
		logger.Debug("Location re-declared, assembling under existing identity.", "module", id)
	}

	kind, err := model.ParseKind(decl.Kind)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", id, err)
	}

	m := model.NewModule(id, decl.Name, decl.Dir, kind, a.ws.Settings.BuildConfig)
	m.ExcludeFromInstall = decl.ExcludeFromInstall
	m.Defines = append(append([]string{}, a.ws.Settings.Defines...), decl.Defines...)

	moduleDir := filepath.Join(a.ws.Root, filepath.FromSlash(decl.Dir))
	buildDir := a.moduleBuildDir(decl.Dir)
	m.SetPlaceholder(filepath.Join(buildDir, placeholderSource))

	// Registered before the pipeline runs so recursive assembly of a
	// dependency that points back here terminates; the cycle itself is
	// rejected at finalize.
	a.modules[id] = m
	a.order = append(a.order, id)
	a.graph.AddNode(string(id))

	descriptors, sources := classify.Partition(decl.Inputs)
	logger.Debug("Classified module inputs.", "module", id, "descriptors", len(descriptors), "sources", len(sources))

	for _, rel := range descriptors {
		if err := a.processDescriptor(ctx, m, filepath.Join(moduleDir, filepath.FromSlash(rel)), buildDir); err != nil {
			return nil, err
		}
	}

	for _, rel := range sources {
		m.AddSource(filepath.Join(moduleDir, filepath.FromSlash(rel)))
	}

	if err := a.res.ResolveDeclared(ctx, m, decl.Deps, decl.LinkFlags); err != nil {
		return nil, err
	}

	for _, target := range m.ModuleDeps() {
		if _, ok := a.modules[target]; ok {
			continue
		}
		depDecl, ok := a.declByID[target]
		if !ok {
			return nil, fmt.Errorf("module %s: dependency %s has no declaration: %w", id, target, model.ErrUnresolvedDependency)
		}
		if _, err := a.AssembleModule(ctx, depDecl); err != nil {
			return nil, err
		}
	}

	logger.Debug("Module assembled.", "module", id, "deps", len(m.ModuleDeps()), "artifacts", len(m.Artifacts()))
	return m, nil
}

// processDescriptor names, checks, generates, and mines one descriptor.
func (a *Assembler) processDescriptor(ctx context.Context, m *model.Module, descPath, buildDir string) error {
	d, err := classify.Describe(descPath)
	if err != nil {
		return fmt.Errorf("module %s: %w", m.ID, err)
	}

	outputRoot := naming.OutputRoot(a.ws.Settings.OutputPolicy, filepath.Dir(descPath), buildDir)
	artifact := naming.Artifacts(d, outputRoot)

	// A re-listed descriptor is not a collision; the invoker's idempotence
	// guard absorbs it. Only a distinct descriptor mapping to the same
	// generated path is fatal.
	if owner, clash := a.artifactOwners[artifact.Header]; clash && owner != d.Path {
		return fmt.Errorf("module %s: descriptors %s and %s both generate %s: %w",
			m.ID, owner, d.Path, artifact.Header, model.ErrArtifactNameCollision)
	}
	a.artifactOwners[artifact.Header] = d.Path
	a.artifactOwners[artifact.Source] = d.Path

	if err := a.invoker.Invoke(ctx, m, d, artifact); err != nil {
		return fmt.Errorf("module %s: %w", m.ID, err)
	}

	if err := a.res.ResolveDescriptor(ctx, m, d); err != nil {
		return err
	}
	return nil
}

// moduleBuildDir returns the module's build-output directory, mirroring
// its workspace location under the build directory.
func (a *Assembler) moduleBuildDir(dir string) string {
	return filepath.Join(a.ws.Root, a.ws.Settings.BuildDir, filepath.FromSlash(dir))
}
