package assembler

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/emit"
	"github.com/vk/modforge/internal/model"
)

// Finalize validates the cross-module graph and produces the build plan.
// After Finalize every assembled module is frozen; the plan is the only
// artifact handed to the downstream tool.
func (a *Assembler) Finalize(ctx context.Context) (*emit.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	for _, id := range a.order {
		for _, target := range a.modules[id].ModuleDeps() {
			if err := a.graph.AddEdge(string(target), string(id)); err != nil {
				return nil, fmt.Errorf("invalid dependency %s -> %s: %w", id, target, err)
			}
		}
	}

	if err := a.graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("invalid module graph: %w", err)
	}
	order, err := a.graph.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("invalid module graph: %w", err)
	}
	logger.Debug("Module graph validated.", "modules", len(order))

	plan := &emit.Plan{
		Workspace:    a.ws.Root,
		BuildConfig:  a.ws.Settings.BuildConfig.String(),
		OutputPolicy: a.ws.Settings.OutputPolicy.String(),
	}

	outputs := make(map[model.ModuleID]string, len(order))
	// publicLink carries each library's link requirements to its
	// dependents: propagated, not re-resolved.
	publicLink := make(map[model.ModuleID][]string, len(order))

	for _, idStr := range order {
		id := model.ModuleID(idStr)
		m := a.modules[id]
		m.Finalize()

		output := a.outputPath(m)
		outputs[id] = output

		link := a.linkClosure(m, outputs, publicLink)
		publicLink[id] = link

		var dependsOn []string
		for _, dep := range m.ModuleDeps() {
			dependsOn = append(dependsOn, string(dep))
		}

		plan.Units = append(plan.Units, emit.Unit{
			Module:    idStr,
			Kind:      m.Kind.String(),
			Output:    output,
			Sources:   m.CompiledSources(),
			Defines:   m.Defines,
			Link:      link,
			DependsOn: dependsOn,
			StaleIf:   m.ConfigDeps(),
		})

		if m.Installable() {
			plan.Install = append(plan.Install, emit.InstallRecord{
				Module:      idStr,
				Artifact:    output,
				Destination: a.installDestination(m),
			})
		}
	}

	logger.Info("Configuration pass complete.", "units", len(plan.Units), "installable", len(plan.Install))
	return plan, nil
}

// linkClosure computes a module's link list in insertion order with
// first-occurrence dedup: per module dependency its artifact followed by
// its propagated interface, and link flags verbatim.
func (a *Assembler) linkClosure(m *model.Module, outputs map[model.ModuleID]string, publicLink map[model.ModuleID][]string) []string {
	var link []string
	seen := make(map[string]struct{})
	add := func(entry string) {
		if _, ok := seen[entry]; ok {
			return
		}
		seen[entry] = struct{}{}
		link = append(link, entry)
	}

	for _, e := range m.Edges() {
		switch e.Kind {
		case model.ModuleDependency:
			add(outputs[e.Target])
			for _, inherited := range publicLink[e.Target] {
				add(inherited)
			}
		case model.LinkFlagDependency:
			add(e.Flag)
		}
	}
	return link
}

// outputPath returns the artifact the downstream tool must produce for the
// module.
func (a *Assembler) outputPath(m *model.Module) string {
	buildDir := a.moduleBuildDir(m.Location)
	if m.Kind == model.Executable {
		name := path.Base(m.Name)
		if name == "" || name == "." {
			name = string(m.ID)
		}
		return filepath.Join(buildDir, name)
	}
	return filepath.Join(buildDir, "lib"+string(m.ID)+".a")
}

// installDestination returns the platform-scoped install directory for the
// module's artifact.
func (a *Assembler) installDestination(m *model.Module) string {
	if m.Kind == model.Executable {
		return path.Join("bin", a.platform)
	}
	return path.Join("lib", a.platform)
}
