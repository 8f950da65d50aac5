// Package resolver merges dependency edges into a module's dependency set.
//
// Edges come from two places: identifiers mined out of a descriptor's
// content by the mining collaborator, and hand-authored declarations in the
// module's manifest. Both are merged with the same rule — insertion order
// preserved, duplicates dropped keeping the first occurrence — so the link
// order the downstream tool sees is deterministic.
package resolver

import (
	"context"
	"fmt"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/mining"
	"github.com/vk/modforge/internal/model"
	"github.com/vk/modforge/internal/registry"
	"github.com/vk/modforge/internal/workspace"
)

// Locator maps a dependency identifier to a declared module. The workspace
// model implements it.
type Locator interface {
	LocateModule(identifier string) (*workspace.ModuleDecl, bool)
}

// Resolver resolves mined and declared dependencies for modules within one
// configuration pass.
type Resolver struct {
	reg     *registry.Registry
	locator Locator
	miner   mining.Miner
}

// New creates a resolver sharing the pass's identity registry.
func New(reg *registry.Registry, locator Locator, miner mining.Miner) *Resolver {
	return &Resolver{reg: reg, locator: locator, miner: miner}
}

// ResolveDescriptor mines the descriptor for referenced identifiers and
// merges a module-kind edge per resolved target into the owning module. An
// identifier that maps to no known module fails with
// model.ErrUnresolvedDependency: dropping it silently would surface much
// later as an incomplete link graph.
func (r *Resolver) ResolveDescriptor(ctx context.Context, m *model.Module, d model.Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	identifiers, err := r.miner.MineDependencies(ctx, d.Path, m.ID, d.Type)
	if err != nil {
		return fmt.Errorf("mining %s: %w", d.Path, err)
	}

	for _, identifier := range identifiers {
		target, err := r.resolveTarget(identifier)
		if err != nil {
			return fmt.Errorf("descriptor %s: %w", d.Path, err)
		}
		if m.AddEdge(model.ModuleEdge(target)) {
			logger.Debug("Mined module dependency.", "module", m.ID, "target", target, "identifier", identifier)
		}
	}
	return nil
}

// ResolveDeclared merges the hand-authored module and link-flag
// dependencies into the module, with the same dedup rule as mined edges.
func (r *Resolver) ResolveDeclared(ctx context.Context, m *model.Module, deps []string, linkFlags []string) error {
	logger := ctxlog.FromContext(ctx)

	for _, dep := range deps {
		target, err := r.resolveTarget(dep)
		if err != nil {
			return fmt.Errorf("module %s: %w", m.ID, err)
		}
		if m.AddEdge(model.ModuleEdge(target)) {
			logger.Debug("Declared module dependency.", "module", m.ID, "target", target)
		}
	}

	for _, flag := range linkFlags {
		m.AddEdge(model.LinkFlagEdge(flag))
	}
	return nil
}

// resolveTarget maps an identifier to a module identity, declaring the
// target's canonical location in the registry so that repeated references
// converge on one identity.
func (r *Resolver) resolveTarget(identifier string) (model.ModuleID, error) {
	decl, ok := r.locator.LocateModule(identifier)
	if !ok {
		return "", fmt.Errorf("%q does not name any known module: %w", identifier, model.ErrUnresolvedDependency)
	}
	id, _, err := r.reg.Declare(decl.Dir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", identifier, err)
	}
	return id, nil
}
