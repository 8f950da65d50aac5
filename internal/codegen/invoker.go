package codegen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/model"
)

// Invoker calls the generator once per descriptor and registers the
// outcome on the owning module: the generated pair becomes module sources,
// and the descriptor becomes a configuration-time staleness dependency.
// The staleness registration matters because a descriptor's content can
// change its declared type dependencies, which changes the dependency
// graph itself, not just the generated code.
type Invoker struct {
	generator Generator
	done      map[string]struct{}
}

// NewInvoker creates an invoker for one configuration pass.
func NewInvoker(generator Generator) *Invoker {
	return &Invoker{
		generator: generator,
		done:      make(map[string]struct{}),
	}
}

// Invoke runs the generator for the descriptor and registers its artifact
// pair on the module. Invoking twice for the same (module identity,
// descriptor path) within one configuration pass is a no-op after the
// first.
func (inv *Invoker) Invoke(ctx context.Context, m *model.Module, d model.Descriptor, artifact model.GeneratedArtifact) error {
	logger := ctxlog.FromContext(ctx)

	key := string(m.ID) + "\x00" + filepath.Clean(d.Path)
	if _, ok := inv.done[key]; ok {
		logger.Debug("Generator already invoked for descriptor, skipping.", "module", m.ID, "descriptor", d.Path)
		return nil
	}

	absPath, err := filepath.Abs(d.Path)
	if err != nil {
		return fmt.Errorf("cannot resolve descriptor path %s: %w", d.Path, err)
	}

	if err := inv.generator.Generate(ctx, d.Type, absPath, artifact.Header, artifact.Source); err != nil {
		return err
	}

	m.AddArtifact(artifact)
	m.AddConfigDep(d.Path)
	inv.done[key] = struct{}{}

	logger.Debug("Registered generated artifact pair.", "module", m.ID, "header", artifact.Header, "source", artifact.Source)
	return nil
}
