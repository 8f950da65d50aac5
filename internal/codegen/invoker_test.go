package codegen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/model"
)

// countingGenerator records calls without touching the filesystem.
type countingGenerator struct {
	calls int
	fail  error
}

func (g *countingGenerator) Generate(ctx context.Context, typeTag model.DescriptorType, descriptorPath, headerPath, sourcePath string) error {
	g.calls++
	return g.fail
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	descriptor := model.Descriptor{Path: "Svc/Foo/FooComponentAi.xml", Type: model.TypeComponent, BaseName: "Foo"}
	artifact := model.GeneratedArtifact{
		Header:     "out/FooComponentAc.hpp",
		Source:     "out/FooComponentAc.cpp",
		Descriptor: descriptor.Path,
	}

	t.Run("registers artifact and staleness dependency", func(t *testing.T) {
		gen := &countingGenerator{}
		inv := NewInvoker(gen)
		m := model.NewModule("Svc_Foo", "Foo", "Svc/Foo", model.Library, model.ConfigNormal)

		require.NoError(t, inv.Invoke(ctx, m, descriptor, artifact))

		assert.Equal(t, 1, gen.calls)
		assert.Equal(t, []model.GeneratedArtifact{artifact}, m.Artifacts())
		assert.Equal(t, []string{descriptor.Path}, m.ConfigDeps())
	})

	t.Run("second invocation for the same descriptor is a no-op", func(t *testing.T) {
		gen := &countingGenerator{}
		inv := NewInvoker(gen)
		m := model.NewModule("Svc_Foo", "Foo", "Svc/Foo", model.Library, model.ConfigNormal)

		require.NoError(t, inv.Invoke(ctx, m, descriptor, artifact))
		require.NoError(t, inv.Invoke(ctx, m, descriptor, artifact))

		assert.Equal(t, 1, gen.calls)
		assert.Len(t, m.Artifacts(), 1)
	})

	t.Run("same descriptor under a different module identity is invoked again", func(t *testing.T) {
		gen := &countingGenerator{}
		inv := NewInvoker(gen)
		a := model.NewModule("Svc_A", "A", "Svc/A", model.Library, model.ConfigNormal)
		b := model.NewModule("Svc_B", "B", "Svc/B", model.Library, model.ConfigNormal)

		require.NoError(t, inv.Invoke(ctx, a, descriptor, artifact))
		require.NoError(t, inv.Invoke(ctx, b, descriptor, artifact))

		assert.Equal(t, 2, gen.calls)
	})

	t.Run("generator failure aborts without registering", func(t *testing.T) {
		gen := &countingGenerator{fail: errors.New("boom")}
		inv := NewInvoker(gen)
		m := model.NewModule("Svc_Foo", "Foo", "Svc/Foo", model.Library, model.ConfigNormal)

		err := inv.Invoke(ctx, m, descriptor, artifact)
		require.Error(t, err)
		assert.Empty(t, m.Artifacts())
		assert.Empty(t, m.ConfigDeps())

		// Not recorded as done: a retry within the pass hits the generator again.
		gen.fail = nil
		require.NoError(t, inv.Invoke(ctx, m, descriptor, artifact))
		assert.Len(t, m.Artifacts(), 1)
	})
}
