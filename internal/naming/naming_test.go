package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/modforge/internal/model"
)

func TestArtifacts(t *testing.T) {
	t.Run("build-tree scenario", func(t *testing.T) {
		d := model.Descriptor{Path: "Svc/Foo/FooComponentAi.xml", Type: model.TypeComponent, BaseName: "Foo"}

		a := Artifacts(d, filepath.FromSlash("/out"))

		assert.Equal(t, filepath.FromSlash("/out/FooComponentAc.hpp"), a.Header)
		assert.Equal(t, filepath.FromSlash("/out/FooComponentAc.cpp"), a.Source)
		assert.Equal(t, d.Path, a.Descriptor)
	})

	t.Run("deterministic for identical base and type", func(t *testing.T) {
		first := model.Descriptor{Path: "a/CmdPortAi.xml", Type: model.TypePort, BaseName: "Cmd"}
		second := model.Descriptor{Path: "b/CmdPortAi.xml", Type: model.TypePort, BaseName: "Cmd"}

		assert.Equal(t, Artifacts(first, "/out").Header, Artifacts(second, "/out").Header)
		assert.Equal(t, Artifacts(first, "/out").Source, Artifacts(second, "/out").Source)
	})
}

func TestOutputRoot(t *testing.T) {
	assert.Equal(t, "Svc/Foo", OutputRoot(model.SourceTree, "Svc/Foo", "build/Svc/Foo"))
	assert.Equal(t, "build/Svc/Foo", OutputRoot(model.BuildTree, "Svc/Foo", "build/Svc/Foo"))
}
