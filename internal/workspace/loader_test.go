package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/model"
)

// writeWorkspace materializes manifest files under a temp root.
func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("modules and workspace settings", func(t *testing.T) {
		root := writeWorkspace(t, map[string]string{
			"workspace.hcl": `
				workspace {
					output_policy = "source-tree"
					build_config  = "testing"
					build_dir     = "out"
					generator     = "mygen"
					defines       = { FW_DEBUG = 1, FW_NAME = "ref" }
				}
			`,
			"Fw/Cmd/build.hcl": `
				module "Fw/Cmd" {
					inputs = ["CmdPortAi.xml"]
				}
			`,
			"Svc/Dispatcher/build.hcl": `
				module "Svc/Dispatcher" {
					kind       = "executable"
					inputs     = ["DispatcherComponentAi.xml", "DispatcherImpl.cpp"]
					deps       = ["Fw/Cmd"]
					link_flags = ["-lm"]

					exclude_from_install = true
					defines              = { SVC_LOCAL = true }
				}
			`,
		})

		m, err := NewLoader().Load(ctx, root)
		require.NoError(t, err)

		assert.Equal(t, model.SourceTree, m.Settings.OutputPolicy)
		assert.Equal(t, model.ConfigTesting, m.Settings.BuildConfig)
		assert.Equal(t, "out", m.Settings.BuildDir)
		assert.Equal(t, "mygen", m.Settings.GeneratorBin)
		assert.Equal(t, []string{"FW_DEBUG=1", "FW_NAME=ref"}, m.Settings.Defines)

		require.Len(t, m.Modules, 2)

		cmd, ok := m.ModuleByDir("Fw/Cmd")
		require.True(t, ok)
		assert.Equal(t, "Fw/Cmd", cmd.Name)
		assert.Equal(t, []string{"CmdPortAi.xml"}, cmd.Inputs)
		assert.False(t, cmd.ExcludeFromInstall)

		disp, ok := m.ModuleByDir("Svc/Dispatcher")
		require.True(t, ok)
		assert.Equal(t, "executable", disp.Kind)
		assert.Equal(t, []string{"Fw/Cmd"}, disp.Deps)
		assert.Equal(t, []string{"-lm"}, disp.LinkFlags)
		assert.True(t, disp.ExcludeFromInstall)
		assert.Equal(t, []string{"SVC_LOCAL=true"}, disp.Defines)
	})

	t.Run("settings default when workspace block is absent", func(t *testing.T) {
		root := writeWorkspace(t, map[string]string{
			"Fw/Cmd/build.hcl": `module "Fw/Cmd" { inputs = ["CmdPortAi.xml"] }`,
		})

		m, err := NewLoader().Load(ctx, root)
		require.NoError(t, err)

		assert.Equal(t, model.BuildTree, m.Settings.OutputPolicy)
		assert.Equal(t, model.ConfigNormal, m.Settings.BuildConfig)
		assert.Equal(t, "build", m.Settings.BuildDir)
	})

	t.Run("duplicate workspace block is rejected", func(t *testing.T) {
		root := writeWorkspace(t, map[string]string{
			"a.hcl": `workspace {}`,
			"b.hcl": `workspace {}`,
		})

		_, err := NewLoader().Load(ctx, root)
		assert.ErrorContains(t, err, "duplicate workspace block")
	})

	t.Run("invalid HCL is rejected", func(t *testing.T) {
		root := writeWorkspace(t, map[string]string{
			"bad.hcl": `module "x" { inputs = [`,
		})

		_, err := NewLoader().Load(ctx, root)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		root := writeWorkspace(t, map[string]string{
			"x/build.hcl": `module "x" { kind = "plugin" }`,
		})

		_, err := NewLoader().Load(ctx, root)
		assert.ErrorContains(t, err, "invalid module kind")
	})

	t.Run("empty workspace is rejected", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		assert.ErrorContains(t, err, "no .hcl manifests")
	})
}

func TestLocateModule(t *testing.T) {
	m := &Model{
		Modules: []*ModuleDecl{
			{Name: "Fw/Cmd", Dir: "Fw/Cmd"},
			{Name: "dispatcher", Dir: "Svc/Dispatcher"},
		},
	}
	m.index()

	t.Run("by name", func(t *testing.T) {
		decl, ok := m.LocateModule("dispatcher")
		require.True(t, ok)
		assert.Equal(t, "Svc/Dispatcher", decl.Dir)
	})

	t.Run("by directory", func(t *testing.T) {
		decl, ok := m.LocateModule("Svc/Dispatcher")
		require.True(t, ok)
		assert.Equal(t, "dispatcher", decl.Name)
	})

	t.Run("by descriptor path inside a module", func(t *testing.T) {
		decl, ok := m.LocateModule("Fw/Cmd/CmdPortAi.xml")
		require.True(t, ok)
		assert.Equal(t, "Fw/Cmd", decl.Name)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, ok := m.LocateModule("Fw/Nope")
		assert.False(t, ok)
	})
}
