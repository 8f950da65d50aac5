package configure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/testutil"
)

func TestBuildTreeArtifactNaming(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Svc/Foo/build.hcl":          `module "Svc/Foo" { inputs = ["FooComponentAi.xml"] }`,
		"Svc/Foo/FooComponentAi.xml": `<component name="Foo"></component>`,
	}, nil)
	require.NoError(t, res.Err)

	unit := res.Plan.UnitFor("Svc_Foo")
	require.NotNil(t, unit)

	header := filepath.Join(res.Root, "build", "Svc", "Foo", "FooComponentAc.hpp")
	source := filepath.Join(res.Root, "build", "Svc", "Foo", "FooComponentAc.cpp")
	assert.Equal(t, []string{header, source}, unit.Sources)

	// The generator honored its side-effect contract.
	assert.FileExists(t, header)
	assert.FileExists(t, source)

	// The descriptor is a configuration-time staleness dependency.
	require.Len(t, unit.StaleIf, 1)
	assert.Equal(t, filepath.Join(res.Root, "Svc", "Foo", "FooComponentAi.xml"), unit.StaleIf[0])

	assert.FileExists(t, filepath.Join(res.Root, "plan.yaml"))
}

func TestSourceTreeArtifactNaming(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"workspace.hcl":        `workspace { output_policy = "source-tree" }`,
		"Fw/Cmd/build.hcl":     `module "Fw/Cmd" { inputs = ["CmdPortAi.xml"] }`,
		"Fw/Cmd/CmdPortAi.xml": `<interface name="Cmd"></interface>`,
	}, nil)
	require.NoError(t, res.Err)

	unit := res.Plan.UnitFor("Fw_Cmd")
	require.NotNil(t, unit)
	assert.Contains(t, unit.Sources, filepath.Join(res.Root, "Fw", "Cmd", "CmdPortAc.hpp"))
}

func TestGeneratorInvokedOncePerDescriptor(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Fw/Cmd/build.hcl":     `module "Fw/Cmd" { inputs = ["CmdPortAi.xml", "ArgPortAi.xml"] }`,
		"Fw/Cmd/CmdPortAi.xml": `<interface name="Cmd"></interface>`,
		"Fw/Cmd/ArgPortAi.xml": `<interface name="Arg"></interface>`,
	}, nil)
	require.NoError(t, res.Err)

	assert.Len(t, res.Generator.Calls(), 2)
}
