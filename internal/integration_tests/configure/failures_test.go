package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/model"
	"github.com/vk/modforge/internal/testutil"
)

func TestUnknownDescriptorTypeIsFatal(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Fw/Gadget/build.hcl":       `module "Fw/Gadget" { inputs = ["FooGadgetAi.xml"] }`,
		"Fw/Gadget/FooGadgetAi.xml": `<gadget name="Foo"></gadget>`,
	}, nil)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, model.ErrUnknownDescriptorType)
	assert.Nil(t, res.Plan)

	// No partial plan on disk.
	_, statErr := os.Stat(filepath.Join(res.Root, "plan.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnresolvedMinedDependencyIsFatal(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Svc/Foo/build.hcl": `module "Svc/Foo" { inputs = ["FooComponentAi.xml"] }`,
		"Svc/Foo/FooComponentAi.xml": `
			<component name="Foo">
				<import_port_type>Fw/Missing/ThingPortAi.xml</import_port_type>
			</component>
		`,
	}, nil)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, model.ErrUnresolvedDependency)
	assert.Nil(t, res.Plan)
}

func TestArtifactCollisionIsFatal(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Fw/Cmd/build.hcl":         `module "Fw/Cmd" { inputs = ["CmdPortAi.xml", "alt/CmdPortAi.xml"] }`,
		"Fw/Cmd/CmdPortAi.xml":     `<interface name="Cmd"></interface>`,
		"Fw/Cmd/alt/CmdPortAi.xml": `<interface name="Cmd"></interface>`,
	}, nil)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, model.ErrArtifactNameCollision)
}

func TestDependencyCycleIsFatal(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"A/build.hcl": `module "A" { deps = ["B"] }`,
		"B/build.hcl": `module "B" { deps = ["A"] }`,
	}, nil)

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "cycle")
	assert.Nil(t, res.Plan)
}
