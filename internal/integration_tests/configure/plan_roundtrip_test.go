package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/emit"
	"github.com/vk/modforge/internal/testutil"
)

func TestPlanFileRoundTrip(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"workspace.hcl": `
			workspace {
				defines = { "VERSION" = "1.2.3" }
			}
		`,
		"Fw/Cmd/build.hcl":     `module "Fw/Cmd" { inputs = ["CmdPortAi.xml"] }`,
		"Fw/Cmd/CmdPortAi.xml": `<interface name="Cmd"></interface>`,
	}, nil)
	require.NoError(t, res.Err)

	f, err := os.Open(filepath.Join(res.Root, "plan.yaml"))
	require.NoError(t, err)
	defer f.Close()

	reread, err := emit.Read(f)
	require.NoError(t, err)

	if diff := cmp.Diff(res.Plan, reread); diff != "" {
		t.Errorf("plan changed across serialization (-emitted +reread):\n%s", diff)
	}
	assert.Equal(t, []string{"VERSION=1.2.3"}, reread.UnitFor("Fw_Cmd").Defines)
}

func TestStaticMinerOverride(t *testing.T) {
	t.Parallel()

	res := testutil.RunConfigure(t, map[string]string{
		"Fw/Cmd/build.hcl":           `module "Fw/Cmd" { inputs = ["CmdPortAi.xml"] }`,
		"Fw/Cmd/CmdPortAi.xml":       `not even xml`,
		"Svc/Foo/build.hcl":          `module "Svc/Foo" { inputs = ["FooComponentAi.xml"] }`,
		"Svc/Foo/FooComponentAi.xml": `also not xml`,
	}, &testutil.Options{
		MinedDeps: map[string][]string{
			"FooComponentAi.xml": {"Fw/Cmd"},
		},
	})
	require.NoError(t, res.Err)

	unit := res.Plan.UnitFor("Svc_Foo")
	require.NotNil(t, unit)
	assert.Equal(t, []string{"Fw_Cmd"}, unit.DependsOn)
}
