package workspace

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// fileRoot is the decode target for every top-level block of a manifest.
type fileRoot struct {
	Workspaces []*workspaceBlock `hcl:"workspace,block"`
	Modules    []*moduleBlock    `hcl:"module,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

// workspaceBlock is the raw `workspace` block: the enumerated global
// configuration surface.
type workspaceBlock struct {
	OutputPolicy string         `hcl:"output_policy,optional"`
	BuildConfig  string         `hcl:"build_config,optional"`
	BuildDir     string         `hcl:"build_dir,optional"`
	Generator    string         `hcl:"generator,optional"`
	Defines      hcl.Expression `hcl:"defines,optional"`
}

// moduleBlock is the raw `module` block declaring one build unit.
type moduleBlock struct {
	Name               string         `hcl:"name,label"`
	Kind               string         `hcl:"kind,optional"`
	Inputs             []string       `hcl:"inputs,optional"`
	Deps               []string       `hcl:"deps,optional"`
	LinkFlags          []string       `hcl:"link_flags,optional"`
	ExcludeFromInstall bool           `hcl:"exclude_from_install,optional"`
	Defines            hcl.Expression `hcl:"defines,optional"`
}

// flattenDefines evaluates a defines expression into "KEY=value" strings,
// sorted by key so the broadcast definition set is deterministic. Values
// may be strings, numbers, or bools; anything not convertible to a string
// is rejected.
func flattenDefines(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("cannot evaluate defines: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if typ := val.Type(); !typ.IsObjectType() && !typ.IsMapType() {
		return nil, fmt.Errorf("defines must be an object of key = value pairs, got %s", val.Type().FriendlyName())
	}

	pairs := make(map[string]string)
	keys := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		key := k.AsString()
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("define %q is not convertible to a string: %w", key, err)
		}
		pairs[key] = str.AsString()
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+pairs[k])
	}
	return out, nil
}
